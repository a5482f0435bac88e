package common

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// PromptSecret reads a line without echo when stdin is a terminal
func PromptSecret(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("unable to read %s: %w", strings.TrimSpace(strings.TrimSuffix(label, ":")), err)
		}
		return string(secret), nil
	}

	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("unable to read secret: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
