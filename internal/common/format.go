package common

import (
	"fmt"
	"strconv"
	"strings"

	"novares-ledger-go/internal/models"

	"github.com/fatih/color"
)

// DefaultWidth is the separator width of console reports
const DefaultWidth = 80

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(char string, width int) {
	fmt.Println(strings.Repeat(char, width))
}

// PrintSeparatorNewline prints a separator with a newline before it
func PrintSeparatorNewline(char string, width int) {
	fmt.Println("\n" + strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(title string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(title)
	PrintSeparator("=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(message string, width int) {
	PrintSeparatorNewline("=", width)
	fmt.Println(message)
	fmt.Println(strings.Repeat("=", width) + "\n")
}

// PrintBoxSeparator prints a box-drawing separator line (for sub-sections)
func PrintBoxSeparator(width int) {
	fmt.Println("├" + strings.Repeat("─", width))
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for detail lines under list items
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

// StatusLabel renders an account or transaction status in colour
func StatusLabel(status string) string {
	switch status {
	case string(models.StatusActive), string(models.TransactionApproved):
		return color.GreenString(strings.ToUpper(status))
	case string(models.StatusPending):
		return color.YellowString(strings.ToUpper(status))
	default:
		return color.RedString(strings.ToUpper(status))
	}
}

// FormatNovares renders an amount with thousands separators
func FormatNovares(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String() + " NÓV"
}

// MaskPhone keeps the first five and the last digit of a phone number
func MaskPhone(phone string) string {
	cleaned := strings.Join(strings.Fields(phone), "")
	if len(cleaned) < 7 {
		return cleaned
	}
	stars := len(cleaned) - 6
	return cleaned[:5] + strings.Repeat("*", stars) + cleaned[len(cleaned)-1:]
}
