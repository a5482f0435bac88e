// Package reference produces external-facing codes: 20-digit transfer
// references and STX- member codes.
package reference

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// ReferenceLength is the number of decimal digits in a transfer reference
	ReferenceLength = 20

	memberCodePrefix = "STX-"
	memberCodeLength = 5
	memberAlphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// regenerate this many times before giving up on a collision
	maxAttempts = 16
)

var ErrExhausted = errors.New("unable to generate a unique code")

type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewGeneratorWithReader uses r as the entropy source. Intended for tests.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Reference draws 20 independent uniform decimal digits
func (g *Generator) Reference() (string, error) {
	return g.draw(ReferenceLength, "0123456789")
}

// MemberCode returns "STX-" followed by 5 uppercase base-36 characters
func (g *Generator) MemberCode() (string, error) {
	code, err := g.draw(memberCodeLength, memberAlphabet)
	if err != nil {
		return "", err
	}
	return memberCodePrefix + code, nil
}

// UniqueReference regenerates until taken reports the reference as free
func (g *Generator) UniqueReference(taken func(string) bool) (string, error) {
	return unique(g.Reference, taken)
}

// UniqueMemberCode regenerates until taken reports the code as free
func (g *Generator) UniqueMemberCode(taken func(string) bool) (string, error) {
	return unique(g.MemberCode, taken)
}

func unique(next func() (string, error), taken func(string) bool) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := next()
		if err != nil {
			return "", err
		}
		if !taken(code) {
			return code, nil
		}
	}
	return "", ErrExhausted
}

// draw picks n symbols uniformly from alphabet using rejection sampling so
// that no symbol is favoured by the modulo.
func (g *Generator) draw(n int, alphabet string) (string, error) {
	size := len(alphabet)
	limit := 256 - (256 % size)

	var sb strings.Builder
	sb.Grow(n)
	buf := make([]byte, n)
	for sb.Len() < n {
		buf = buf[:n-sb.Len()]
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return "", fmt.Errorf("failed to read entropy: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			sb.WriteByte(alphabet[int(b)%size])
			if sb.Len() == n {
				break
			}
		}
	}
	return sb.String(), nil
}
