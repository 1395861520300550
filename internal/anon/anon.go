// Package anon issues the per-record secrets the board uses instead of user
// accounts: modification codes and display usernames. Both are generated
// exactly once, at first persistence of a record.
package anon

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mathrand "math/rand/v2"
)

// CodeLength is the length of a modification code in hex characters.
const CodeLength = 8

const maxUsernameLength = 50

// DefaultAdjectives and DefaultNouns are the stock word lists; deployments
// may override them through config.
var (
	DefaultAdjectives = []string{"quick", "lazy", "sleepy", "noisy", "hungry", "cool", "brave", "clever", "shiny", "wise"}
	DefaultNouns      = []string{"fox", "dog", "cat", "mouse", "bear", "lion", "tiger", "frog", "bird", "wolf"}
)

// NewModificationCode returns an 8-character lowercase hex secret drawn from
// the OS CSPRNG. It must not be predictable from timestamps or sequence, so
// math/rand is deliberately not used here.
func NewModificationCode() (string, error) {
	buf := make([]byte, CodeLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Generator produces adjective-noun display usernames from its word lists.
type Generator struct {
	adjectives []string
	nouns      []string
}

// NewGenerator builds a Generator, falling back to the default word lists
// when either list is empty.
func NewGenerator(adjectives, nouns []string) *Generator {
	if len(adjectives) == 0 {
		adjectives = DefaultAdjectives
	}
	if len(nouns) == 0 {
		nouns = DefaultNouns
	}
	return &Generator{adjectives: adjectives, nouns: nouns}
}

// NewUsername returns "{adjective}-{noun}", each part chosen independently
// and uniformly. Usernames are cosmetic, so the non-crypto source is fine.
// The result is truncated to 50 runes in case configured words are long.
func (g *Generator) NewUsername() string {
	name := g.adjectives[mathrand.IntN(len(g.adjectives))] + "-" + g.nouns[mathrand.IntN(len(g.nouns))]
	if r := []rune(name); len(r) > maxUsernameLength {
		return string(r[:maxUsernameLength])
	}
	return name
}
