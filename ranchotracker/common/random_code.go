package common

import (
	"fmt"
	"math/rand"
)

const (
	// Alphabet for standard short codes, 62 symbols.
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// Alphabet for personalized 8-12 char codes. Upper case only, so these
	// codes can't collide with each other case-insensitively.
	personalCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

const DefaultInviteCodeLength = 6

// RandomCode returns a code of n characters drawn uniformly and
// independently from the standard alphanumeric alphabet.
func RandomCode(n int) string {
	return randomFromAlphabet(n, inviteCodeAlphabet)
}

// RandomPersonalCode returns a code of n characters from the upper+digits
// alphabet used for longer personalized codes.
func RandomPersonalCode(n int) string {
	return randomFromAlphabet(n, personalCodeAlphabet)
}

func randomFromAlphabet(n int, alphabet string) string {
	if n < 1 {
		panic(fmt.Sprintf("code length should be >= 1, got %d", n))
	}
	code := make([]byte, n)
	for i := range code {
		code[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(code)
}
