// Package shortcode produces and vets short codes.
package shortcode

import "math/rand/v2"

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces candidate short codes.
type Generator interface {
	Generate(length int) string
}

// RandomGenerator draws every character uniformly from [A-Za-z0-9].
// Predictability is irrelevant here, only the distribution matters.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) Generate(length int) string {
	if length <= 0 {
		return ""
	}

	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
