package shortcode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var alphanumeric = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func TestRandomGenerator_Generate(t *testing.T) {
	gen := NewRandomGenerator()

	for _, length := range []int{3, 6, 8, 10} {
		for i := 0; i < 50; i++ {
			code := gen.Generate(length)
			assert.Len(t, code, length)
			assert.Regexp(t, alphanumeric, code)
		}
	}
}

func TestRandomGenerator_NonPositiveLength(t *testing.T) {
	gen := NewRandomGenerator()

	assert.Empty(t, gen.Generate(0))
	assert.Empty(t, gen.Generate(-1))
}

func TestRandomGenerator_Spread(t *testing.T) {
	gen := NewRandomGenerator()

	codes := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		codes[gen.Generate(6)] = struct{}{}
	}

	// 1000 draws from 62^6 should essentially never repeat.
	assert.Greater(t, len(codes), 990)
}

func TestRandomGenerator_UsesWholeAlphabet(t *testing.T) {
	gen := NewRandomGenerator()

	seen := make(map[rune]struct{})
	for i := 0; i < 2000; i++ {
		for _, c := range gen.Generate(8) {
			seen[c] = struct{}{}
		}
	}

	assert.Len(t, seen, len(alphabet))
}
