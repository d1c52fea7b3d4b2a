package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomKeyGen_GenerateKey(t *testing.T) {
	t.Run("success - generated keys match the configured pattern", func(t *testing.T) {
		// arrange
		keyGen := NewRandomKeyGen()
		pattern := regexp.MustCompile(`^tvly-[A-Za-z0-9]{28}$`)

		// act + assert
		for range 100 {
			assert.Regexp(t, pattern, keyGen.GenerateKey())
		}
	})
	t.Run("success - generated keys do not repeat", func(t *testing.T) {
		// arrange
		keyGen := NewRandomKeyGen()
		seen := make(map[string]struct{})

		// act
		for range 1000 {
			seen[keyGen.GenerateKey()] = struct{}{}
		}

		// assert
		assert.Len(t, seen, 1000)
	})
}
