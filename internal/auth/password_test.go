package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrengthScore(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     int
	}{
		{"empty", "", 0},
		{"length and lowercase only", "abcdefgh", 2},
		{"all five criteria", "Abcdef1!", 5},
		{"short mixed", "Ab1!", 4},
		{"digits only long", "12345678", 2},
		{"special outside fixed set ignored", "abcdefg~", 2},
		{"uppercase lowercase digit", "Abcdefg1", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StrengthScore(tc.password))
		})
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("Abcdef1!", 4)
	require.NoError(t, err)
	require.NotEqual(t, "Abcdef1!", hash)

	assert.NoError(t, ComparePassword(hash, "Abcdef1!"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
