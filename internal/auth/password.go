package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinStrengthScore is the floor a non-empty admin credential must reach.
const MinStrengthScore = 3

const specialChars = "!@#$%^&*"

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// StrengthScore rates a password 0-5: one point each for length >= 8,
// a lowercase letter, an uppercase letter, a digit, and a special
// character from the fixed set.
func StrengthScore(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if hasLower {
		score++
	}
	if hasUpper {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSpecial {
		score++
	}
	return score
}
