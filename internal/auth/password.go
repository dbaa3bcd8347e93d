package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies a password against its hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

// GenerateTempPassword produces the one-time credential mailed out on
// verification or admin approval. Short on purpose: the owner must
// rotate it on first login.
func GenerateTempPassword() string {
	return uuid.NewString()[:8]
}

// GenerateResetToken produces the opaque token embedded in a
// password-recovery link.
func GenerateResetToken() string {
	return uuid.NewString()
}

// GenerateOtp produces a 6-digit numeric code, leading zeros preserved.
func GenerateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GeneratePersonnelPassword builds the initial field-staff password
// from the first four letters of the name plus the pincode.
func GeneratePersonnelPassword(name, pincode string) string {
	namePart := strings.ReplaceAll(name, " ", "")
	if len(namePart) > 4 {
		namePart = namePart[:4]
	}
	if pincode == "" {
		pincode = "000000"
	}
	return namePart + pincode
}
