package forms

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"regexp"

	"github.com/groupe-sii/lumext/internal/client/models"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 15 // exclusive

	firstPrintable = 33
	lastPrintable  = 126
)

var (
	nonWord = regexp.MustCompile(`\W`)
	lower   = regexp.MustCompile(`[a-z]`)
	upper   = regexp.MustCompile(`[A-Z]`)
	digit   = regexp.MustCompile(`\d`)
)

// GeneratePassword draws a password from printable ASCII. Candidates are
// drawn until one holds a non-word character, a lowercase letter, an
// uppercase letter and a digit.
func GeneratePassword() (string, error) {
	return generatePassword(rand.Reader)
}

func generatePassword(r io.Reader) (string, error) {
	for {
		candidate, err := drawPassword(r)
		if err != nil {
			return "", err
		}
		if strongEnough(candidate) {
			return candidate, nil
		}
	}
}

func drawPassword(r io.Reader) (string, error) {
	n, err := rand.Int(r, big.NewInt(maxPasswordLength-minPasswordLength))
	if err != nil {
		return "", err
	}
	// length stays in [8,14]; the portal's generator drew one extra char.
	length := int(n.Int64()) + minPasswordLength

	span := big.NewInt(lastPrintable - firstPrintable + 1)
	buf := make([]byte, length)
	for i := range buf {
		c, err := rand.Int(r, span)
		if err != nil {
			return "", err
		}
		buf[i] = byte(firstPrintable + c.Int64())
	}
	return string(buf), nil
}

func strongEnough(s string) bool {
	return nonWord.MatchString(s) && lower.MatchString(s) && upper.MatchString(s) && digit.MatchString(s)
}

// Generate writes a generated password into the password field of f. The
// confirmation is left for the user to retype.
func (f *Form) Generate() (string, error) {
	if !f.Has(models.FieldPassword) {
		return "", fmt.Errorf("%w: %s form has no %q", ErrUnknownField, f.kind, models.FieldPassword)
	}
	p, err := GeneratePassword()
	if err != nil {
		return "", err
	}
	if err := f.Set(models.FieldPassword, p); err != nil {
		return "", err
	}
	return p, nil
}
