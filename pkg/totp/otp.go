package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	Digits = 6  // Standard 6-digit codes
	Period = 30 // 30-second time step (RFC 6238 standard)

	// DefaultWindow accepts codes from two steps before and after the
	// current one, tolerating up to ±60 seconds of clock drift.
	DefaultWindow = 2

	secretBytes = 20 // 160-bit secret (RFC 4226 recommendation)
)

var (
	// secretRegex ensures Base32 format: uppercase A-Z, digits 2-7, optional padding.
	secretRegex = regexp.MustCompile("^[A-Z2-7]+=*$")
	codeRegex   = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, Digits))

	b32 = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// Params contains the metadata encoded into a provisioning URI.
type Params struct {
	Secret      string // Base32-encoded secret key (required)
	AccountName string // User identifier shown in authenticator apps (required)
	Issuer      string // Service name shown in authenticator apps (required)
}

// Validate ensures all required provisioning parameters are present and valid.
func (p Params) Validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if !secretRegex.MatchString(p.Secret) {
		return ErrInvalidSecret
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// GenerateSecret generates a new Base32-encoded 160-bit secret key.
// The result is always 32 characters long.
func GenerateSecret() (string, error) {
	secret := make([]byte, secretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	return b32.EncodeToString(secret), nil
}

// ProvisioningURI builds an otpauth:// URI for onboarding the secret into
// authenticator apps, following the Key Uri Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func ProvisioningURI(p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(p.Issuer),
		url.PathEscape(p.AccountName),
	)

	query := url.Values{}
	query.Set("secret", p.Secret)
	query.Set("issuer", p.Issuer)
	query.Set("algorithm", "SHA1")
	query.Set("digits", fmt.Sprintf("%d", Digits))
	query.Set("period", fmt.Sprintf("%d", Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// GenerateCode derives the 6-digit code for the 30-second step containing t.
func GenerateCode(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	counter := t.Unix() / int64(Period)

	return fmt.Sprintf("%0*d", Digits, hotp(key, counter)), nil
}

// ValidateCode reports whether code matches the secret at any step within
// ±window of the step containing t. Candidates are compared in constant time
// and every step in the window is always checked, so a mismatch leaks nothing
// about which step came closest. A malformed secret or code returns an error;
// a well-formed but stale code returns (false, nil).
//
// There is no replay protection: a code stays valid for its whole window and
// is accepted repeatedly.
func ValidateCode(secret, code string, t time.Time, window int) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return false, ErrInvalidCode
	}
	if window < 0 {
		return false, ErrInvalidWindow
	}

	counter := t.Unix() / int64(Period)

	match := 0
	for i := -window; i <= window; i++ {
		candidate := fmt.Sprintf("%0*d", Digits, hotp(key, counter+int64(i)))
		match |= subtle.ConstantTimeCompare([]byte(candidate), []byte(code))
	}

	return match == 1, nil
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(strings.ToUpper(secret))
	if !secretRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}

	key, err := b32.DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// hotp implements the RFC 4226 HMAC-based one-time password algorithm,
// truncating an HMAC-SHA1 of the counter to a Digits-digit number.
func hotp(key []byte, counter int64) int {
	// Counter is hashed as a big-endian 8-byte value (RFC 4226).
	counterBytes := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		counterBytes[i] = byte(counter & 0xff)
		counter >>= 8
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(counterBytes)
	sum := mac.Sum(nil)

	// Dynamic truncation: last 4 bits select the offset, MSB is cleared
	// to keep the extracted 31-bit value positive.
	offset := sum[len(sum)-1] & 0x0f
	code := (int(sum[offset]&0x7f) << 24) |
		(int(sum[offset+1]) << 16) |
		(int(sum[offset+2]) << 8) |
		int(sum[offset+3])

	return code % int(math.Pow10(Digits))
}
