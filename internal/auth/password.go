package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor for new hashes.
	DefaultIterations = 600000

	saltChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	saltLength = 16
)

// PasswordHasher derives password hashes with PBKDF2-HMAC-SHA256.
//
// Hashes are encoded as "pbkdf2:sha256:<iterations>$<salt>$<hex digest>", the same layout
// werkzeug uses, so accounts created by older deployments still verify.
type PasswordHasher struct {
	Iterations int
}

// DefaultPasswordHasher returns a hasher with the production work factor.
func DefaultPasswordHasher() PasswordHasher {
	return PasswordHasher{Iterations: DefaultIterations}
}

// Hash returns the encoded hash of password using a fresh random salt.
func (h PasswordHasher) Hash(password string) (string, error) {
	iterations := h.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	salt, err := randomSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	digest := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", iterations, salt, hex.EncodeToString(digest)), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// Malformed hashes never verify.
func VerifyPassword(encoded, password string) bool {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	params := strings.Split(method, ":")
	if len(params) != 3 || params[0] != "pbkdf2" {
		return false
	}
	iterations, err := strconv.Atoi(params[2])
	if err != nil || iterations <= 0 {
		return false
	}

	var newHash func() hash.Hash
	var size int
	switch params[1] {
	case "sha256":
		newHash, size = sha256.New, sha256.Size
	case "sha512":
		newHash, size = sha512.New, sha512.Size
	default:
		return false
	}

	wantBytes, err := hex.DecodeString(want)
	if err != nil || len(wantBytes) != size {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, size, newHash)
	return subtle.ConstantTimeCompare(got, wantBytes) == 1
}

func randomSalt(n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			// 62 chars; drop values that would bias the modulo
			if int(b) >= 248 {
				continue
			}
			out = append(out, saltChars[int(b)%len(saltChars)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
