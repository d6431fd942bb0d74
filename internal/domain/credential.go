package domain

import (
	"encoding/base64"
	"time"
)

// Credential is a client-held admin session. The token is an encoded
// transport convenience, not a security boundary; the server re-verifies
// every governance call independently.
type Credential struct {
	Token         string    `yaml:"token"`
	EstablishedAt time.Time `yaml:"established_at"`
}

// EncodeCredential builds the X-Admin-Auth token from a username/secret
// pair.
func EncodeCredential(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// NewCredential creates a credential established now.
func NewCredential(username, password string) Credential {
	return Credential{
		Token:         EncodeCredential(username, password),
		EstablishedAt: time.Now().UTC(),
	}
}
