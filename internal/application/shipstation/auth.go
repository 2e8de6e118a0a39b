package shipstation

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"

	"github.com/commerce/shipstation/internal/domain/shipstation"
	"go.uber.org/zap"
)

// Authenticator checks ShipStation requests against the configured
// token or Basic credentials.
type Authenticator struct {
	settings SettingsSource
	logger   *zap.Logger
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(settings SettingsSource, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{settings: settings, logger: logger}
}

// Authenticate returns nil when the token matches, or when the username
// matches and the password equals the configured value in plain text or
// as its hex MD5 digest. The token is checked first.
func (a *Authenticator) Authenticate(creds Credentials) error {
	s := a.settings.Current().Settings

	if s.AlternateAuth != "" && creds.AuthKey != "" && secureEqual(s.AlternateAuth, creds.AuthKey) {
		return nil
	}

	if s.Username != "" && s.Password != "" && creds.Username != "" && creds.Password != "" {
		if secureEqual(s.Username, creds.Username) && passwordMatches(s.Password, creds.Password) {
			return nil
		}
	}

	a.logger.Error("Error: Authentication failed when accepting request. Enable or check ShipStation request logging for more information.")
	return shipstation.ErrAuthenticationFailed
}

func passwordMatches(configured, presented string) bool {
	if secureEqual(configured, presented) {
		return true
	}
	sum := md5.Sum([]byte(presented))
	return secureEqual(configured, hex.EncodeToString(sum[:]))
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
