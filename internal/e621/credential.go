package e621

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"

	"github.com/five82/e6viu/internal/errs"
)

// Credential is an API user name and key pair sent as HTTP Basic auth.
type Credential struct {
	Username string
	APIKey   string
}

// Header returns the Authorization header value for the credential.
func (c Credential) Header() (string, error) {
	user := strings.TrimSpace(c.Username)
	key := strings.TrimSpace(c.APIKey)
	switch {
	case user == "":
		return "", fmt.Errorf("%w: username is empty", errs.ErrAuthEncoding)
	case strings.Contains(user, ":"):
		return "", fmt.Errorf("%w: username contains ':'", errs.ErrAuthEncoding)
	case key == "":
		return "", fmt.Errorf("%w: api key is empty", errs.ErrAuthEncoding)
	case hasControl(user) || hasControl(key):
		return "", fmt.Errorf("%w: control character in credential", errs.ErrAuthEncoding)
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+key)), nil
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}
