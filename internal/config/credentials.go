package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/five82/e6viu/internal/e621"
)

// Environment holds the credential variables.
type Environment struct {
	Token string `env:"E621_TOKEN"`
	User  string `env:"E621_USER"`
}

// LoadCredentials loads dotenv files (missing ones are skipped), then reads
// E621_TOKEN and E621_USER from the environment. It returns nil when no token
// is set. E621_USER takes precedence over username.
func LoadCredentials(username string, dotenvFiles ...string) (*e621.Credential, error) {
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	vars, err := env.ParseAs[Environment]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	token := strings.TrimSpace(vars.Token)
	if token == "" {
		return nil, nil
	}
	user := strings.TrimSpace(vars.User)
	if user == "" {
		user = strings.TrimSpace(username)
	}
	return &e621.Credential{Username: user, APIKey: token}, nil
}
