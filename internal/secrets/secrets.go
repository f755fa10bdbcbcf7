// Package secrets resolves named secrets such as API keys. A secret named
// "gemini-api-key" is read from <dir>/gemini-api-key when a secrets directory is
// configured (the layout of mounted Kubernetes or Docker secrets), otherwise
// from the GEMINI_API_KEY environment variable.
package secrets

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a secret is neither on disk nor in the environment.
var ErrNotFound = errors.New("secret not found")

// Resolver looks secrets up by name
type Resolver struct {
	dir    string
	logger *slog.Logger
}

// NewResolver creates a resolver. dir may be empty to use only the environment.
func NewResolver(dir string, logger *slog.Logger) *Resolver {
	return &Resolver{
		dir:    dir,
		logger: logger.With("component", "secrets"),
	}
}

// Resolve returns the trimmed value of the named secret
func (r *Resolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty secret name", ErrNotFound)
	}

	if r.dir != "" {
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		switch {
		case err == nil:
			if value := strings.TrimSpace(string(data)); value != "" {
				return value, nil
			}
		case !errors.Is(err, os.ErrNotExist):
			r.logger.Warn("failed to read secret file", "name", name, "error", err)
		}
	}

	if value := strings.TrimSpace(os.Getenv(EnvName(name))); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// EnvName maps a secret name to its environment variable: upper case with
// dashes and dots replaced by underscores.
func EnvName(name string) string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(name))
}
