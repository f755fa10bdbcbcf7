package bootstrap

import (
	"crypto/subtle"
	"fmt"
	"log/slog"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/config"
	"iss-sky-scanner/internal/secrets"
)

// APIKey is the resolved key of one protected route. A key whose secret could
// not be resolved rejects every request with a ConfigurationError.
type APIKey struct {
	name  string
	value string
}

// NewAPIKey creates a key named after its secret. An empty value marks the
// secret as unresolved.
func NewAPIKey(name, value string) APIKey {
	return APIKey{name: name, value: value}
}

// Check validates a key supplied by a client
func (k APIKey) Check(provided string) error {
	if provided == "" {
		return apperr.InvalidQuery("API key is missing")
	}
	if k.value == "" {
		return apperr.Configuration("Error validating API key", fmt.Errorf("%w: %s", secrets.ErrNotFound, k.name))
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(k.value)) != 1 {
		return apperr.Authentication("Invalid API key")
	}
	return nil
}

// APIKeys holds the keys of the ESP, web and feedback routes
type APIKeys struct {
	ESP      APIKey
	Web      APIKey
	Feedback APIKey
}

func resolveKeys(cfg config.AuthConfig, resolver *secrets.Resolver, logger *slog.Logger) APIKeys {
	resolve := func(name string) APIKey {
		value, err := resolver.Resolve(name)
		if err != nil {
			logger.Warn("API key not configured, route will reject requests", "secret", name, "error", err)
		}
		return NewAPIKey(name, value)
	}

	return APIKeys{
		ESP:      resolve(cfg.ESPKeySecret),
		Web:      resolve(cfg.WebKeySecret),
		Feedback: resolve(cfg.FeedbackKeySecret),
	}
}
