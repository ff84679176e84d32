package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/tsfunc/internal/logging"
)

// MinAPIKeyLength is the minimum required length for API keys
const MinAPIKeyLength = 32

// ValidateAPIKey checks if an API key meets the length requirement
func ValidateAPIKey(key string) bool {
	return len(key) >= MinAPIKeyLength && strings.TrimSpace(key) != ""
}

// APIKeyAuth rejects requests without a configured API key. The key is read
// from X-API-Key, or from Authorization with or without a "Bearer " prefix.
// Keys shorter than MinAPIKeyLength are ignored at start-up.
func APIKeyAuth(logger *logging.Logger, apiKeys []string, enabled bool) fiber.Handler {
	if !enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	keys := make([][]byte, 0, len(apiKeys))
	for _, key := range apiKeys {
		if !ValidateAPIKey(key) {
			logger.Warn("Ignoring API key below minimum length",
				"key_length", len(key),
				"min_required", MinAPIKeyLength,
				"key_prefix", maskAPIKey(key))
			continue
		}
		keys = append(keys, []byte(key))
	}
	if len(keys) == 0 {
		logger.Error("Auth enabled but no valid API keys configured, every request will be rejected",
			"total_keys", len(apiKeys))
	}

	return func(c *fiber.Ctx) error {
		apiKey := c.Get("X-API-Key")
		if apiKey == "" {
			auth := c.Get(fiber.HeaderAuthorization)
			if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
				apiKey = after
			} else {
				apiKey = auth
			}
		}

		if apiKey == "" {
			return fiber.NewError(fiber.StatusUnauthorized,
				"API key is required. Provide it via X-API-Key header or Authorization header.")
		}

		for _, key := range keys {
			if subtle.ConstantTimeCompare(key, []byte(apiKey)) == 1 {
				return c.Next()
			}
		}

		logging.FromContext(c.UserContext()).Warn("Invalid API key",
			"path", c.Path(),
			"ip", c.IP(),
			"api_key_prefix", maskAPIKey(apiKey))
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid API key.")
	}
}

// maskAPIKey masks API key for logging (show only first 4 chars)
func maskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
