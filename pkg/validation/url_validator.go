package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// URLValidator handles capture and mask URL validation.
type URLValidator struct {
	allowedSchemes []string
}

// NewURLValidator creates a URL validator accepting http and https.
func NewURLValidator() *URLValidator {
	return &URLValidator{
		allowedSchemes: []string{"http", "https"},
	}
}

// Validate checks that the URL parses, has an allowed scheme and a host.
func (v *URLValidator) Validate(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("URL is empty")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	for _, scheme := range v.allowedSchemes {
		if parsed.Scheme == scheme {
			return nil
		}
	}
	return fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
}
