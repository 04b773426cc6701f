// package env contains simple getters for common abstractions that rely on
// shared environment variables (railway concept).
//
// A shared environment variable is simply a variable that is shared across
// services.
package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/manzanit0/nominatry/pkg/nominatim"
	"github.com/manzanit0/nominatry/pkg/whttp"
)

// NewNominatimClient creates a nominatim client wired with a logging HTTP
// transport. Identification is mandatory: the public instance's usage policy
// requires every request to say who's asking.
func NewNominatimClient() (*nominatim.Client, error) {
	ident, err := Identification()
	if err != nil {
		return nil, err
	}

	client := nominatim.New(ident)
	client.SetHTTPClient(whttp.NewLoggingClient())

	if baseURL := os.Getenv("NOMINATIM_BASE_URL"); baseURL != "" {
		if err := client.SetBaseURL(baseURL); err != nil {
			return nil, fmt.Errorf("failed to parse NOMINATIM_BASE_URL: %w", err)
		}
	}

	if raw := os.Getenv("NOMINATIM_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse NOMINATIM_TIMEOUT_SECONDS as integer: %s", err.Error())
		}

		client.SetTimeout(time.Duration(seconds) * time.Second)
	}

	return client, nil
}

// Identification builds the identification header from the environment,
// preferring NOMINATIM_USER_AGENT over NOMINATIM_REFERER when both are set.
func Identification() (nominatim.IdentificationMethod, error) {
	if userAgent := os.Getenv("NOMINATIM_USER_AGENT"); userAgent != "" {
		return nominatim.FromUserAgent(userAgent), nil
	}

	if referer := os.Getenv("NOMINATIM_REFERER"); referer != "" {
		return nominatim.FromReferer(referer), nil
	}

	return nominatim.IdentificationMethod{}, fmt.Errorf("missing NOMINATIM_USER_AGENT or NOMINATIM_REFERER environment variable. Please check your environment.")
}
