package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Health is a service's health report.
type Health struct {
	Status      string `json:"status"`
	Version     string `json:"version,omitempty"`
	Commit      string `json:"commit,omitempty"`
	Description string `json:"description,omitempty"`
	BuildTime   string `json:"build_time,omitempty"`
}

// Health checks the named service. Supported services: "users", "things",
// "bootstrap", "certs", "reader", "http-adapter", "journal".
func (s *SDK) Health(ctx context.Context, service string) (Health, error) {
	var baseURL string
	switch service {
	case "users":
		baseURL = s.config.UsersURL
	case "things":
		baseURL = s.config.ThingsURL
	case "bootstrap":
		baseURL = s.config.BootstrapURL
	case "certs":
		baseURL = s.config.CertsURL
	case "reader":
		baseURL = s.config.ReaderURL
	case "http-adapter":
		baseURL = s.config.HTTPAdapterURL
	case "journal":
		baseURL = s.config.JournalURL
	default:
		return Health{}, fmt.Errorf("unknown service %q", service)
	}

	reqURL := fmt.Sprintf("%s/%s", baseURL, healthEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, "", nil, http.StatusOK)
	if err != nil {
		return Health{}, err
	}

	var health Health
	if err := json.Unmarshal(body, &health); err != nil {
		return Health{}, fmt.Errorf("failed to decode health: %w", err)
	}
	return health, nil
}
