package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Cert mirrors the certs service's certificate schema. ClientCert and
// ClientKey are only populated on issuance; later views return the serial
// and expiry only.
type Cert struct {
	SerialNumber string    `json:"serial_number,omitempty"`
	ThingID      string    `json:"thing_id,omitempty"`
	ClientCert   string    `json:"client_cert,omitempty"`
	ClientKey    string    `json:"client_key,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	Revoked      bool      `json:"revoked,omitempty"`
}

// CertsPage is one page of certificate serials.
type CertsPage struct {
	PageMetadata
	Certs []Cert `json:"certs"`
}

// IssueCert requests a client certificate for a thing. TTL uses the
// service's duration syntax, e.g. "8760h".
func (s *SDK) IssueCert(ctx context.Context, thingID, ttl, token string) (Cert, error) {
	payload := map[string]string{
		"thing_id": thingID,
		"ttl":      ttl,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Cert{}, fmt.Errorf("failed to marshal cert request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s", s.config.CertsURL, certsEndpoint)

	_, body, err := s.processRequest(ctx, http.MethodPost, reqURL, token, data, http.StatusCreated)
	if err != nil {
		return Cert{}, err
	}

	var cert Cert
	if err := json.Unmarshal(body, &cert); err != nil {
		return Cert{}, fmt.Errorf("failed to decode cert: %w", err)
	}
	return cert, nil
}

// ViewCert retrieves a certificate by serial number.
func (s *SDK) ViewCert(ctx context.Context, serial, token string) (Cert, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.CertsURL, certsEndpoint, url.PathEscape(serial))

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return Cert{}, err
	}

	var cert Cert
	if err := json.Unmarshal(body, &cert); err != nil {
		return Cert{}, fmt.Errorf("failed to decode cert: %w", err)
	}
	return cert, nil
}

// CertsByThing lists the certificate serials issued for a thing.
func (s *SDK) CertsByThing(ctx context.Context, thingID string, pm PageMetadata, token string) (CertsPage, error) {
	endpoint := fmt.Sprintf("serials/%s", url.PathEscape(thingID))
	reqURL := s.withQueryParams(s.config.CertsURL, endpoint, pm)

	_, body, err := s.processRequest(ctx, http.MethodGet, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return CertsPage{}, err
	}

	var res certsPageRes
	if err := json.Unmarshal(body, &res); err != nil {
		return CertsPage{}, fmt.Errorf("failed to decode certs page: %w", err)
	}
	return CertsPage{
		PageMetadata: PageMetadata{Total: res.Total, Offset: res.Offset, Limit: res.Limit},
		Certs:        res.Certs,
	}, nil
}

// RevokeCert revokes every certificate issued for the given thing and
// returns the revocation time reported by the service.
func (s *SDK) RevokeCert(ctx context.Context, thingID, token string) (time.Time, error) {
	reqURL := fmt.Sprintf("%s/%s/%s", s.config.CertsURL, certsEndpoint, url.PathEscape(thingID))

	_, body, err := s.processRequest(ctx, http.MethodDelete, reqURL, token, nil, http.StatusOK)
	if err != nil {
		return time.Time{}, err
	}

	var res struct {
		RevocationTime time.Time `json:"revocation_time"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode revocation: %w", err)
	}
	return res.RevocationTime, nil
}
