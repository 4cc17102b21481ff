package alchemy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pbrose82/google-calendar-middleware/internal/platform/httpclient"
	"github.com/pbrose82/google-calendar-middleware/internal/ports/credentials"
)

var (
	ErrNotConfigured  = errors.New("alchemy client not configured")
	ErrTenantNotFound = errors.New("alchemy tenant not found in refresh response")
)

const (
	refreshTokenPath = "/core/api/v2/refresh-token"
	updateRecordPath = "/core/api/v2/update-record"
)

// Config del dominio de identidad del registry. El refresh endpoint devuelve
// tokens para varios tenants; Tenant elige cuál de todos es el nuestro.
type Config struct {
	BaseURL      string
	RefreshToken string
	Tenant       string

	Timeout time.Duration
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	Tokens []tenantToken `json:"tokens"`
}

type tenantToken struct {
	AccessToken string `json:"accessToken"`
	Tenant      string `json:"tenant"`
}

// TokenManager refresca el bearer token de Alchemy vía PUT JSON y cachea el
// token del tenant configurado hasta que un caller lo invalide tras un 401.
type TokenManager struct {
	http         *httpclient.Client
	refreshToken string
	tenant       string

	mu     sync.Mutex
	cached string
}

func NewTokenManager(cfg Config) (*TokenManager, error) {
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("alchemy: %w", err)
	}
	return &TokenManager{
		http:         hc,
		refreshToken: strings.TrimSpace(cfg.RefreshToken),
		tenant:       strings.TrimSpace(cfg.Tenant),
	}, nil
}

func (m *TokenManager) IsConfigured() bool {
	return m != nil && m.http.BaseURL != "" && m.refreshToken != "" && m.tenant != ""
}

func (m *TokenManager) Token(ctx context.Context) (string, error) {
	if !m.IsConfigured() {
		return "", &credentials.Error{Domain: "alchemy", Err: ErrNotConfigured}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != "" {
		return m.cached, nil
	}

	var out refreshResponse
	err := m.http.DoJSON(ctx, http.MethodPut, refreshTokenPath, nil, refreshRequest{RefreshToken: m.refreshToken}, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			return "", &credentials.Error{Domain: "alchemy", Detail: he.Body, Err: err}
		}
		return "", &credentials.Error{Domain: "alchemy", Err: err}
	}

	for _, t := range out.Tokens {
		if strings.EqualFold(strings.TrimSpace(t.Tenant), m.tenant) {
			if strings.TrimSpace(t.AccessToken) == "" {
				break
			}
			m.cached = t.AccessToken
			return m.cached, nil
		}
	}

	// Falla distinta a propósito: el refresh anduvo pero nuestro tenant no vino.
	return "", &credentials.Error{
		Domain: "alchemy",
		Detail: fmt.Sprintf("tenant %q not present among %d token(s)", m.tenant, len(out.Tokens)),
		Err:    ErrTenantNotFound,
	}
}

func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.cached = ""
	m.mu.Unlock()
}
