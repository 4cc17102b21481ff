package google

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/pbrose82/google-calendar-middleware/internal/ports/credentials"
)

var ErrNotConfigured = errors.New("google client not configured")

// Config del dominio de identidad de Google. El refresh token es de larga
// vida; el access token que sale del exchange es corto y se cachea.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// CalendarID destino de los eventos. Default "primary".
	CalendarID string

	// TokenURL y Endpoint permiten apuntar a servidores fake en tests.
	// Vacíos => endpoints reales de Google.
	TokenURL string
	Endpoint string

	Timeout time.Duration
}

// TokenManager intercambia el refresh credential por bearer tokens cortos
// contra el token endpoint de Google (POST form-encoded, lo hace oauth2).
// Un token cacheado se reusa hasta que expire o hasta que un caller lo
// invalide después de un rechazo de autenticación.
type TokenManager struct {
	conf         *oauth2.Config
	refreshToken string
	httpClient   *http.Client

	mu     sync.Mutex
	cached *oauth2.Token
}

func NewTokenManager(cfg Config) *TokenManager {
	endpoint := googleoauth.Endpoint
	if strings.TrimSpace(cfg.TokenURL) != "" {
		endpoint = oauth2.Endpoint{TokenURL: strings.TrimSpace(cfg.TokenURL)}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &TokenManager{
		conf: &oauth2.Config{
			ClientID:     strings.TrimSpace(cfg.ClientID),
			ClientSecret: strings.TrimSpace(cfg.ClientSecret),
			Endpoint:     endpoint,
		},
		refreshToken: strings.TrimSpace(cfg.RefreshToken),
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (m *TokenManager) IsConfigured() bool {
	return m != nil && m.conf.ClientID != "" && m.conf.ClientSecret != "" && m.refreshToken != ""
}

func (m *TokenManager) Token(ctx context.Context) (string, error) {
	if !m.IsConfigured() {
		return "", &credentials.Error{Domain: "google", Err: ErrNotConfigured}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil && m.cached.Valid() {
		return m.cached.AccessToken, nil
	}

	// oauth2 toma el http.Client del contexto para hacer el exchange.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)

	tok, err := m.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: m.refreshToken}).Token()
	if err != nil {
		return "", &credentials.Error{Domain: "google", Detail: retrieveErrorDetail(err), Err: err}
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return "", &credentials.Error{Domain: "google", Err: errors.New("token response missing access_token")}
	}

	m.cached = tok
	return tok.AccessToken, nil
}

func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.cached = nil
	m.mu.Unlock()
}

// retrieveErrorDetail rescata el body crudo que devolvió el token endpoint.
func retrieveErrorDetail(err error) string {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return strings.TrimSpace(string(re.Body))
	}
	return ""
}
