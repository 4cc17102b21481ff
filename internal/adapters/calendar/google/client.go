package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/pbrose82/google-calendar-middleware/internal/platform/httpclient"
	"github.com/pbrose82/google-calendar-middleware/internal/ports/credentials"
)

// Client crea eventos en Google Calendar autenticando cada request con el
// token del TokenProvider. Si una llamada con token cacheado vuelve 401,
// invalida el caché y reintenta exactamente una vez con token fresco.
type Client struct {
	svc        *calendar.Service
	tokens     credentials.TokenProvider
	calendarID string
}

func NewClient(cfg Config, tokens credentials.TokenProvider) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc := &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: &providerSource{provider: tokens, timeout: timeout},
		},
	}

	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if strings.TrimSpace(cfg.Endpoint) != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimSpace(cfg.Endpoint)))
	}

	svc, err := calendar.NewService(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("google: create calendar service: %w", err)
	}

	calendarID := strings.TrimSpace(cfg.CalendarID)
	if calendarID == "" {
		calendarID = "primary"
	}

	return &Client{
		svc:        svc,
		tokens:     tokens,
		calendarID: calendarID,
	}, nil
}

func (c *Client) InsertEvent(ctx context.Context, event *calendar.Event) (*calendar.Event, error) {
	created, err := c.insert(ctx, event)
	if err != nil && isAuthRejection(err) {
		// Token cacheado rechazado: refresh incondicional y un único retry.
		c.tokens.Invalidate()
		created, err = c.insert(ctx, event)
	}
	if err != nil {
		return nil, normalizeError(err)
	}
	return created, nil
}

func (c *Client) insert(ctx context.Context, event *calendar.Event) (*calendar.Event, error) {
	return c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
}

func isAuthRejection(err error) bool {
	var ge *googleapi.Error
	return errors.As(err, &ge) && ge.Code == http.StatusUnauthorized
}

// normalizeError achata el error de googleapi al HTTPError de la plataforma
// para que el orquestador exponga status y body igual que con Alchemy.
// Errores de credenciales y de red pasan tal cual.
func normalizeError(err error) error {
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		return &httpclient.HTTPError{
			StatusCode: ge.Code,
			Body:       strings.TrimSpace(ge.Body),
		}
	}
	return err
}

// providerSource adapta el TokenProvider a oauth2.TokenSource para el
// Transport del http.Client que usa el servicio de calendar.
type providerSource struct {
	provider credentials.TokenProvider
	timeout  time.Duration
}

func (s *providerSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	tok, err := s.provider.Token(ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: tok}, nil
}
