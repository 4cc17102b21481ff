package alchemy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pbrose82/google-calendar-middleware/internal/platform/httpclient"
	"github.com/pbrose82/google-calendar-middleware/internal/ports/credentials"
)

// Identificadores de los campos del registro de reserva en Alchemy.
const (
	FieldStartUse = "StartUse"
	FieldEndUse   = "EndUse"
)

type fieldValue struct {
	Value any `json:"value"`
}

type fieldRow struct {
	Row    int          `json:"row"`
	Values []fieldValue `json:"values"`
}

type fieldUpdate struct {
	Identifier string     `json:"identifier"`
	Rows       []fieldRow `json:"rows"`
}

type updateRecordRequest struct {
	RecordID int64         `json:"recordId"`
	Fields   []fieldUpdate `json:"fields"`
}

// Client escribe registros de Alchemy direccionando campos por identifier
// con estructura fila/valor. Igual que el cliente de calendar: un 401 con
// token cacheado invalida el caché y reintenta exactamente una vez.
type Client struct {
	http   *httpclient.Client
	tokens credentials.TokenProvider
}

func NewClient(cfg Config, tokens credentials.TokenProvider) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("alchemy: %w", err)
	}
	return &Client{http: hc, tokens: tokens}, nil
}

// UpdateUsePeriod escribe exactamente los dos campos de período de uso del
// registro, cada uno como valor escalar de una única fila.
func (c *Client) UpdateUsePeriod(ctx context.Context, recordID int64, startUse, endUse string) (json.RawMessage, error) {
	body := updateRecordRequest{
		RecordID: recordID,
		Fields: []fieldUpdate{
			scalarField(FieldStartUse, startUse),
			scalarField(FieldEndUse, endUse),
		},
	}

	raw, err := c.update(ctx, body)
	if err != nil && httpclient.IsStatus(err, http.StatusUnauthorized) {
		c.tokens.Invalidate()
		raw, err = c.update(ctx, body)
	}
	return raw, err
}

func (c *Client) update(ctx context.Context, body updateRecordRequest) (json.RawMessage, error) {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.http.DoJSON(ctx, http.MethodPut, updateRecordPath, httpclient.Bearer(tok), body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func scalarField(identifier, value string) fieldUpdate {
	return fieldUpdate{
		Identifier: identifier,
		Rows: []fieldRow{
			{Row: 0, Values: []fieldValue{{Value: value}}},
		},
	}
}
