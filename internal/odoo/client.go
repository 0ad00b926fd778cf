package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Caller is the minimal surface handlers and aggregators depend on.
// Tests swap in a fake; production uses *Client.
type Caller interface {
	Call(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error)
}

// Client talks to Odoo's /web/dataset/call_kw JSON-RPC endpoint.
// One instance is shared by all handlers; it holds no per-request state.
type Client struct {
	baseURL    string
	database   string
	apiKey     string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient builds a client for the given Odoo instance.
func NewClient(baseURL, database, apiKey string, log *logrus.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		database: database,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.WithField("component", "odoo"),
	}
}

// BaseURL exposes the instance URL for building image/content links.
func (c *Client) BaseURL() string { return c.baseURL }

type rpcParams struct {
	Model  string         `json:"model"`
	Method string         `json:"method"`
	Args   []any          `json:"args"`
	Kwargs map[string]any `json:"kwargs"`
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Message string `json:"message"`
	} `json:"data"`
}

func (e *rpcError) Error() string {
	if e.Data.Message != "" {
		return e.Data.Message
	}
	return e.Message
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// Call executes model.method(args, kwargs) remotely and returns the raw
// result. A remote error envelope becomes a local error carrying the
// remote message; transport failures are wrapped. No retries, callers
// convert any failure to an HTTP 500.
func (c *Client) Call(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}

	body := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params: rpcParams{
			Model:  model,
			Method: method,
			Args:   args,
			Kwargs: kwargs,
		},
		ID: time.Now().UnixMilli(),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("odoo: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/web/dataset/call_kw/%s/%s", c.baseURL, model, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("odoo: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("model", model).Error("odoo call failed")
		return nil, fmt.Errorf("odoo: %s.%s: %w", model, method, err)
	}
	defer resp.Body.Close()

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("odoo: decode response: %w", err)
	}
	if envelope.Error != nil {
		c.log.WithField("model", model).WithField("method", method).
			Errorf("odoo error: %s", envelope.Error.Error())
		return nil, fmt.Errorf("odoo: %s.%s: %s", model, method, envelope.Error.Error())
	}

	return envelope.Result, nil
}

// SearchRead fetches records matching domain and decodes them into T.
func SearchRead[T any](ctx context.Context, c Caller, model string, domain []any, kwargs map[string]any) ([]T, error) {
	raw, err := c.Call(ctx, model, "search_read", []any{domain}, kwargs)
	if err != nil {
		return nil, err
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("odoo: decode %s records: %w", model, err)
	}
	return records, nil
}

// SearchCount returns the number of records matching domain.
func SearchCount(ctx context.Context, c Caller, model string, domain []any) (int, error) {
	raw, err := c.Call(ctx, model, "search_count", []any{domain}, nil)
	if err != nil {
		return 0, err
	}
	var count int
	if err := json.Unmarshal(raw, &count); err != nil {
		return 0, fmt.Errorf("odoo: decode %s count: %w", model, err)
	}
	return count, nil
}

// ReadRecords reads the given ids and decodes them into T.
func ReadRecords[T any](ctx context.Context, c Caller, model string, ids []int64, fields []string) ([]T, error) {
	raw, err := c.Call(ctx, model, "read", []any{ids}, map[string]any{"fields": fields})
	if err != nil {
		return nil, err
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("odoo: decode %s records: %w", model, err)
	}
	return records, nil
}

// CreateRecord creates a record and returns the new id.
func CreateRecord(ctx context.Context, c Caller, model string, values map[string]any) (int64, error) {
	raw, err := c.Call(ctx, model, "create", []any{values}, nil)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("odoo: decode %s create result: %w", model, err)
	}
	return id, nil
}

// WriteRecord updates the given ids with values.
func WriteRecord(ctx context.Context, c Caller, model string, ids []int64, values map[string]any) error {
	_, err := c.Call(ctx, model, "write", []any{ids, values}, nil)
	return err
}
