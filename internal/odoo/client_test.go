package odoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestCallEnvelope(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"jsonrpc": "2.0", "result": [{"id": 1}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "testdb", "secret-key", testLogger())
	raw, err := client.Call(context.Background(), "product.template", "search_read",
		[]any{[]any{}}, map[string]any{"limit": 5})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 1}]`, string(raw))

	assert.Equal(t, "/web/dataset/call_kw/product.template/search_read", gotPath)
	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Equal(t, "2.0", gotBody["jsonrpc"])
	assert.Equal(t, "call", gotBody["method"])

	params, ok := gotBody["params"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "product.template", params["model"])
	assert.Equal(t, "search_read", params["method"])
}

func TestCallRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc": "2.0", "error": {"code": 200, "message": "Odoo Server Error", "data": {"message": "Invalid field on product.template"}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "testdb", "key", testLogger())
	_, err := client.Call(context.Background(), "product.template", "search_read", nil, nil)
	require.Error(t, err)
	// The specific remote message must survive, not just the generic one
	assert.Contains(t, err.Error(), "Invalid field on product.template")
}

func TestCallTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL, "testdb", "key", testLogger())
	_, err := client.Call(context.Background(), "res.partner", "read", nil, nil)
	assert.Error(t, err)
}

func TestSearchRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": [
			{"id": 1, "name": "Tub", "default_code": "TUB-1"},
			{"id": 2, "name": "Basin", "default_code": false}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "testdb", "key", testLogger())

	type row struct {
		ID          int64     `json:"id"`
		Name        string    `json:"name"`
		DefaultCode OptString `json:"default_code"`
	}
	rows, err := SearchRead[row](context.Background(), client, "product.template", []any{}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "TUB-1", rows[0].DefaultCode.String())
	assert.Empty(t, rows[1].DefaultCode.String())
}

func TestSearchCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": 17}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "testdb", "key", testLogger())
	count, err := SearchCount(context.Background(), client, "product.template", []any{})
	require.NoError(t, err)
	assert.Equal(t, 17, count)
}

func TestCreateRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": 99}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "testdb", "key", testLogger())
	id, err := CreateRecord(context.Background(), client, "res.partner", map[string]any{"name": "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
}
