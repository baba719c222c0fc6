package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gruppopolinex/polinex-backend/internal/cart"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
	"github.com/gruppopolinex/polinex-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type memorySnapshots struct {
	byToken map[string][]cart.Item
}

func (m *memorySnapshots) Load(ctx context.Context, token string) ([]cart.Item, error) {
	items := m.byToken[token]
	out := make([]cart.Item, len(items))
	copy(out, items)
	return out, nil
}

func (m *memorySnapshots) Save(ctx context.Context, token string, items []cart.Item) error {
	stored := make([]cart.Item, len(items))
	copy(stored, items)
	m.byToken[token] = stored
	return nil
}

type noopNotifier struct{ notified int }

func (n *noopNotifier) Notify(ctx context.Context, token string) { n.notified++ }

func newTestCartStore(t *testing.T) (*cart.Store, *noopNotifier) {
	t.Helper()
	notifier := &noopNotifier{}
	store, err := cart.NewStore(&memorySnapshots{byToken: map[string][]cart.Item{}}, notifier)
	require.NoError(t, err)
	return store, notifier
}

func doJSON(t *testing.T, handler http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(cartTokenHeader, token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	raw, err := json.Marshal(decodeEnvelope(t, rec).Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) types.SuccessEnvelope {
	t.Helper()
	var env types.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var env types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}
