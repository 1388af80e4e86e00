package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PostsPayload(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got.Store(body)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, srv.Client(), 2)
	d.TriggerCompanyEnrichment(context.Background(), "c-1", "acme.com")
	d.Wait()

	body := got.Load().(map[string]string)
	assert.Equal(t, "c-1", body["company_id"])
	assert.Equal(t, "acme.com", body["domain"])
}

func TestDispatcher_NoopWithoutURL(t *testing.T) {
	d := NewDispatcher("", nil, 2)
	d.TriggerCompanyEnrichment(context.Background(), "c-1", "acme.com")
	d.Wait() // returns immediately, nothing launched
}

func TestDispatcher_FailureDoesNotPropagate(t *testing.T) {
	d := NewDispatcher("http://127.0.0.1:1/unreachable", nil, 2)
	// Must not panic or block the caller.
	d.TriggerCompanyEnrichment(context.Background(), "c-1", "acme.com")
	d.Wait()
}
