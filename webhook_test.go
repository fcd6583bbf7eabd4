package vnfolio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Push(t *testing.T) {
	var gotBody []byte
	var gotMethod, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	st := NewStore(srv.URL)
	err := st.Push(context.Background(), map[string]any{"holdings": []string{}})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "text/plain;charset=utf-8", gotContentType)
	assert.JSONEq(t, `{"holdings": []}`, string(gotBody))
}

func TestStore_PushIgnoresNon2xx(t *testing.T) {
	// sheet webhooks answer opaque errors on writes that actually landed
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewStore(srv.URL).Push(context.Background(), "doc")
	assert.NoError(t, err)
}

func TestStore_PushUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // now unreachable

	err := NewStore(srv.URL).Push(context.Background(), "doc")
	assert.Error(t, err)
}

func TestStore_PullCacheBuster(t *testing.T) {
	var gotT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotT = r.URL.Query().Get("t")
		json.NewEncoder(w).Encode(map[string]any{"cashBalances": map[string]float64{"SSI": 1000}})
	}))
	defer srv.Close()

	st := NewStore(srv.URL)
	st.now = func() time.Time { return time.UnixMilli(1700000000000) }

	var out State
	require.NoError(t, st.Pull(context.Background(), &out))

	assert.Equal(t, "1700000000000", gotT)
	assert.True(t, out.Cash("SSI").Equal(M(1000)))
}

func TestStore_PullErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	var out State
	err := NewStore(srv.URL).Pull(context.Background(), &out)
	assert.Error(t, err)
}

func TestStore_PushAndReconcile(t *testing.T) {
	// the pull must observe the pushed document, the remote wins
	var slot stateHolder
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			slot.set(body)
		case http.MethodGet:
			w.Write(slot.get())
		}
	}))
	defer srv.Close()

	st := NewStore(srv.URL)
	local := mustDeposit(t, NewState(), "SSI", "1.000.000")

	var remote State
	require.NoError(t, st.PushAndReconcile(context.Background(), local, &remote, time.Millisecond))

	assert.True(t, remote.Cash("SSI").Equal(local.Cash("SSI")))
}

func TestStore_NoURL(t *testing.T) {
	st := &Store{}
	assert.Error(t, st.Push(context.Background(), "doc"))
	var out State
	assert.Error(t, st.Pull(context.Background(), &out))
}

// stateHolder is a tiny concurrency-safe byte slot for the test server.
type stateHolder struct {
	mu   sync.Mutex
	data []byte
}

func (h *stateHolder) set(b []byte) { h.mu.Lock(); h.data = b; h.mu.Unlock() }
func (h *stateHolder) get() []byte  { h.mu.Lock(); defer h.mu.Unlock(); return h.data }
