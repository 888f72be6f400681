package fakeboard

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, srv *Server, method, path, key, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, key)
	req.Header.Set(HeaderAPISecret, "s")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServer_RejectsWrongKey(t *testing.T) {
	srv := New("k", "s", WithSubscriptions("sub"))
	defer srv.Close()
	resp := do(t, srv, http.MethodGet, "/subscriptions", "nope", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Len(t, srv.Requests(), 1)
}

func TestServer_AcceptsExactlyOneVariant(t *testing.T) {
	srv := New("k", "s", WithSubscriptions("sub"))
	defer srv.Close()

	resp := do(t, srv, http.MethodPost, "/subscriptions/sub/message", "k", `{"text":"hi"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, srv, http.MethodPost, "/subscriptions/sub/message", "k", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, srv, http.MethodPost, "/subscriptions/sub/message", "k", `{"text":"a","characters":[[1]]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, srv, http.MethodPost, "/subscriptions/other/message", "k", `{"text":"hi"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	_, err := uuid.Parse(msgs[0].ID)
	assert.NoError(t, err)
	require.NotNil(t, msgs[0].Text)
	assert.Equal(t, "hi", *msgs[0].Text)
	assert.Equal(t, []byte(`{"text":"hi"}`), srv.Requests()[0].Body)
}

func TestServer_Failures(t *testing.T) {
	srv := New("k", "s", WithSubscriptions("sub"),
		WithListFailure(http.StatusServiceUnavailable, "down"),
		WithSendFailure(http.StatusTooManyRequests, "slow"))
	defer srv.Close()
	assert.Equal(t, http.StatusServiceUnavailable, do(t, srv, http.MethodGet, "/subscriptions", "k", "").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, do(t, srv, http.MethodPost, "/subscriptions/sub/message", "k", `{"text":"x"}`).StatusCode)
	assert.Empty(t, srv.Messages())
}
