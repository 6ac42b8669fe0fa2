package oauthflow_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-sheets-sdk/oauthflow"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "test-client-1"
	testClientSecret = "test-secret-1"
	testRedirectURL  = "https://app.example.com/oauth/callback"
	testAuthURL      = "https://provider.example.com/b/authorize"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// transportFunc adapts a function to oauthflow.Transport.
type transportFunc func(*http.Request) (*http.Response, error)

func (f transportFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// noNetworkTransport fails the test if the flow reaches the network.
func noNetworkTransport(t *testing.T, calls *atomic.Int32) oauthflow.Transport {
	t.Helper()
	return transportFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		t.Errorf("unexpected network call")
		return nil, http.ErrHandlerTimeout
	})
}

func testConfig() oauthflow.Config {
	return oauthflow.Config{
		ClientID:         testClientID,
		ClientSecret:     testClientSecret,
		RedirectURL:      testRedirectURL,
		AuthorizationURL: testAuthURL,
	}
}

// providerFixture is a token endpoint backed by an httptest TLS server.
type providerFixture struct {
	server   *httptest.Server
	flow     *oauthflow.Flow
	requests chan *http.Request
	forms    chan map[string][]string
}

func setupProvider(t *testing.T, handler http.HandlerFunc, opts ...oauthflow.Option) *providerFixture {
	t.Helper()

	f := &providerFixture{
		requests: make(chan *http.Request, 100),
		forms:    make(chan map[string][]string, 100),
	}
	f.server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		f.requests <- r
		f.forms <- r.PostForm
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)

	cfg := testConfig()
	cfg.TokenURL = f.server.URL + "/token"

	allOpts := append([]oauthflow.Option{
		oauthflow.WithTransport(f.server.Client()),
		oauthflow.WithClock(func() time.Time { return testNow }),
	}, opts...)

	flow, err := oauthflow.New(cfg, allOpts...)
	require.NoError(t, err)
	f.flow = flow
	return f
}

func jsonResponse(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
