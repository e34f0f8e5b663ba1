package webclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/egisf/egisf/internal/interfaces"
	"github.com/egisf/egisf/internal/webclient"
)

func newClient(t *testing.T, httpClient *http.Client) *webclient.NetHTTPClient {
	t.Helper()
	client, err := webclient.NewNetHTTPClient(webclient.Config{UserAgent: "egisf-test"}, interfaces.NewTestLogger(t, false), httpClient)
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// ─── Construction ──────────────────────────────────────────────────────

func TestNewNetHTTPClient_DefaultTimeout(t *testing.T) {
	t.Parallel()
	client := newClient(t, nil)

	if got := client.HTTPClient().Timeout; got != webclient.DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", webclient.DefaultTimeout, got)
	}
}

func TestNewNetHTTPClient_ConfigTimeout(t *testing.T) {
	t.Parallel()
	client, err := webclient.NewNetHTTPClient(webclient.Config{Timeout: 3 * time.Second}, interfaces.NewTestLogger(t, false), nil)
	if err != nil {
		t.Fatalf("NewNetHTTPClient: %v", err)
	}
	defer client.Close()

	if got := client.HTTPClient().Timeout; got != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", got)
	}
}

func TestNewNetHTTPClient_WithCustomClient(t *testing.T) {
	t.Parallel()
	custom := &http.Client{Timeout: time.Minute}
	client := newClient(t, custom)

	if client.HTTPClient() != custom {
		t.Error("expected injected *http.Client to be used")
	}
}

// ─── Do / Post ─────────────────────────────────────────────────────────

func TestNetHTTPClient_Post_SendsJSON(t *testing.T) {
	t.Parallel()
	var gotBody, gotType, gotMethod, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("X-Custom", "hello")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer ts.Close()

	client := newClient(t, ts.Client())

	resp, err := client.Post(context.Background(), ts.URL+"/hook", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotType != "application/json" {
		t.Errorf("expected application/json, got %q", gotType)
	}
	if gotUA != "egisf-test" {
		t.Errorf("expected user agent egisf-test, got %q", gotUA)
	}
	if gotBody != `{"a":1}` {
		t.Errorf("unexpected body %q", gotBody)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("unexpected response body %q", resp.Body)
	}
	if resp.Headers.Get("X-Custom") != "hello" {
		t.Errorf("expected X-Custom header, got %q", resp.Headers.Get("X-Custom"))
	}
}

func TestNetHTTPClient_Do_PropagatesStatusCode(t *testing.T) {
	t.Parallel()
	for _, code := range []int{200, 404, 500, 503} {
		code := code
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
			}))
			defer ts.Close()

			client := newClient(t, ts.Client())
			resp, err := client.Do(context.Background(), &webclient.Request{Method: "GET", URL: ts.URL})
			if err != nil {
				t.Fatalf("Do: %v", err)
			}
			if resp.StatusCode != code {
				t.Errorf("expected %d, got %d", code, resp.StatusCode)
			}
		})
	}
}

func TestNetHTTPClient_Do_NilRequest_ReturnsError(t *testing.T) {
	t.Parallel()
	client := newClient(t, nil)

	_, err := client.Do(context.Background(), nil)
	if !errors.Is(err, webclient.ErrNilRequest) {
		t.Fatalf("expected ErrNilRequest, got %v", err)
	}
}

func TestNetHTTPClient_Do_ConnectionRefused_ReturnsError(t *testing.T) {
	t.Parallel()
	client := newClient(t, &http.Client{Timeout: time.Second})

	_, err := client.Do(context.Background(), &webclient.Request{
		Method: "GET",
		URL:    "http://127.0.0.1:1", // port 1 is unlikely to be open
	})
	if err == nil {
		t.Fatal("expected error for connection refused")
	}
}

func TestNetHTTPClient_Do_ContextCanceled_ReturnsError(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := newClient(t, ts.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Do(ctx, &webclient.Request{Method: "GET", URL: ts.URL})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// ─── Factory ───────────────────────────────────────────────────────────

func TestNewWebClient_DefaultBackend(t *testing.T) {
	t.Parallel()
	client, err := webclient.NewWebClient(webclient.Config{}, interfaces.NewTestLogger(t, false))
	if err != nil {
		t.Fatalf("NewWebClient: %v", err)
	}
	defer client.Close()

	if _, ok := client.(*webclient.NetHTTPClient); !ok {
		t.Errorf("expected *NetHTTPClient, got %T", client)
	}
}

func TestNewWebClient_UnknownBackend(t *testing.T) {
	t.Parallel()
	_, err := webclient.NewWebClient(webclient.Config{Client: "carrier-pigeon"}, interfaces.NewTestLogger(t, false))
	if err == nil {
		t.Fatal("expected error for unregistered backend")
	}
}

func TestListBackends_IncludesNetHTTP(t *testing.T) {
	t.Parallel()
	found := false
	for _, b := range webclient.ListBackends() {
		if b == "nethttp" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected nethttp in %v", webclient.ListBackends())
	}
}
