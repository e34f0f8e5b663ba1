package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/egisf/egisf/internal/model"
	"github.com/egisf/egisf/internal/testutil"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := DefaultConfig()
	cfg.StorageRoot = t.TempDir()
	cfg.Server.Addr = "127.0.0.1:0"

	a, err := NewApplication(cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	return a
}

func TestNewApplication_WiresServices(t *testing.T) {
	a := newTestApplication(t)
	defer a.Shutdown(context.Background())

	if a.Orch == nil || a.Portfolio == nil {
		t.Fatal("expected orchestrator and portfolio")
	}
	if a.Orch.NotificationsEnabled() {
		t.Error("notifications should be disabled without a webhook url")
	}
	if len(a.Portfolio.List()) == 0 {
		t.Error("expected embedded portfolio projects")
	}

	ev, err := a.Orch.Evaluate(context.Background(), hospitalRequest(), nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if _, err := a.Orch.GetEvaluation(context.Background(), ev.ID); err != nil {
		t.Fatalf("evaluation not persisted: %v", err)
	}
}

func TestNewApplication_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageRoot = t.TempDir()
	cfg.Gate.Weights.Economic = 5

	if _, err := NewApplication(cfg, &testutil.DummyLogger{}); err == nil {
		t.Fatal("expected error for invalid weights")
	}
}

func TestApplication_StartAndShutdown(t *testing.T) {
	a := newTestApplication(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	done := make(chan error, 1)
	go func() { done <- a.Start(handler) }()

	deadline := time.Now().Add(2 * time.Second)
	for a.Addr() == "" {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := http.Get("http://" + a.Addr())
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("unexpected body %q", body)
	}

	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestApplication_NilReceiver(t *testing.T) {
	var a *Application
	if err := a.Start(nil); err == nil {
		t.Error("expected error from nil Start")
	}
	if err := a.Shutdown(context.Background()); err == nil {
		t.Error("expected error from nil Shutdown")
	}
}

func TestApplication_ShutdownBeforeStart(t *testing.T) {
	a := newTestApplication(t)

	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- a.Start(http.NotFoundHandler())
	}()

	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("Start after Shutdown returned %v, want http.ErrServerClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start kept serving after Shutdown")
	}
	if a.Addr() != "" {
		t.Errorf("listener should not be bound, got %s", a.Addr())
	}

	// A second Shutdown does not close the ledger twice.
	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}

func TestNewApplication_WebhookTimeoutGovernsDelivery(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(400 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"received":true}`)
	}))
	defer hook.Close()

	cfg := DefaultConfig()
	cfg.StorageRoot = t.TempDir()
	cfg.WebClient.Timeout = 100 * time.Millisecond
	cfg.Webhook.URL = hook.URL
	cfg.Webhook.Timeout = 3 * time.Second

	a, err := NewApplication(cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	defer a.Shutdown(context.Background())

	ev, err := a.Orch.Evaluate(context.Background(), hospitalRequest(), nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if ev.Notification.Kind != model.NotificationDelivered {
		t.Fatalf("notification = %s (%s), want delivered", ev.Notification.Kind, ev.Notification.Error)
	}
}

func TestWebClientConfig_RaisedToWebhookTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WebClient.Timeout = time.Second
	cfg.Webhook.Timeout = 30 * time.Second
	if got := webClientConfig(cfg).Timeout; got != 30*time.Second {
		t.Errorf("client timeout = %s, want 30s", got)
	}

	cfg.Webhook.Timeout = 500 * time.Millisecond
	if got := webClientConfig(cfg).Timeout; got != time.Second {
		t.Errorf("client timeout = %s, want the longer client value 1s", got)
	}
}
