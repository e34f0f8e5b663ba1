// Package demoserver is a local stand-in for the automation workflow that
// receives gate decisions. Its mode can be switched at runtime so every
// notification outcome can be demonstrated against a running gate service.
package demoserver

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/egisf/egisf/internal/logging"
)

// WebhookPath is where the gate service posts decisions.
const WebhookPath = "/webhook/egisf-gate-check"

// Mode selects how the sink answers webhook calls.
type Mode string

const (
	ModeOK    Mode = "ok"
	ModeError Mode = "error"
	ModeSlow  Mode = "slow"
)

func (m Mode) valid() bool {
	return m == ModeOK || m == ModeError || m == ModeSlow
}

// Received is one recorded webhook call.
type Received struct {
	At          time.Time       `json:"at"`
	ProjectName string          `json:"project_name"`
	Passed      bool            `json:"gate_2_passed"`
	Payload     json.RawMessage `json:"payload"`
}

// Ack is the body returned for an accepted webhook call.
type Ack struct {
	Received bool   `json:"received"`
	Workflow string `json:"workflow"`
	Decision string `json:"decision"`
}

// DemoServer is the webhook sink.
type DemoServer struct {
	cfg    Config
	logger logging.Logger

	mu       sync.RWMutex
	mode     Mode
	received []Received
}

// NewDemoServer creates a new demo server instance in ModeOK.
func NewDemoServer(cfg Config, logger logging.Logger) *DemoServer {
	if cfg.MaxRecorded <= 0 {
		cfg.MaxRecorded = DefaultConfig().MaxRecorded
	}
	if cfg.Workflow == "" {
		cfg.Workflow = DefaultConfig().Workflow
	}
	return &DemoServer{
		cfg:    cfg,
		logger: logger.With(logging.Field{Key: "component", Value: "demoserver"}),
		mode:   ModeOK,
	}
}

// Handler returns the sink's routes.
func (s *DemoServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(WebhookPath, s.webhookHandler)

	// Control panel for mode switching
	mux.HandleFunc("/demo/control", s.controlPanelHandler)
	mux.HandleFunc("/demo/mode", s.modeHandler)
	mux.HandleFunc("/demo/received", s.receivedHandler)
	mux.HandleFunc("/demo/reset", s.resetHandler)

	return mux
}

// Start listens on cfg.Port until the process exits.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("demo webhook sink starting",
		logging.Field{Key: "webhook", Value: "http://localhost" + addr + WebhookPath},
		logging.Field{Key: "control", Value: "http://localhost" + addr + "/demo/control"})
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	return srv.ListenAndServe()
}

// Mode returns the current answer mode.
func (s *DemoServer) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode switches the answer mode.
func (s *DemoServer) SetMode(m Mode) error {
	if !m.valid() {
		return fmt.Errorf("unknown mode %q", m)
	}
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	s.logger.Info("mode changed", logging.Field{Key: "mode", Value: string(m)})
	return nil
}

// Received returns a copy of the recorded calls, oldest first.
func (s *DemoServer) Received() []Received {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Received{}, s.received...)
}

func (s *DemoServer) record(body []byte) Received {
	rec := Received{
		At:          time.Now().UTC(),
		ProjectName: gjson.GetBytes(body, "project_name").String(),
		Passed:      gjson.GetBytes(body, "gate_2_passed").Bool(),
		Payload:     json.RawMessage(body),
	}
	s.mu.Lock()
	s.received = append(s.received, rec)
	if over := len(s.received) - s.cfg.MaxRecorded; over > 0 {
		s.received = append([]Received(nil), s.received[over:]...)
	}
	s.mu.Unlock()
	return rec
}

// webhookHandler records the decision and answers according to the mode.
func (s *DemoServer) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !gjson.ValidBytes(body) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "body must be JSON"})
		return
	}

	rec := s.record(body)
	mode := s.Mode()
	s.logger.Info("webhook received",
		logging.Field{Key: "project", Value: rec.ProjectName},
		logging.Field{Key: "passed", Value: rec.Passed},
		logging.Field{Key: "mode", Value: string(mode)})

	switch mode {
	case ModeError:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "simulated workflow failure"})
		return
	case ModeSlow:
		select {
		case <-time.After(s.cfg.SlowDelay):
		case <-r.Context().Done():
			return
		}
	}

	decision := "returned"
	if rec.Passed {
		decision = "approved"
	}
	writeJSON(w, http.StatusOK, Ack{Received: true, Workflow: s.cfg.Workflow, Decision: decision})
}

// modeHandler reports the mode on GET and switches it on POST.
func (s *DemoServer) modeHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := s.SetMode(Mode(r.FormValue("mode"))); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
			return
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "mode": s.Mode()})
}

func (s *DemoServer) receivedHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Received())
}

// resetHandler clears recorded calls and returns to ModeOK.
func (s *DemoServer) resetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	s.mode = ModeOK
	s.received = nil
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Mode reset to ok and history cleared",
	})
}

var controlPanel = template.Must(template.New("control").Parse(controlPanelHTML))

// controlPanelHandler serves the control panel for mode switching.
func (s *DemoServer) controlPanelHandler(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Mode     Mode
		Modes    []Mode
		Received []Received
		Webhook  string
	}{
		Mode:     s.Mode(),
		Modes:    []Mode{ModeOK, ModeError, ModeSlow},
		Received: s.Received(),
		Webhook:  WebhookPath,
	}
	w.Header().Set("Content-Type", "text/html")
	_ = controlPanel.Execute(w, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const controlPanelHTML = `<!DOCTYPE html>
<html>
<head>
    <title>EGISF Demo Webhook</title>
    <style>
        body { font-family: system-ui, -apple-system, sans-serif; max-width: 960px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .card { background: #fff; border-radius: 8px; padding: 16px; margin-bottom: 16px; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
        .active { font-weight: bold; color: #0a7; }
        table { width: 100%; border-collapse: collapse; }
        td, th { text-align: left; padding: 6px; border-bottom: 1px solid #eee; }
    </style>
</head>
<body>
    <h1>EGISF Demo Webhook</h1>
    <div class="card">
        <p>Webhook endpoint: <code>POST {{.Webhook}}</code></p>
        <p>Current mode: <span class="active">{{.Mode}}</span></p>
        {{range .Modes}}
        <form method="post" action="/demo/mode" style="display:inline">
            <input type="hidden" name="mode" value="{{.}}">
            <button type="submit">{{.}}</button>
        </form>
        {{end}}
        <form method="post" action="/demo/reset" style="display:inline">
            <button type="submit">reset</button>
        </form>
    </div>
    <div class="card">
        <h2>Received decisions</h2>
        <table>
            <tr><th>Time</th><th>Project</th><th>Gate passed</th></tr>
            {{range .Received}}
            <tr><td>{{.At.Format "2006-01-02 15:04:05"}}</td><td>{{.ProjectName}}</td><td>{{.Passed}}</td></tr>
            {{else}}
            <tr><td colspan="3">Nothing received yet.</td></tr>
            {{end}}
        </table>
    </div>
</body>
</html>
`
