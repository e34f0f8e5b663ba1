package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/egisf/egisf/docs/swagger" // registers the OpenAPI document
	"github.com/egisf/egisf/internal/app"
	"github.com/egisf/egisf/internal/gate"
	"github.com/egisf/egisf/internal/ledger"
	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/model"
	"github.com/egisf/egisf/internal/portfolio"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

const wsWriteTimeout = 10 * time.Second

// Server is the HTTP + WebSocket API surface for the feasibility gate.
type Server struct {
	cfg          Config
	app          *app.Application
	orchestrator *app.Orchestrator
	decisions    *app.DecisionDesk
	portfolio    *portfolio.Portfolio
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
}

// NewServer creates a Server on top of an already-built Application.
func NewServer(cfg Config) (*Server, error) {
	if cfg.App == nil || cfg.App.Orch == nil {
		return nil, errors.New("server requires an application with an orchestrator")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}

	s := &Server{
		cfg:          cfg,
		app:          cfg.App,
		orchestrator: cfg.App.Orch,
		decisions:    cfg.App.Decisions,
		portfolio:    cfg.App.Portfolio,
		router:       chi.NewRouter(),
		logger:       logger,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/config", s.optionsHandler("GET"))
	r.Options("/scores/composite", s.optionsHandler("POST"))
	r.Options("/gates/sfm/evaluate", s.optionsHandler("POST"))
	r.Options("/evaluations", s.optionsHandler("GET"))
	r.Options("/evaluations/{id}", s.optionsHandler("GET"))
	r.Options("/reports/summary", s.optionsHandler("GET"))
	r.Options("/portfolio", s.optionsHandler("GET"))
	r.Options("/portfolio/{id}", s.optionsHandler("GET"))
	r.Options("/portfolio/{id}/decision", s.optionsHandler("POST"))
	r.Options("/decisions", s.optionsHandler("GET"))
	r.Options("/decisions/quick", s.optionsHandler("POST"))
	r.Options("/ws/evaluate", s.optionsHandler("GET"))

	r.Get("/healthz", s.handleHealth)
	r.Get("/config", s.handleConfig)

	// Scoring and the gate
	r.Post("/scores/composite", s.handleComposite)
	r.Post("/gates/sfm/evaluate", s.handleEvaluate)

	// Ledger and reports
	r.Get("/evaluations", s.handleListEvaluations)
	r.Get("/evaluations/{id}", s.handleGetEvaluation)
	r.Get("/reports/summary", s.handleSummary)

	// Portfolio
	r.Get("/portfolio", s.handleListPortfolio)
	r.Get("/portfolio/{id}", s.handleGetPortfolioProject)

	// Decisions
	r.Post("/portfolio/{id}/decision", s.handleDecideProject)
	r.Post("/decisions/quick", s.handleQuickDecision)
	r.Get("/decisions", s.handleListDecisions)

	// WebSocket evaluation with stage progress
	r.Get("/ws/evaluate", s.handleEvaluateWS)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(s.cfg.AllowedOrigins, r.Header.Get("Origin"))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		} else {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeRequestError maps validation failures to 400 with the field list and
// anything else to 500.
func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	var ve *gate.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Error: ve.Error(), Problems: ve.Problems})
		return
	}
	s.logger.Error("handling request", logging.Field{Key: "error", Value: err.Error()})
	writeError(w, http.StatusInternalServerError, err.Error())
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// --- HTTP handlers ---

// handleHealth godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleConfig godoc
// @Summary Effective gate configuration
// @Tags system
// @Produce json
// @Success 200 {object} ConfigResponse
// @Router /config [get]
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	gc := s.orchestrator.Evaluator().Config()
	writeJSON(w, http.StatusOK, ConfigResponse{
		Weights:    gc.Weights,
		Thresholds: gc.Thresholds,
		Webhook: WebhookStatus{
			Enabled: s.orchestrator.NotificationsEnabled(),
			Timeout: s.app.Config.Webhook.Timeout.String(),
		},
	})
}

// Scoring

// handleComposite godoc
// @Summary Compute the SFM composite score
// @Tags gate
// @Accept json
// @Produce json
// @Param request body CompositeRequest true "Sub-scores"
// @Success 200 {object} CompositeResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /scores/composite [post]
func (s *Server) handleComposite(w http.ResponseWriter, r *http.Request) {
	var body CompositeRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		s.logger.Warn("decoding composite body", logging.Field{Key: "error", Value: err.Error()})
		return
	}

	in := gate.ScoreInputs{Economic: body.Economic, Social: body.Social, Environmental: body.Environmental}
	if err := in.Validate(); err != nil {
		s.writeRequestError(w, err)
		return
	}

	ev := s.orchestrator.Evaluator()
	score := ev.Composite(body.Economic, body.Social, body.Environmental)
	writeJSON(w, http.StatusOK, CompositeResponse{
		CompositeScore: score,
		Band:           gate.SFMBand(score),
		Breakdown:      gate.Breakdown(body.Economic, body.Social, body.Environmental, ev.Config().Weights),
		Weights:        ev.Config().Weights,
	})
}

// handleEvaluate godoc
// @Summary Evaluate a project against the feasibility gate
// @Description Computes the SFM score, runs every gate check, notifies the webhook and records the result. A failed gate is still a 201.
// @Tags gate
// @Accept json
// @Produce json
// @Param request body app.EvaluationRequest true "Project and scores"
// @Success 201 {object} model.Evaluation
// @Failure 400 {object} ValidationErrorResponse
// @Router /gates/sfm/evaluate [post]
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		s.logger.Warn("decoding evaluate body", logging.Field{Key: "error", Value: err.Error()})
		return
	}

	ev, err := s.orchestrator.Evaluate(r.Context(), body, nil)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	s.logger.Info("evaluated project",
		logging.Field{Key: "evaluation_id", Value: ev.ID},
		logging.Field{Key: "passed", Value: ev.Decision.Passed})
	writeJSON(w, http.StatusCreated, ev)
}

// Ledger

// handleListEvaluations godoc
// @Summary List recorded evaluations, newest first
// @Tags evaluations
// @Produce json
// @Param passed query bool false "Only passed (true) or failed (false)"
// @Param sector query string false "Sector filter"
// @Param limit query int false "Maximum results (default 100)"
// @Success 200 {array} model.Evaluation
// @Failure 400 {object} ErrorResponse
// @Router /evaluations [get]
func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := ledger.Filter{Sector: q.Get("sector")}

	if ps := q.Get("passed"); ps != "" {
		v, err := strconv.ParseBool(ps)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid passed value %q", ps))
			return
		}
		f.Passed = &v
	}
	if ls := q.Get("limit"); ls != "" {
		v, err := strconv.Atoi(ls)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", ls))
			return
		}
		f.Limit = v
	}

	evs, err := s.orchestrator.ListEvaluations(r.Context(), f)
	if err != nil {
		s.logger.Warn("listing evaluations", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, evs)
}

// handleGetEvaluation godoc
// @Summary Get one recorded evaluation
// @Tags evaluations
// @Produce json
// @Param id path string true "Evaluation ID"
// @Success 200 {object} model.Evaluation
// @Failure 404 {object} ErrorResponse
// @Router /evaluations/{id} [get]
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ev, err := s.orchestrator.GetEvaluation(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrEvaluationNotFound) {
			writeError(w, http.StatusNotFound, "evaluation not found")
			return
		}
		s.logger.Warn("getting evaluation", logging.Field{Key: "id", Value: id}, logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// handleSummary godoc
// @Summary Live report: evaluations, decisions and portfolio performance
// @Tags evaluations
// @Produce json
// @Success 200 {object} ReportResponse
// @Router /reports/summary [get]
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.orchestrator.Summary(r.Context())
	if err != nil {
		s.logger.Warn("summarising ledger", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := ReportResponse{Ledger: sum}
	if s.decisions != nil {
		ds, err := s.decisions.Summary(r.Context())
		if err != nil {
			s.logger.Warn("summarising decisions", logging.Field{Key: "error", Value: err.Error()})
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Decisions = ds
	}
	if s.portfolio != nil {
		resp.Portfolio = s.portfolio.Overview()
		resp.Live = s.portfolio.LiveReport()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Portfolio

// handleListPortfolio godoc
// @Summary Projects awaiting a decision
// @Tags portfolio
// @Produce json
// @Success 200 {array} portfolio.PendingProject
// @Router /portfolio [get]
func (s *Server) handleListPortfolio(w http.ResponseWriter, r *http.Request) {
	if s.portfolio == nil {
		writeJSON(w, http.StatusOK, []portfolio.PendingProject{})
		return
	}
	writeJSON(w, http.StatusOK, s.portfolio.List())
}

// handleGetPortfolioProject godoc
// @Summary One project awaiting a decision
// @Tags portfolio
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} portfolio.PendingProject
// @Failure 404 {object} ErrorResponse
// @Router /portfolio/{id} [get]
func (s *Server) handleGetPortfolioProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.portfolio == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	p, err := s.portfolio.Get(id)
	if err != nil {
		if errors.Is(err, portfolio.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Decisions

// handleDecideProject godoc
// @Summary Approve, hold or reject a pending project
// @Description Records the decision in the ledger. Urgency 8 or above escalates to daily follow-up.
// @Tags decisions
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body app.ProjectDecisionRequest true "Decision"
// @Success 201 {object} model.DecisionRecord
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /portfolio/{id}/decision [post]
func (s *Server) handleDecideProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body ProjectDecisionRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		s.logger.Warn("decoding decision body", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	if s.decisions == nil {
		writeError(w, http.StatusInternalServerError, app.ErrNoLedger.Error())
		return
	}

	rec, err := s.decisions.DecideProject(r.Context(), id, body)
	if err != nil {
		if errors.Is(err, portfolio.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		s.writeRequestError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleQuickDecision godoc
// @Summary Record a quick decision on a scenario
// @Tags decisions
// @Accept json
// @Produce json
// @Param request body app.QuickDecisionRequest true "Scenario decision"
// @Success 201 {object} model.DecisionRecord
// @Failure 400 {object} ValidationErrorResponse
// @Router /decisions/quick [post]
func (s *Server) handleQuickDecision(w http.ResponseWriter, r *http.Request) {
	var body QuickDecisionRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		s.logger.Warn("decoding quick decision body", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	if s.decisions == nil {
		writeError(w, http.StatusInternalServerError, app.ErrNoLedger.Error())
		return
	}

	rec, err := s.decisions.RecordQuick(r.Context(), body)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleListDecisions godoc
// @Summary List recorded decisions, newest first
// @Tags decisions
// @Produce json
// @Param project query string false "Project ID filter"
// @Param action query string false "approve, hold or reject"
// @Param escalated query bool false "Only escalated decisions"
// @Param limit query int false "Maximum results (default 100)"
// @Success 200 {array} model.DecisionRecord
// @Failure 400 {object} ErrorResponse
// @Router /decisions [get]
func (s *Server) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := ledger.DecisionFilter{ProjectID: q.Get("project")}

	if as := q.Get("action"); as != "" {
		a := model.DecisionAction(as)
		if !a.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid action %q", as))
			return
		}
		f.Action = a
	}
	if es := q.Get("escalated"); es != "" {
		v, err := strconv.ParseBool(es)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid escalated value %q", es))
			return
		}
		f.Escalated = v
	}
	if ls := q.Get("limit"); ls != "" {
		v, err := strconv.Atoi(ls)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", ls))
			return
		}
		f.Limit = v
	}
	if s.decisions == nil {
		writeError(w, http.StatusInternalServerError, app.ErrNoLedger.Error())
		return
	}

	ds, err := s.decisions.List(r.Context(), f)
	if err != nil {
		s.logger.Warn("listing decisions", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// WebSockets

// handleEvaluateWS godoc
// @Summary Evaluate a project with live stage events
// @Description WebSocket. Upgrade, send one app.EvaluationRequest, then read WSMessage frames: one "event" per stage followed by a "result" (or an "error") frame.
// @Tags gate
// @Produce json
// @Success 101 {object} WSMessage
// @Router /ws/evaluate [get]
func (s *Server) handleEvaluateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	write := func(m WSMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return conn.WriteJSON(m)
	}

	var req EvaluateRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.logger.Warn("reading websocket request", logging.Field{Key: "error", Value: err.Error()})
		_ = write(WSMessage{Type: wsError, Error: "invalid JSON"})
		return
	}

	writeFailed := false
	observer := func(ev app.EvaluationEvent) {
		if writeFailed {
			return
		}
		if err := write(WSMessage{Type: wsEvent, Event: &ev}); err != nil {
			// The client went away; the evaluation still completes and is recorded.
			writeFailed = true
		}
	}

	ev, err := s.orchestrator.Evaluate(r.Context(), req, observer)
	if err != nil {
		msg := WSMessage{Type: wsError, Error: err.Error()}
		var ve *gate.ValidationError
		if errors.As(err, &ve) {
			msg.Problems = ve.Problems
		}
		_ = write(msg)
		return
	}
	if writeFailed {
		s.logger.Warn("websocket client disconnected during evaluation", logging.Field{Key: "evaluation_id", Value: ev.ID})
		return
	}

	s.logger.Info("evaluated project over websocket", logging.Field{Key: "evaluation_id", Value: ev.ID})
	_ = write(WSMessage{Type: wsResult, Evaluation: ev})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}
