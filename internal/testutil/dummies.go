// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/egisf/egisf/internal/ledger"
	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/model"
	"github.com/egisf/egisf/internal/notify"
	"github.com/egisf/egisf/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ErrorCount returns how many Error lines were logged.
func (l *DummyLogger) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.Errors)
}

// ─── WebClient ─────────────────────────────────────────────────────────

// DummyWebClient implements webclient.WebClient.
// By default it answers every request with StatusCode (200 when zero) and
// Body. Set Err to force a transport error.
type DummyWebClient struct {
	ResponseDelay time.Duration
	StatusCode    int
	Body          []byte
	Err           error

	mu       sync.Mutex
	Requests []*webclient.Request
}

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	if d.ResponseDelay > 0 {
		select {
		case <-time.After(d.ResponseDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	status := d.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	return &webclient.Response{
		Request:    req,
		Headers:    http.Header{},
		Body:       d.Body,
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Post(ctx context.Context, url string, body []byte) (*webclient.Response, error) {
	return d.Do(ctx, &webclient.Request{Method: http.MethodPost, URL: url, Body: body})
}

func (d *DummyWebClient) Close() error { return nil }

// RequestCount returns how many requests were made.
func (d *DummyWebClient) RequestCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Requests)
}

// ─── Notifier ──────────────────────────────────────────────────────────

// DummyNotifier records payloads and answers with Result. Disabled makes
// Enabled report false.
type DummyNotifier struct {
	Disabled bool
	Result   model.Notification

	mu       sync.Mutex
	Payloads []notify.Payload
}

func (n *DummyNotifier) Enabled() bool { return !n.Disabled }

func (n *DummyNotifier) Dispatch(_ context.Context, p notify.Payload) model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Payloads = append(n.Payloads, p)
	if n.Result.Kind == "" {
		return model.Notification{Kind: model.NotificationDelivered, Delivered: true, StatusCode: http.StatusOK}
	}
	return n.Result
}

// Sent returns a copy of the dispatched payloads.
func (n *DummyNotifier) Sent() []notify.Payload {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Payload(nil), n.Payloads...)
}

// ─── Store ─────────────────────────────────────────────────────────────

// DummyStore is an in-memory evaluation and decision store. Set RecordErr
// to make every Record and RecordDecision fail.
type DummyStore struct {
	RecordErr error

	mu        sync.Mutex
	evals     map[string]model.Evaluation
	decisions []model.DecisionRecord
}

func (s *DummyStore) Record(_ context.Context, ev model.Evaluation) error {
	if s.RecordErr != nil {
		return s.RecordErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.evals == nil {
		s.evals = make(map[string]model.Evaluation)
	}
	s.evals[ev.ID] = ev
	return nil
}

func (s *DummyStore) Get(_ context.Context, id string) (*model.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.evals[id]
	if !ok {
		return nil, ledger.ErrEvaluationNotFound
	}
	return &ev, nil
}

func (s *DummyStore) List(_ context.Context, f ledger.Filter) ([]model.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Evaluation{}
	for _, ev := range s.evals {
		if f.Passed != nil && ev.Decision.Passed != *f.Passed {
			continue
		}
		if f.Sector != "" && ev.Project.Sector != f.Sector {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EvaluatedAt.After(out[j].EvaluatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *DummyStore) Summary(_ context.Context) (*ledger.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := &ledger.Summary{Sectors: []ledger.SectorSummary{}}
	for _, ev := range s.evals {
		sum.Total++
		if ev.Decision.Passed {
			sum.Passed++
		}
		if ev.Notification.Failed() {
			sum.NotificationFailures++
		}
	}
	sum.Failed = sum.Total - sum.Passed
	if sum.Total > 0 {
		sum.PassRate = float64(sum.Passed) * 100 / float64(sum.Total)
	}
	return sum, nil
}

// Len returns the number of stored evaluations.
func (s *DummyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.evals)
}

func (s *DummyStore) RecordDecision(_ context.Context, d model.DecisionRecord) error {
	if s.RecordErr != nil {
		return s.RecordErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, d)
	return nil
}

func (s *DummyStore) ListDecisions(_ context.Context, f ledger.DecisionFilter) ([]model.DecisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.DecisionRecord{}
	for i := len(s.decisions) - 1; i >= 0; i-- {
		d := s.decisions[i]
		if f.ProjectID != "" && d.ProjectID != f.ProjectID {
			continue
		}
		if f.Action != "" && d.Action != f.Action {
			continue
		}
		if f.Escalated && !d.Escalated {
			continue
		}
		out = append(out, d)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *DummyStore) DecisionSummary(_ context.Context) (*ledger.DecisionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := &ledger.DecisionSummary{Total: len(s.decisions)}
	for _, d := range s.decisions {
		switch d.Action {
		case model.ActionApprove:
			sum.Approved++
		case model.ActionHold:
			sum.Held++
		case model.ActionReject:
			sum.Rejected++
		}
		if d.Scenario != "" {
			sum.Quick++
		}
		if d.Escalated {
			sum.Escalated++
		}
	}
	return sum, nil
}

// DecisionCount returns the number of stored decisions.
func (s *DummyStore) DecisionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.decisions)
}
