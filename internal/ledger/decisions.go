package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/model"
)

// RecordDecision appends a decision to the audit trail.
func (l *Ledger) RecordDecision(ctx context.Context, d model.DecisionRecord) error {
	if d.ID == "" {
		return fmt.Errorf("decision id is required")
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}

	query, args, err := sq.Insert("decisions").
		Columns("id", "project_id", "action", "scenario", "urgency", "escalated", "created_at", "payload").
		Values(d.ID, d.ProjectID, string(d.Action), string(d.Scenario), d.Urgency, boolToInt(d.Escalated),
			d.DecidedAt.UnixMilli(), string(payload)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}

	l.logger.Debug("recorded decision",
		logging.Field{Key: "id", Value: d.ID},
		logging.Field{Key: "project_id", Value: d.ProjectID},
		logging.Field{Key: "action", Value: string(d.Action)})
	return nil
}

// DecisionFilter narrows ListDecisions. Zero values mean "no constraint".
type DecisionFilter struct {
	ProjectID string
	Action    model.DecisionAction
	Escalated bool
	Limit     int
}

// ListDecisions returns decisions newest first.
func (l *Ledger) ListDecisions(ctx context.Context, f DecisionFilter) ([]model.DecisionRecord, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	b := sq.Select("payload").From("decisions").OrderBy("created_at DESC", "id").Limit(uint64(limit))
	if f.ProjectID != "" {
		b = b.Where(sq.Eq{"project_id": f.ProjectID})
	}
	if f.Action != "" {
		b = b.Where(sq.Eq{"action": string(f.Action)})
	}
	if f.Escalated {
		b = b.Where(sq.Eq{"escalated": 1})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.DecisionRecord{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var d model.DecisionRecord
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			return nil, fmt.Errorf("decode decision: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DecisionSummary counts recorded decisions. Quick counts decisions taken
// on a scenario rather than a pending project.
type DecisionSummary struct {
	Total     int `json:"total"`
	Approved  int `json:"approved"`
	Held      int `json:"held"`
	Rejected  int `json:"rejected"`
	Quick     int `json:"quick"`
	Escalated int `json:"escalated"`
}

func (l *Ledger) DecisionSummary(ctx context.Context) (*DecisionSummary, error) {
	query, args, err := sq.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN action = 'approve' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN action = 'hold' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN action = 'reject' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(CASE WHEN scenario <> '' THEN 1 ELSE 0 END), 0)",
		"COALESCE(SUM(escalated), 0)",
	).From("decisions").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build decision summary: %w", err)
	}

	s := &DecisionSummary{}
	if err := l.db.QueryRowContext(ctx, query, args...).
		Scan(&s.Total, &s.Approved, &s.Held, &s.Rejected, &s.Quick, &s.Escalated); err != nil {
		return nil, fmt.Errorf("query decision summary: %w", err)
	}
	return s, nil
}
