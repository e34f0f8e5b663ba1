// Package ledger keeps an append-only audit trail of gate evaluations in
// SQLite and derives the live report from it.
package ledger

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"

	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/model"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

var ErrEvaluationNotFound = errors.New("evaluation not found")

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// Ledger stores evaluations. Each row keeps the full evaluation as JSON plus
// a few denormalised columns used for filtering and aggregation.
type Ledger struct {
	db     *sql.DB
	ownsDB bool
	logger logging.Logger
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string, logger logging.Logger) (*Ledger, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;`); err != nil {
		logger.Warn("setting ledger pragmas", logging.Field{Key: "error", Value: err.Error()})
	}

	l, err := NewLedger(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	l.ownsDB = true
	return l, nil
}

// NewLedger wraps an existing database handle and runs schema.sql.
func NewLedger(db *sql.DB, logger logging.Logger) (*Ledger, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Ledger{
		db:     db,
		logger: logger.With(logging.Field{Key: "component", Value: "ledger"}),
	}, nil
}

// Close closes the database if the ledger opened it.
func (l *Ledger) Close() error {
	if l.ownsDB {
		return l.db.Close()
	}
	return nil
}

// Record appends ev. IDs are unique; recording the same ID twice fails.
func (l *Ledger) Record(ctx context.Context, ev model.Evaluation) error {
	if ev.ID == "" {
		return fmt.Errorf("evaluation id is required")
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode evaluation: %w", err)
	}

	query, args, err := sq.Insert("evaluations").
		Columns("id", "project_name", "sector", "composite", "passed", "violation_count", "notification_kind", "created_at", "payload").
		Values(ev.ID, ev.Project.Name, ev.Project.Sector, ev.Decision.CompositeScore, boolToInt(ev.Decision.Passed),
			len(ev.Decision.Violations), string(ev.Notification.Kind), ev.EvaluatedAt.UnixMilli(), string(payload)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}

	l.logger.Debug("recorded evaluation",
		logging.Field{Key: "id", Value: ev.ID},
		logging.Field{Key: "passed", Value: ev.Decision.Passed})
	return nil
}

// Get returns one evaluation by id.
func (l *Ledger) Get(ctx context.Context, id string) (*model.Evaluation, error) {
	query, args, err := sq.Select("payload").From("evaluations").Where(sq.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var payload string
	if err := l.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEvaluationNotFound
		}
		return nil, err
	}

	var ev model.Evaluation
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return nil, fmt.Errorf("decode evaluation %s: %w", id, err)
	}
	return &ev, nil
}

// Filter narrows List. Zero values mean "no constraint".
type Filter struct {
	Passed *bool
	Sector string
	Limit  int
}

// List returns evaluations newest first.
func (l *Ledger) List(ctx context.Context, f Filter) ([]model.Evaluation, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	b := sq.Select("payload").From("evaluations").OrderBy("created_at DESC", "id").Limit(uint64(limit))
	if f.Passed != nil {
		b = b.Where(sq.Eq{"passed": boolToInt(*f.Passed)})
	}
	if f.Sector != "" {
		b = b.Where(sq.Eq{"sector": f.Sector})
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

	out := []model.Evaluation{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var ev model.Evaluation
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("decode evaluation: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// SectorSummary aggregates evaluations for one sector.
type SectorSummary struct {
	Sector           string  `json:"sector"`
	Total            int     `json:"total"`
	Passed           int     `json:"passed"`
	AverageComposite float64 `json:"average_composite"`
}

// Summary is the live report over every recorded evaluation.
type Summary struct {
	Total                int             `json:"total"`
	Passed               int             `json:"passed"`
	Failed               int             `json:"failed"`
	PassRate             float64         `json:"pass_rate"`
	AverageComposite     float64         `json:"average_composite"`
	NotificationFailures int             `json:"notification_failures"`
	Sectors              []SectorSummary `json:"sectors"`
}

// Summary aggregates the whole ledger. PassRate is a percentage.
func (l *Ledger) Summary(ctx context.Context) (*Summary, error) {
	query, args, err := sq.Select(
		"COUNT(*)",
		"COALESCE(SUM(passed), 0)",
		"COALESCE(AVG(composite), 0)",
		"COALESCE(SUM(CASE WHEN notification_kind IN ('http-error', 'timeout', 'network-error') THEN 1 ELSE 0 END), 0)",
	).From("evaluations").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summary: %w", err)
	}

	s := &Summary{Sectors: []SectorSummary{}}
	var avg float64
	if err := l.db.QueryRowContext(ctx, query, args...).Scan(&s.Total, &s.Passed, &avg, &s.NotificationFailures); err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	s.Failed = s.Total - s.Passed
	s.AverageComposite = round2(avg)
	if s.Total > 0 {
		s.PassRate = round2(float64(s.Passed) * 100 / float64(s.Total))
	}

	query, args, err = sq.Select("sector", "COUNT(*)", "COALESCE(SUM(passed), 0)", "COALESCE(AVG(composite), 0)").
		From("evaluations").GroupBy("sector").OrderBy("sector").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sector summary: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sector summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sec SectorSummary
		if err := rows.Scan(&sec.Sector, &sec.Total, &sec.Passed, &sec.AverageComposite); err != nil {
			return nil, err
		}
		sec.AverageComposite = round2(sec.AverageComposite)
		s.Sectors = append(s.Sectors, sec)
	}
	return s, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
