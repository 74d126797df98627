package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/agentready"
)

// Compile-time interface verification.
var _ agentready.ScanHistoryService = (*ScanHistoryService)(nil)

// ScanHistoryService implements agentready.ScanHistoryService using SQLite.
type ScanHistoryService struct {
	db *DB
}

// NewScanHistoryService creates a new ScanHistoryService.
func NewScanHistoryService(db *DB) *ScanHistoryService {
	return &ScanHistoryService{db: db}
}

// CreateScanSummary records a completed audit.
func (s *ScanHistoryService) CreateScanSummary(ctx context.Context, summary *agentready.ScanSummary) error {
	if err := summary.Validate(); err != nil {
		return err
	}

	scannedAt := summary.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scans (id, url, overall_score, grade, issue_count, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, summary.ID, summary.URL, summary.OverallScore, summary.Grade, summary.IssueCount,
		scannedAt.Format(time.RFC3339))

	return err
}

// FindScanSummaries retrieves summaries matching the filter, most recent
// first.
func (s *ScanHistoryService) FindScanSummaries(ctx context.Context, filter agentready.ScanSummaryFilter) ([]*agentready.ScanSummary, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, overall_score, grade, issue_count, scanned_at FROM scans WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY scanned_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*agentready.ScanSummary
	for rows.Next() {
		var summary agentready.ScanSummary
		var scannedAt string

		if err := rows.Scan(&summary.ID, &summary.URL, &summary.OverallScore, &summary.Grade,
			&summary.IssueCount, &scannedAt); err != nil {
			return nil, err
		}

		summary.ScannedAt, err = parseRFC3339(scannedAt, "scanned_at")
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &summary)
	}

	return summaries, rows.Err()
}

// OverallScores returns every recorded overall score.
func (s *ScanHistoryService) OverallScores(ctx context.Context) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT overall_score FROM scans")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}

	return scores, rows.Err()
}
