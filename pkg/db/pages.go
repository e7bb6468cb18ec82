package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sitetruth/sitetruth/models"
)

// Run represents one batch extraction run.
type Run struct {
	RunID        string
	BaseURL      string
	StartedAt    time.Time
	PageCount    int
	SuccessCount int
	FailedCount  int
}

// PageSummary is the list view over stored pages: identity and the
// headline numbers, without the full record payload.
type PageSummary struct {
	PageID     int64
	RunID      string
	URL        string
	Slug       string
	Confidence float64
	WordCount  int
	ImageCount int
	CreatedAt  time.Time
}

// InsertRun records the start of a batch run.
func (db *DB) InsertRun(runID, baseURL string, pageCount int) error {
	_, err := db.Exec(`
		INSERT INTO runs (run_id, base_url, page_count)
		VALUES (?, ?, ?)
	`, runID, baseURL, pageCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// UpdateRunStats updates the success and failed counts for a run
func (db *DB) UpdateRunStats(runID string, successCount, failedCount int) error {
	_, err := db.Exec(`
		UPDATE runs
		SET success_count = ?, failed_count = ?
		WHERE run_id = ?
	`, runID, successCount, failedCount)
	if err != nil {
		return fmt.Errorf("failed to update run stats: %w", err)
	}
	return nil
}

// GetRun retrieves a run by its ID.
func (db *DB) GetRun(runID string) (*Run, error) {
	var run Run
	err := db.QueryRow(`
		SELECT run_id, base_url, started_at, page_count, success_count, failed_count
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&run.RunID, &run.BaseURL, &run.StartedAt, &run.PageCount,
		&run.SuccessCount, &run.FailedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves runs ordered by most recent first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, base_url, started_at, page_count, success_count, failed_count
		FROM runs
		ORDER BY started_at DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.BaseURL, &r.StartedAt, &r.PageCount,
			&r.SuccessCount, &r.FailedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, nil
}

// InsertPage stores one extracted page under a run. The full record is
// serialized to JSON; headline numbers are duplicated into columns for
// querying. Re-inserting the same URL within a run replaces the record.
func (db *DB) InsertPage(runID string, page *models.ExtractedPage) (int64, error) {
	record, err := json.Marshal(page)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize page record: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO pages (run_id, url, slug, confidence, word_count, image_count, record)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, url) DO UPDATE SET
			slug = excluded.slug,
			confidence = excluded.confidence,
			word_count = excluded.word_count,
			image_count = excluded.image_count,
			record = excluded.record
	`, runID, page.URL, page.Slug, page.Confidence,
		page.Diagnostics.WordCount, len(page.Images.Value), string(record))
	if err != nil {
		return 0, fmt.Errorf("failed to insert page: %w", err)
	}

	pageID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get page ID: %w", err)
	}
	return pageID, nil
}

// GetPage deserializes the stored record for a URL within a run.
func (db *DB) GetPage(runID, pageURL string) (*models.ExtractedPage, error) {
	var record string
	err := db.QueryRow(`
		SELECT record FROM pages WHERE run_id = ? AND url = ?
	`, runID, pageURL).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page not found: %s", pageURL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	var page models.ExtractedPage
	if err := json.Unmarshal([]byte(record), &page); err != nil {
		return nil, fmt.Errorf("failed to deserialize page record: %w", err)
	}
	return &page, nil
}

// ListPages returns page summaries for a run in insertion order.
func (db *DB) ListPages(runID string) ([]PageSummary, error) {
	rows, err := db.Query(`
		SELECT page_id, run_id, url, slug, confidence, word_count, image_count, created_at
		FROM pages
		WHERE run_id = ?
		ORDER BY page_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []PageSummary
	for rows.Next() {
		var p PageSummary
		if err := rows.Scan(&p.PageID, &p.RunID, &p.URL, &p.Slug, &p.Confidence,
			&p.WordCount, &p.ImageCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}

	return pages, nil
}
