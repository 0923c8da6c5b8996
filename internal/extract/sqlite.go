// Package extract reads the legacy scheduling database. The source is a
// single SQLite file with one wide appointments table; the whole batch is
// read into memory in one pass, in source order.
package extract

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/schedport/schedport/pkg/schedport"
)

// extractQuery is the fixed read against the legacy table. The eleven
// service columns are the legacy schema's fixed-width encoding of a
// variable-cardinality relationship; the loader re-normalizes them.
const extractQuery = `
SELECT first_name, last_name, patient_code,
       appt_date, appt_time, duration_min, overbooked, status,
       created_at, created_by,
       service_1, service_2, service_3, service_4, service_5, service_6,
       service_7, service_8, service_9, service_10, service_11
FROM appointments
ORDER BY id`

// SQLiteExtractor implements the Extractor interface against a legacy SQLite
// scheduling database file.
type SQLiteExtractor struct {
	path   string
	logger schedport.Logger
}

// New creates a SQLiteExtractor for the database file at path.
// Panics if logger is nil.
func New(path string, logger schedport.Logger) *SQLiteExtractor {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SQLiteExtractor{path: path, logger: logger}
}

// Extract reads the full batch of appointment rows. A readable but empty
// source returns (nil, nil); any read failure returns an error wrapping
// ErrExtractionFailed.
func (e *SQLiteExtractor) Extract(ctx context.Context) ([]schedport.AppointmentRecord, error) {
	// The sqlite driver creates a missing file on open; stat first so a
	// wrong path reports as a failure instead of an empty source.
	if _, err := os.Stat(e.path); err != nil {
		return nil, fmt.Errorf("%w: source database %q: %w", schedport.ErrExtractionFailed, e.path, err)
	}

	db, err := sql.Open("sqlite", e.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open source database: %w", schedport.ErrExtractionFailed, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, extractQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: query source database: %w", schedport.ErrExtractionFailed, err)
	}
	defer func() { _ = rows.Close() }()

	var batch []schedport.AppointmentRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan source row: %w", schedport.ErrExtractionFailed, err)
		}
		batch = append(batch, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read source rows: %w", schedport.ErrExtractionFailed, err)
	}

	e.logger.Verbose("Extracted %d appointment rows from %s", len(batch), e.path)
	return batch, nil
}

// scanRecord scans one legacy row. The legacy database is loose about NULLs,
// so every text column is scanned null-tolerant and mapped to "".
func scanRecord(rows *sql.Rows) (schedport.AppointmentRecord, error) {
	var (
		record     schedport.AppointmentRecord
		firstName  sql.NullString
		lastName   sql.NullString
		code       sql.NullString
		date       sql.NullString
		tm         sql.NullString
		duration   sql.NullInt64
		overbooked sql.NullInt64
		status     sql.NullString
		createdAt  sql.NullString
		createdBy  sql.NullString
		services   [schedport.ServiceSlotCount]sql.NullString
	)

	dest := []any{
		&firstName, &lastName, &code,
		&date, &tm, &duration, &overbooked, &status,
		&createdAt, &createdBy,
	}
	for i := range services {
		dest = append(dest, &services[i])
	}

	if err := rows.Scan(dest...); err != nil {
		return record, err
	}

	record.FirstName = firstName.String
	record.LastName = lastName.String
	record.PatientCode = code.String
	record.Date = date.String
	record.Time = tm.String
	record.DurationMin = int(duration.Int64)
	record.Overbooked = overbooked.Int64 != 0
	record.Status = status.String
	record.CreatedAt = createdAt.String
	record.CreatedBy = createdBy.String
	for i, s := range services {
		record.Services[i] = s.String
	}

	return record, nil
}

// Verify SQLiteExtractor implements the Extractor interface at compile time
var _ schedport.Extractor = (*SQLiteExtractor)(nil)
