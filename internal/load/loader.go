// Package load drives one transform-and-load run: one transaction, one pass
// over the extracted batch, commit or full rollback.
package load

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/schedport/schedport/internal/db"
	"github.com/schedport/schedport/internal/resolve"
	"github.com/schedport/schedport/pkg/schedport"
)

const (
	// Date, time and timestamp values arrive as legacy text; the casts make
	// PostgreSQL the single validator of their format.
	insertAppointment = `INSERT INTO appointment
		(patient_id, appt_date, appt_time, duration_min, overbooked, status, created_at, created_by)
		VALUES ($1, $2::date, $3::time, $4, $5, $6, $7::timestamp, $8)
		RETURNING id`

	insertJunction = `INSERT INTO appointment_service (appointment_id, service_id) VALUES ($1, $2)`
)

// LoadService implements the Loader interface.
// Thread-Safety: NOT safe for concurrent Load() calls on the same instance.
// Create separate instances for concurrent runs.
type LoadService struct {
	connectorFactory func(*schedport.ConnectionConfig) (schedport.Connector, error)
	approver         schedport.Approver
	logger           schedport.Logger
	schema           schedport.SchemaBuilder
	inferrer         schedport.Inferrer
}

// NewLoadService creates a new LoadService with all dependencies injected.
//
// Panics if any dependency is nil. Nil dependencies are programmer errors
// that should fail loudly at startup, not as nil dereferences mid-run.
func NewLoadService(
	connectorFactory func(*schedport.ConnectionConfig) (schedport.Connector, error),
	approver schedport.Approver,
	logger schedport.Logger,
	schema schedport.SchemaBuilder,
	inferrer schedport.Inferrer,
) *LoadService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if schema == nil {
		panic("schema cannot be nil")
	}
	if inferrer == nil {
		panic("inferrer cannot be nil")
	}

	return &LoadService{
		connectorFactory: connectorFactory,
		approver:         approver,
		logger:           logger,
		schema:           schema,
		inferrer:         inferrer,
	}
}

// Load transforms and loads the batch inside one transaction, returning the
// number of appointments committed.
//
// An empty batch returns (0, nil) before any destination contact: no
// approval prompt, no connection, no destructive reset. On any error the
// transaction is rolled back in full — the destination is left exactly as it
// was before the run, including the undone reset.
func (s *LoadService) Load(ctx context.Context, config schedport.LoadConfig, batch []schedport.AppointmentRecord) (int, error) {
	// The run ID tags the connection's application_name so a run can be
	// traced from the destination side (pg_stat_activity, server logs).
	runID := uuid.New()

	connConfig, err := s.validateAndParseConfig(config, runID)
	if err != nil {
		return 0, err
	}

	if len(batch) == 0 {
		s.logger.Info("Source batch is empty. Nothing to load.")
		return 0, nil
	}

	s.logger.Verbose("Load run %s: %d records for database '%s'", runID, len(batch), config.DatabaseName)

	// The reset destroys everything already in the destination schema.
	approved, err := s.approver.RequestApproval(ctx, config.DatabaseName)
	if err != nil {
		return 0, fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return 0, schedport.ErrApprovalDenied
	}

	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return 0, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}
	defer pool.Close()

	// A single connection owns the whole run: the transaction is the unit
	// of atomicity for the reset and every insert.
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// No-op after a successful commit.
	defer func() { _ = tx.Rollback(ctx) }()

	dbtx := db.NewTxAdapter(tx)

	s.logger.Verbose("Rebuilding destination schema...")
	if err := s.schema.Recreate(ctx, dbtx); err != nil {
		return 0, err
	}
	s.logger.Info("✓ Destination schema rebuilt")

	resolver := resolve.New(dbtx, s.inferrer, s.logger)

	count, err := loadBatch(ctx, dbtx, resolver, batch)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", schedport.ErrLoadFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: commit: %w", schedport.ErrLoadFailed, err)
	}

	s.logger.Info("✓ Loaded %d appointments", count)
	return count, nil
}

// loadBatch processes the records in source order on the open transaction.
func loadBatch(ctx context.Context, tx schedport.DBTx, resolver *resolve.Resolver, batch []schedport.AppointmentRecord) (int, error) {
	for i, record := range batch {
		patientID, err := resolver.Patient(ctx, record.PatientCode, record.FirstName, record.LastName)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}

		var appointmentID int64
		err = tx.QueryRow(ctx, insertAppointment,
			patientID, record.Date, record.Time, record.DurationMin,
			record.Overbooked, record.Status, record.CreatedAt, record.CreatedBy,
		).Scan(&appointmentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, fmt.Errorf("record %d: appointment: %w", i, schedport.ErrMissingGeneratedID)
			}
			return 0, fmt.Errorf("record %d: failed to insert appointment: %w", i, err)
		}

		// Slots are scanned in fixed order 0..10; occupied slots become
		// junction rows, empty or whitespace-only slots are skipped.
		for slot, name := range record.Services {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			serviceID, err := resolver.Service(ctx, name)
			if err != nil {
				return 0, fmt.Errorf("record %d slot %d: %w", i, slot, err)
			}

			if _, err := tx.Exec(ctx, insertJunction, appointmentID, serviceID); err != nil {
				return 0, fmt.Errorf("record %d slot %d: failed to link service: %w", i, slot, err)
			}
		}
	}

	return len(batch), nil
}

// validateAndParseConfig validates the configuration and parses the connection
// string. The run ID is appended to the application_name so every connection
// the run opens is attributable to it.
func (s *LoadService) validateAndParseConfig(config schedport.LoadConfig, runID uuid.UUID) (*schedport.ConnectionConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Verbose("Source: %s", config.SourcePath)
	s.logger.Verbose("Destination database: '%s'", config.DatabaseName)

	connConfig, err := db.ParseConnectionString(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if connConfig.AppName == "" {
		connConfig.AppName = "schedport"
	}
	connConfig.AppName = fmt.Sprintf("%s-%s", connConfig.AppName, runID)

	connConfig.AuthMethod = config.AuthMethod
	connConfig.AzureTenantID = config.AzureTenantID
	connConfig.AzureClientID = config.AzureClientID
	connConfig.AzureClientSecret = config.AzureClientSecret
	connConfig.AWSRegion = config.AWSRegion
	connConfig.GoogleInstance = config.GoogleInstance
	connConfig.Database = config.DatabaseName

	return connConfig, nil
}

// Verify LoadService implements the Loader interface at compile time
var _ schedport.Loader = (*LoadService)(nil)
