// Package schema owns the destination DDL: the four analytical tables and
// their supporting indexes, rebuilt destructively at the start of every run.
package schema

import (
	"context"
	"fmt"

	"github.com/schedport/schedport/pkg/schedport"
)

// Statements are executed in order on the caller's transaction. Drops run
// before creates and reference the junction first so the foreign keys never
// block; creates run in dependency order (patient/service before
// appointment/appointment_service).
var statements = []string{
	`DROP TABLE IF EXISTS appointment_service`,
	`DROP TABLE IF EXISTS appointment`,
	`DROP TABLE IF EXISTS service`,
	`DROP TABLE IF EXISTS patient`,

	`CREATE TABLE patient (
		id         bigserial PRIMARY KEY,
		first_name text NOT NULL,
		last_name  text NOT NULL,
		code       text NOT NULL,
		gender     text
	)`,
	`CREATE UNIQUE INDEX patient_code_idx ON patient (code)`,

	`CREATE TABLE service (
		id   bigserial PRIMARY KEY,
		name text NOT NULL UNIQUE
	)`,

	`CREATE TABLE appointment (
		id           bigserial PRIMARY KEY,
		patient_id   bigint NOT NULL REFERENCES patient (id),
		appt_date    date NOT NULL,
		appt_time    time NOT NULL,
		duration_min integer NOT NULL,
		overbooked   boolean NOT NULL DEFAULT false,
		status       text NOT NULL,
		created_at   timestamp NOT NULL,
		created_by   text NOT NULL
	)`,
	`CREATE INDEX appointment_patient_idx ON appointment (patient_id)`,
	`CREATE INDEX appointment_date_idx ON appointment (appt_date)`,
	`CREATE INDEX appointment_status_idx ON appointment (status)`,

	// No uniqueness on (appointment_id, service_id): the legacy source may
	// legitimately list the same service in several slots of one appointment.
	`CREATE TABLE appointment_service (
		id             bigserial PRIMARY KEY,
		appointment_id bigint NOT NULL REFERENCES appointment (id),
		service_id     bigint NOT NULL REFERENCES service (id)
	)`,
	`CREATE INDEX appointment_service_appointment_idx ON appointment_service (appointment_id)`,
	`CREATE INDEX appointment_service_service_idx ON appointment_service (service_id)`,
}

// Builder implements the SchemaBuilder interface. Stateless; thread safety
// depends on the supplied DBTx.
type Builder struct{}

// New creates a new SchemaBuilder instance.
func New() schedport.SchemaBuilder {
	return &Builder{}
}

// Recreate destroys all prior destination content and rebuilds the four-table
// structure with its indexes. It runs entirely on the supplied transaction,
// so a caller rollback undoes everything.
func (b *Builder) Recreate(ctx context.Context, tx schedport.DBTx) error {
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %w", schedport.ErrSchemaRebuild, err)
		}
	}
	return nil
}

// Statements exposes the DDL sequence for tests.
func Statements() []string {
	out := make([]string, len(statements))
	copy(out, statements)
	return out
}

// Verify Builder implements the SchemaBuilder interface at compile time
var _ schedport.SchemaBuilder = (*Builder)(nil)
