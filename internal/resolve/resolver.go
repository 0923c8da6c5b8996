// Package resolve deduplicates patients and services within one load run.
//
// The resolver front-ends every lookup with an in-run cache: in realistic
// batches the same patient or service recurs across many appointment rows,
// so after the first occurrence every repeat costs O(1) instead of a
// destination round trip. Caches are scoped to one run and must never be
// reused across runs — the destination is rebuilt from scratch each time,
// so carried-over identifiers would be stale.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/schedport/schedport/internal/normalize"
	"github.com/schedport/schedport/pkg/schedport"
)

const (
	queryPatientByCode = `SELECT id FROM patient WHERE code = $1`
	insertPatient      = `INSERT INTO patient (first_name, last_name, code, gender) VALUES ($1, $2, $3, $4) RETURNING id`
	queryServiceByName = `SELECT id FROM service WHERE name = $1`
	insertService      = `INSERT INTO service (name) VALUES ($1) RETURNING id`
)

// Resolver resolves patient codes and service names to destination
// identifiers, creating missing rows on the load transaction.
//
// Thread-Safety: NOT safe for concurrent use. One Resolver serves one run.
type Resolver struct {
	tx       schedport.DBTx
	inferrer schedport.Inferrer
	logger   schedport.Logger

	patients map[string]int64 // trimmed code → patient id
	services map[string]int64 // trimmed name → service id
}

// New creates a Resolver bound to the given load transaction.
// Panics if any dependency is nil.
func New(tx schedport.DBTx, inferrer schedport.Inferrer, logger schedport.Logger) *Resolver {
	if tx == nil {
		panic("tx cannot be nil")
	}
	if inferrer == nil {
		panic("inferrer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &Resolver{
		tx:       tx,
		inferrer: inferrer,
		logger:   logger,
		patients: make(map[string]int64),
		services: make(map[string]int64),
	}
}

// Patient returns the destination identifier for the patient with the given
// external identity code, creating the row if this run has not seen the code
// and the destination has no row for it.
//
// The code is trimmed and used as-is for matching; the name fields are only
// consulted (normalized, gender-inferred) when a new row is inserted.
func (r *Resolver) Patient(ctx context.Context, code, firstName, lastName string) (int64, error) {
	key := normalize.Code(code)

	if id, hit := r.patients[key]; hit {
		return id, nil
	}

	var id int64
	err := r.tx.QueryRow(ctx, queryPatientByCode, key).Scan(&id)
	if err == nil {
		r.patients[key] = id
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up patient %q: %w", key, err)
	}

	first := normalize.Name(firstName)
	last := normalize.Name(lastName)

	var gender *string
	if g, ok := r.inferrer.Infer(normalize.FirstToken(first)); ok {
		gender = &g
	} else {
		r.logger.Verbose("No gender inferred for patient %q (%s)", key, first)
	}

	err = r.tx.QueryRow(ctx, insertPatient, first, last, key, gender).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("patient %q: %w", key, schedport.ErrMissingGeneratedID)
		}
		return 0, fmt.Errorf("failed to insert patient %q: %w", key, err)
	}

	r.patients[key] = id
	return id, nil
}

// Service returns the destination identifier for the service with the given
// name, creating the row on first sight. The name is trimmed but otherwise
// stored verbatim.
func (r *Resolver) Service(ctx context.Context, name string) (int64, error) {
	key := normalize.Code(name)

	if id, hit := r.services[key]; hit {
		return id, nil
	}

	var id int64
	err := r.tx.QueryRow(ctx, queryServiceByName, key).Scan(&id)
	if err == nil {
		r.services[key] = id
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up service %q: %w", key, err)
	}

	err = r.tx.QueryRow(ctx, insertService, key).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("service %q: %w", key, schedport.ErrMissingGeneratedID)
		}
		return 0, fmt.Errorf("failed to insert service %q: %w", key, err)
	}

	r.services[key] = id
	return id, nil
}
