package schedport

import "context"

// Extractor reads the full batch of denormalized appointment rows from the
// legacy source store, in source order.
//
// A source that is reachable but empty returns an empty slice and a nil
// error. A source that cannot be read returns an error wrapping
// ErrExtractionFailed. Callers are expected to treat both as "nothing to
// load" — the distinction only surfaces in the run log.
type Extractor interface {
	Extract(ctx context.Context) ([]AppointmentRecord, error)
}

// SchemaBuilder destructively recreates the destination schema: it drops all
// prior content and rebuilds the four tables and their supporting indexes.
//
// Recreate runs entirely on the supplied transaction, so a caller rollback
// leaves the destination exactly as it was — never half-built.
type SchemaBuilder interface {
	Recreate(ctx context.Context, tx DBTx) error
}

// Inferrer guesses a gender from the first token of a patient's given name.
// ok is false when no inference could be made; implementations must convert
// any internal failure to (_, false) rather than let it escape.
type Inferrer interface {
	Infer(firstToken string) (gender string, ok bool)
}

// Loader is the main interface for executing load runs. Implementations own
// the transaction boundary: a run either commits the whole batch or rolls
// back to a destination untouched by the run.
type Loader interface {
	// Load transforms and loads the batch, returning the number of
	// appointments committed. An empty batch is not an error: it returns
	// (0, nil) without touching the destination.
	Load(ctx context.Context, config LoadConfig, batch []AppointmentRecord) (int, error)
}
