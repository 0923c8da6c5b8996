// Package retry provides automatic retry logic with exponential backoff for
// transient destination-connection failures.
//
// The package supports pluggable error classification and backoff strategies.
// Connecting is the only retried operation in schedport: once the load
// transaction is open, failures are fatal to the run by design, so nothing
// inside the transaction goes through this package.
//
// # Example Usage
//
//	classifier := retry.NewPostgreSQLErrorClassifier()
//	strategy := retry.NewExponentialBackoff(3)
//	executor := retry.NewExecutor(classifier, strategy)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return connectToDatabase(ctx)
//	})
package retry
