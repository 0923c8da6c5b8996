package testing

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/schedport/schedport/internal/db"
	"github.com/schedport/schedport/internal/gender"
	"github.com/schedport/schedport/internal/load"
	"github.com/schedport/schedport/internal/logging"
	"github.com/schedport/schedport/internal/schema"
	"github.com/schedport/schedport/internal/testinfra"
	"github.com/schedport/schedport/pkg/schedport"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartPostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: SCHEDPORT_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("SCHEDPORT_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("SCHEDPORT_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// NewTestLoader creates a LoadService configured for testing.
// Uses the standard connector factory and an auto-approving test approver.
func NewTestLoader(t *testing.T) schedport.Loader {
	t.Helper()

	return load.NewLoadService(
		db.NewConnector,
		&ForceApprover{},
		logging.NewNullLogger(),
		schema.New(),
		gender.NewSafe(gender.New()),
	)
}

// ForceApprover is a test approver that always approves reset requests.
type ForceApprover struct{}

// RequestApproval always returns true (auto-approves).
func (a *ForceApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	return true, nil
}
