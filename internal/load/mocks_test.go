package load

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/schedport/schedport/pkg/schedport"
)

type mockApprover struct {
	approved bool
	err      error
	calls    int
}

func (m *mockApprover) RequestApproval(_ context.Context, _ string) (bool, error) {
	m.calls++
	return m.approved, m.err
}

type mockLogger struct{}

func (mockLogger) Verbose(_ string, _ ...any) {}
func (mockLogger) Info(_ string, _ ...any)    {}
func (mockLogger) Error(_ string, _ ...any)   {}

type mockInferrer struct {
	gender string
	ok     bool
}

func (m mockInferrer) Infer(_ string) (string, bool) {
	return m.gender, m.ok
}

type mockSchemaBuilder struct {
	err   error
	calls int
}

func (m *mockSchemaBuilder) Recreate(_ context.Context, _ schedport.DBTx) error {
	m.calls++
	return m.err
}

// fakeLoadTx emulates the destination for the whole batch pass: resolver
// lookups and inserts, appointment inserts, and junction inserts. Statements
// are recognized by their target table.
type fakeLoadTx struct {
	nextID int64

	patients map[string]int64 // code → id
	services map[string]int64 // name → id

	appointmentArgs [][]any    // args of each appointment INSERT
	junctions       [][2]int64 // (appointment_id, service_id) pairs

	appointmentNoRow bool   // appointment INSERT scans to ErrNoRows
	failJunctionAt   int    // fail the Nth junction insert (1-based, 0 = never)
	junctionCalls    int
}

func newFakeLoadTx() *fakeLoadTx {
	return &fakeLoadTx{
		patients: make(map[string]int64),
		services: make(map[string]int64),
	}
}

func (f *fakeLoadTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if strings.Contains(sql, "appointment_service") {
		f.junctionCalls++
		if f.failJunctionAt != 0 && f.junctionCalls == f.failJunctionAt {
			return pgconn.CommandTag{}, fmt.Errorf("junction insert rejected")
		}
		f.junctions = append(f.junctions, [2]int64{args[0].(int64), args[1].(int64)})
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.CommandTag{}, fmt.Errorf("unexpected Exec: %s", sql)
}

func (f *fakeLoadTx) QueryRow(_ context.Context, sql string, args ...any) schedport.Row {
	switch {
	case strings.Contains(sql, "FROM patient"):
		if id, ok := f.patients[args[0].(string)]; ok {
			return scanRow{id: id}
		}
		return scanRow{err: pgx.ErrNoRows}

	case strings.Contains(sql, "INSERT INTO patient"):
		f.nextID++
		f.patients[args[2].(string)] = f.nextID
		return scanRow{id: f.nextID}

	case strings.Contains(sql, "FROM service"):
		if id, ok := f.services[args[0].(string)]; ok {
			return scanRow{id: id}
		}
		return scanRow{err: pgx.ErrNoRows}

	case strings.Contains(sql, "INSERT INTO service"):
		f.nextID++
		f.services[args[0].(string)] = f.nextID
		return scanRow{id: f.nextID}

	case strings.Contains(sql, "INSERT INTO appointment"):
		if f.appointmentNoRow {
			return scanRow{err: pgx.ErrNoRows}
		}
		f.appointmentArgs = append(f.appointmentArgs, args)
		f.nextID++
		return scanRow{id: f.nextID}
	}

	return scanRow{err: fmt.Errorf("unexpected query: %s", sql)}
}

var _ schedport.DBTx = (*fakeLoadTx)(nil)

type scanRow struct {
	id  int64
	err error
}

func (r scanRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	return nil
}
