package resolve

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/schedport/schedport/pkg/schedport"
)

// fakeTx emulates the destination tables the resolver touches. Lookups and
// inserts operate on in-memory maps keyed the way the real schema is keyed.
type fakeTx struct {
	patients map[string]int64 // code → id
	services map[string]int64 // name → id
	nextID   int64

	queryCounts    map[string]int // sql → number of QueryRow calls
	patientInserts [][]any        // args of each patient INSERT
	serviceInserts [][]any        // args of each service INSERT

	failOnSQL   string // QueryRow on this statement returns failErr
	failErr     error
	insertNoRow bool // inserts scan to ErrNoRows instead of returning an id
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		patients:    make(map[string]int64),
		services:    make(map[string]int64),
		queryCounts: make(map[string]int),
	}
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("INSERT 0 1"), fmt.Errorf("unexpected Exec: %s", sql)
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, args ...any) schedport.Row {
	f.queryCounts[sql]++

	if sql == f.failOnSQL {
		return fakeRow{err: f.failErr}
	}

	switch sql {
	case queryPatientByCode:
		if id, ok := f.patients[args[0].(string)]; ok {
			return fakeRow{id: id}
		}
		return fakeRow{err: pgx.ErrNoRows}

	case insertPatient:
		f.patientInserts = append(f.patientInserts, args)
		if f.insertNoRow {
			return fakeRow{err: pgx.ErrNoRows}
		}
		f.nextID++
		f.patients[args[2].(string)] = f.nextID
		return fakeRow{id: f.nextID}

	case queryServiceByName:
		if id, ok := f.services[args[0].(string)]; ok {
			return fakeRow{id: id}
		}
		return fakeRow{err: pgx.ErrNoRows}

	case insertService:
		f.serviceInserts = append(f.serviceInserts, args)
		if f.insertNoRow {
			return fakeRow{err: pgx.ErrNoRows}
		}
		f.nextID++
		f.services[args[0].(string)] = f.nextID
		return fakeRow{id: f.nextID}
	}

	return fakeRow{err: fmt.Errorf("unexpected query: %s", sql)}
}

var _ schedport.DBTx = (*fakeTx)(nil)

type fakeRow struct {
	id  int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	return nil
}

// fixedInferrer returns the same result for every token.
type fixedInferrer struct {
	gender string
	ok     bool
}

func (f fixedInferrer) Infer(_ string) (string, bool) {
	return f.gender, f.ok
}

type mockLogger struct{}

func (mockLogger) Verbose(_ string, _ ...any) {}
func (mockLogger) Info(_ string, _ ...any)    {}
func (mockLogger) Error(_ string, _ ...any)   {}
