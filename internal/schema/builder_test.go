package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/schedport/schedport/pkg/schedport"
)

type recordingTx struct {
	executed []string
	failOn   string
	failErr  error
}

func (r *recordingTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.executed = append(r.executed, sql)
	if r.failOn != "" && strings.Contains(sql, r.failOn) {
		return pgconn.CommandTag{}, r.failErr
	}
	return pgconn.NewCommandTag("SELECT 0"), nil
}

func (r *recordingTx) QueryRow(_ context.Context, sql string, _ ...any) schedport.Row {
	panic(fmt.Sprintf("unexpected QueryRow: %s", sql))
}

var _ schedport.DBTx = (*recordingTx)(nil)

func TestRecreate_ExecutesAllStatementsInOrder(t *testing.T) {
	tx := &recordingTx{}
	builder := New()

	if err := builder.Recreate(context.Background(), tx); err != nil {
		t.Fatalf("Recreate: %v", err)
	}

	want := Statements()
	if len(tx.executed) != len(want) {
		t.Fatalf("Executed %d statements, want %d", len(tx.executed), len(want))
	}
	for i := range want {
		if tx.executed[i] != want[i] {
			t.Errorf("Statement %d = %q, want %q", i, tx.executed[i], want[i])
		}
	}
}

func TestRecreate_DropsBeforeCreates(t *testing.T) {
	stmts := Statements()

	lastDrop := -1
	firstCreate := len(stmts)
	for i, stmt := range stmts {
		if strings.HasPrefix(stmt, "DROP") {
			lastDrop = i
		}
		if strings.HasPrefix(stmt, "CREATE") && i < firstCreate {
			firstCreate = i
		}
	}

	if lastDrop == -1 || firstCreate == len(stmts) {
		t.Fatal("Expected both DROP and CREATE statements")
	}
	if lastDrop > firstCreate {
		t.Errorf("DROP at index %d runs after CREATE at index %d", lastDrop, firstCreate)
	}
}

func TestRecreate_DropOrderRespectsForeignKeys(t *testing.T) {
	stmts := Statements()

	indexOf := func(stmt string) int {
		for i, s := range stmts {
			if s == stmt {
				return i
			}
		}
		t.Fatalf("Statement %q not found", stmt)
		return -1
	}

	junction := indexOf("DROP TABLE IF EXISTS appointment_service")
	appointment := indexOf("DROP TABLE IF EXISTS appointment")
	service := indexOf("DROP TABLE IF EXISTS service")
	patient := indexOf("DROP TABLE IF EXISTS patient")

	if !(junction < appointment && appointment < service && service < patient) {
		t.Errorf("Drop order violates dependencies: junction=%d appointment=%d service=%d patient=%d",
			junction, appointment, service, patient)
	}
}

func TestRecreate_FailureWrapsSchemaError(t *testing.T) {
	boom := errors.New("permission denied")
	tx := &recordingTx{failOn: "CREATE TABLE appointment (", failErr: boom}
	builder := New()

	err := builder.Recreate(context.Background(), tx)
	if !errors.Is(err, schedport.ErrSchemaRebuild) {
		t.Errorf("Expected ErrSchemaRebuild, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Expected underlying cause preserved, got %v", err)
	}
}

func TestRecreate_StopsAtFirstFailure(t *testing.T) {
	tx := &recordingTx{failOn: "DROP TABLE IF EXISTS service", failErr: errors.New("boom")}
	builder := New()

	if err := builder.Recreate(context.Background(), tx); err == nil {
		t.Fatal("Expected error")
	}

	// Junction, appointment, then the failing service drop. Nothing after.
	if len(tx.executed) != 3 {
		t.Errorf("Expected execution to stop at statement 3, got %d statements", len(tx.executed))
	}
}
