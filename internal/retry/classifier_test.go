package retry

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsTransient_NilError(t *testing.T) {
	if NewPostgreSQLErrorClassifier().IsTransient(nil) {
		t.Error("nil error classified as transient")
	}
}

func TestIsTransient_PgErrorCodes(t *testing.T) {
	classifier := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name      string
		code      string
		transient bool
	}{
		{"connection exception class", "08000", true},
		{"connection does not exist", "08003", true},
		{"insufficient resources class", "53000", true},
		{"too many connections", "53300", true},
		{"operator intervention class", "57000", true},
		{"admin shutdown", "57P01", true},
		{"serialization failure", "40001", true},
		{"deadlock detected", "40P01", true},
		{"lock not available", "55P03", true},
		{"unique violation", "23505", false},
		{"undefined table", "42P01", false},
		{"invalid password", "28P01", false},
		{"syntax error", "42601", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &pgconn.PgError{Code: tt.code, Message: tt.name}
			if got := classifier.IsTransient(err); got != tt.transient {
				t.Errorf("IsTransient(%s) = %v, want %v", tt.code, got, tt.transient)
			}
		})
	}
}

func TestIsTransient_WrappedPgError(t *testing.T) {
	classifier := NewPostgreSQLErrorClassifier()

	inner := &pgconn.PgError{Code: "40001"}
	wrapped := fmt.Errorf("load failed: %w", inner)
	if !classifier.IsTransient(wrapped) {
		t.Error("wrapped transient PgError not recognized")
	}
}

func TestIsTransient_NetworkErrors(t *testing.T) {
	classifier := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"dns timeout", &net.DNSError{IsTimeout: true}, true},
		{"dns temporary", &net.DNSError{IsTemporary: true}, true},
		{"connection refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, true},
		{"connection reset", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, true},
		{"host unreachable", &net.OpError{Op: "dial", Err: syscall.EHOSTUNREACH}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsTransient(tt.err); got != tt.transient {
				t.Errorf("IsTransient = %v, want %v", got, tt.transient)
			}
		})
	}
}

func TestIsTransient_MessagePatterns(t *testing.T) {
	classifier := NewPostgreSQLErrorClassifier()

	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"connection refused text", errors.New("dial tcp: connection refused"), true},
		{"server closed", errors.New("server closed the connection unexpectedly"), true},
		{"io timeout", errors.New("read tcp: i/o timeout"), true},
		{"too many connections text", errors.New("FATAL: too many connections"), true},
		{"plain failure", errors.New("something unrelated went wrong"), false},
		{"authentication failure", errors.New("password authentication failed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsTransient(tt.err); got != tt.transient {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.transient)
			}
		})
	}
}
