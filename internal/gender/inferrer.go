// Package gender provides the production implementation of the
// schedport.Inferrer collaborator: a small first-name heuristic used to fill
// the optional gender column on newly created patients.
//
// The heuristic is deliberately opaque to the pipeline. Inference failure is
// never fatal: an unknown name, an empty token, or even a panic inside a
// custom inference function all degrade to "no gender".
package gender

import (
	"strings"

	"github.com/schedport/schedport/pkg/schedport"
)

const (
	Male   = "M"
	Female = "F"
)

// Common given names the legacy scheduling system was observed to contain.
// The table is intentionally small: anything it misses is stored as NULL,
// which downstream analytics already handle.
var byName = map[string]string{
	"ANNA": Female, "MARIA": Female, "LAURA": Female, "SARA": Female,
	"ELENA": Female, "GIULIA": Female, "FRANCESCA": Female, "SOFIA": Female,
	"CHIARA": Female, "PAOLA": Female, "SILVIA": Female, "MARTA": Female,
	"MARCO": Male, "LUCA": Male, "PAOLO": Male, "ANDREA": Male,
	"GIUSEPPE": Male, "FRANCESCO": Male, "ALESSANDRO": Male, "GIOVANNI": Male,
	"ANTONIO": Male, "STEFANO": Male, "ROBERTO": Male, "DAVIDE": Male,
}

// DictionaryInferrer infers gender from a first-name lookup table with a
// vowel-ending fallback for names the table misses.
type DictionaryInferrer struct{}

// New creates a DictionaryInferrer.
func New() *DictionaryInferrer {
	return &DictionaryInferrer{}
}

// Infer returns the inferred gender for the given first-name token.
// ok is false when the token is empty or no rule applies.
func (d *DictionaryInferrer) Infer(firstToken string) (string, bool) {
	token := strings.ToUpper(strings.TrimSpace(firstToken))
	if token == "" {
		return "", false
	}

	if g, found := byName[token]; found {
		return g, true
	}

	// Italian-origin fallback: -a endings skew female, -o endings male.
	// Too weak for short tokens.
	if len(token) >= 3 {
		switch token[len(token)-1] {
		case 'A':
			return Female, true
		case 'O':
			return Male, true
		}
	}

	return "", false
}

// Safe wraps an inference function so that a panic inside it is converted to
// a "no inference" result instead of escaping into the load transaction.
type Safe struct {
	inner schedport.Inferrer
}

// NewSafe wraps inner with panic recovery. Panics if inner is nil.
func NewSafe(inner schedport.Inferrer) *Safe {
	if inner == nil {
		panic("inner inferrer cannot be nil")
	}
	return &Safe{inner: inner}
}

// Infer delegates to the wrapped inferrer, recovering any panic to ("", false).
func (s *Safe) Infer(firstToken string) (gender string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			gender, ok = "", false
		}
	}()
	return s.inner.Infer(firstToken)
}

// Verify implementations satisfy the Inferrer interface at compile time
var (
	_ schedport.Inferrer = (*DictionaryInferrer)(nil)
	_ schedport.Inferrer = (*Safe)(nil)
)
