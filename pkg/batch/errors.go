package batch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaMismatch is returned by Batch.Add when an item's keys differ
	// from the batch's declared keys.
	ErrSchemaMismatch = errors.New("batch: schema mismatch")
	ErrInvalidSchema  = errors.New("batch: invalid schema")
)

// SchemaMismatchError lists the keys an item lacked or carried in excess.
type SchemaMismatchError struct {
	Missing []string
	Extra   []string
}

func (e *SchemaMismatchError) Error() string {
	var b strings.Builder
	b.WriteString(ErrSchemaMismatch.Error())
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		if len(e.Missing) > 0 {
			b.WriteString(";")
		} else {
			b.WriteString(":")
		}
		fmt.Fprintf(&b, " unexpected %s", strings.Join(e.Extra, ", "))
	}
	return b.String()
}

func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}
