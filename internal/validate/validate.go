// Package validate checks that input tables carry the columns the bridge needs.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"degbridge/internal/genes"
	"degbridge/internal/table"
)

// Table labels used in error messages.
const (
	TableDEG     = "DEG"
	TableMapping = "Mapping"
)

// MissingColumnsError names the required columns absent from one input table.
type MissingColumnsError struct {
	Table   string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s file missing columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// Columns checks t against required and returns a *MissingColumnsError
// labelled name when any are absent.
func Columns(name string, t *table.Table, required []string) error {
	if missing := t.Missing(required); len(missing) > 0 {
		return &MissingColumnsError{Table: name, Missing: missing}
	}
	return nil
}

// Validate checks both tables. Every deficient table is reported; the DEG
// error, when present, comes first.
func Validate(deg, mapping *table.Table) error {
	return errors.Join(
		Columns(TableDEG, deg, genes.DEGColumns()),
		Columns(TableMapping, mapping, genes.MappingColumns()),
	)
}
