// Package genes defines the column vocabulary and record shapes shared by the
// DEG table, the identifier mapping table and the transformed output.
package genes

import (
	"fmt"
	"strconv"
)

// Column names as they appear in input and output headers.
const (
	ColGeneSymbol = "gene_symbol"
	ColLog2FC     = "log2fc"
	ColPValue     = "p_value"
	ColPAdjusted  = "p_adjusted"
	ColRegulation = "regulation"
	ColGeneID     = "gene_id"
)

// Both input tables carry a gene_symbol column with different meaning. Inside
// the join they are addressed by these names; only the standardized one
// reaches the output.
const (
	ColDEGGeneSymbol      = "deg_gene_symbol"
	ColStandardGeneSymbol = "standard_gene_symbol"
)

// Regulation values counted by the reporter. Matching is exact.
const (
	RegulationUp   = "UP"
	RegulationDown = "DOWN"
)

// DEGColumns lists the columns a DEG table must carry.
func DEGColumns() []string {
	return []string{ColGeneSymbol, ColLog2FC, ColPValue, ColPAdjusted, ColRegulation}
}

// MappingColumns lists the columns a mapping table must carry.
func MappingColumns() []string {
	return []string{ColGeneID, ColGeneSymbol}
}

// OutputColumns is the header of the transformed table, in output order.
func OutputColumns() []string {
	return []string{ColGeneSymbol, ColLog2FC, ColPValue, ColPAdjusted, ColRegulation}
}

// GeneRecord is one row of the DEG table. Symbol is the source convention and
// is not guaranteed to be unique.
type GeneRecord struct {
	Symbol     string
	Log2FC     float64
	PValue     float64
	PAdjusted  float64
	Regulation string
}

// MappingRecord translates a source identifier into a standardized symbol.
type MappingRecord struct {
	GeneID         string
	StandardSymbol string
}

// TransformedRecord is one output row.
type TransformedRecord struct {
	Symbol     string
	Log2FC     float64
	PValue     float64
	PAdjusted  float64
	Regulation string
}

// Row lookups are by column name; get returns the cell for a column.
type getter func(col string) (string, bool)

// ParseGeneRecord builds a GeneRecord from a row accessor.
func ParseGeneRecord(get func(col string) (string, bool)) (GeneRecord, error) {
	var r GeneRecord
	var err error
	g := getter(get)
	if r.Symbol, err = g.text(ColGeneSymbol); err != nil {
		return r, err
	}
	if r.Log2FC, err = g.float(ColLog2FC); err != nil {
		return r, err
	}
	if r.PValue, err = g.float(ColPValue); err != nil {
		return r, err
	}
	if r.PAdjusted, err = g.float(ColPAdjusted); err != nil {
		return r, err
	}
	if r.Regulation, err = g.text(ColRegulation); err != nil {
		return r, err
	}
	return r, nil
}

// ParseMappingRecord builds a MappingRecord from a row accessor.
func ParseMappingRecord(get func(col string) (string, bool)) (MappingRecord, error) {
	var r MappingRecord
	var err error
	g := getter(get)
	if r.GeneID, err = g.text(ColGeneID); err != nil {
		return r, err
	}
	if r.StandardSymbol, err = g.text(ColGeneSymbol); err != nil {
		return r, err
	}
	return r, nil
}

// ParseTransformedRecord builds a TransformedRecord from a row accessor.
func ParseTransformedRecord(get func(col string) (string, bool)) (TransformedRecord, error) {
	gr, err := ParseGeneRecord(get)
	if err != nil {
		return TransformedRecord{}, err
	}
	return TransformedRecord(gr), nil
}

func (g getter) text(col string) (string, error) {
	v, ok := g(col)
	if !ok {
		return "", fmt.Errorf("missing column %q", col)
	}
	return v, nil
}

func (g getter) float(col string) (float64, error) {
	v, err := g.text(col)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return f, nil
}
