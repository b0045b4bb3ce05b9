// Package transform joins the DEG table to the identifier mapping and projects
// the result onto the output schema.
//
// The join is an inner join on mapping.gene_id == deg.gene_symbol. Both inputs
// have a gene_symbol column, so joined rows name them deg_gene_symbol and
// standard_gene_symbol; only the standardized symbol is projected. Fan-out from
// repeated gene_id values is kept, and rows come out in DEG order, then mapping
// order within a DEG row.
package transform

import (
	"context"
	"fmt"

	"degbridge/internal/genes"
	"degbridge/internal/table"
)

// Joined is one matched (DEG row, mapping row) pair before projection.
type Joined struct {
	DEGGeneSymbol      string
	StandardGeneSymbol string
	Log2FC             string
	PValue             string
	PAdjusted          string
	Regulation         string
}

// JoinedColumns is the header of a joined table.
func JoinedColumns() []string {
	return []string{
		genes.ColDEGGeneSymbol, genes.ColStandardGeneSymbol,
		genes.ColLog2FC, genes.ColPValue, genes.ColPAdjusted, genes.ColRegulation,
	}
}

func (j Joined) cells() []string {
	return []string{j.DEGGeneSymbol, j.StandardGeneSymbol, j.Log2FC, j.PValue, j.PAdjusted, j.Regulation}
}

// Joiner performs the inner join. Implementations must return pairs in DEG
// row order, then mapping row order.
type Joiner interface {
	Join(ctx context.Context, deg, mapping *table.Table) ([]Joined, error)
	Name() string
}

// Engine names accepted by ForName.
const (
	EngineHash   = "hash"
	EngineSQLite = "sqlite"
)

// Engines lists the available engine names.
func Engines() []string { return []string{EngineHash, EngineSQLite} }

// ForName returns the Joiner registered under name.
func ForName(name string) (Joiner, error) {
	switch name {
	case EngineHash, "":
		return HashJoiner{}, nil
	case EngineSQLite:
		return SQLiteJoiner{}, nil
	default:
		return nil, fmt.Errorf("unknown join engine %q", name)
	}
}

// Transform joins deg to mapping with j and returns the output table with
// columns gene_symbol, log2fc, p_value, p_adjusted, regulation.
func Transform(ctx context.Context, deg, mapping *table.Table, j Joiner) (*table.Table, error) {
	if j == nil {
		j = HashJoiner{}
	}
	pairs, err := j.Join(ctx, deg, mapping)
	if err != nil {
		return nil, fmt.Errorf("transform: %s join: %w", j.Name(), err)
	}
	joined, err := JoinedTable(pairs)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	return Project(joined)
}

// JoinedTable materializes pairs with the disambiguated header.
func JoinedTable(pairs []Joined) (*table.Table, error) {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = p.cells()
	}
	return table.New(JoinedColumns(), rows)
}

// Project keeps the standardized symbol and the four carried DEG fields, and
// renames standard_gene_symbol back to gene_symbol.
func Project(joined *table.Table) (*table.Table, error) {
	sel, err := joined.Select(
		genes.ColStandardGeneSymbol,
		genes.ColLog2FC, genes.ColPValue, genes.ColPAdjusted, genes.ColRegulation,
	)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	return sel.Rename(genes.ColStandardGeneSymbol, genes.ColGeneSymbol)
}

// degRows reads the DEG side of the join in row order.
func degRows(deg *table.Table) ([]Joined, error) {
	cols := []string{genes.ColGeneSymbol, genes.ColLog2FC, genes.ColPValue, genes.ColPAdjusted, genes.ColRegulation}
	idx := make([]int, len(cols))
	for k, c := range cols {
		i, ok := deg.Index(c)
		if !ok {
			return nil, fmt.Errorf("deg table has no column %q", c)
		}
		idx[k] = i
	}
	out := make([]Joined, deg.Len())
	for i := range out {
		r := deg.Row(i)
		out[i] = Joined{
			DEGGeneSymbol: r[idx[0]],
			Log2FC:        r[idx[1]],
			PValue:        r[idx[2]],
			PAdjusted:     r[idx[3]],
			Regulation:    r[idx[4]],
		}
	}
	return out, nil
}

// mappingRows reads the mapping side of the join in row order.
func mappingRows(mapping *table.Table) ([]genes.MappingRecord, error) {
	out := make([]genes.MappingRecord, mapping.Len())
	for i := range out {
		rec, err := genes.ParseMappingRecord(mapping.Getter(i))
		if err != nil {
			return nil, fmt.Errorf("mapping row %d: %w", i+1, err)
		}
		out[i] = rec
	}
	return out, nil
}
