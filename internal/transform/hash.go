package transform

import (
	"context"

	"degbridge/internal/table"
)

// HashJoiner indexes the mapping table by gene_id and probes it once per DEG row.
type HashJoiner struct{}

func (HashJoiner) Name() string { return EngineHash }

func (HashJoiner) Join(ctx context.Context, deg, mapping *table.Table) ([]Joined, error) {
	left, err := degRows(deg)
	if err != nil {
		return nil, err
	}
	right, err := mappingRows(mapping)
	if err != nil {
		return nil, err
	}

	byID := make(map[string][]string, len(right))
	for _, m := range right {
		byID[m.GeneID] = append(byID[m.GeneID], m.StandardSymbol)
	}

	var out []Joined
	for i, d := range left {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for _, std := range byID[d.DEGGeneSymbol] {
			j := d
			j.StandardGeneSymbol = std
			out = append(out, j)
		}
	}
	return out, nil
}
