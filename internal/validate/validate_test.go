package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"degbridge/internal/table"
)

func header(cols ...string) *table.Table { return table.MustNew(cols, nil) }

func TestValidateAcceptsExtraAndReorderedColumns(t *testing.T) {
	deg := header("regulation", "extra", "p_adjusted", "gene_symbol", "p_value", "log2fc")
	mapping := header("gene_symbol", "source", "gene_id")
	require.NoError(t, Validate(deg, mapping))
}

func TestValidateNamesExactlyTheMissingColumns(t *testing.T) {
	cases := []struct {
		name    string
		deg     *table.Table
		mapping *table.Table
		want    []MissingColumnsError
	}{
		{
			name:    "deg missing two",
			deg:     header("gene_symbol", "p_value", "p_adjusted"),
			mapping: header("gene_id", "gene_symbol"),
			want:    []MissingColumnsError{{Table: TableDEG, Missing: []string{"log2fc", "regulation"}}},
		},
		{
			name:    "mapping missing key",
			deg:     header("gene_symbol", "log2fc", "p_value", "p_adjusted", "regulation"),
			mapping: header("gene_symbol"),
			want:    []MissingColumnsError{{Table: TableMapping, Missing: []string{"gene_id"}}},
		},
		{
			name:    "both deficient",
			deg:     header("gene_symbol", "log2fc", "p_value", "p_adjusted"),
			mapping: header("id", "symbol"),
			want: []MissingColumnsError{
				{Table: TableDEG, Missing: []string{"regulation"}},
				{Table: TableMapping, Missing: []string{"gene_id", "gene_symbol"}},
			},
		},
		{
			name:    "case sensitive",
			deg:     header("Gene_Symbol", "log2fc", "p_value", "p_adjusted", "regulation"),
			mapping: header("gene_id", "gene_symbol"),
			want:    []MissingColumnsError{{Table: TableDEG, Missing: []string{"gene_symbol"}}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.deg, tc.mapping)
			require.Error(t, err)

			var got []MissingColumnsError
			for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
				var mc *MissingColumnsError
				require.True(t, errors.As(e, &mc))
				got = append(got, *mc)
			}
			require.Equal(t, tc.want, got)

			var first *MissingColumnsError
			require.True(t, errors.As(err, &first))
			require.Equal(t, tc.want[0].Table, first.Table)
		})
	}
}

func TestMissingColumnsErrorMessage(t *testing.T) {
	err := Validate(header("gene_symbol", "log2fc", "p_value"), header("gene_id"))
	require.EqualError(t, err,
		"DEG file missing columns: p_adjusted, regulation\nMapping file missing columns: gene_symbol")
}
