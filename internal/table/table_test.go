package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCopiesInputs(t *testing.T) {
	cols := []string{"a", "b"}
	rows := [][]string{{"1", "2"}}
	tb := MustNew(cols, rows)

	cols[0] = "x"
	rows[0][0] = "9"
	require.Equal(t, []string{"a", "b"}, tb.Columns())
	v, ok := tb.Value(0, "a")
	require.True(t, ok)
	require.Equal(t, "1", v)

	r := tb.Row(0)
	r[1] = "changed"
	v, _ = tb.Value(0, "b")
	require.Equal(t, "2", v)
}

func TestNewRejectsRaggedRows(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]string{{"1"}})
	require.Error(t, err)
}

func TestMissingKeepsRequestOrder(t *testing.T) {
	tb := MustNew([]string{"c", "a"}, nil)
	require.Equal(t, []string{"b", "d"}, tb.Missing([]string{"a", "b", "c", "d"}))
	require.Empty(t, tb.Missing([]string{"a", "c"}))
}

func TestDuplicateHeaderResolvesToFirst(t *testing.T) {
	tb := MustNew([]string{"k", "k"}, [][]string{{"first", "second"}})
	v, _ := tb.Value(0, "k")
	require.Equal(t, "first", v)
}

func TestSelectAndRename(t *testing.T) {
	tb := MustNew([]string{"a", "b", "c"}, [][]string{{"1", "2", "3"}, {"4", "5", "6"}})

	sel, err := tb.Select("c", "a")
	require.NoError(t, err)
	require.True(t, sel.Equal(MustNew([]string{"c", "a"}, [][]string{{"3", "1"}, {"6", "4"}})))

	ren, err := sel.Rename("c", "z")
	require.NoError(t, err)
	require.Equal(t, []string{"z", "a"}, ren.Columns())
	require.Equal(t, []string{"c", "a"}, sel.Columns())

	_, err = tb.Select("nope")
	require.Error(t, err)
	_, err = tb.Rename("nope", "x")
	require.Error(t, err)
}

func TestColumn(t *testing.T) {
	tb := MustNew([]string{"a"}, [][]string{{"x"}, {"y"}})
	col, err := tb.Column("a")
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, col)
	_, err = tb.Column("b")
	require.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	in := "\ufeffgene_symbol,log2fc,extra\nA,2.0,x\nB,-1.50\n"
	tb, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"gene_symbol", "log2fc", "extra"}, tb.Columns())
	require.Equal(t, 2, tb.Len())
	require.Equal(t, []string{"B", "-1.50", ""}, tb.Row(1))
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, ErrNoColumns)

	_, err = ReadCSV(strings.NewReader("a,b\n1,2,3\n"))
	require.ErrorContains(t, err, "line 2: expected 2 fields, saw 3")
}

func TestReadCSVHeaderOnly(t *testing.T) {
	tb, err := ReadCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	require.Equal(t, 0, tb.Len())
}

func TestWriteCSVRoundTripsText(t *testing.T) {
	tb := MustNew([]string{"gene_symbol", "note"}, [][]string{{"ALPHA", "a,b"}, {"BETA", "0.010"}})
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tb))
	require.Equal(t, "gene_symbol,note\nALPHA,\"a,b\"\nBETA,0.010\n", buf.String())

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.True(t, back.Equal(tb))
}
