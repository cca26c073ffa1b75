package columns

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atmodata/atmodata/compress"
	"github.com/atmodata/atmodata/errs"
)

const sampleLog = `instrument: OM-3
calibrated: 2020-02-29
time;ozone;flag
84000;47.25;0
84010;;1
84020;48.5;0
`

func TestParse_HeaderRow(t *testing.T) {
	tbl, err := Parse(strings.NewReader(sampleLog), WithHeaderRow(2))
	require.NoError(t, err)

	require.Equal(t, []string{"instrument: OM-3", "calibrated: 2020-02-29"}, tbl.FileHeader)
	require.Equal(t, []string{"time", "ozone", "flag"}, tbl.Names)
	require.Equal(t, 3, tbl.Len())

	require.Equal(t, []string{"84000", "84010", "84020"}, tbl.Column("time"))
	require.Equal(t, []string{"47.25", "", "48.5"}, tbl.Column("ozone"))
	require.Nil(t, tbl.Column("missing"))
}

func TestParse_Floats(t *testing.T) {
	tbl, err := Parse(strings.NewReader(sampleLog), WithHeaderRow(2))
	require.NoError(t, err)

	ozone, err := tbl.Floats("ozone")
	require.NoError(t, err)
	require.Len(t, ozone, 3)
	require.Equal(t, 47.25, ozone[0])
	require.True(t, math.IsNaN(ozone[1]))
	require.Equal(t, 48.5, ozone[2])

	_, err = tbl.Floats("missing")
	require.ErrorIs(t, err, errs.ErrBadFormat)
}

func TestParse_FieldCountMismatch(t *testing.T) {
	t.Run("short row fails", func(t *testing.T) {
		_, err := Parse(strings.NewReader("a;b\n1;2\n3\n"))
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("header row beyond input", func(t *testing.T) {
		_, err := Parse(strings.NewReader("a;b\n"), WithHeaderRow(5))
		require.ErrorIs(t, err, errs.ErrBadFormat)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""))
		require.ErrorIs(t, err, errs.ErrEmptyData)
	})
}

func TestParse_CollapsedSeparators(t *testing.T) {
	content := "a b c\n1  2   3\n"

	_, err := Parse(strings.NewReader(content), WithSeparator(" "))
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	tbl, err := Parse(strings.NewReader(content),
		WithSeparator(" "), WithCollapsedSeparators(true))
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, tbl.Column("a"))
	require.Equal(t, []string{"3"}, tbl.Column("c"))
}

func TestParse_SyntheticNames(t *testing.T) {
	// No column header: the first row is data.
	tbl, err := Parse(strings.NewReader("1;2\n3;4\n"), WithSyntheticNames(true))
	require.NoError(t, err)

	require.Equal(t, []string{"col_001", "col_002"}, tbl.Names)
	require.Equal(t, []string{"1", "3"}, tbl.Column("col_001"))
	require.Equal(t, []string{"2", "4"}, tbl.Column("col_002"))
}

func TestParse_UpperNames(t *testing.T) {
	tbl, err := Parse(strings.NewReader("time;ozone\n1;2\n"), WithUpperNames(true))
	require.NoError(t, err)
	require.Equal(t, []string{"TIME", "OZONE"}, tbl.Names)
	require.Equal(t, []string{"2"}, tbl.Column("OZONE"))
}

func TestParse_EmptyLines(t *testing.T) {
	content := "a;b\n1;2\n\n3;4\n"

	_, err := Parse(strings.NewReader(content))
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	tbl, err := Parse(strings.NewReader(content), WithEmptyLinesSkipped(true))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
}

func TestParse_DuplicateColumnNames(t *testing.T) {
	_, err := Parse(strings.NewReader("a;a\n1;2\n"))
	require.ErrorIs(t, err, errs.ErrBadFormat)
}

func TestParse_InvalidOptions(t *testing.T) {
	_, err := Parse(strings.NewReader("a\n"), WithSeparator(""))
	require.Error(t, err)

	_, err = Parse(strings.NewReader("a\n"), WithHeaderRow(-1))
	require.Error(t, err)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain", func(t *testing.T) {
		path := filepath.Join(dir, "log.csv")
		require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

		tbl, err := ParseFile(path, WithHeaderRow(2))
		require.NoError(t, err)
		require.Equal(t, path, tbl.Source)
		require.Equal(t, 3, tbl.Len())
	})

	t.Run("gzip", func(t *testing.T) {
		packed, err := compress.NewGzipCodec().Compress([]byte(sampleLog))
		require.NoError(t, err)

		path := filepath.Join(dir, "log.csv.gz")
		require.NoError(t, os.WriteFile(path, packed, 0o644))

		tbl, err := ParseFile(path, WithHeaderRow(2))
		require.NoError(t, err)
		require.Equal(t, 3, tbl.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(dir, "nope.csv"))
		require.Error(t, err)
	})
}

func TestTable_Row(t *testing.T) {
	tbl, err := Parse(strings.NewReader(sampleLog), WithHeaderRow(2))
	require.NoError(t, err)

	require.Equal(t, []string{"84000", "47.25", "0"}, tbl.Row(0))
	require.Equal(t, []string{"84010", "", "1"}, tbl.Row(1))
}

func TestTable_Append(t *testing.T) {
	t.Run("matching columns", func(t *testing.T) {
		a, err := Parse(strings.NewReader("x;y\n1;2\n"))
		require.NoError(t, err)
		b, err := Parse(strings.NewReader("x;y\n3;4\n5;6\n"))
		require.NoError(t, err)

		require.NoError(t, a.Append(b))
		require.Equal(t, 3, a.Len())
		require.Equal(t, []string{"1", "3", "5"}, a.Column("x"))
		require.Equal(t, 2, b.Len())
	})

	t.Run("mismatched columns", func(t *testing.T) {
		a, err := Parse(strings.NewReader("x;y\n1;2\n"))
		require.NoError(t, err)
		b, err := Parse(strings.NewReader("x;z\n3;4\n"))
		require.NoError(t, err)

		require.ErrorIs(t, a.Append(b), errs.ErrLengthMismatch)
	})
}

func TestParse_CRLF(t *testing.T) {
	tbl, err := Parse(strings.NewReader("a;b\r\n1;2\r\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, tbl.Column("a"))
	require.Equal(t, []string{"2"}, tbl.Column("b"))
}
