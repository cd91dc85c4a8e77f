package features

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// square returns a closed unit polygon anchored at x, y.
func square(x, y float64) *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY, []float64{
		x, y, x, y + 1, x + 1, y + 1, x + 1, y, x, y,
	}, []int{10})
}

// testTable is a small slice of the GBR dataset.
func testTable() Table {
	return Table{
		{FID: 1, ID: "10001100101", Name: "Arlington Reef", LocationName: "Arlington Reef (16-064)", Geometry: square(146, -16)},
		{FID: 2, ID: "10002200202", Name: "", LocationName: "U/N Reef (16-065)", Geometry: square(147, -16)},
		{FID: 3, ID: "10003300303", Name: "Green Island", LocationName: "Green Island Lagoon", Geometry: square(145, -16)},
		{FID: 4, ID: "10004400404", Name: "Heron Reef", LocationName: "HERON REEF LAGOON", Geometry: square(151, -23)},
		{FID: 5, ID: "10005500505", Name: "Lizard Island", LocationName: "Lizard Island", Geometry: nil},
	}
}

func fids(records []Record) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.FID)
	}
	return out
}

func kinds(warnings []Warning) []WarningKind {
	out := make([]WarningKind, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Kind)
	}
	return out
}

// fixtureSchema mirrors the published dataset: every column optional,
// geometry stored as plain binary WKB.
var fixtureSchema = parquet.NewSchema("gbr_features", parquet.Group{
	ColumnFID:          parquet.Optional(parquet.Int(64)),
	ColumnID:           parquet.Optional(parquet.String()),
	ColumnName:         parquet.Optional(parquet.String()),
	ColumnLocationName: parquet.Optional(parquet.String()),
	ColumnGeometry:     parquet.Optional(parquet.Leaf(parquet.ByteArrayType)),
})

// encodeParquet writes rows as a parquet file in memory. Rows are built
// column by column against fixtureSchema; an empty geometry is written
// as null.
func encodeParquet(t *testing.T, rows []parquetRow) []byte {
	t.Helper()

	index := func(name string) int {
		leaf, ok := fixtureSchema.Lookup(name)
		require.True(t, ok, "fixture schema has no column %s", name)
		return leaf.ColumnIndex
	}
	fidCol, idCol := index(ColumnFID), index(ColumnID)
	nameCol, locCol := index(ColumnName), index(ColumnLocationName)
	geomCol := index(ColumnGeometry)

	out := make([]parquet.Row, 0, len(rows))
	for _, r := range rows {
		row := make(parquet.Row, len(fixtureSchema.Columns()))
		row[fidCol] = parquet.Int64Value(r.FID).Level(0, 1, fidCol)
		row[idCol] = parquet.ByteArrayValue([]byte(r.ID)).Level(0, 1, idCol)
		row[nameCol] = parquet.ByteArrayValue([]byte(r.Name)).Level(0, 1, nameCol)
		row[locCol] = parquet.ByteArrayValue([]byte(r.LocationName)).Level(0, 1, locCol)
		if len(r.Geometry) == 0 {
			row[geomCol] = parquet.NullValue().Level(0, 0, geomCol)
		} else {
			row[geomCol] = parquet.ByteArrayValue(r.Geometry).Level(0, 1, geomCol)
		}
		out = append(out, row)
	}

	var buf bytes.Buffer
	w := parquet.NewWriter(&buf, fixtureSchema)
	_, err := w.WriteRows(out)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// rowsFor converts records to their on-disk form.
func rowsFor(t *testing.T, table Table) []parquetRow {
	t.Helper()
	rows := make([]parquetRow, 0, len(table))
	for _, r := range table {
		row := parquetRow{FID: r.FID, ID: r.ID, Name: r.Name, LocationName: r.LocationName}
		if r.Geometry != nil {
			data, err := wkb.Marshal(r.Geometry, wkb.NDR)
			require.NoError(t, err)
			row.Geometry = data
		}
		rows = append(rows, row)
	}
	return rows
}
