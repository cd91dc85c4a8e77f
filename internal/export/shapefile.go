package export

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/gbr-features/internal/features"
)

// Attribute widths in the .dbf. Field names are limited to 10 bytes.
const (
	nameFieldSize = 254
	fidFieldSize  = 12
)

var shapefileFields = []shp.Field{
	shp.NumberField(features.ColumnFID, fidFieldSize),
	shp.StringField(features.ColumnID, features.IDLength),
	shp.StringField(features.ColumnName, nameFieldSize),
	shp.StringField(features.ColumnLocationName, nameFieldSize),
}

// WriteShapefile writes records as a polygon shapefile at path (the .shp;
// .shx and .dbf are written alongside). Records without polygon geometry
// are written as null shapes so attribute rows stay aligned.
func WriteShapefile(path string, records []features.Record) error {
	if !strings.HasSuffix(strings.ToLower(path), ".shp") {
		path += ".shp"
	}

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}

	nulls, err := writeShapes(w, records)
	w.Close()
	if err != nil {
		return err
	}

	// go-shp writes the attribute table as "<base>dbf".
	base := path[:len(path)-len(".shp")]
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return eris.Wrapf(err, "export: rename attribute table for %s", path)
	}

	if nulls > 0 {
		zap.L().Debug("export: wrote null shapes",
			zap.String("path", path),
			zap.Int("count", nulls),
		)
	}

	return nil
}

func writeShapes(w *shp.Writer, records []features.Record) (int, error) {
	if err := w.SetFields(shapefileFields); err != nil {
		return 0, eris.Wrap(err, "export: set shapefile fields")
	}

	var nulls int
	for _, r := range records {
		shape := toShape(r.Geometry)
		if _, ok := shape.(*shp.Null); ok {
			nulls++
		}

		row := int(w.Write(shape))
		attrs := []any{
			int(r.FID),
			r.ID,
			clip(r.Name, nameFieldSize),
			clip(r.LocationName, nameFieldSize),
		}
		for i, v := range attrs {
			if err := w.WriteAttribute(row, i, v); err != nil {
				return nulls, eris.Wrapf(err, "export: write attribute %d for %s", i, r.ID)
			}
		}
	}
	return nulls, nil
}

// toShape converts a polygonal geometry to a shapefile polygon. Every
// ring becomes one part. Anything else becomes a null shape.
func toShape(g geom.T) shp.Shape {
	var rings []*geom.LinearRing

	switch p := g.(type) {
	case *geom.Polygon:
		rings = polygonRings(p)
	case *geom.MultiPolygon:
		for i := range p.NumPolygons() {
			rings = append(rings, polygonRings(p.Polygon(i))...)
		}
	}

	parts := make([][]shp.Point, 0, len(rings))
	for _, ring := range rings {
		coords := ring.Coords()
		if len(coords) == 0 {
			continue
		}
		pts := make([]shp.Point, 0, len(coords))
		for _, c := range coords {
			pts = append(pts, shp.Point{X: c.X(), Y: c.Y()})
		}
		parts = append(parts, pts)
	}

	if len(parts) == 0 {
		return &shp.Null{}
	}
	poly := shp.Polygon(*shp.NewPolyLine(parts))
	return &poly
}

func polygonRings(p *geom.Polygon) []*geom.LinearRing {
	rings := make([]*geom.LinearRing, 0, p.NumLinearRings())
	for i := range p.NumLinearRings() {
		rings = append(rings, p.LinearRing(i))
	}
	return rings
}

// clip shortens s to at most n bytes without splitting a rune.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
