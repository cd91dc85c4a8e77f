// Package export writes feature records as a text table, GeoJSON or an
// ESRI shapefile.
package export

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	FormatTable     Format = "table"
	FormatGeoJSON   Format = "geojson"
	FormatShapefile Format = "shapefile"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatTable, FormatGeoJSON, FormatShapefile}

// ParseFormat resolves a user-supplied format name. "json" and "shp" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "geojson", "json":
		return FormatGeoJSON, nil
	case "shapefile", "shp":
		return FormatShapefile, nil
	default:
		return "", eris.Errorf("export: unknown format %q", s)
	}
}

// NeedsPath reports whether the format must be written to a file.
func (f Format) NeedsPath() bool {
	return f == FormatShapefile
}
