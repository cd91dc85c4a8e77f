package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/gbr-features/internal/features"
)

// WriteGeoJSON writes records as a GeoJSON FeatureCollection. Feature ids
// are the dataset identifiers; records without geometry get a null
// geometry.
func WriteGeoJSON(w io.Writer, records []features.Record) error {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(records)),
	}
	for _, r := range records {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       r.ID,
			Geometry: r.Geometry,
			Properties: map[string]any{
				features.ColumnFID:          r.FID,
				features.ColumnID:           r.ID,
				features.ColumnName:         r.Name,
				features.ColumnLocationName: r.LocationName,
			},
		})
	}

	if err := json.NewEncoder(w).Encode(fc); err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	return nil
}
