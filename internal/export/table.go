package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/sells-group/gbr-features/internal/features"
)

// WriteTable prints records as fixed-width text.
func WriteTable(w io.Writer, records []features.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No features selected")
		return err
	}

	if _, err := fmt.Fprintf(w, "%-8s %-11s %-30s %-40s %s\n",
		"FID", "UNIQUE_ID", "GBR_NAME", "LOC_NAME_S", "GEOMETRY"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 110)); err != nil {
		return err
	}

	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%-8d %-11s %-30s %-40s %s\n",
			r.FID, r.ID, truncate(r.Name, 30), truncate(r.LocationName, 40), describe(r.Geometry)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%d features\n", len(records))
	return err
}

// describe summarises a geometry as its type and bounding box.
func describe(g geom.T) string {
	if g == nil {
		return "-"
	}
	b := g.Bounds()
	name := strings.TrimPrefix(fmt.Sprintf("%T", g), "*geom.")
	if b.IsEmpty() {
		return name + " (empty)"
	}
	return fmt.Sprintf("%s [%.4f %.4f, %.4f %.4f]", name, b.Min(0), b.Min(1), b.Max(0), b.Max(1))
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
