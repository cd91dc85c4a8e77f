package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/sells-group/gbr-features/internal/export"
	"github.com/sells-group/gbr-features/internal/features"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"features", "source"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "gbr-features", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestFeaturesCommand_Flags(t *testing.T) {
	for _, name := range []string{"name", "id", "format", "output", "source"} {
		require.NotNil(t, featuresCmd.Flags().Lookup(name), "features command should have --%s flag", name)
	}
	assert.Equal(t, "table", featuresCmd.Flags().Lookup("format").DefValue)
}

func newFilterCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().StringSlice("name", nil, "")
	c.Flags().StringSlice("id", nil, "")
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantKind  features.RequestKind
		wantNames int
		wantIDs   int
	}{
		{"no flags", nil, features.KindAll, 0, 0},
		{"name", []string{"--name", "reef"}, features.KindName, 1, 0},
		{"comma separated names", []string{"--name", "reef,lagoon"}, features.KindName, 2, 0},
		{"repeated ids", []string{"--id", "10001100101", "--id", "10002200202"}, features.KindID, 0, 2},
		{"both", []string{"--name", "heron", "--id", "10004400404"}, features.KindNameAndID, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := buildRequest(newFilterCmd(t, tt.args...))
			assert.Equal(t, tt.wantKind, req.Kind())
			assert.Len(t, req.Names, tt.wantNames)
			assert.Len(t, req.IDs, tt.wantIDs)
		})
	}
}

func TestWriteResult_GeoJSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.geojson")
	records := []features.Record{{FID: 1, ID: "10001100101", LocationName: "Arlington Reef"}}

	var stdout bytes.Buffer
	require.NoError(t, writeResult(&stdout, export.FormatGeoJSON, out, records))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "FeatureCollection", raw["type"])
}

func TestWriteResult_Shapefile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reefs.shp")
	var stdout bytes.Buffer
	require.NoError(t, writeResult(&stdout, export.FormatShapefile, out, nil))
	assert.Contains(t, stdout.String(), "Wrote 0 features")
	assert.FileExists(t, out)
}

// writeDataset writes a two-row features parquet file.
func writeDataset(t *testing.T, dir string) string {
	t.Helper()

	type row struct {
		FID          int64  `parquet:"fid,optional"`
		ID           string `parquet:"UNIQUE_ID,optional"`
		Name         string `parquet:"GBR_NAME,optional"`
		LocationName string `parquet:"LOC_NAME_S,optional"`
		Geometry     []byte `parquet:"geometry"`
	}

	poly := geom.NewPolygonFlat(geom.XY, []float64{146, -16, 146, -15, 147, -15, 147, -16, 146, -16}, []int{10})
	g, err := wkb.Marshal(poly, wkb.NDR)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, parquet.Write(&buf, []row{
		{FID: 1, ID: "10001100101", Name: "Arlington Reef", LocationName: "Arlington Reef (16-064)", Geometry: g},
		{FID: 2, ID: "10002200202", LocationName: "Green Island Lagoon", Geometry: g},
	}))

	path := filepath.Join(dir, "features.parquet")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestFeaturesCommand_Execute(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck

	path := writeDataset(t, dir)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"features", "--source", path, "--name", "LAGOON", "--format", "geojson"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var raw struct {
		Features []struct {
			ID string `json:"id"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &raw))
	require.Len(t, raw.Features, 1)
	assert.Equal(t, "10002200202", raw.Features[0].ID)
}

func TestSourceCommand_Execute(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"source"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(),
		"https://rimrep-data-public.s3.ap-southeast-2.amazonaws.com/gbrmpa-complete-gbr-features/data.parquet")
}
