package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gbr-features/internal/config"
	"github.com/sells-group/gbr-features/internal/export"
	"github.com/sells-group/gbr-features/internal/features"
	"github.com/sells-group/gbr-features/internal/fetcher"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Fetch GBR features, optionally filtered by site name and/or ID",
	Long: `Downloads the GBR complete features dataset and returns the requested subset.

--name matches any location name containing the value, ignoring case.
--id matches the 11-character UNIQUE_ID exactly.
Both flags may be repeated or given comma-separated values. When a filter
matches nothing, the features matched by the other filter are returned; when
no filter matches, every feature is returned.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		formatStr, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		if format.NeedsPath() && output == "" {
			return eris.Errorf("features: --output is required for %s format", format)
		}

		req := buildRequest(cmd)
		svc := features.NewService(newLoader(cmd, cfg))

		res, err := svc.GetFeatures(ctx, req)
		if err != nil {
			return eris.Wrap(err, "features")
		}

		zap.L().Info("features selected",
			zap.String("command", "features"),
			zap.Stringer("request", res.Kind),
			zap.Int("selected", len(res.Records)),
			zap.Int("total", res.Total),
			zap.Bool("fallback", res.Fallback),
		)

		return writeResult(cmd.OutOrStdout(), format, output, res.Records)
	},
}

func init() {
	featuresCmd.Flags().StringSlice("name", nil, "site name to match (partial, case-insensitive); repeatable")
	featuresCmd.Flags().StringSlice("id", nil, "11-character site UNIQUE_ID to match; repeatable")
	featuresCmd.Flags().String("format", string(export.FormatTable), "output format: table, geojson or shapefile")
	featuresCmd.Flags().String("output", "", "output file (required for shapefile; default stdout)")
	featuresCmd.Flags().String("source", "", "dataset location: s3://, https://, file:// or a local path (default: from config)")
	rootCmd.AddCommand(featuresCmd)
}

// buildRequest maps the filter flags to a request. A flag that was not
// set leaves its filter unsupplied.
func buildRequest(cmd *cobra.Command) features.Request {
	var req features.Request
	if cmd.Flags().Changed("name") {
		names, _ := cmd.Flags().GetStringSlice("name")
		req.Names = features.Texts(names...)
	}
	if cmd.Flags().Changed("id") {
		ids, _ := cmd.Flags().GetStringSlice("id")
		req.IDs = features.Texts(ids...)
	}
	return req
}

// newLoader builds the dataset loader from config, honouring --source.
func newLoader(cmd *cobra.Command, c *config.Config) *features.Loader {
	location := c.Source.URL
	if src, _ := cmd.Flags().GetString("source"); src != "" {
		location = src
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:         c.Fetch.UserAgent,
		Timeout:           c.Fetch.Timeout(),
		MaxRetries:        c.Fetch.MaxRetries,
		RequestsPerSecond: c.Fetch.RequestsPerSecond,
	})

	return features.NewLoader(f, features.LoaderOptions{
		Location: location,
		Region:   c.Source.Region,
		TempDir:  c.Source.TempDir,
	})
}

// writeResult encodes records to output, or to w when output is empty.
func writeResult(w io.Writer, format export.Format, output string, records []features.Record) error {
	if format == export.FormatShapefile {
		if err := export.WriteShapefile(output, records); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %d features to %s\n", len(records), output) //nolint:errcheck
		return nil
	}

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return eris.Wrapf(err, "features: create %s", output)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch format {
	case export.FormatGeoJSON:
		return export.WriteGeoJSON(w, records)
	default:
		return export.WriteTable(w, records)
	}
}

