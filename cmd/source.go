package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/gbr-features/internal/features"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Show where the features dataset is read from",
	Long:  "Resolves the configured dataset location (or --source) to the URL or path the loader reads, without downloading anything.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		location := cfg.Source.URL
		if src, _ := cmd.Flags().GetString("source"); src != "" {
			location = src
		}

		src, err := features.ResolveSource(location, cfg.Source.Region)
		if err != nil {
			return eris.Wrap(err, "source")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s %s\n", "Location", src.Location) //nolint:errcheck
		if src.Remote() {
			fmt.Fprintf(out, "%-10s %s\n", "URL", src.URL) //nolint:errcheck
		} else {
			fmt.Fprintf(out, "%-10s %s\n", "Path", src.Path) //nolint:errcheck
		}
		fmt.Fprintf(out, "%-10s %s, %s, %s, %s, %s\n", "Columns", //nolint:errcheck
			features.ColumnFID, features.ColumnID, features.ColumnName,
			features.ColumnLocationName, features.ColumnGeometry)
		return nil
	},
}

func init() {
	sourceCmd.Flags().String("source", "", "dataset location to resolve (default: from config)")
	rootCmd.AddCommand(sourceCmd)
}
