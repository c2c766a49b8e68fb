package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"urban-heatmap/internal/config"
	"urban-heatmap/internal/dataset"
	"urban-heatmap/internal/loader"
	"urban-heatmap/internal/observability"
	"urban-heatmap/internal/server"
)

var (
	csvPath     string
	geojsonPath string
	addr        string
	verbose     bool
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "urban-heatmap",
		Short: "Serve the urban surface temperature anomaly dashboard",
		Long: `Urban Heatmap loads pre-computed surface temperature anomaly (ΔT)
data per urban centre, joins it against country boundaries, and serves
an interactive choropleth dashboard on a local web view.`,
		Run: func(cmd *cobra.Command, args []string) {
			idx, stats, err := buildIndex(cmd)
			if err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to load dashboard data: %w", err))
				os.Exit(1)
			}

			metrics := observability.NewMetrics()
			metrics.RecordJoin(stats)

			r := server.SetupRouter(idx, metrics)
			log.Printf("[server] dashboard listening on %s", addr)
			if err := r.Run(addr); err != nil {
				cmd.PrintErrln(fmt.Errorf("server stopped: %w", err))
				os.Exit(1)
			}
		},
	}

	// Flags (env-backed defaults, see internal/config)
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", cfg.CSVPath, "Path to the ΔT CSV table")
	rootCmd.PersistentFlags().StringVar(&geojsonPath, "geojson", cfg.GeoJSONPath, "Path to the boundary GeoJSON file")
	rootCmd.Flags().StringVar(&addr, "addr", cfg.HTTPAddr, "Listen address for the dashboard")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Additional commands
	addListCmd(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildIndex performs the one-shot load and join the whole process
// runs on. Any error here is fatal to startup.
func buildIndex(cmd *cobra.Command) (*dataset.JoinIndex, dataset.JoinStats, error) {
	if verbose {
		cmd.Println(fmt.Sprintf("Loading ΔT table from %s...", csvPath))
	}
	rows, err := loader.LoadTable(csvPath)
	if err != nil {
		return nil, dataset.JoinStats{}, err
	}

	if verbose {
		cmd.Println(fmt.Sprintf("Loading boundaries from %s...", geojsonPath))
	}
	fc, err := loader.LoadBoundaries(geojsonPath)
	if err != nil {
		return nil, dataset.JoinStats{}, err
	}

	idx, stats := dataset.BuildJoinIndex(rows, fc)
	log.Printf("[join] %d countries joined (%d table-only and %d boundary-only dropped)",
		stats.Joined, stats.TableOnly, stats.BoundaryOnly)

	return idx, stats, nil
}

// addListCmd adds a 'list' subcommand that prints the joined countries
// with their ΔT value for one selection, without starting the server.
func addListCmd(rootCmd *cobra.Command) {
	var seasonFlag, timeFlag string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List joined countries and their ΔT value for a selection",
		Run: func(cmd *cobra.Command, args []string) {
			sel, err := dataset.ParseSelection(seasonFlag, timeFlag)
			if err != nil {
				cmd.PrintErrln(err)
				os.Exit(1)
			}

			idx, _, err := buildIndex(cmd)
			if err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to load dashboard data: %w", err))
				os.Exit(1)
			}

			if idx.Len() == 0 {
				cmd.Println("No countries present in both sources.")
				return
			}

			values := idx.Project(sel)
			cmd.Println(fmt.Sprintf("ΔT values for %s:", sel.Label()))
			for _, id := range idx.Countries() {
				cmd.Println(fmt.Sprintf("  %s: %.3f°C", id, values[id]))
			}
		},
	}

	def := dataset.DefaultSelection()
	listCmd.Flags().StringVar(&seasonFlag, "season", string(def.Season), "Season: winter, spring, summer, or fall")
	listCmd.Flags().StringVar(&timeFlag, "time", string(def.Time), "Time of day: day or night")

	rootCmd.AddCommand(listCmd)
}
