package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scendash/scendash/pkg/dataset"
	"github.com/scendash/scendash/pkg/dimensions"
	"github.com/scendash/scendash/pkg/filter"
	"github.com/scendash/scendash/pkg/render"
	"github.com/scendash/scendash/pkg/series"
)

func newDimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dims <dataset file>",
		Short: "Parse a dataset file and print its dimension options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			records, err := loadFile(args[0])
			if err != nil {
				return err
			}

			opts := dimensions.Discover(records, cfg.FilterableDimensions())
			fmt.Printf("%d records\n", len(records))
			for _, d := range cfg.FilterableDimensions() {
				fmt.Printf("%-10s %s\n", d, strings.Join(opts[d], ", "))
			}
			return nil
		},
	}
}

func newChartCmd() *cobra.Command {
	var (
		outPath  string
		title    string
		width    int
		height   int
		selected map[string]string
	)

	cmd := &cobra.Command{
		Use:   "chart <dataset file>",
		Short: "Filter a dataset file and render the grouped series as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			records, err := loadFile(args[0])
			if err != nil {
				return err
			}

			filters := make(filter.Set, len(selected))
			for k, v := range selected {
				filters[dataset.Dimension(k)] = v
			}

			engine := filter.NewEngine(cfg.DimensionExclusions())
			filtered := engine.Apply(records, filters)
			groups := series.Group(filtered, series.UnconstrainedFrom(filters))

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			opts := render.Options{Title: title, Width: width, Height: height}
			if err := render.PNG(out, groups, opts); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
			fmt.Printf("Wrote %d series (%d records) to %s\n", len(groups), len(filtered), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "chart.png", "Output PNG path")
	cmd.Flags().StringVar(&title, "title", "", "Chart title")
	cmd.Flags().IntVar(&width, "width", 1024, "Chart width in pixels")
	cmd.Flags().IntVar(&height, "height", 400, "Chart height in pixels")
	cmd.Flags().StringToStringVarP(&selected, "filter", "f", nil,
		`Filters as Dimension=Value pairs, e.g. -f Region=ON -f Scenario=Base ("All" = unconstrained)`)
	return cmd
}

// loadFile parses a local dataset file, picking the reader from the
// extension.
func loadFile(path string) ([]dataset.Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dataset.ParseXLSX(f)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return dataset.Parse(string(raw))
}
