package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
	"github.com/heartmarshall/pollution-reporter/internal/service/report"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print report counts per pollution type",
	Long: `Print the same counts the public dashboard shows, read directly from
storage without the cache.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	st, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := report.NewService(logger, st.Reports, nil, report.Limits{
		MaxFiles:     cfg.Upload.MaxFiles,
		MaxFileBytes: cfg.Upload.MaxFileBytes,
	})
	stats, err := svc.Stats(ctx)
	if err != nil {
		return err
	}

	if statsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		byType := make(map[string]int, len(stats.ByType))
		for t, n := range stats.ByType {
			byType[t.String()] = n
		}
		return enc.Encode(map[string]any{
			"total":       stats.Total,
			"byType":      byType,
			"generatedAt": stats.GeneratedAt,
		})
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, t := range domain.PollutionTypes {
		fmt.Fprintf(w, "%s\t%d\n", t, stats.ByType[t])
	}
	fmt.Fprintf(w, "Total\t%d\n", stats.Total)
	return w.Flush()
}
