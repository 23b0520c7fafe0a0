// -- cmd/analyze.go --
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/jakarta-cli/internal/analysis"
	"github.com/xkilldash9x/jakarta-cli/internal/config"
	"github.com/xkilldash9x/jakarta-cli/internal/mapping"
	"github.com/xkilldash9x/jakarta-cli/internal/observability"
	"github.com/xkilldash9x/jakarta-cli/internal/reporting"
)

// newAnalyzeCmd creates the `analyze` command.
func newAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [project-path]",
		Short: "Analyze a Java project's dependencies for jakarta migration readiness",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Flag overrides take precedence over config file and env.
			if err := viper.BindPFlag("analysis.mapping_table_path", cmd.Flags().Lookup("mapping")); err != nil {
				return err
			}
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			projectPath := "."
			if len(args) > 0 {
				projectPath = args[0]
			}

			table, err := mapping.Load(cfg.Analysis.MappingTablePath)
			if err != nil {
				return fmt.Errorf("failed to load mapping table: %w", err)
			}

			engine := analysis.NewEngine(logger, table)
			report, err := engine.AnalyzeProject(projectPath)
			if err != nil {
				return err
			}

			printAnalysisSummary(cmd, report)
			return writeDocument(report, viper.GetString("format"), viper.GetString("output"))
		},
	}

	analyzeCmd.Flags().StringP("output", "o", "", "Output file path for the JSON report. If unset, no report file is written.")
	analyzeCmd.Flags().StringP("format", "f", "json", "Report output format.")
	analyzeCmd.Flags().String("mapping", "", "Path to an external mapping-table resource. (Overrides config/env)")
	return analyzeCmd
}

// printAnalysisSummary renders the human-facing digest of a report.
func printAnalysisSummary(cmd *cobra.Command, report *analysis.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nAnalysis %s\n", report.ID)
	fmt.Fprintf(out, "  Project:    %s\n", report.ProjectPath)
	fmt.Fprintf(out, "  Artifacts:  %d\n", report.Graph.NodeCount())
	fmt.Fprintf(out, "  Blockers:   %d\n", len(report.Blockers))
	fmt.Fprintf(out, "  Conflicts:  %d\n", len(report.Conflicts))
	fmt.Fprintf(out, "  Risk:       %.2f\n", report.Risk.Level)
	fmt.Fprintf(out, "  Readiness:  %.2f (%s)\n", report.Readiness.Score, report.Readiness.Message)
	for _, b := range report.Blockers {
		fmt.Fprintf(out, "  [blocker] %s: %s\n", b.Type, b.Artifact.Coordinate())
	}
	for _, r := range report.Recommendations {
		fmt.Fprintf(out, "  [update]  %s -> %s\n", r.From.Coordinate(), r.To.Coordinate())
	}
}

// writeDocument writes a JSON document via the reporting package when an
// output path is set.
func writeDocument(document any, format, outputPath string) error {
	if outputPath == "" {
		return nil
	}
	reporter, err := reporting.New(format, outputPath)
	if err != nil {
		return err
	}
	defer reporter.Close()
	return reporter.Write(document)
}
