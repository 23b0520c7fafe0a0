// -- cmd/plan.go --
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/jakarta-cli/internal/analysis"
	"github.com/xkilldash9x/jakarta-cli/internal/config"
	"github.com/xkilldash9x/jakarta-cli/internal/mapping"
	"github.com/xkilldash9x/jakarta-cli/internal/observability"
	"github.com/xkilldash9x/jakarta-cli/internal/planner"
)

// newPlanCmd creates the `plan` command. It runs a fresh analysis and folds
// the result into a phased migration plan.
func newPlanCmd() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan [project-path]",
		Short: "Generate a phased javax to jakarta migration plan for a project",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
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

			p := planner.NewPlanner(logger, nil, cfg.Planner.MaxSourceFiles)
			plan, err := p.CreatePlan(projectPath, report)
			if err != nil {
				return err
			}

			printPlanSummary(cmd, plan)
			return writeDocument(plan, viper.GetString("format"), viper.GetString("output"))
		},
	}

	planCmd.Flags().StringP("output", "o", "", "Output file path for the JSON plan. If unset, no plan file is written.")
	planCmd.Flags().StringP("format", "f", "json", "Plan output format.")
	planCmd.Flags().String("mapping", "", "Path to an external mapping-table resource. (Overrides config/env)")
	return planCmd
}

func printPlanSummary(cmd *cobra.Command, plan *planner.MigrationPlan) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration plan %s (%d phase(s), estimated %s)\n", plan.ID, len(plan.Phases), plan.TotalDuration)
	for _, phase := range plan.Phases {
		fmt.Fprintf(out, "  %d. %s [%s]\n", phase.Index, phase.Description, phase.Duration)
	}
	if len(plan.RecipesApplied) > 0 {
		fmt.Fprintf(out, "  Recipes: %v\n", plan.RecipesApplied)
	}
}
