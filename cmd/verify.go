// -- cmd/verify.go --
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/jakarta-cli/internal/config"
	"github.com/xkilldash9x/jakarta-cli/internal/observability"
	"github.com/xkilldash9x/jakarta-cli/internal/verifier"
)

// newVerifyCmd creates the `verify` command.
func newVerifyCmd() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify <artifact-path>",
		Short: "Run a packaged artifact and classify any runtime failure",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("verifier.timeout", cmd.Flags().Lookup("timeout")); err != nil {
				return err
			}
			if err := viper.BindPFlag("verifier.java_bin", cmd.Flags().Lookup("java-bin")); err != nil {
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

			passthroughArgs, _ := cmd.Flags().GetStringArray("arg")
			workDir, _ := cmd.Flags().GetString("workdir")

			v := verifier.NewVerifier(logger)
			result := v.VerifyRuntime(cmd.Context(), args[0], verifier.Options{
				Timeout: cfg.Verifier.Timeout,
				Args:    passthroughArgs,
				JavaBin: cfg.Verifier.JavaBin,
				WorkDir: workDir,
			})

			printVerificationSummary(cmd, result)
			if err := writeDocument(result, viper.GetString("format"), viper.GetString("output")); err != nil {
				return err
			}

			// The exit code mirrors the verdict so CI pipelines can gate on it.
			if result.Status != verifier.StatusSuccess {
				return fmt.Errorf("verification ended with status %s", result.Status)
			}
			return nil
		},
	}

	verifyCmd.Flags().StringP("output", "o", "", "Output file path for the JSON result. If unset, no result file is written.")
	verifyCmd.Flags().StringP("format", "f", "json", "Result output format.")
	verifyCmd.Flags().Duration("timeout", 30*time.Second, "Deadline for process exit. (Overrides config/env)")
	verifyCmd.Flags().String("java-bin", "", "JVM binary used for .jar artifacts. (Overrides config/env)")
	verifyCmd.Flags().StringArray("arg", nil, "Argument passed through to the artifact. Repeatable.")
	verifyCmd.Flags().String("workdir", "", "Working directory for the child process.")
	return verifyCmd
}

func printVerificationSummary(cmd *cobra.Command, result verifier.VerificationResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nVerification: %s\n", result.Status)
	fmt.Fprintf(out, "  Duration:  %s\n", result.Metrics.Duration)
	fmt.Fprintf(out, "  Exit code: %d\n", result.Metrics.ExitCode)
	if result.ErrorAnalysis != nil {
		fmt.Fprintf(out, "  Category:  %s (confidence %.2f)\n", result.ErrorAnalysis.Category, result.ErrorAnalysis.Confidence)
		fmt.Fprintf(out, "  Detail:    %s\n", result.ErrorAnalysis.Message)
	}
	for _, rec := range result.Recommendations {
		fmt.Fprintf(out, "  Hint: %s\n", rec)
	}
}
