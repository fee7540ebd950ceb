package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumos/internal/driver"
	"lumos/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.lumos|directory>",
	Short: "Apply available quick fixes to schema files",
	Long:  "Run the checker, surface available quick fixes, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all non-conflicting fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "report fixes without rewriting files")
	fixCmd.Flags().String("error-output", "", "parse a saved compiler output file instead of running the compiler")
}

func runFix(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	errorOutput, err := cmd.Flags().GetString("error-output")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// Fix identifiers are only stable within one file.
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	config, err := loadProjectConfig()
	if err != nil {
		return err
	}

	fixOpts := driver.FixOptions{
		Check: driver.CheckOptions{
			Validator:      config.ValidatorConfig(),
			MaxDiagnostics: maxDiagnostics,
		},
		Apply: fix.ApplyOptions{
			Mode:     mode,
			TargetID: targetID,
		},
		DryRun: dryRun,
	}
	if errorOutput != "" {
		raw, err := os.ReadFile(errorOutput)
		if err != nil {
			return fmt.Errorf("fix: read %s: %w", errorOutput, err)
		}
		fixOpts.Check.RawErrorText = string(raw)
	}

	results, err := driver.FixPaths(cmd.Context(), []string{targetPath}, fixOpts)
	if err != nil {
		return err
	}

	var hasErrors bool
	var applied int
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "fix: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Result == nil {
			continue
		}
		applied += len(res.Result.Applied)
		if quiet {
			continue
		}
		for _, a := range res.Result.Applied {
			verb := "applied"
			if dryRun {
				verb = "would apply"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s (%s)\n", verb, res.Path, a.Title, a.ID)
		}
		for _, s := range res.Result.Skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "skipped %s: %s (%s)\n", res.Path, s.Title, s.Reason)
		}
	}

	if hasErrors {
		return fmt.Errorf("fix: failed to fix some files")
	}
	if applied == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "no applicable fixes found")
		}
		return nil
	}
	return nil
}
