package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumos/internal/diagfmt"
	"lumos/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Run the schema compiler and pinpoint its errors",
	Long: `Check invokes the external schema compiler on each file, extracts the
human-readable message from its output and locates the offending line.
With --error-output the compiler is skipped and the saved output is
parsed instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("error-output", "", "parse a saved compiler output file instead of running the compiler")
	checkCmd.Flags().String("format", "text", "output format (text|json)")
	checkCmd.Flags().Bool("no-cache", false, "do not reuse cached check results")
	checkCmd.Flags().Bool("context", false, "show the offending source line under each diagnostic")
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (default GOMAXPROCS)")
	checkCmd.Flags().Bool("absolute-paths", false, "print absolute file paths in diagnostics")
	checkCmd.Flags().Bool("drop-cache", false, "invalidate all cached check results first")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	errorOutput, err := cmd.Flags().GetString("error-output")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	showContext, err := cmd.Flags().GetBool("context")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	absolutePaths, err := cmd.Flags().GetBool("absolute-paths")
	if err != nil {
		return err
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return err
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("check: unsupported output format %q", outputFormat)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	config, err := loadProjectConfig()
	if err != nil {
		return err
	}

	checkOpts := driver.CheckOptions{
		Validator:      config.ValidatorConfig(),
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}
	if absolutePaths {
		checkOpts.PathMode = "absolute"
	}

	if dropCache {
		cache, err := driver.OpenDiskCache("lumos")
		if err != nil {
			return fmt.Errorf("check: open cache: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("check: drop cache: %w", err)
		}
	}

	if errorOutput != "" {
		raw, err := os.ReadFile(errorOutput)
		if err != nil {
			return fmt.Errorf("check: read %s: %w", errorOutput, err)
		}
		checkOpts.RawErrorText = string(raw)
	} else if !noCache {
		cache, err := driver.OpenDiskCache("lumos")
		if err == nil {
			checkOpts.Cache = cache
		}
	}

	results, err := driver.CheckPaths(cmd.Context(), args, checkOpts)
	if err != nil {
		return err
	}

	var hasErrors bool
	var hasDiagnostics bool
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "check: %s: %v\n", res.DisplayPath, res.Err)
			continue
		}
		diags := res.Bag.Items()
		if len(diags) == 0 {
			continue
		}
		hasDiagnostics = true
		switch outputFormat {
		case "json":
			if err := diagfmt.JSON(cmd.OutOrStdout(), res.DisplayPath, diags); err != nil {
				return err
			}
		default:
			diagfmt.Pretty(cmd.OutOrStdout(), res.DisplayPath, res.Doc, diags, diagfmt.PrettyOpts{
				Color:   useColor,
				Context: showContext,
			})
		}
	}

	if hasErrors {
		return fmt.Errorf("check: failed to check some files")
	}
	if hasDiagnostics {
		return fmt.Errorf("check: schema errors found")
	}
	return nil
}
