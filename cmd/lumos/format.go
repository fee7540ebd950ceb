package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lumos/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format LUMOS schema files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted schemas to stdout instead of rewriting files")
	fmtCmd.Flags().Int("indent", 0, "indent size, 2 or 4 (default from lumos.toml)")
	fmtCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	fmtCmd.Flags().Int("jobs", 0, "number of parallel workers (default GOMAXPROCS)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if indent != 0 && indent != 2 && indent != 4 {
		return fmt.Errorf("fmt: --indent must be 2 or 4")
	}

	mode, err := readUIMode(uiFlag)
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
	formatOpts := config.FormatOptions()
	if indent != 0 {
		formatOpts.IndentSize = indent
	}

	driverOpts := driver.FormatOptions{
		Check:   check,
		Stdout:  writeToStdout,
		Jobs:    jobs,
		Options: formatOpts,
	}

	var formatResults []driver.FormatResult
	useTUI := shouldUseTUI(mode) && !writeToStdout && outputFormat == "text"
	if useTUI {
		formatResults, err = runFormatWithUI(cmd.Context(), "formatting schemas", driverOpts, args)
	} else {
		formatResults, err = driver.FormatPaths(cmd.Context(), args, driverOpts)
	}
	if err != nil {
		return err
	}

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(formatResults, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(formatResults, check, quiet || useTUI, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(cmd.OutOrStdout(), formatResults, &hasErrors, &hasChanges); err != nil {
			return err
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtStdout(results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = io.WriteString(os.Stdout, res.Formatted)
	}
}

func renderFmtText(results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		*hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(os.Stdout, res.Path)
		} else {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

type fmtJSONResult struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, hasErrors, hasChanges *bool) error {
	payload := make([]fmtJSONResult, 0, len(results))
	for _, res := range results {
		entry := fmtJSONResult{Path: res.Path, Changed: res.Changed}
		if res.Err != nil {
			*hasErrors = true
			entry.Error = res.Err.Error()
		}
		if res.Changed {
			*hasChanges = true
		}
		payload = append(payload, entry)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
