package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"lumos/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new LUMOS schema project",
	Long: `Initialize a new LUMOS project by creating a project manifest (lumos.toml)
and an example schema (main.lumos). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var validPackageName = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

const exampleSchema = `#[account]
struct Example {
    owner:  PublicKey;
    amount: u64;
}
`

func runInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if filepath.IsAbs(arg) {
			target = arg
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.ToLower(filepath.Base(target))
	if !validPackageName.MatchString(name) {
		name = "lumos-project"
	}

	manifestPath, err := project.Scaffold(target, name)
	if err != nil {
		return err
	}

	schemaPath := filepath.Join(target, "main.lumos")
	if _, err := os.Stat(schemaPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(schemaPath, []byte(exampleSchema), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", schemaPath)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifestPath)
	return nil
}
