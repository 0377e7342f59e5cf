package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// maxImportLineBytes bounds a single path line.
const maxImportLineBytes = 64 * 1024

// AddImportCommand adds the import command to the root command.
func AddImportCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <project> <file|->",
		Short: "Import asset paths, one per line",
		Long: `Import asset paths into a project. Each line is one path such as
"web/img/hero.png". Blank lines, lines starting with '#' and paths already in
the project are skipped. New items start as pending.

Use '-' to read from standard input.

Examples:
  assetrack import website-redesign assets.txt
  find assets -type f | assetrack import website-redesign -`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeArgs(argProject, argFile),
		RunE: func(cmd *cobra.Command, args []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}

			var r io.Reader
			if args[1] == "-" {
				r = cmd.InOrStdin()
			} else {
				f, err := os.Open(args[1]) //#nosec G304 -- user-specified import file
				if err != nil {
					return fmt.Errorf("failed to open import file: %w", err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}
			return runImport(cmd.Context(), ec, cmd.OutOrStdout(), args[0], r)
		},
	}
	root.AddCommand(cmd)
}

func runImport(ctx context.Context, ec *ExecutionContext, w io.Writer, project string, r io.Reader) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	}

	result, err := ec.Store.ImportPaths(ctx, project, ec.Actor(), lines)
	if err != nil {
		return err
	}

	out := ec.Output(w)
	if ec.JSON() {
		return out.JSON(result)
	}
	out.Success(fmt.Sprintf("Imported %d %s into %s", len(result.Imported), pluralize(len(result.Imported), "item", "items"), project))
	if result.Skipped > 0 {
		out.Info(fmt.Sprintf("Skipped %d blank, comment or duplicate %s", result.Skipped, pluralize(result.Skipped, "line", "lines")))
	}
	return nil
}

// readLines returns every line of r without trailing newlines.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxImportLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read paths: %w", err)
	}
	return lines, nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
