package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/chainsim/internal/catalog"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List contracts, operations and argument signatures",
		Long: `List every contract operation the simulator routes, with its
positional argument signature. Read-only operations are marked.

Examples:
  chainsim catalog
  chainsim catalog --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, cmd)
		},
	}
	return cmd
}

func runCatalog(opts *RootOptions, cmd *cobra.Command) error {
	c, err := catalog.Default()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(c.Contracts())
	}

	w := cmd.OutOrStdout()
	for i, ct := range c.Contracts() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s - %s\n", ct.Name, ct.Purpose)
		for _, op := range ct.Operations {
			fmt.Fprintf(w, "  %s\n", signature(op))
		}
	}
	return nil
}

// signature renders an operation as "name(arg type, ...)" with a
// " [readonly]" suffix for lookups.
func signature(op catalog.Operation) string {
	args := make([]string, len(op.Args))
	for i, a := range op.Args {
		args[i] = a.Name + " " + string(a.Type)
	}
	s := fmt.Sprintf("%s(%s)", op.Name, strings.Join(args, ", "))
	if op.ReadOnly {
		s += " [readonly]"
	}
	return s
}
