package cli

import (
	"github.com/spf13/cobra"

	"selpkm/internal/importer"
)

// NewImportCommand creates the import command.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import DIR",
		Short: "Import a directory of markdown files",
		Long: `Import a directory of markdown files.

The directory becomes a top-level container (named after the directory
unless --name is given) and each sub-folder a child container named
"<root>/<sub/folder>". Every .md file becomes a note titled by its first
heading. Hidden directories are skipped.

Examples:
  selpkm import ~/vault
  selpkm import ./notes --name Journal`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx, opts, true)
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := importer.New(st, st).Import(ctx, args[0], name)
			printErr := formatter(cmd, opts).Print(stats, func(f *OutputFormatter) {
				f.Printf("Imported %d notes into %d new containers (%d errors).\n",
					stats.Notes, stats.Containers, stats.Errors)
			})
			if err != nil {
				return failure("import failed", err)
			}
			return printErr
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the root container (default: directory name)")
	return cmd
}
