package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewDBCommand creates the db command group.
func NewDBCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBPathCommand(opts))
	cmd.AddCommand(newDBVersionCommand(opts))
	cmd.AddCommand(newDBTablesCommand(opts))
	cmd.AddCommand(newDBMigrateCommand(opts))

	return cmd
}

func newDBPathCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "path",
		Short:         "Print the database path",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return formatter(cmd, opts).Print(map[string]string{"path": opts.DBPath}, func(f *OutputFormatter) {
				f.Printf("%s\n", opts.DBPath)
			})
		},
	}
}

// SchemaVersionOutput reports the applied schema version. Version is nil
// when no migration has been applied.
type SchemaVersionOutput struct {
	Version *int `json:"version" yaml:"version"`
	Pending int  `json:"pending" yaml:"pending"`
}

func newDBVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the applied schema version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx, opts, false)
			if err != nil {
				return err
			}
			defer st.Close()

			version, ok, err := st.SchemaVersion(ctx)
			if err != nil {
				return failure("failed to read schema version", err)
			}
			pending, err := st.Pending(ctx)
			if err != nil {
				return failure("failed to read pending migrations", err)
			}

			out := SchemaVersionOutput{Pending: len(pending)}
			if ok {
				out.Version = &version
			}
			return formatter(cmd, opts).Print(out, func(f *OutputFormatter) {
				if !ok {
					f.Printf("none (%d pending)\n", out.Pending)
					return
				}
				f.Printf("%d (%d pending)\n", version, out.Pending)
			})
		},
	}
}

func newDBTablesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "tables",
		Short:         "List the tables in the database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx, opts, false)
			if err != nil {
				return err
			}
			defer st.Close()

			tables, err := st.Tables(ctx)
			if err != nil {
				return failure("failed to list tables", err)
			}
			return formatter(cmd, opts).Print(tables, func(f *OutputFormatter) {
				if len(tables) > 0 {
					f.Printf("%s\n", strings.Join(tables, "\n"))
				}
			})
		},
	}
}

func newDBMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "migrate",
		Short:         "Apply pending migrations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx, opts, false)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Migrate(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to migrate database", err)
			}
			return formatter(cmd, opts).Print(map[string]int{"applied": n}, func(f *OutputFormatter) {
				f.Printf("Applied %d migrations.\n", n)
			})
		},
	}
}
