package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"selpkm/internal/config"
	"selpkm/internal/service"
	"selpkm/internal/storage"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	DBPath  string
	Capture string
	Inbox   string

	// LogLevel is raised to debug by --verbose when set.
	LogLevel *slog.LevelVar
	// Clock stamps new rows. Nil means the system clock.
	Clock storage.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the selpkm CLI. Fields of
// opts that are already set become the flag defaults.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts.Format == "" {
		opts.Format = "text"
	}
	if opts.Inbox == "" {
		opts.Inbox = "Inbox"
	}

	cmd := &cobra.Command{
		Use:   "selpkm",
		Short: "selpkm - a local note organizer",
		Long: `Organize notes in a hierarchy of uniquely named containers,
stored in a local SQLite database.

Examples:
  selpkm -c "call the plumber"
  selpkm container add Projects
  selpkm note add "Kickoff" --container Projects
  selpkm container list --tree`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Verbose && opts.LogLevel != nil {
				opts.LogLevel.Set(slog.LevelDebug)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Capture == "" {
				return cmd.Help()
			}
			return runCapture(cmd, opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", opts.Format, "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", opts.DBPath, "path to SQLite database")
	cmd.Flags().StringVarP(&opts.Capture, "capture", "c", "", "quickly capture an idea into the inbox")

	// Add subcommands
	cmd.AddCommand(NewContainerCommand(opts))
	cmd.AddCommand(NewNoteCommand(opts))
	cmd.AddCommand(NewDBCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// CaptureOutput is the result of a quick capture.
type CaptureOutput struct {
	NoteID       int64  `json:"note_id" yaml:"note_id"`
	ContainerID  int64  `json:"container_id" yaml:"container_id"`
	Name         string `json:"name" yaml:"name"`
	InboxCreated bool   `json:"inbox_created" yaml:"inbox_created"`
}

func runCapture(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()

	st, err := openStore(ctx, opts, true)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := service.NewCaptureService(st, st, opts.Inbox)
	res, err := svc.Capture(ctx, opts.Capture)
	if err != nil {
		return failure("failed to capture", err)
	}

	out := CaptureOutput{
		NoteID:       res.NoteID,
		ContainerID:  res.ContainerID,
		Name:         res.Name,
		InboxCreated: res.InboxCreated,
	}
	return formatter(cmd, opts).Print(out, func(f *OutputFormatter) {
		f.Printf("Captured note %d in %s.\n", res.NoteID, opts.Inbox)
	})
}

// openStore opens the database named by --db. With initialize unset the
// store is left in its current schema state.
func openStore(ctx context.Context, opts *RootOptions, initialize bool) (*storage.Store, error) {
	if opts.DBPath == "" {
		return nil, NewExitError(ExitCommandError, "no database path configured")
	}
	if err := config.EnsureDBDir(opts.DBPath); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to prepare database directory", err)
	}

	st, err := storage.Open(ctx, opts.DBPath, storage.Options{
		Initialize: initialize,
		Clock:      opts.Clock,
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
