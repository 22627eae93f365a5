package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewNoteCommand creates the note command group.
func NewNoteCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Manage notes",
	}

	cmd.AddCommand(newNoteAddCommand(opts))
	cmd.AddCommand(newNoteListCommand(opts))
	cmd.AddCommand(newNoteShowCommand(opts))
	cmd.AddCommand(newNoteRemoveCommand(opts))

	return cmd
}

func newNoteAddCommand(opts *RootOptions) *cobra.Command {
	var container *selectorFlags
	var description string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a note to a container",
		Long: `Add a note to the container matching --container-id and/or --container.

Examples:
  selpkm note add "Call Bob" --container Work
  selpkm note add "Groceries" --container-id 2 --description "milk, eggs"`,
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

			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			}

			id, err := st.AddNote(ctx, args[0], desc, container.selector(cmd))
			if err != nil {
				return failure("failed to add note", err)
			}

			n, err := st.GetNote(ctx, id)
			if err != nil {
				return failure("failed to read note", err)
			}
			return formatter(cmd, opts).Print(n, func(f *OutputFormatter) {
				f.Printf("Added note %q (id=%d).\n", n.Name, n.ID)
			})
		},
	}

	container = addSelectorFlags(cmd, "container-id", "container", "owning container")
	cmd.Flags().StringVarP(&description, "description", "d", "", "note text")
	return cmd
}

func newNoteListCommand(opts *RootOptions) *cobra.Command {
	var container *selectorFlags

	cmd := &cobra.Command{
		Use:           "list",
		Aliases:       []string{"ls"},
		Short:         "List notes, optionally of one container",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := openStore(ctx, opts, true)
			if err != nil {
				return err
			}
			defer st.Close()

			notes, err := st.GetNotes(ctx, container.selector(cmd))
			if err != nil {
				return failure("failed to list notes", err)
			}

			return formatter(cmd, opts).Print(notes, func(f *OutputFormatter) {
				rows := make([][]string, 0, len(notes))
				for _, n := range notes {
					rows = append(rows, []string{
						strconv.FormatInt(n.ID, 10),
						n.Name,
						strconv.FormatInt(n.ContainerID, 10),
						n.Created,
					})
				}
				f.Table([]string{"ID", "NAME", "CONTAINER", "CREATED"}, rows)
			})
		},
	}

	container = addSelectorFlags(cmd, "container-id", "container", "owning container")
	return cmd
}

func newNoteShowCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show ID",
		Short:         "Show one note",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			st, err := openStore(ctx, opts, true)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.GetNote(ctx, id)
			if err != nil {
				return failure("failed to get note", err)
			}
			return formatter(cmd, opts).Print(n, func(f *OutputFormatter) {
				f.Table([]string{"FIELD", "VALUE"}, [][]string{
					{"id", strconv.FormatInt(n.ID, 10)},
					{"name", n.Name},
					{"container", strconv.FormatInt(n.ContainerID, 10)},
					{"created", n.Created},
					{"modified", n.Modified},
				})
				if n.Description != nil {
					f.Printf("\n%s\n", *n.Description)
				}
			})
		},
	}

	return cmd
}

func newNoteRemoveCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rm ID",
		Aliases:       []string{"remove"},
		Short:         "Remove a note",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			st, err := openStore(ctx, opts, true)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteNote(ctx, id); err != nil {
				return failure("failed to remove note", err)
			}
			return formatter(cmd, opts).Print(map[string]int64{"removed": id}, func(f *OutputFormatter) {
				f.Printf("Removed note %d.\n", id)
			})
		},
	}

	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid id %q", s), err)
	}
	return id, nil
}
