package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"selpkm/internal/service"
	"selpkm/internal/storage"
)

// selectorFlags binds --<prefix>id and --<prefix>name style flags to a
// storage.Selector. Only flags given on the command line are set.
type selectorFlags struct {
	idFlag, nameFlag string
	id               int64
	name             string
}

func addSelectorFlags(cmd *cobra.Command, idFlag, nameFlag, what string) *selectorFlags {
	s := &selectorFlags{idFlag: idFlag, nameFlag: nameFlag}
	cmd.Flags().Int64Var(&s.id, idFlag, 0, what+" id")
	cmd.Flags().StringVar(&s.name, nameFlag, "", what+" name")
	return s
}

func (s *selectorFlags) selector(cmd *cobra.Command) storage.Selector {
	var sel storage.Selector
	if cmd.Flags().Changed(s.idFlag) {
		id := s.id
		sel.ID = &id
	}
	if cmd.Flags().Changed(s.nameFlag) {
		name := s.name
		sel.Name = &name
	}
	return sel
}

// NewContainerCommand creates the container command group.
func NewContainerCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "container",
		Aliases: []string{"containers"},
		Short:   "Manage containers",
	}

	cmd.AddCommand(newContainerAddCommand(opts))
	cmd.AddCommand(newContainerListCommand(opts))
	cmd.AddCommand(newContainerShowCommand(opts))
	cmd.AddCommand(newContainerRemoveCommand(opts))

	return cmd
}

func newContainerAddCommand(opts *RootOptions) *cobra.Command {
	var parent *selectorFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a container",
		Long: `Add a container, optionally under a parent container.

Examples:
  selpkm container add Work
  selpkm container add Projects --parent Work
  selpkm container add Archive --parent-id 1`,
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

			id, err := st.AddContainer(ctx, args[0], parent.selector(cmd))
			if err != nil {
				return failure("failed to add container", err)
			}

			c, err := st.GetContainer(ctx, storage.ByID(id))
			if err != nil {
				return failure("failed to read container", err)
			}
			return formatter(cmd, opts).Print(c, func(f *OutputFormatter) {
				f.Printf("Added container %q (id=%d).\n", c.Name, c.ID)
			})
		},
	}

	parent = addSelectorFlags(cmd, "parent-id", "parent", "parent container")
	return cmd
}

func newContainerListCommand(opts *RootOptions) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:           "list",
		Aliases:       []string{"ls"},
		Short:         "List containers",
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

			containers, err := st.GetContainers(ctx)
			if err != nil {
				return failure("failed to list containers", err)
			}

			out := formatter(cmd, opts)
			if tree {
				roots := service.BuildTree(containers)
				return out.Print(roots, func(f *OutputFormatter) {
					service.Walk(roots, func(n *service.TreeNode, depth int) {
						for range depth {
							f.Printf("  ")
						}
						f.Printf("%s (%d)\n", n.Container.Name, n.Container.ID)
					})
				})
			}

			return out.Print(containers, func(f *OutputFormatter) {
				rows := make([][]string, 0, len(containers))
				for _, c := range containers {
					rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, orDash(c.ParentID), c.Created})
				}
				f.Table([]string{"ID", "NAME", "PARENT", "CREATED"}, rows)
			})
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "show containers as a tree")
	return cmd
}

func newContainerShowCommand(opts *RootOptions) *cobra.Command {
	var sel *selectorFlags

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one container",
		Long: `Show the container matching every given selector.

Examples:
  selpkm container show --id 3
  selpkm container show --name Projects`,
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

			c, err := st.GetContainer(ctx, sel.selector(cmd))
			if err != nil {
				return failure("failed to get container", err)
			}
			return formatter(cmd, opts).Print(c, func(f *OutputFormatter) {
				f.Table([]string{"FIELD", "VALUE"}, [][]string{
					{"id", strconv.FormatInt(c.ID, 10)},
					{"name", c.Name},
					{"parent", orDash(c.ParentID)},
					{"created", c.Created},
					{"modified", c.Modified},
				})
			})
		},
	}

	sel = addSelectorFlags(cmd, "id", "name", "container")
	return cmd
}

func newContainerRemoveCommand(opts *RootOptions) *cobra.Command {
	var sel *selectorFlags

	cmd := &cobra.Command{
		Use:           "rm",
		Aliases:       []string{"remove"},
		Short:         "Remove a container with its sub-containers and notes",
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

			s := sel.selector(cmd)
			if err := st.DeleteContainer(ctx, s); err != nil {
				return failure("failed to remove container", err)
			}
			return formatter(cmd, opts).Print(map[string]bool{"removed": true}, func(f *OutputFormatter) {
				f.Printf("Removed container.\n")
			})
		},
	}

	sel = addSelectorFlags(cmd, "id", "name", "container")
	return cmd
}
