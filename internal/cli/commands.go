package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vk/mathviz/internal/app"
	"github.com/vk/mathviz/internal/descriptor"
	"github.com/vk/mathviz/internal/session"
	"github.com/vk/mathviz/internal/syllabus"
	"github.com/vk/mathviz/internal/tui"
)

func newListCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered modules, optionally filtered by strand, topic or tag",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			strand, _ := cmd.Flags().GetString("strand")
			topic, _ := cmd.Flags().GetString("topic")
			tag, _ := cmd.Flags().GetString("tag")
			if strand != "" && !syllabus.Strand(strand).IsValid() {
				return usageError(fmt.Errorf("unknown strand %q (available: %s)", strand, strandList()))
			}

			return env.withApp(cmd, func(a *app.App) error {
				c := a.Catalog()
				mods := c.GetAll()
				if strand != "" {
					mods = intersect(mods, c.GetByStrand(syllabus.Strand(strand)))
				}
				if topic != "" {
					mods = intersect(mods, c.GetByTopic(topic))
				}
				if tag != "" {
					mods = intersect(mods, c.GetByTag(tag))
				}

				out := cmd.OutOrStdout()
				if len(mods) == 0 {
					fmt.Fprintln(out, "No modules found.")
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tSTRAND\tTOPIC\tNAME")
				for _, d := range mods {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Strand(), d.Topic(), d.Name)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().String("strand", "", "Only modules in this strand")
	cmd.Flags().String("topic", "", "Only modules in this topic")
	cmd.Flags().String("tag", "", "Only modules with this tag")
	return cmd
}

// usageArgs reports argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// intersect keeps the modules of a that also appear in b, in a's order.
func intersect(a, b []*descriptor.Descriptor) []*descriptor.Descriptor {
	keep := make(map[string]bool, len(b))
	for _, d := range b {
		keep[d.ID] = true
	}
	return slices.DeleteFunc(a, func(d *descriptor.Descriptor) bool { return !keep[d.ID] })
}

func strandList() string {
	names := make([]string, 0, len(syllabus.Strands()))
	for _, s := range syllabus.Strands() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func newStatsCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the catalog by strand, engine and difficulty",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withApp(cmd, func(a *app.App) error {
				stats := a.Catalog().GetStats()
				out := cmd.OutOrStdout()

				fmt.Fprintf(out, "Total modules: %d\n", stats.TotalModules)
				fmt.Fprintln(out, "\nBy strand:")
				for _, s := range syllabus.Strands() {
					fmt.Fprintf(out, "  %-24s %d\n", s, stats.ByStrand[s])
				}
				fmt.Fprintln(out, "\nBy engine:")
				for _, k := range sortedKeys(stats.ByEngine) {
					fmt.Fprintf(out, "  %-24s %d\n", k, stats.ByEngine[k])
				}
				fmt.Fprintln(out, "\nBy difficulty:")
				for _, k := range sortedKeys(stats.ByDifficulty) {
					fmt.Fprintf(out, "  %-24s %d\n", k, stats.ByDifficulty[k])
				}
				return nil
			})
		},
	}
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func newShowCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "show <module-id>",
		Short: "Show a module's descriptor",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withApp(cmd, func(a *app.App) error {
				d, ok := a.Catalog().Get(args[0])
				if !ok {
					return &ExitError{Code: 1, Message: fmt.Sprintf("module %q not found", args[0])}
				}
				writeDescriptor(cmd.OutOrStdout(), d, a.Syllabus())
				return nil
			})
		},
	}
}

func writeDescriptor(out io.Writer, d *descriptor.Descriptor, tree *syllabus.Tree) {
	fmt.Fprintf(out, "%s\n%s\n\n", d.Name, d.Description)
	fmt.Fprintf(out, "ID:       %s\n", d.ID)
	fmt.Fprintf(out, "Strand:   %s (%s)\n", tree.StrandLabel(d.Strand()), d.Strand())
	fmt.Fprintf(out, "Topic:    %s\n", tree.TopicLabel(d.Topic()))
	if d.Syllabus != nil && d.Syllabus.Subtopic != "" {
		fmt.Fprintf(out, "Subtopic: %s\n", d.Syllabus.Subtopic)
	}
	fmt.Fprintf(out, "Engine:   %s\n", d.Engine)

	m := d.Metadata
	if m == nil {
		return
	}
	fmt.Fprintf(out, "Version:  %s\n", m.Version)
	if len(m.Tags) > 0 {
		fmt.Fprintf(out, "Tags:     %s\n", strings.Join(m.Tags, ", "))
	}
	if m.Difficulty != "" {
		fmt.Fprintf(out, "Level:    %s\n", m.Difficulty)
	}
	if m.EstimatedTime > 0 {
		fmt.Fprintf(out, "Time:     %s\n", m.EstimatedTime)
	}
	if len(m.Prerequisites) > 0 {
		fmt.Fprintf(out, "Requires: %s\n", strings.Join(m.Prerequisites, ", "))
	}
	if len(m.LearningObjectives) > 0 {
		fmt.Fprintln(out, "Objectives:")
		for _, o := range m.LearningObjectives {
			fmt.Fprintf(out, "  - %s\n", o)
		}
	}
}

func newOpenCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "open <module-id>",
		Short: "Activate a module and print its text view",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withApp(cmd, func(a *app.App) error {
				ctx := a.Context()
				active, err := a.Session().Open(ctx, args[0])
				if errors.Is(err, session.ErrModuleNotFound) {
					return &ExitError{Code: 1, Message: fmt.Sprintf("module %q not found", args[0])}
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				labels := make([]string, 0, 3)
				for _, crumb := range a.Navigation().Breadcrumbs() {
					labels = append(labels, crumb.Label)
				}
				fmt.Fprintln(out, strings.Join(labels, " > "))
				fmt.Fprintln(out)

				view, err := active.Render(ctx)
				if err != nil {
					return fmt.Errorf("failed to render %s: %w", args[0], err)
				}
				fmt.Fprintln(out, view)
				return nil
			})
		},
	}
}

func newBrowseCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the syllabus interactively",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withApp(cmd, func(a *app.App) error {
				return tui.Run(a.Context(), a.Catalog(), a.Syllabus(), a.Session(), cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}
