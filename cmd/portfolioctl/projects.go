package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/devfolio/portfolio-api/internal/projects/browse"
	"github.com/devfolio/portfolio-api/internal/projects/client"
	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Work with projects on a running server",
	}
	cmd.AddCommand(newProjectsListCmd())
	return cmd
}

func newProjectsListCmd() *cobra.Command {
	var (
		category   string
		technology string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List projects from the server, narrowed by category and technology.

The full list is fetched once and filtered locally.

Examples:
  # Published projects
  portfolioctl projects list

  # AI projects using anything matching "py", drafts included
  portfolioctl projects list --category "AI Engineer" --technology py --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := client.NewFetcher(serverURL, nil)
			projects, err := fetcher.List(cmd.Context(), client.ListOptions{IncludeUnpublished: all})
			if err != nil {
				return err
			}

			b := browse.New(projects)
			b.SetCategory(category)
			b.SetTechnology(technology)
			return printProjects(cmd.OutOrStdout(), b)
		},
	}

	cmd.Flags().StringVar(&category, "category", domain.CategoryAll, "category to show, or \"all\"")
	cmd.Flags().StringVar(&technology, "technology", "", "case-insensitive technology substring")
	cmd.Flags().BoolVar(&all, "all", false, "include unpublished projects")
	return cmd
}

func printProjects(out io.Writer, b *browse.Browser) error {
	if b.Empty() {
		_, err := fmt.Fprintln(out, "No projects match the current filters.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tTECH\tPUBLISHED\tUPDATED")
	for _, p := range b.Visible() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			p.ID, p.Title, p.Category, strings.Join(p.TechStack, ", "), p.Published, p.UpdatedAt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, b.Summary())
	return err
}
