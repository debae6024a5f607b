package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devfolio/portfolio-api/config"
	"github.com/devfolio/portfolio-api/internal/projects/domain"
	"github.com/devfolio/portfolio-api/internal/projects/repository"
	"github.com/devfolio/portfolio-api/internal/storage"
)

func newStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Check and import project store documents",
	}
	cmd.AddCommand(newStoreCheckCmd(), newStoreImportCmd())
	return cmd
}

func newStoreCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a project store document",
		Long: `Parse a {"projects": [...]} document and report duplicate ids,
missing ids and records updated before they were created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := repository.NewFileDocument(args[0]).Load(cmd.Context())
			if err != nil {
				return err
			}

			problems := domain.CheckInvariants(projects)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(out, "  - %v\n", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%s: %d problem(s) in %d project(s)", args[0], len(problems), len(projects))
			}
			fmt.Fprintf(out, "%s: ok, %d project(s)\n", args[0], len(projects))
			return nil
		},
	}
}

func newStoreImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Copy a store document into the configured backend",
		Long: `Append every project from a JSON store document to the backend selected
by STORE_BACKEND, keeping ids and dates. Projects whose id already exists are skipped.

Examples:
  STORE_BACKEND=postgres DB_PASSWORD=secret portfolioctl store import data/projects.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projects, err := repository.NewFileDocument(args[0]).Load(ctx)
			if err != nil {
				return err
			}
			if problems := domain.CheckInvariants(projects); len(problems) > 0 {
				return fmt.Errorf("%s is inconsistent: %w", args[0], errors.Join(problems...))
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			store, closeStore, err := storage.OpenProjectStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			imported, skipped, err := importProjects(cmd, store, projects)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d existing into %s store\n", imported, skipped, cfg.Store.Backend)
			return nil
		},
	}
}

func importProjects(cmd *cobra.Command, store repository.Store, projects []domain.Project) (imported, skipped int, err error) {
	for _, p := range projects {
		if _, err := store.Create(cmd.Context(), p); err != nil {
			if errors.Is(err, domain.ErrDuplicateID) {
				skipped++
				continue
			}
			return imported, skipped, fmt.Errorf("import %s: %w", p.ID, err)
		}
		imported++
	}
	return imported, skipped, nil
}
