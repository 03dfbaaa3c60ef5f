package main

import (
	"github.com/spf13/cobra"
)

func (a *app) createIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-index",
		Short: "Create the full-text index over book:* hashes",
		Long: `Creates the index (default idx-books) with the schema
  content TEXT WEIGHT 1, title TEXT WEIGHT 5, publishAt NUMERIC
over every hash whose key starts with book:. Fails if the index exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.opContext(cmd)
			defer cancel()

			name, err := a.library.CreateIndex(ctx)
			if err != nil {
				return err
			}
			return render(a.out, a.output, map[string]string{"index": name, "status": "created"})
		},
	}
}

func (a *app) dropIndexCmd() *cobra.Command {
	var keepDocs bool

	cmd := &cobra.Command{
		Use:   "drop-index",
		Short: "Drop the index and the book hashes it covers",
		Long: `Drops the index with FT.DROPINDEX ... DD, deleting every indexed book hash.
There is no confirmation prompt. Use --keep-docs to leave the hashes in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.opContext(cmd)
			defer cancel()

			name, err := a.library.DropIndex(ctx, !keepDocs)
			if err != nil {
				return err
			}
			return render(a.out, a.output, map[string]any{
				"index":        name,
				"status":       "dropped",
				"deleted_docs": !keepDocs,
			})
		},
	}
	cmd.Flags().BoolVar(&keepDocs, "keep-docs", false, "Keep the indexed hashes")
	return cmd
}
