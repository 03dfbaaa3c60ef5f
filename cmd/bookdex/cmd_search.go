package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/bookdex/internal/domain/aggregate"
	"github.com/kailas-cloud/bookdex/internal/domain/search/request"
)

const defaultSearchText = "Tether"

func (a *app) searchCmd() *cobra.Command {
	var (
		offset     int
		limit      int
		withScores bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a full-text query against the index",
		Long: `Runs FT.SEARCH with the given query (default "Tether") and prints the
total match count and the page of documents in engine order.`,
		Example: `  bookdex search
  bookdex search "@title:book" --limit 2
  bookdex search circulating --with-scores`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := defaultSearchText
			if len(args) == 1 {
				text = args[0]
			}

			ctx, cancel := a.opContext(cmd)
			defer cancel()

			res, err := a.library.Search(ctx, text, offset, limit, withScores)
			if err != nil {
				return err
			}
			return render(a.out, a.output, res)
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of results to skip")
	cmd.Flags().IntVar(&limit, "limit", request.DefaultLimit, "Maximum number of results")
	cmd.Flags().BoolVar(&withScores, "with-scores", false, "Include relevance scores")
	return cmd
}

func (a *app) aggregateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Run the example aggregation pipeline",
		Long: `Runs FT.AGGREGATE over documents matching "circulating":
  LOAD title content publishAt
  APPLY @content AS post
  APPLY @publishAt/1000 AS publishAt
  SORTBY title ASC`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.opContext(cmd)
			defer cancel()

			res, err := a.library.Aggregate(ctx, aggregate.Circulating())
			if err != nil {
				return err
			}
			return render(a.out, a.output, res)
		},
	}
}
