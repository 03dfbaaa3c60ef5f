package main

import (
	"github.com/spf13/cobra"
)

func (a *app) insertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insert",
		Short: "Write the three sample books as book:<id> hashes",
		Long: `Writes book:1, book:2 and book:3 one after another with HSET.
The first failure aborts the run; books already written stay written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.opContext(cmd)
			defer cancel()

			keys, err := a.library.InsertSamples(ctx)
			if err != nil {
				return err
			}
			return render(a.out, a.output, map[string][]string{"inserted": keys})
		},
	}
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Read one book hash back",
		Example: "  bookdex get 3",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.opContext(cmd)
			defer cancel()

			b, err := a.library.GetBook(ctx, args[0])
			if err != nil {
				return err
			}
			return render(a.out, a.output, toBookView(b))
		},
	}
}
