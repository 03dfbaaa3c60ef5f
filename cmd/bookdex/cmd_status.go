package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	healthuc "github.com/kailas-cloud/bookdex/internal/usecase/health"
)

var errUnreachable = errors.New("database unreachable")

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection and whether the index exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.opContext(cmd)
			defer cancel()

			report := healthuc.New(a.library, a.library).Check(ctx)
			if err := render(a.out, a.output, report); err != nil {
				return err
			}
			if report.Status == healthuc.Unhealthy {
				return fmt.Errorf("%w: %w", errUnreachable, report.Err)
			}
			return nil
		},
	}
}
