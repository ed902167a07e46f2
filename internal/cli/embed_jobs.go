package cli

import (
	"errors"
	"fmt"
	"sort"

	appcontainer "skill-passport/internal/app"
	"skill-passport/internal/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEmbedJobsCmd() *cobra.Command {
	var params pipeline.RunParams

	cmd := &cobra.Command{
		Use:   "embed-jobs",
		Short: "Compute embeddings for catalog postings that lack one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if params.RPS <= 0 {
				params.RPS = cfg.Embedding.RPS
			}

			ctx := cmd.Context()
			c, err := appcontainer.NewContainer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			report, err := pipeline.NewJobEmbeddingPipeline(c.Jobs, c.Embedder, log).Run(ctx, params)
			log.Info("job embedding finished",
				zap.Int("total", report.Total),
				zap.Int("selected", report.Selected),
				zap.Int("embedded", report.Embedded),
				zap.Int("failed", len(report.Failed)),
				zap.Duration("duration", report.Duration),
			)

			if errors.Is(err, pipeline.ErrIncomplete) {
				ids := make([]string, 0, len(report.Failed))
				for id := range report.Failed {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					log.Error("posting not embedded", zap.String("job_id", id), zap.Error(report.Failed[id]))
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "embedded %d of %d postings\n", report.Embedded, report.Total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&params.Force, "force", false, "re-embed postings that already have a vector")
	cmd.Flags().IntVar(&params.Workers, "workers", 4, "concurrent embedding requests")
	cmd.Flags().Float64Var(&params.RPS, "rps", 0, "request rate limit, 0 uses EMBEDDING_RPS")

	return cmd
}
