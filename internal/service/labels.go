package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/finastra-demo/repo-compliance-bot/internal/policy"
	"github.com/finastra-demo/repo-compliance-bot/models"
)

// LabelClient is the slice of the host client the synchronizer mutates
// labels through.
type LabelClient interface {
	ListLabelNames(ctx context.Context, repo string) ([]string, error)
	CreateLabel(ctx context.Context, repo, name, color, description string) error
}

// LabelSynchronizer makes sure every desired label exists on a repository,
// creating missing ones with the catalog color and description. Idempotent:
// labels that already exist are left alone and count as applied.
type LabelSynchronizer struct {
	gh      LabelClient
	catalog *policy.Catalog
	logger  *zap.Logger
}

func NewLabelSynchronizer(gh LabelClient, catalog *policy.Catalog, logger *zap.Logger) *LabelSynchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelSynchronizer{gh: gh, catalog: catalog, logger: logger}
}

// EnsureLabels returns how many of the desired labels are present on the
// repository after the call. Individual creation failures are logged and do
// not abort the remaining labels; partial success is expected.
func (s *LabelSynchronizer) EnsureLabels(ctx context.Context, repo string, desired []models.LabelName) int {
	existing := make(map[string]struct{})
	names, err := s.gh.ListLabelNames(ctx, repo)
	if err != nil {
		s.logger.Warn("could not list existing labels",
			zap.String("repository", repo), zap.Error(err))
	}
	for _, name := range names {
		existing[name] = struct{}{}
	}

	applied := 0
	for _, label := range desired {
		if _, ok := existing[string(label)]; ok {
			applied++
			continue
		}

		err := s.gh.CreateLabel(ctx, repo, string(label), s.catalog.Color(label), s.catalog.Description(label))
		if err != nil {
			s.logger.Warn("could not create label",
				zap.String("repository", repo),
				zap.String("label", string(label)),
				zap.Error(err))
			continue
		}
		applied++
	}

	s.logger.Info("labels synchronized",
		zap.String("repository", repo),
		zap.Int("applied", applied),
		zap.Int("desired", len(desired)))

	return applied
}
