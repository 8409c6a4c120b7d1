package service

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/finastra-demo/repo-compliance-bot/models"
)

// RepoLister is the slice of the host client the repository service needs.
type RepoLister interface {
	ListAllRepos(ctx context.Context) ([]*gh.Repository, error)
}

type RepositoryService interface {
	ListAll(ctx context.Context) ([]models.Repository, error)
}

type repositoriesService struct {
	gh RepoLister
}

func NewRepositoriesService(ghClient RepoLister) RepositoryService {
	return &repositoriesService{gh: ghClient}
}

// ListAll enumerates the organization and converts each repository into
// the read-only snapshot the inspector works on.
func (s *repositoriesService) ListAll(ctx context.Context) ([]models.Repository, error) {
	repos, err := s.gh.ListAllRepos(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Repository, 0, len(repos))

	for _, repo := range repos {
		if repo == nil {
			continue
		}

		snapshot := models.Repository{
			Name:          repo.GetName(),
			FullName:      repo.GetFullName(),
			Owner:         repo.GetOwner().GetLogin(),
			URL:           repo.GetHTMLURL(),
			Private:       repo.GetPrivate(),
			Archived:      repo.GetArchived(),
			SizeKB:        repo.GetSize(),
			Language:      repo.GetLanguage(),
			Description:   repo.GetDescription(),
			DefaultBranch: repo.GetDefaultBranch(),
			CreatedAt:     repo.GetCreatedAt().Time,
		}
		if repo.PushedAt != nil {
			pushed := repo.PushedAt.Time
			snapshot.PushedAt = &pushed
		}

		result = append(result, snapshot)
	}

	return result, nil
}
