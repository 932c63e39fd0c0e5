package domain

import "context"

//go:generate mockgen -source=headline_repository.go -destination=headline_repository_mock.go -package=domain

// HeadlineRepository stores the pool of ticker content the scheduler draws
// its backlog source from.
type HeadlineRepository interface {
	SaveHeadline(ctx context.Context, headline *Headline) error
	ListHeadlines(ctx context.Context) ([]Headline, error)
	DeleteHeadline(ctx context.Context, id string) error
	ReplaceHeadlines(ctx context.Context, headlines []Headline) error
	CountHeadlines(ctx context.Context) (int, error)
}
