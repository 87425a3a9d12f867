package service

import (
	"context"

	"linkshort/internal/domain"
)

type Repository interface {
	Save(ctx context.Context, link domain.Link) (domain.Link, error)
	FindByID(ctx context.Context, id string) (domain.Link, error)
	FindBySlug(ctx context.Context, slug string) (domain.Link, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Link, error)
	Delete(ctx context.Context, id string) error
	IncrementClicks(ctx context.Context, id string) (domain.Link, error)
}

type SlugGenerator interface {
	Generate(ctx context.Context) (string, error)
}

type URLValidator interface {
	ValidateURL(rawURL string) error
}

type Cache interface {
	Get(slug string) (domain.Link, bool)
	Set(link domain.Link)
	Del(slug string)
}
