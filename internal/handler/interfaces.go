package handler

import (
	"context"

	"linkshort/internal/domain"
)

type LinkService interface {
	CreateLink(ctx context.Context, req domain.CreateLinkRequest) (*domain.LinkResponse, error)
	ResolveSlug(ctx context.Context, slug string) (string, error)
	ListLinks(ctx context.Context, limit, offset int) (*domain.ListLinksResponse, error)
	DeleteLink(ctx context.Context, id string) error
}
