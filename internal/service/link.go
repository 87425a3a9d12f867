package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"linkshort/internal/domain"
	"linkshort/internal/repository"
	"linkshort/internal/validation"
)

var (
	ErrLinkNotFound = errors.New("link not found")
	ErrLinkExpired  = errors.New("link has expired")
)

// createAttempts bounds the whole-creation retry when an insert loses the
// check-then-insert race and trips the unique slug index.
const createAttempts = 3

type LinkService struct {
	repo      Repository
	slugs     SlugGenerator
	validator URLValidator
	cache     Cache
	baseURL   string
}

func NewLinkService(
	repo Repository,
	slugs SlugGenerator,
	validator URLValidator,
	cache Cache,
	baseURL string,
) *LinkService {
	return &LinkService{
		repo:      repo,
		slugs:     slugs,
		validator: validator,
		cache:     cache,
		baseURL:   baseURL,
	}
}

// CreateLink validates the request, mints a unique slug, and persists a fresh
// link with zero clicks. Validation failures happen before any write.
func (s *LinkService) CreateLink(ctx context.Context, req domain.CreateLinkRequest) (*domain.LinkResponse, error) {
	if err := s.validator.ValidateURL(req.OriginalURL); err != nil {
		return nil, err
	}
	if err := validation.ValidateExpiry(req.ExpiresAt, time.Now()); err != nil {
		return nil, err
	}

	id := uuid.NewString()

	var saved domain.Link
	for attempt := 0; ; attempt++ {
		slug, err := s.slugs.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}

		link := domain.Link{
			ID:          id,
			Slug:        slug,
			OriginalURL: req.OriginalURL,
			Clicks:      0,
			CreatedAt:   time.Now(),
			ExpiresAt:   req.ExpiresAt,
		}

		saved, err = s.repo.Save(ctx, link)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrDuplicateSlug) && attempt < createAttempts-1 {
			continue
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	resp := s.toResponse(saved)
	return &resp, nil
}

// ResolveSlug returns the original URL for a redirect and counts the visit.
// The returned URL is the one read before the increment; the increment itself
// is a single store-side statement, so concurrent resolutions never lose an
// update.
func (s *LinkService) ResolveSlug(ctx context.Context, slug string) (string, error) {
	link, cached := s.cache.Get(slug)
	if !cached {
		var err error
		link, err = s.repo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", ErrLinkNotFound
			}
			return "", fmt.Errorf("failed to find link: %w", err)
		}
	}

	if link.IsExpired(time.Now()) {
		return "", ErrLinkExpired
	}

	if _, err := s.repo.IncrementClicks(ctx, link.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted since it was cached.
			s.cache.Del(slug)
			return "", ErrLinkNotFound
		}
		return "", fmt.Errorf("failed to count click: %w", err)
	}

	if !cached {
		s.cache.Set(link)
	}

	return link.OriginalURL, nil
}

// ListLinks returns up to limit links starting at offset, newest first.
// Expired links are listed like any other; expiration only gates resolution.
func (s *LinkService) ListLinks(ctx context.Context, limit, offset int) (*domain.ListLinksResponse, error) {
	if err := validation.ValidatePagination(limit, offset); err != nil {
		return nil, err
	}

	links, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	resp := domain.ListLinksResponse{Links: make([]domain.LinkResponse, 0, len(links))}
	for _, link := range links {
		resp.Links = append(resp.Links, s.toResponse(link))
	}
	return &resp, nil
}

// DeleteLink removes the link permanently. Deleting a missing id fails with
// ErrLinkNotFound, every time.
func (s *LinkService) DeleteLink(ctx context.Context, id string) error {
	link, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("failed to find link: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("failed to delete link: %w", err)
	}

	s.cache.Del(link.Slug)
	return nil
}

func (s *LinkService) toResponse(link domain.Link) domain.LinkResponse {
	return domain.LinkResponse{
		ID:          link.ID,
		Slug:        link.Slug,
		ShortURL:    fmt.Sprintf("%s/r/%s", s.baseURL, link.Slug),
		OriginalURL: link.OriginalURL,
		Clicks:      link.Clicks,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
	}
}
