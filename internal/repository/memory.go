package repository

import (
	"context"
	"sort"
	"sync"

	"linkshort/internal/domain"
)

// MemoryLinkRepository is a mutex-guarded in-memory link store. It honors the
// same contract and sentinel errors as LinkRepository and backs the test
// suite.
type MemoryLinkRepository struct {
	mu    sync.RWMutex
	links map[string]domain.Link
}

func NewMemoryLinkRepository() *MemoryLinkRepository {
	return &MemoryLinkRepository{links: make(map[string]domain.Link)}
}

func (r *MemoryLinkRepository) Save(_ context.Context, link domain.Link) (domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.links {
		if existing.Slug == link.Slug && existing.ID != link.ID {
			return domain.Link{}, ErrDuplicateSlug
		}
	}

	r.links[link.ID] = link
	return link, nil
}

func (r *MemoryLinkRepository) FindByID(_ context.Context, id string) (domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.links[id]
	if !ok {
		return domain.Link{}, ErrNotFound
	}
	return link, nil
}

func (r *MemoryLinkRepository) FindBySlug(_ context.Context, slug string) (domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, link := range r.links {
		if link.Slug == slug {
			return link, nil
		}
	}
	return domain.Link{}, ErrNotFound
}

func (r *MemoryLinkRepository) FindAll(_ context.Context, limit, offset int) ([]domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Link, 0, len(r.links))
	for _, link := range r.links {
		all = append(all, link)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryLinkRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.links[id]; !ok {
		return ErrNotFound
	}
	delete(r.links, id)
	return nil
}

func (r *MemoryLinkRepository) IsSlugUnique(_ context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, link := range r.links {
		if link.Slug == slug {
			return false, nil
		}
	}
	return true, nil
}

func (r *MemoryLinkRepository) IncrementClicks(_ context.Context, id string) (domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.links[id]
	if !ok {
		return domain.Link{}, ErrNotFound
	}
	link = link.IncrementClicks()
	r.links[id] = link
	return link, nil
}

func (r *MemoryLinkRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links)
}
