package domain

import "time"

// Link is a single shortened link. A link is treated as an immutable record:
// the only field that ever changes after creation is Clicks, and updates are
// written as whole-record replacements.
type Link struct {
	ID          string
	Slug        string
	OriginalURL string
	Clicks      int64
	CreatedAt   time.Time
	ExpiresAt   *time.Time
}

// IsExpired reports whether the link's expiration, if any, is strictly in the
// past relative to now. Links without an expiration never expire.
func (l Link) IsExpired(now time.Time) bool {
	if l.ExpiresAt == nil {
		return false
	}
	return l.ExpiresAt.Before(now)
}

// IncrementClicks returns a copy of the link with the click counter advanced
// by one. The receiver is left untouched.
func (l Link) IncrementClicks() Link {
	l.Clicks++
	return l
}

type CreateLinkRequest struct {
	OriginalURL string     `json:"originalUrl"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

type LinkResponse struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	ShortURL    string     `json:"shortUrl"`
	OriginalURL string     `json:"originalUrl"`
	Clicks      int64      `json:"clicks"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

type ListLinksResponse struct {
	Links []LinkResponse `json:"links"`
}
