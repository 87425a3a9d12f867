package slug

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
)

// alphabet has exactly 64 characters, so a random byte masked with 0x3f maps
// to it without modulo bias.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

const (
	shortLength = 7
	longLength  = 10
	maxAttempts = 10
)

var ErrGenerationFailed = errors.New("could not generate a unique slug")

var pattern = regexp.MustCompile(`^[A-Za-z0-9_-]{7,10}$`)

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// UniquenessChecker answers whether a slug is free in the live record set.
type UniquenessChecker interface {
	IsSlugUnique(ctx context.Context, slug string) (bool, error)
}

// Generator mints random slugs and resolves collisions against the store.
type Generator struct {
	checker UniquenessChecker
}

func NewGenerator(checker UniquenessChecker) *Generator {
	return &Generator{checker: checker}
}

// Generate returns a slug that was unique at the moment of the check. It tries
// short candidates first and falls back to a single longer candidate once the
// short keyspace keeps colliding. The check-then-insert window is still racy;
// the store's unique index is the hard guarantee, and callers retry generation
// on a duplicate insert.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := random(shortLength)
		if err != nil {
			return "", err
		}

		unique, err := g.checker.IsSlugUnique(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug uniqueness: %w", err)
		}
		if unique {
			return candidate, nil
		}
	}

	// Last resort: a longer candidate shrinks the collision probability by
	// a factor of 64^3. Unlike the short path it is tried only once.
	candidate, err := random(longLength)
	if err != nil {
		return "", err
	}

	unique, err := g.checker.IsSlugUnique(ctx, candidate)
	if err != nil {
		return "", fmt.Errorf("failed to check slug uniqueness: %w", err)
	}
	if !unique {
		return "", ErrGenerationFailed
	}

	return candidate, nil
}

func random(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = alphabet[b&0x3f]
	}
	return string(buf), nil
}
