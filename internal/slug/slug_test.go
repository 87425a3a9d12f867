package slug_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkshort/internal/slug"
)

// fakeChecker reports the first n candidates as taken, then everything as
// free. It records every checked candidate.
type fakeChecker struct {
	taken   int
	checked []string
	err     error
}

func (f *fakeChecker) IsSlugUnique(_ context.Context, candidate string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.checked = append(f.checked, candidate)
	return len(f.checked) > f.taken, nil
}

var wellFormed = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestGenerate_FirstCandidateFree(t *testing.T) {
	checker := &fakeChecker{}
	g := slug.NewGenerator(checker)

	got, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Len(t, got, 7)
	assert.Regexp(t, wellFormed, got)
	assert.Len(t, checker.checked, 1)
	assert.Equal(t, got, checker.checked[0])
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	checker := &fakeChecker{taken: 3}
	g := slug.NewGenerator(checker)

	got, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Len(t, got, 7)
	assert.Len(t, checker.checked, 4)
}

func TestGenerate_FallsBackToLongerSlug(t *testing.T) {
	checker := &fakeChecker{taken: 10}
	g := slug.NewGenerator(checker)

	got, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Len(t, got, 10)
	assert.Regexp(t, wellFormed, got)
	// 10 short attempts plus the one checked fallback.
	assert.Len(t, checker.checked, 11)
}

func TestGenerate_FallbackCollisionFails(t *testing.T) {
	checker := &fakeChecker{taken: 11}
	g := slug.NewGenerator(checker)

	_, err := g.Generate(context.Background())
	assert.ErrorIs(t, err, slug.ErrGenerationFailed)
}

func TestGenerate_CheckerErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	g := slug.NewGenerator(&fakeChecker{err: storeErr})

	_, err := g.Generate(context.Background())
	assert.ErrorIs(t, err, storeErr)
}

func TestGenerate_CandidatesAreRandom(t *testing.T) {
	checker := &fakeChecker{}
	g := slug.NewGenerator(checker)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		got, err := g.Generate(context.Background())
		require.NoError(t, err)
		seen[got] = true
	}
	assert.Len(t, seen, 50, "candidates must not repeat over a small sample")
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"seven chars", "abc123X", true},
		{"ten chars", "abc123XYZ_", true},
		{"underscore and dash", "a_b-c_d", true},
		{"too short", "abc123", false},
		{"too long", "abc123XYZ_k", false},
		{"empty", "", false},
		{"illegal char", "abc 23X", false},
		{"unicode", "abc12é3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Valid(tt.in))
		})
	}
}
