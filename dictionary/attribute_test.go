package dictionary_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kowalski/dcmkit/dictionary"
)

func TestAttributeByTagRoundTrip(t *testing.T) {
	for _, a := range dictionary.All() {
		got, ok := dictionary.AttributeByTag(a.Tag)
		require.True(t, ok, "tag %s should resolve", a.Tag)
		require.Equal(t, a.Tag, got.Tag)
		require.Equal(t, a.Keyword, got.Keyword)
	}
}

func TestAttributeByKeywordRoundTrip(t *testing.T) {
	for _, a := range dictionary.All() {
		if a.Keyword == "" {
			continue
		}
		got, ok := dictionary.AttributeByKeyword(a.Keyword)
		require.True(t, ok, "keyword %s should resolve", a.Keyword)
		require.Equal(t, a.Tag, got.Tag)
	}
}

func TestCatalogHasUniqueTagsAndKeywords(t *testing.T) {
	seenTags := map[string]bool{}
	seenKeywords := map[string]bool{}
	for _, a := range dictionary.All() {
		require.False(t, seenTags[a.Tag], "duplicate tag %s", a.Tag)
		seenTags[a.Tag] = true

		if a.Keyword == "" {
			continue
		}
		require.False(t, seenKeywords[a.Keyword], "duplicate keyword %s", a.Keyword)
		seenKeywords[a.Keyword] = true
	}
}

func TestNormalizeTagEquivalence(t *testing.T) {
	want := "(0010,0010)"
	forms := []string{"(0010,0010)", "0010,0010", "0010-0010", "00100010", " 00100010 ", "0010 0010"}
	for _, f := range forms {
		require.Equal(t, want, dictionary.NormalizeTag(f), "input %q", f)
	}
}

func TestNormalizeTagIsIdempotent(t *testing.T) {
	once := dictionary.NormalizeTag("00100010")
	twice := dictionary.NormalizeTag(once)
	require.Equal(t, once, twice)
}

func TestAttributeByTagUnknownTag(t *testing.T) {
	_, ok := dictionary.AttributeByTag("(9999,9999)")
	require.False(t, ok)
}

func TestSearchGlob(t *testing.T) {
	hits, err := dictionary.Search("Patient*")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	for _, a := range hits {
		require.Contains(t, a.Keyword, "Patient")
	}
}

func TestSearchBadPattern(t *testing.T) {
	_, err := dictionary.Search("[")
	require.Error(t, err)
}

// TestConcurrentLookups exercises the claim in spec.md §5 that the
// init()-built, read-only dictionary tables are safe for concurrent lookups
// without synchronization.
func TestConcurrentLookups(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = dictionary.AttributeByTag("(0010,0010)")
			_, _ = dictionary.AttributeByKeyword("Modality")
			_, _ = dictionary.Search("Study*")
		}()
	}
	wg.Wait()
}
