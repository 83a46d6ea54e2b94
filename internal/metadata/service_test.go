package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matejira/internal/document"
)

// countingFetcher serves a fixed document and records how often it is asked.
type countingFetcher struct {
	calls int
	doc   document.Document
	err   error
}

func (f *countingFetcher) FetchCreateMeta(_ context.Context, _, _ string) (document.Document, error) {
	f.calls++
	return f.doc, f.err
}

func serverFields(summaryName string) document.Document {
	return document.Map(map[string]document.Document{
		"summary": document.Map(map[string]document.Document{
			"name":     document.String(summaryName),
			"required": document.Bool(true),
		}),
	})
}

func TestService_GetMetadata_FetchesOnceThenServesFromStore(t *testing.T) {
	fetcher := &countingFetcher{doc: serverFields("Summary")}
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	service := NewService(fetcher, store)
	ctx := context.Background()

	first, err := service.GetMetadata(ctx, "CORE", "Task", false)
	require.NoError(t, err)
	second, err := service.GetMetadata(ctx, "CORE", "Task", false)
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls, "second lookup should be answered from the store")
	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(fetcher.doc))
}

func TestService_GetMetadata_ForceRefreshFetchesAgain(t *testing.T) {
	fetcher := &countingFetcher{doc: serverFields("Summary")}
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	service := NewService(fetcher, store)
	ctx := context.Background()

	_, err = service.GetMetadata(ctx, "CORE", "Task", false)
	require.NoError(t, err)

	// the server-side schema changes between calls
	fetcher.doc = serverFields("Summary (renamed)")

	refreshed, err := service.GetMetadata(ctx, "CORE", "Task", true)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
	assert.True(t, refreshed.Equal(fetcher.doc), "refresh should return the new fetch")

	// the refreshed entry overwrote the stored one
	cached, found, err := store.Read("CORE", "Task")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, cached.Equal(fetcher.doc))
	assert.Equal(t, 2, fetcher.calls, "reading the store must not fetch")
}

func TestService_GetMetadata_DistinctKeysFetchSeparately(t *testing.T) {
	fetcher := &countingFetcher{doc: serverFields("Summary")}
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	service := NewService(fetcher, store)
	ctx := context.Background()

	_, err = service.GetMetadata(ctx, "CORE", "Task", false)
	require.NoError(t, err)
	_, err = service.GetMetadata(ctx, "CORE", "Bug", false)
	require.NoError(t, err)
	_, err = service.GetMetadata(ctx, "OPS", "Task", false)
	require.NoError(t, err)

	assert.Equal(t, 3, fetcher.calls)
}

func TestService_GetMetadata_EmptyFetchIsError(t *testing.T) {
	tests := []struct {
		name string
		doc  document.Document
	}{
		{name: "empty fields map", doc: document.Map(map[string]document.Document{})},
		{name: "not a map", doc: document.String("oops")},
		{name: "null", doc: document.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &countingFetcher{doc: tt.doc}
			store, err := NewFileStore(t.TempDir())
			require.NoError(t, err)
			service := NewService(fetcher, store)

			_, err = service.GetMetadata(context.Background(), "CORE", "Task", false)

			var fetchErr *FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, "CORE", fetchErr.Project)
			assert.Equal(t, "Task", fetchErr.IssueType)
			assert.Contains(t, fetchErr.Error(), "no fields")

			// nothing gets cached on failure
			_, found, err := store.Read("CORE", "Task")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestService_GetMetadata_FetchErrorIsWrapped(t *testing.T) {
	cause := errors.New("boom")
	fetcher := &countingFetcher{err: cause}
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	service := NewService(fetcher, store)

	_, err = service.GetMetadata(context.Background(), "CORE", "Task", false)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, cause)
}
