package metadata

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/matejira/internal/document"
	"github.com/thomas-vilte/matejira/internal/logger"
)

// Fetcher retrieves creation metadata from the tracker, expanded to field
// level. Implemented by the jira client.
type Fetcher interface {
	FetchCreateMeta(ctx context.Context, project, issueType string) (document.Document, error)
}

// Store persists fetched metadata between invocations.
type Store interface {
	Read(project, issueType string) (document.Document, bool, error)
	Write(project, issueType string, doc document.Document) error
}

// FetchError reports a failed or empty metadata retrieval. It is surfaced
// to the caller as-is; this layer never retries.
type FetchError struct {
	Project   string
	IssueType string
	Err       error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch createmeta for %s/%s: %v", e.Project, e.IssueType, e.Err)
	}
	return fmt.Sprintf("fetch createmeta for %s/%s returned no fields", e.Project, e.IssueType)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Service answers metadata lookups from the store, fetching only when the
// entry is absent or the caller forces a refresh.
type Service struct {
	fetcher Fetcher
	store   Store
}

func NewService(fetcher Fetcher, store Store) *Service {
	return &Service{fetcher: fetcher, store: store}
}

// GetMetadata returns the field schema document for (project, issueType).
// A stored entry is returned unchanged unless forceRefresh is set; a fetch
// that yields no fields is a FetchError. Correctness of stale entries is
// entirely caller-driven, there is no expiry.
func (s *Service) GetMetadata(ctx context.Context, project, issueType string, forceRefresh bool) (document.Document, error) {
	if !forceRefresh {
		cached, ok, err := s.store.Read(project, issueType)
		if err != nil {
			return document.Document{}, err
		}
		if ok {
			logger.Debug(ctx, "metadata cache hit", "project", project, "issue_type", issueType)
			return cached, nil
		}
	}

	logger.Debug(ctx, "fetching createmeta", "project", project, "issue_type", issueType, "refresh", forceRefresh)

	doc, err := s.fetcher.FetchCreateMeta(ctx, project, issueType)
	if err != nil {
		return document.Document{}, &FetchError{Project: project, IssueType: issueType, Err: err}
	}
	if doc.Kind() != document.KindMap || doc.Len() == 0 {
		return document.Document{}, &FetchError{Project: project, IssueType: issueType}
	}

	if err := s.store.Write(project, issueType, doc); err != nil {
		return document.Document{}, fmt.Errorf("persist metadata for %s/%s: %w", project, issueType, err)
	}

	return doc, nil
}
