// Package jira is the thin HTTP client for the Jira Cloud REST API v3. It
// moves Documents in and out of the tracker; everything above it (prompting,
// validation, caching) never sees a request or a status code.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/thomas-vilte/matejira/internal/config"
	"github.com/thomas-vilte/matejira/internal/document"
	apperrors "github.com/thomas-vilte/matejira/internal/errors"
	"github.com/thomas-vilte/matejira/internal/logger"
	"github.com/thomas-vilte/matejira/internal/models"
)

// HTTPClient is the transport the client talks through. *http.Client
// satisfies it; tests substitute their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to one Jira Cloud site with basic auth credentials fixed at
// construction.
type Client struct {
	baseURL  string
	email    string
	apiToken string
	client   HTTPClient
}

// NewClient builds a client for the given connection settings. A nil
// httpClient selects a default with a request timeout.
func NewClient(cfg config.JiraConfig, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		email:    cfg.Email,
		apiToken: cfg.APIToken,
		client:   httpClient,
	}
}

// CreateIssue submits a payload document to the issue creation endpoint.
func (c *Client) CreateIssue(ctx context.Context, payload document.Document) (*models.CreatedIssue, error) {
	resp, err := c.do(ctx, http.MethodPost, "/rest/api/3/issue", payload)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusCreated {
		return nil, c.apiError(resp, apperrors.ErrUnexpectedStatus)
	}

	var created models.CreatedIssue
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("error decoding create response: %w", err)
	}
	created.URL = c.BrowseURL(created.Key)

	logger.Debug(ctx, "issue created", "issue_key", created.Key)
	return &created, nil
}

// UpdateIssue replaces fields of an existing issue. The tracker answers a
// bare 204 on success.
func (c *Client) UpdateIssue(ctx context.Context, issueKey string, payload document.Document) error {
	resp, err := c.do(ctx, http.MethodPut, "/rest/api/3/issue/"+url.PathEscape(issueKey), payload)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusNoContent {
		return c.apiError(resp, apperrors.ErrIssueNotFound.WithContext("issue_key", issueKey))
	}

	logger.Debug(ctx, "issue updated", "issue_key", issueKey)
	return nil
}

// GetIssue fetches one issue as a raw Document.
func (c *Client) GetIssue(ctx context.Context, issueKey string) (document.Document, error) {
	resp, err := c.do(ctx, http.MethodGet, "/rest/api/3/issue/"+url.PathEscape(issueKey), document.Null())
	if err != nil {
		return document.Document{}, err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return document.Document{}, c.apiError(resp, apperrors.ErrIssueNotFound.WithContext("issue_key", issueKey))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return document.Document{}, fmt.Errorf("error reading issue response: %w", err)
	}
	doc, err := document.FromJSON(data)
	if err != nil {
		return document.Document{}, fmt.Errorf("error decoding issue response: %w", err)
	}
	return doc, nil
}

// FetchCreateMeta retrieves the creation metadata for one project and issue
// type, expanded to field level, and returns the per-field schema map.
func (c *Client) FetchCreateMeta(ctx context.Context, project, issueType string) (document.Document, error) {
	query := url.Values{}
	query.Set("projectKeys", project)
	query.Set("issuetypeNames", issueType)
	query.Set("expand", "projects.issuetypes.fields")

	resp, err := c.do(ctx, http.MethodGet, "/rest/api/3/issue/createmeta?"+query.Encode(), document.Null())
	if err != nil {
		return document.Document{}, err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return document.Document{}, c.apiError(resp, apperrors.ErrMetadataFetch.
			WithContext("project", project).
			WithContext("issue_type", issueType))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return document.Document{}, fmt.Errorf("error reading createmeta response: %w", err)
	}
	meta, err := document.FromJSON(data)
	if err != nil {
		return document.Document{}, fmt.Errorf("error decoding createmeta response: %w", err)
	}

	projects, ok := meta.Value("projects")
	if !ok || projects.Len() == 0 {
		return document.Document{}, fmt.Errorf("project %q not found or not visible with these credentials", project)
	}
	proj, _ := projects.Index(0)

	issueTypes, ok := proj.Value("issuetypes")
	if !ok || issueTypes.Len() == 0 {
		return document.Document{}, fmt.Errorf("issue type %q not found in project %q", issueType, project)
	}
	issueTypeDoc, _ := issueTypes.Index(0)

	fields, ok := issueTypeDoc.Value("fields")
	if !ok {
		return document.Document{}, fmt.Errorf("createmeta for %s/%s carries no field expansion", project, issueType)
	}
	return fields, nil
}

// Myself fetches the authenticated account. Cheap credential check: a 401
// here means the token or email is wrong.
func (c *Client) Myself(ctx context.Context) (*models.JiraUser, error) {
	resp, err := c.do(ctx, http.MethodGet, "/rest/api/3/myself", document.Null())
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp, apperrors.ErrUnexpectedStatus)
	}

	var user models.JiraUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("error decoding myself response: %w", err)
	}
	return &user, nil
}

// BrowseURL is the human-facing link to an issue.
func (c *Client) BrowseURL(issueKey string) string {
	return c.baseURL + "/browse/" + issueKey
}

// do issues one API request. A null body document means no body at all.
func (c *Client) do(ctx context.Context, method, path string, body document.Document) (*http.Response, error) {
	var reader io.Reader
	if !body.IsNull() {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Authorization", basicAuth(c.email, c.apiToken))
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug(ctx, "jira request", "method", method, "path", path)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	return resp, nil
}

// apiError maps a non-success response onto the error taxonomy. notFound is
// the operation-specific meaning of a 404.
func (c *Client) apiError(resp *http.Response, notFound *apperrors.AppError) error {
	switch resp.StatusCode {
	case http.StatusBadRequest:
		err := apperrors.ErrBadRequest
		if details := decodeAPIError(resp.Body); details != "" {
			err = err.WithContext("details", details)
		}
		return err
	case http.StatusUnauthorized:
		return apperrors.ErrAuthFailed
	case http.StatusForbidden:
		return apperrors.ErrPermissionDenied
	case http.StatusNotFound:
		return notFound
	default:
		return apperrors.ErrUnexpectedStatus.WithContext("status", resp.Status)
	}
}

// decodeAPIError flattens the tracker's error envelope into one line.
func decodeAPIError(r io.Reader) string {
	var body struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}

	parts := append([]string{}, body.ErrorMessages...)

	keys := make([]string, 0, len(body.Errors))
	for k := range body.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, body.Errors[k]))
	}
	return strings.Join(parts, "; ")
}

func basicAuth(email, token string) string {
	credentials := fmt.Sprintf("%s:%s", email, token)
	return fmt.Sprintf("Basic %s", base64.StdEncoding.EncodeToString([]byte(credentials)))
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logger.Warn(context.Background(), "error closing response body", "error", err)
	}
}
