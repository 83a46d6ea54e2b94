package models

// CreatedIssue is the tracker's response to a successful issue creation.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`

	// URL is the human-facing browse link, filled in by the service.
	URL string `json:"-"`
}

// MissingField identifies one required field absent from a candidate
// payload: the metadata key and its display name.
type MissingField struct {
	Key  string
	Name string
}

// JiraUser is the authenticated account, as answered by the myself endpoint.
type JiraUser struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	Active       bool   `json:"active"`
}
