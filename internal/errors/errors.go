package errors

import (
	"fmt"
	"maps"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeFetch         ErrorType = "FETCH"
	TypeValidation    ErrorType = "VALIDATION"
	TypeInput         ErrorType = "INPUT"
	TypeTemplate      ErrorType = "TEMPLATE"
	TypeAPI           ErrorType = "API"
	TypeInternal      ErrorType = "INTERNAL"
	TypeUpdate        ErrorType = "UPDATE"
)

// AppError is a categorized error carrying a user-facing message, optional
// structured context and a suggestion shown by the UI layer. The With*
// methods return copies so the predefined vars stay immutable.
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	if details, ok := e.Context["details"].(string); ok && details != "" {
		msg += " - " + details
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// clone copies the error, including its context map, so mutations never
// reach the shared predefined vars.
func (e *AppError) clone() *AppError {
	c := *e
	c.Context = maps.Clone(e.Context)
	return &c
}

// WithError returns a copy wrapping err.
func (e *AppError) WithError(err error) *AppError {
	c := e.clone()
	c.Err = err
	return c
}

// WithContext returns a copy with key set in its context.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	c := e.clone()
	if c.Context == nil {
		c.Context = make(map[string]interface{}, 1)
	}
	c.Context[key] = value
	return c
}

// WithSuggestion returns a copy with the suggestion replaced.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	c := e.clone()
	c.Suggestion = suggestion
	return c
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrJiraNotConfigured = NewAppError(TypeConfiguration, "Jira connection is not configured", nil).
				WithSuggestion("Run: mate-jira config set-jira --url <https://your-site.atlassian.net> --email <email> --token <api-token>")

	ErrInvalidBaseURL = NewAppError(TypeConfiguration, "Jira base URL is not a valid http(s) URL", nil).
				WithSuggestion("Use the full site URL, e.g. https://your-site.atlassian.net")

	ErrConfigMissing = NewAppError(TypeConfiguration, "Configuration is missing", nil).
				WithSuggestion("Initialize configuration: mate-jira config init")

	ErrInvalidLanguage = NewAppError(TypeConfiguration, "Unsupported language", nil).
				WithSuggestion("Supported languages: en, es")
)

// Template and input errors
var (
	ErrTemplateNotFound = NewAppError(TypeTemplate, "Template file not found", nil).
				WithSuggestion("Check the path passed to --template, or generate one: mate-jira template generate -p <project> --type <type>")

	ErrTemplateInvalid = NewAppError(TypeTemplate, "Template is not valid YAML", nil).
				WithSuggestion("Validate the file structure; it must parse to a mapping with a 'fields' key")

	ErrTemplateNoFields = NewAppError(TypeTemplate, "Template has no 'fields' mapping", nil).
				WithSuggestion("Top level must contain 'fields:', e.g.\n   fields:\n     summary: \"{{PROMPT: Summary}}\"")

	ErrPlaceholdersPresent = NewAppError(TypeInput, "Template still contains placeholders", nil).
				WithSuggestion("Run without --no-interactive, or fill the placeholder values in the template")

	ErrAmbiguousInput = NewAppError(TypeInput, "Template has placeholders but stdin is not a terminal", nil).
				WithSuggestion("Pass --interactive to read answers from piped input, or --no-interactive to fail on placeholders")

	ErrInvalidFieldPath = NewAppError(TypeInput, "A placeholder sits at a path with unsupported characters", nil).
				WithSuggestion("Field keys in templates may only use letters, digits, '.', '_' and '-'")

	ErrInvalidIssueKey = NewAppError(TypeInput, "Issue key does not look like a Jira key", nil).
				WithSuggestion("Expected the PROJECT-123 form, e.g. CORE-42")

	ErrProjectRequired = NewAppError(TypeInput, "No project key given", nil).
				WithSuggestion("Pass --project, set fields.project.key in the template, or configure a default: mate-jira config init")

	ErrIssueTypeRequired = NewAppError(TypeInput, "No issue type given", nil).
				WithSuggestion("Pass --type, set fields.issuetype.name in the template, or configure a default: mate-jira config init")
)

// Metadata and validation errors
var (
	ErrMetadataFetch = NewAppError(TypeFetch, "Could not fetch field metadata", nil).
				WithSuggestion("Check project key, issue type name and your Jira permissions")

	ErrMetadataEmpty = NewAppError(TypeFetch, "Tracker returned no field metadata", nil).
				WithSuggestion("Verify the issue type exists in the project: mate-jira fields list -p <project> --type <type> --refresh")

	ErrRequiredFieldsMissing = NewAppError(TypeValidation, "Required fields are missing from the payload", nil).
					WithSuggestion("Fill the listed fields in the template, or pass --skip-validation to submit anyway")
)

// API errors
var (
	ErrAuthFailed = NewAppError(TypeAPI, "Jira rejected the credentials", nil).
			WithSuggestion("Check the email and API token: mate-jira config show\nTokens are managed at: https://id.atlassian.com/manage-profile/security/api-tokens")

	ErrPermissionDenied = NewAppError(TypeAPI, "Jira denied access to the resource", nil).
				WithSuggestion("Your account may lack 'Create Issues' or 'Browse Projects' permission in this project")

	ErrIssueNotFound = NewAppError(TypeAPI, "Issue not found", nil).
				WithSuggestion("Check the issue key and that your account can see the project")

	ErrBadRequest = NewAppError(TypeAPI, "Jira rejected the request payload", nil).
			WithSuggestion("Inspect the listed field errors; regenerate the template if the project schema changed")

	ErrUnexpectedStatus = NewAppError(TypeAPI, "Jira returned an unexpected status", nil)
)

// Cache errors
var (
	ErrCacheRead = NewAppError(TypeInternal, "Could not read the metadata cache", nil).
			WithSuggestion("Clear the cache and retry: mate-jira cache clear --all")

	ErrCacheWrite = NewAppError(TypeInternal, "Could not write the metadata cache", nil).
			WithSuggestion("Check permissions on ~/.matejira/cache")
)

// Update errors
var (
	ErrUpdateCheckFailed = NewAppError(TypeUpdate, "Could not check for updates", nil).
				WithSuggestion("See releases at: https://github.com/thomas-vilte/matejira/releases")
)
