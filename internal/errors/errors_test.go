package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	t.Run("type and message only", func(t *testing.T) {
		assert.Equal(t, "FETCH: Could not fetch field metadata", ErrMetadataFetch.Error())
	})

	t.Run("wrapped error is appended", func(t *testing.T) {
		err := ErrMetadataFetch.WithError(errors.New("connection refused"))
		assert.Equal(t, "FETCH: Could not fetch field metadata (connection refused)", err.Error())
	})

	t.Run("details context is appended last", func(t *testing.T) {
		err := ErrBadRequest.
			WithError(errors.New("status 400")).
			WithContext("details", "customfield_10001: Field is required")
		assert.Equal(t,
			"API: Jira rejected the request payload (status 400) - customfield_10001: Field is required",
			err.Error())
	})

	t.Run("non-details context stays out of the message", func(t *testing.T) {
		err := ErrUnexpectedStatus.WithContext("endpoint", "/rest/api/3/issue")
		assert.NotContains(t, err.Error(), "endpoint")
	})
}

func TestCopiesLeaveSharedVarsUntouched(t *testing.T) {
	err := ErrRequiredFieldsMissing.
		WithError(errors.New("2 fields missing")).
		WithContext("project", "CORE").
		WithContext("issue_type", "Bug")

	assert.Equal(t, "CORE", err.Context["project"])
	assert.Equal(t, "Bug", err.Context["issue_type"])
	assert.Equal(t, TypeValidation, err.Type)
	assert.Equal(t, ErrRequiredFieldsMissing.Suggestion, err.Suggestion, "copies keep the suggestion")

	assert.Nil(t, ErrRequiredFieldsMissing.Context, "the shared var must stay clean")
	assert.NoError(t, ErrRequiredFieldsMissing.Err)
}

func TestWithSuggestionReplacesOnlySuggestion(t *testing.T) {
	base := ErrCacheRead.WithContext("path", "/tmp/x.json")
	err := base.WithSuggestion("delete the file by hand")

	assert.Equal(t, "delete the file by hand", err.Suggestion)
	assert.Equal(t, "/tmp/x.json", err.Context["path"])
	assert.NotEqual(t, "delete the file by hand", ErrCacheRead.Suggestion)
}

func TestUnwrapFeedsErrorsIs(t *testing.T) {
	cause := errors.New("base error")
	err := ErrAuthFailed.WithError(cause)

	assert.Same(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)

	// A copy is a distinct value: matching the predefined var requires
	// errors.As plus a Type check, not errors.Is.
	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, TypeAPI, appErr.Type)
}

func TestNewAppError(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError(TypeInternal, "something broke", cause)

	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, "something broke", err.Message)
	assert.Same(t, cause, err.Err)
	assert.Empty(t, err.Suggestion)
}
