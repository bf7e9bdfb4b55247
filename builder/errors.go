package builder

import "errors"

var (
	ErrInvalidDocument = errors.New("page data is not valid JSON")
	ErrEmptyDocument   = errors.New("nothing to save: the editor has no page data")
	ErrMissingMarkup   = errors.New("nothing to save: the editor has not exported html for its page data")
	ErrSessionClosed   = errors.New("builder session is closed")
	ErrSessionNotFound = errors.New("builder session not found")
	ErrNoSaveTarget    = errors.New("builder session has neither a save handler nor a page store")
)

// SaveError wraps any failure of Session.Save. The editor state is left
// untouched, so the caller can retry.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return "save failed: " + e.Err.Error()
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

func (e *SaveError) Retryable() bool {
	return true
}
