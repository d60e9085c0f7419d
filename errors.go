package weft

import "fmt"

// InvalidInputError indicates a request was rejected locally before any
// remote system was contacted: empty projection, empty language tag, or
// missing credentials.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// BackendError indicates a transport-level failure against a remote system
// (translation backend or content store).
type BackendError struct {
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("backend unavailable: %s", e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError indicates the translation backend returned an empty
// completion body.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "empty response from translation backend"
}

// MalformedResponseError indicates the translation backend returned text
// that does not parse as structured data. Raw keeps the full response body
// for diagnostics.
type MalformedResponseError struct {
	Raw   string
	Cause error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response from translation backend: %v", e.Cause)
	}
	return "malformed response from translation backend"
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// RemoteRejectedError indicates the content store responded with a
// non-success status. Body carries the upstream error text verbatim so a
// failed operation can be replayed by hand.
type RemoteRejectedError struct {
	Status int
	Body   string
}

func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("remote rejected request: status %d: %s", e.Status, e.Body)
}

// StructuralMismatchError indicates a translated or edited structure's
// identities diverge from the expected projection shape.
type StructuralMismatchError struct {
	Message string
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("structural mismatch: %s", e.Message)
}
