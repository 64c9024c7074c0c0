package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrMalformedPayload is returned when a reference payload is not made of URL-safe base64 characters.
	ErrMalformedPayload = zerr.New("reference payload is not url-safe base64")

	// ErrInvalidBase64 is returned when a payload cannot be base64 decoded.
	ErrInvalidBase64 = zerr.New("payload is not valid base64")

	// ErrInvalidJSON is returned when the decoded payload is not valid JSON.
	ErrInvalidJSON = zerr.New("payload is not valid json")

	// ErrInvalidShape is returned when the payload JSON is not an array of at least two elements.
	ErrInvalidShape = zerr.New("payload must be an array of at least two elements")

	// ErrInvalidNodeCount is returned when the node count is not a non-negative integer within bounds.
	ErrInvalidNodeCount = zerr.New("payload node count is invalid")

	// ErrInvalidNode is returned when a node element is not [number, number, string].
	ErrInvalidNode = zerr.New("payload node must be [number, number, string]")

	// ErrInvalidEdge is returned when an edge element lacks numeric source and target.
	ErrInvalidEdge = zerr.New("payload edge must start with numeric source and target")

	// ErrInvalidEdgeLabel is returned when an edge label is not a string.
	ErrInvalidEdgeLabel = zerr.New("payload edge label must be a string")

	// ErrInvalidEdgeStyle is returned when an edge style is not an object of known field types.
	ErrInvalidEdgeStyle = zerr.New("payload edge style is invalid")

	// ErrEncodeFailed is returned when a graph cannot be serialized.
	ErrEncodeFailed = zerr.New("failed to encode diagram")

	// ErrRenderFailed is returned when the render collaborator fails to produce an artifact.
	ErrRenderFailed = zerr.New("failed to render diagram")

	// ErrRendererClosed is returned when a render is requested from a released renderer.
	ErrRendererClosed = zerr.New("renderer is not open")

	// ErrDocumentReadFailed is returned when a document cannot be read.
	ErrDocumentReadFailed = zerr.New("failed to read document")

	// ErrDocumentWriteFailed is returned when a document cannot be written.
	ErrDocumentWriteFailed = zerr.New("failed to write document")

	// ErrCacheMarshalFailed is returned when the cache records cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache records")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheWriteFailed is returned when the cache file cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache file")

	// ErrArtifactRemoveFailed is returned when an artifact cannot be removed.
	ErrArtifactRemoveFailed = zerr.New("failed to remove artifact")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrUnknownRenderer is returned when the configured renderer kind is not supported.
	ErrUnknownRenderer = zerr.New("unknown renderer, expected 'browser' or 'svg'")

	// ErrNoDocuments is returned when no document matched the request.
	ErrNoDocuments = zerr.New("no documents to process")

	// ErrRunFailed is returned when at least one document run failed fatally.
	ErrRunFailed = zerr.New("run failed")
)

// ErrorKind tags a PipelineError with its place in the error taxonomy.
type ErrorKind uint8

const (
	// KindURLParse marks a candidate that does not match the reference URL shape.
	KindURLParse ErrorKind = iota + 1
	// KindDecode marks a payload that fails base64, JSON or schema checks.
	KindDecode
	// KindRender marks a render collaborator failure.
	KindRender
	// KindFileIO marks a read or write failure on a document or the cache file.
	KindFileIO
)

// String returns the taxonomy name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindURLParse:
		return "url parse error"
	case KindDecode:
		return "decode error"
	case KindRender:
		return "render error"
	case KindFileIO:
		return "file io error"
	default:
		return "unknown error"
	}
}

// Fatal reports whether an error of this kind aborts a document run.
func (k ErrorKind) Fatal() bool {
	return k == KindFileIO
}

// PipelineError is the single error type surfaced by a document run.
// Subject is the offending URL or path; Hint tells the user how to fix it.
type PipelineError struct {
	Kind    ErrorKind
	Subject string
	Hint    string
	Err     error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	msg := e.Kind.String()
	if e.Subject != "" {
		msg += " (" + e.Subject + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Message returns the error message without the cause chain.
func (e *PipelineError) Message() string {
	if e.Subject == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + " (" + e.Subject + ")"
}

// Metadata exposes the hint so error printers can show it next to the message.
func (e *PipelineError) Metadata() map[string]any {
	if e.Hint == "" {
		return nil
	}
	return map[string]any{"hint": e.Hint}
}

// Unwrap returns the underlying cause.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewURLParseError builds a KindURLParse error for a candidate URL.
func NewURLParseError(url string, err error) *PipelineError {
	return &PipelineError{
		Kind:    KindURLParse,
		Subject: url,
		Hint:    "copy the diagram link again from the editor; the payload may be truncated",
		Err:     err,
	}
}

// NewDecodeError builds a KindDecode error for a reference URL.
func NewDecodeError(url string, err error) *PipelineError {
	return &PipelineError{
		Kind:    KindDecode,
		Subject: url,
		Hint:    "open the link in the diagram editor and re-export it",
		Err:     err,
	}
}

// NewRenderError builds a KindRender error for a reference URL.
func NewRenderError(url string, err error) *PipelineError {
	return &PipelineError{
		Kind:    KindRender,
		Subject: url,
		Hint:    "check that the renderer is installed and reachable, then save the document again",
		Err:     err,
	}
}

// NewFileIOError builds a KindFileIO error for a path.
func NewFileIOError(path string, err error) *PipelineError {
	return &PipelineError{
		Kind:    KindFileIO,
		Subject: path,
		Hint:    "check that the path exists and is writable",
		Err:     err,
	}
}

// KindOf returns the kind of the first PipelineError in err's chain, or 0 if there is none.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
