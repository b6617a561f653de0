package typf

import "fmt"

// Kind identifies a category of pipeline failure. Kind values form a
// single sealed taxonomy shared by every stage so callers can branch on
// failure class without caring which concrete stage produced it.
type Kind int

const (
	KindFontLoad Kind = iota
	KindInvalidFont
	KindGlyphNotFound
	KindOutlineExtraction
	KindZeroDimensions
	KindInvalidDimensions
	KindRenderFailed
	KindFormatNotSupported
	KindEncodingFailed
	KindMissingStage
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindFontLoad:
		return "font_load"
	case KindInvalidFont:
		return "invalid_font"
	case KindGlyphNotFound:
		return "glyph_not_found"
	case KindOutlineExtraction:
		return "outline_extraction"
	case KindZeroDimensions:
		return "zero_dimensions"
	case KindInvalidDimensions:
		return "invalid_dimensions"
	case KindRenderFailed:
		return "render_failed"
	case KindFormatNotSupported:
		return "format_not_supported"
	case KindEncodingFailed:
		return "encoding_failed"
	case KindMissingStage:
		return "missing_stage"
	default:
		return "other"
	}
}

// Error is the single error type returned across the pipeline boundary.
// Every stage that fails wraps its underlying error in one of these,
// tagging it with the stage name and a Kind so callers can use
// errors.As to recover structured detail without string matching.
type Error struct {
	Kind    Kind
	Stage   string // "shape", "render", "export", "pipeline", "font_load", or a backend name
	GlyphID uint32 // set for KindRenderFailed; zero otherwise
	Detail  string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Detail == "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Stage, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Stage, e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, &typf.Error{Kind: typf.KindGlyphNotFound})
// without caring about Stage/Detail/Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(stage string, kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Detail: detail, Err: err}
}

func newRenderFailedError(stage string, glyphID uint32, err error) *Error {
	return &Error{Kind: KindRenderFailed, Stage: stage, GlyphID: glyphID, Err: err}
}

// NewBackendUnavailableError wraps err (typically a failed GPU adapter
// or device acquisition) as a KindOther *Error tagged with the given
// backend name, for optional Renderer backends (e.g. gpurender) that
// may not be available on every machine.
func NewBackendUnavailableError(backend string, err error) *Error {
	return &Error{Kind: KindOther, Stage: backend, Detail: "backend unavailable", Err: err}
}
