package nexus

// BlockKind identifies the variant of a ContentBlock.
type BlockKind int

// ContentBlock variants, in increasing specificity of treatment:
// headers and paragraphs get whitespace-collapsed text, code blocks keep
// their text verbatim, and table rows carry cells instead of text.
const (
	BlockHeader BlockKind = iota + 1
	BlockParagraph
	BlockCode
	BlockTableRow
)

// ContentBlock is a typed, ordered unit of extracted document content.
// Which fields are meaningful depends on Kind.
type ContentBlock struct {
	Kind BlockKind

	// Level is the heading depth (1-6). Header blocks only.
	Level int

	// Language is an optional language hint read from a class attribute.
	// Code blocks only; empty when no hint was found.
	Language string

	// Text is the block content. Collapsed whitespace for headers and
	// paragraphs, verbatim for code blocks. Unused for table rows.
	Text string

	// Cells holds the row's cell text in column order. Table rows only.
	Cells []string
}

// ExtractedContent is the terminal artifact of the read pipeline.
type ExtractedContent struct {
	// Blocks is the focus-filtered block sequence in source order.
	Blocks []ContentBlock

	// Truncated reports whether one or more blocks were dropped to stay
	// within the character ceiling.
	Truncated bool

	// SourceURL is the URL the content was extracted from.
	SourceURL string
}

// FocusMode selects which content-block variants survive extraction.
type FocusMode string

// Focus modes. FocusAuto is input-level only: it must be resolved to
// FocusGeneral or FocusCode (via MarkerSet.Classify) before extraction.
const (
	FocusAuto    FocusMode = "auto"
	FocusGeneral FocusMode = "general"
	FocusCode    FocusMode = "code"
)

// ValidFocus reports whether s names a known focus mode.
func ValidFocus(s string) bool {
	switch FocusMode(s) {
	case FocusAuto, FocusGeneral, FocusCode:
		return true
	}
	return false
}

// Segmenter splits a raw HTML document into an ordered sequence of
// content blocks. Implementations must be pure: the same input always
// yields the same block sequence, with no I/O.
type Segmenter interface {
	Segment(html string) ([]ContentBlock, error)
}
