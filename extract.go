package nexus

import "strings"

// Markers emitted by FormatContent so callers can distinguish outcomes
// without re-parsing the text.
const (
	// NoContentMarker is returned when the focus filter left zero blocks.
	// It distinguishes "nothing extractable" from "fetch failed".
	NoContentMarker = "[no extractable content for this focus]"

	// TruncationMarker trails output that was cut at the character ceiling.
	TruncationMarker = "[content truncated]"
)

// blockSeparator joins rendered blocks in serialized output.
const blockSeparator = "\n\n"

// Extract filters blocks by focus mode and enforces the character
// ceiling. General focus keeps headers, paragraphs, code blocks, and
// table rows; code focus drops paragraphs to strip conversational prose.
// FocusAuto must be resolved by the caller and is treated as general here.
//
// Accumulation is measured against the serialized form of each block.
// The first block that would push the running total past maxChars is
// omitted entirely and Truncated is set; no block is ever emitted
// half-formed. maxChars <= 0 disables the ceiling.
func Extract(blocks []ContentBlock, focus FocusMode, maxChars int, sourceURL string) ExtractedContent {
	content := ExtractedContent{SourceURL: sourceURL}

	total := 0
	for _, b := range blocks {
		if focus == FocusCode && b.Kind == BlockParagraph {
			continue
		}

		cost := len(renderBlock(b))
		if len(content.Blocks) > 0 {
			cost += len(blockSeparator)
		}
		if maxChars > 0 && total+cost > maxChars {
			content.Truncated = true
			break
		}

		total += cost
		content.Blocks = append(content.Blocks, b)
	}

	return content
}

// FormatContent serializes extracted content into a single text stream:
// headers as markdown headings, code blocks fenced, table rows as
// pipe-delimited cells. Truncated content gains a trailing
// TruncationMarker; zero blocks yield NoContentMarker only when the
// emptiness came from the focus filter, not from the character ceiling.
func FormatContent(c ExtractedContent) string {
	if len(c.Blocks) == 0 {
		if c.Truncated {
			return TruncationMarker
		}
		return NoContentMarker
	}

	parts := make([]string, 0, len(c.Blocks)+1)
	for _, b := range c.Blocks {
		parts = append(parts, renderBlock(b))
	}
	if c.Truncated {
		parts = append(parts, TruncationMarker)
	}

	return strings.Join(parts, blockSeparator)
}

// renderBlock produces the serialized form of a single block. Extract
// uses the same rendering to measure truncation, so the ceiling applies
// to exactly what the caller receives.
func renderBlock(b ContentBlock) string {
	switch b.Kind {
	case BlockHeader:
		level := b.Level
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + b.Text
	case BlockCode:
		return "```" + b.Language + "\n" + b.Text + "\n```"
	case BlockTableRow:
		return strings.Join(b.Cells, " | ")
	default:
		return b.Text
	}
}
