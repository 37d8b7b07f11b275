package tui

import (
	"strings"

	"chatterpal/internal/markdown"
)

// renderBlocks turns a markdown block sequence into styled terminal lines.
// The dialect mapping lives in internal/markdown; only presentation
// decisions are made here.
func renderBlocks(blocks []markdown.Block) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch blk.Kind {
		case markdown.KindHeading:
			b.WriteString(headingStyle(blk.Level).Render(spanText(blk.Spans)))
		case markdown.KindListItem:
			b.WriteString("  • " + renderSpans(blk.Spans))
		case markdown.KindOrderedItem:
			b.WriteString("  • " + renderSpans(blk.Spans))
		case markdown.KindSpacer:
			// Blank line already emitted by the join.
		default:
			b.WriteString(renderSpans(blk.Spans))
		}
	}
	return b.String()
}

func headingStyle(level int) interface{ Render(...string) string } {
	switch level {
	case 1:
		return heading1Style
	case 2:
		return heading2Style
	default:
		return heading3Style
	}
}

func renderSpans(spans []markdown.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Bold {
			b.WriteString(boldStyle.Render(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func spanText(spans []markdown.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
