// Package markdown maps assistant reply text to a flat sequence of render
// blocks for a deliberately small dialect: three heading levels, unordered
// and ordered list items, blank-line spacers, paragraphs, and inline bold.
// Anything else passes through as literal text.
package markdown

import (
	"regexp"
	"strings"
)

// Kind classifies a rendered block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindListItem
	KindOrderedItem
	KindSpacer
)

// Span is a run of text within a block, plain or bold.
type Span struct {
	Text string
	Bold bool
}

// Block is one rendered line. Level is set for headings only (1-3).
type Block struct {
	Kind  Kind
	Level int
	Spans []Span
}

var orderedPrefix = regexp.MustCompile(`^\d+\.\s`)

// Render maps text to its block sequence, strictly line by line.
// Rendering is pure and deterministic; headings carry no inline formatting,
// matching the source dialect.
func Render(text string) []Block {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, Block{Kind: KindHeading, Level: 3, Spans: plain(line[4:])})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{Kind: KindHeading, Level: 2, Spans: plain(line[3:])})
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, Block{Kind: KindHeading, Level: 1, Spans: plain(line[2:])})
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			blocks = append(blocks, Block{Kind: KindListItem, Spans: Inline(line[2:])})
		case orderedPrefix.MatchString(line):
			// The source numeral is discarded; no renumbering happens here.
			blocks = append(blocks, Block{Kind: KindOrderedItem, Spans: Inline(orderedPrefix.ReplaceAllString(line, ""))})
		case strings.TrimSpace(line) == "":
			blocks = append(blocks, Block{Kind: KindSpacer})
		default:
			blocks = append(blocks, Block{Kind: KindParagraph, Spans: Inline(line)})
		}
	}
	return blocks
}

var boldDelim = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Inline splits a line on paired ** delimiters into alternating plain and
// bold spans. The split is a single non-recursive pass; an unpaired
// delimiter stays literal in the surrounding plain text.
func Inline(text string) []Span {
	matches := boldDelim.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return plain(text)
	}
	spans := make([]Span, 0, 2*len(matches)+1)
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			spans = append(spans, Span{Text: text[pos:m[0]]})
		}
		spans = append(spans, Span{Text: text[m[2]:m[3]], Bold: true})
		pos = m[1]
	}
	if pos < len(text) {
		spans = append(spans, Span{Text: text[pos:]})
	}
	return spans
}

func plain(text string) []Span {
	return []Span{{Text: text}}
}
