// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termhost/content/content.go
// Summary: Loads a text file into highlighted, width-wrapped display rows.
// Usage: The terminal viewer scrolls over Document rows; the row count is the
// document's scrollHeight.

package content

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
	"github.com/mattn/go-runewidth"
)

const (
	defaultStyleName = "catppuccin-mocha"
	defaultTabWidth  = 4
)

// Options control highlighting and tab expansion.
type Options struct {
	Style    string
	TabWidth int
}

// Cell is one glyph with its style and display width (1 or 2).
type Cell struct {
	Ch    rune
	Style tcell.Style
	Width int
}

// Document is a highlighted file split into display rows.
type Document struct {
	Name     string
	Language string
	Base     tcell.Style

	lines [][]Cell // logical lines, tabs expanded
	rows  [][]Cell // lines wrapped to width
	width int
}

// Load reads path and parses it.
func Load(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(filepath.Base(path), data, opts)
}

// Parse highlights data, using name for language detection.
func Parse(name string, data []byte, opts Options) (*Document, error) {
	if opts.TabWidth <= 0 {
		opts.TabWidth = defaultTabWidth
	}
	style := chromaStyle(opts.Style)
	language := detectLanguage(name, data)
	lexer := chroma.Coalesce(getLexer(language, name, string(data)))

	tokens, err := chroma.Tokenise(lexer, nil, string(data))
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", name, err)
	}

	base := baseStyle(style)
	doc := &Document{
		Name:     name,
		Language: language,
		Base:     base,
		lines:    buildLines(tokens, style, base, opts.TabWidth),
	}
	return doc, nil
}

// detectLanguage asks enry by filename first and by content second.
func detectLanguage(name string, data []byte) string {
	if lang := enry.GetLanguage(name, data); lang != "" {
		return lang
	}
	return "Text"
}

// chromaStyle resolves a style name, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer prefers the detected language, then the filename, then content
// analysis.
func getLexer(language, name, text string) chroma.Lexer {
	if l := lexers.Get(language); l != nil {
		return l
	}
	if l := lexers.Match(name); l != nil {
		return l
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

func baseStyle(style *chroma.Style) tcell.Style {
	bg := style.Get(chroma.Background)
	st := tcell.StyleDefault
	if bg.Background.IsSet() {
		st = st.Background(toColor(bg.Background))
	}
	if bg.Colour.IsSet() {
		st = st.Foreground(toColor(bg.Colour))
	}
	return st
}

func tokenStyle(entry chroma.StyleEntry, base tcell.Style) tcell.Style {
	st := base
	if entry.Colour.IsSet() {
		st = st.Foreground(toColor(entry.Colour))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

func toColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

// buildLines splits the token stream into logical lines of cells. Tabs are
// expanded to the next tab stop; other control characters are dropped.
func buildLines(tokens []chroma.Token, style *chroma.Style, base tcell.Style, tabWidth int) [][]Cell {
	lines := [][]Cell{nil}
	col := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := tokenStyle(style.Get(tok.Type), base)
		for _, r := range tok.Value {
			cur := len(lines) - 1
			switch {
			case r == '\n':
				lines = append(lines, nil)
				col = 0
			case r == '\t':
				n := tabWidth - col%tabWidth
				for i := 0; i < n; i++ {
					lines[cur] = append(lines[cur], Cell{Ch: ' ', Style: st, Width: 1})
				}
				col += n
			default:
				w := runewidth.RuneWidth(r)
				if w == 0 {
					continue
				}
				lines[cur] = append(lines[cur], Cell{Ch: r, Style: st, Width: w})
				col += w
			}
		}
	}
	// A trailing newline does not start a visible line.
	if n := len(lines); n > 1 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}
	return lines
}

// Rewrap splits logical lines into rows no wider than width cells.
func (d *Document) Rewrap(width int) {
	if width < 2 {
		width = 2
	}
	if width == d.width && d.rows != nil {
		return
	}
	d.width = width
	d.rows = d.rows[:0]
	for _, line := range d.lines {
		d.rows = append(d.rows, wrapLine(line, width)...)
	}
}

func wrapLine(line []Cell, width int) [][]Cell {
	if len(line) == 0 {
		return [][]Cell{nil}
	}
	var rows [][]Cell
	start, used := 0, 0
	for i, c := range line {
		if used+c.Width > width {
			rows = append(rows, line[start:i])
			start, used = i, 0
		}
		used += c.Width
	}
	return append(rows, line[start:])
}

// Width returns the wrap width.
func (d *Document) Width() int { return d.width }

// Lines returns the number of logical lines.
func (d *Document) Lines() int { return len(d.lines) }

// Rows returns the number of wrapped rows.
func (d *Document) Rows() int { return len(d.rows) }

// Row returns wrapped row i, or nil when out of range.
func (d *Document) Row(i int) []Cell {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// RowWidth returns the display width of row i.
func (d *Document) RowWidth(i int) int {
	w := 0
	for _, c := range d.Row(i) {
		w += c.Width
	}
	return w
}
