package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// RenderMarkdown renders markdown content for terminal display. Journal
// entries, wiki notes, meeting notes, and eval reports all go through this
// path, so the style set covers the constructs those documents use:
// headings, lists, task items, quotes, inline and fenced code, links, and
// tables.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	rendered = strings.TrimRight(rendered, "\n") + "\n"
	return rendered, nil
}

// markdownStyle builds the glamour style set from the active theme. The
// configured accent drives headings and link text; secondary elements use
// the terminal's muted gray. With the accent disabled everything falls back
// to default terminal colors plus bold and underline.
func markdownStyle() ansi.StyleConfig {
	muted := mdStr("8")

	cfg := ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockPrefix: "\n",
				BlockSuffix: "\n",
			},
			Margin: mdUint(MarkdownRenderMargin),
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Bold:        mdBool(true),
			},
		},
		H1: headingStyle("# "),
		H2: headingStyle("## "),
		H3: headingStyle("### "),
		H4: headingStyle("#### "),
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: muted},
			Indent:         mdUint(1),
			IndentToken:    mdStr("│ "),
		},
		List: ansi.StyleList{LevelIndent: 2},
		Item: ansi.StylePrimitive{BlockPrefix: "• "},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
		},
		Task: ansi.StyleTask{
			Ticked:   "[x] ",
			Unticked: "[ ] ",
		},
		Emph:   ansi.StylePrimitive{Italic: mdBool(true)},
		Strong: ansi.StylePrimitive{Bold: mdBool(true)},
		HorizontalRule: ansi.StylePrimitive{
			Color:  muted,
			Format: "\n--------\n",
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "`",
				Suffix: "`",
			},
		},
		CodeBlock: ansi.StyleCodeBlock{},
		Link: ansi.StylePrimitive{
			Color:     muted,
			Underline: mdBool(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: muted,
			Bold:  mdBool(true),
		},
		Table: ansi.StyleTable{
			CenterSeparator: mdStr("│"),
			ColumnSeparator: mdStr("│"),
			RowSeparator:    mdStr("─"),
		},
	}

	if color, ok := AccentColor(); ok {
		cfg.Heading.Color = mdStr(color)
		cfg.LinkText.Color = mdStr(color)
	}
	return cfg
}

func headingStyle(prefix string) ansi.StyleBlock {
	return ansi.StyleBlock{
		StylePrimitive: ansi.StylePrimitive{Prefix: prefix},
	}
}

func mdBool(v bool) *bool { return &v }

func mdStr(v string) *string { return &v }

func mdUint(v uint) *uint { return &v }
