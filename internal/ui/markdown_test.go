package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownNormalizesTrailingNewline(t *testing.T) {
	out, err := RenderMarkdown("# Heading", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected rendered markdown to end with newline, got %q", out)
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected single trailing newline, got %q", out)
	}
}

func TestRenderMarkdownDefaultsWidthWhenNonPositive(t *testing.T) {
	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected non-empty rendered output")
	}
}

func TestMarkdownStyleUsesConfiguredAccent(t *testing.T) {
	defer ConfigureTheme(defaultAccent)

	ConfigureTheme("141")
	style := markdownStyle()
	if style.Heading.Color == nil || *style.Heading.Color != "141" {
		t.Fatalf("expected heading color 141, got %v", style.Heading.Color)
	}
	if style.LinkText.Color == nil || *style.LinkText.Color != "141" {
		t.Fatalf("expected link text color 141, got %v", style.LinkText.Color)
	}
}

func TestMarkdownStyleWithoutAccentFallsBack(t *testing.T) {
	defer ConfigureTheme(defaultAccent)

	ConfigureTheme("none")
	style := markdownStyle()
	if style.Heading.Color != nil {
		t.Fatalf("expected uncolored headings, got %q", *style.Heading.Color)
	}
	if style.Heading.Bold == nil || !*style.Heading.Bold {
		t.Fatal("expected headings to stay bold without an accent")
	}
	if style.LinkText.Color == nil || *style.LinkText.Color != "8" {
		t.Fatalf("expected muted link text, got %v", style.LinkText.Color)
	}
}

func TestMarkdownStyleHeadingPrefixes(t *testing.T) {
	style := markdownStyle()
	if style.H1.Prefix != "# " || style.H2.Prefix != "## " || style.H3.Prefix != "### " {
		t.Fatalf("unexpected heading prefixes: %q %q %q", style.H1.Prefix, style.H2.Prefix, style.H3.Prefix)
	}
}
