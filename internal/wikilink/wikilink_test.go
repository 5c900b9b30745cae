package wikilink

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "plain and aliased references",
			in:   "See [[A]] and [[B|alt]] and [text](http://x)",
			want: []string{"A", "B"},
		},
		{
			name: "duplicates collapse",
			in:   "[[A]] then [[A]] again and [[A|shown]]",
			want: []string{"A"},
		},
		{
			name: "multi-word targets kept verbatim",
			in:   "link to [[Team Structure]] and [[my note|My Note]]",
			want: []string{"Team Structure", "my note"},
		},
		{
			name: "markdown hyperlink alone",
			in:   "[docs](https://example.com)",
			want: nil,
		},
		{
			name: "empty text",
			in:   "",
			want: nil,
		},
		{
			name: "unclosed reference",
			in:   "broken [[half",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	body := "refs [[Alpha]] and [[Beta|B]]"
	if !Contains(body, "Alpha") {
		t.Error("expected Contains to find Alpha")
	}
	if Contains(body, "B") {
		t.Error("display text must not resolve as a target")
	}
}
