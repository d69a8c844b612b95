package report

import (
	"strings"
	"testing"
)

func TestNormalizeStripsMarkup(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "This is **important** text", "This is important text"},
		{"bold underscores", "This is __important__ text", "This is important text"},
		{"italic", "This is *subtle* text", "This is subtle text"},
		{"italic underscores", "This is _subtle_ text", "This is subtle text"},
		{"heading", "# Big Title\nbody", "Big Title\nbody"},
		{"deep heading", "### Sub Title\nbody", "Sub Title\nbody"},
		{"code fence", "before\n```go\nfmt.Println()\n```\nafter", "before\n\nafter"},
		{"horizontal rule", "above\n---\nbelow", "above\n\nbelow"},
		{"link", "see [the docs](https://example.com) here", "see the docs here"},
		{"image", "photo ![alt text](https://example.com/x.png) end", "photo  end"},
		{"bullet star", "* first\n* second", " - first\n - second"},
		{"bullet plus", "+ first", " - first"},
		{"bullet dash", "- first", " - first"},
		{"whitespace", "  \n hello \n  ", "hello"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"**bold** and *italic* and _more_",
		"# Heading\n- item one\n* item two\n---\n[link](http://x) ![img](http://y)",
		"```\ncode block\n```\nplain tail",
		"mixed **bold [link](u)** under ## heading",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestNormalizeLeavesNoResidualMarkers(t *testing.T) {
	in := "# Title\n**bold** text with [link](u) and ![img](u)\n```\ncode\n```\n---"
	got := Normalize(in)
	for _, marker := range []string{"**", "# ", "```", "---", "](", "!["} {
		if strings.Contains(got, marker) {
			t.Errorf("residual marker %q in %q", marker, got)
		}
	}
}
