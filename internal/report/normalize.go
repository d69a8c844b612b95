package report

import (
	"regexp"
	"strings"
)

// The final document is plain text; generated prose arrives as markdown.
// Normalize strips the markup classes the generator is known to emit.
// Go's regexp has no backreferences, so paired emphasis markers are
// matched per marker kind rather than with a capture group.
var (
	reBold       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reBoldAlt    = regexp.MustCompile(`__(.*?)__`)
	reItalic     = regexp.MustCompile(`\*(.*?)\*`)
	reItalicAlt  = regexp.MustCompile(`_(.*?)_`)
	reHeading    = regexp.MustCompile(`(?m)^#{1,6}\s*(.*)$`)
	reBullet     = regexp.MustCompile(`(?m)^\s*[*+-]\s+(.*)$`)
	reCodeFence  = regexp.MustCompile("(?s)```.*?```")
	reHorizRule  = regexp.MustCompile(`(?m)^\s*[-*_]{3,}\s*$`)
	reImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
)

// Normalize strips structural markdown from generated prose so it renders
// as a standard document: emphasis and heading markers removed, fenced
// code blocks and horizontal rules dropped, links reduced to their label,
// images dropped entirely, bullets rewritten to a uniform dash prefix.
// Idempotent for inputs containing only these markup classes.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Fenced blocks go first so their contents never leak half-stripped.
	text = reCodeFence.ReplaceAllString(text, "")

	// Images before links: an image's [alt](url) tail would otherwise be
	// rewritten as a link, stranding the leading "!".
	text = reImage.ReplaceAllString(text, "")
	text = reLink.ReplaceAllString(text, "$1")

	text = reBold.ReplaceAllString(text, "$1")
	text = reBoldAlt.ReplaceAllString(text, "$1")
	text = reItalic.ReplaceAllString(text, "$1")
	text = reItalicAlt.ReplaceAllString(text, "$1")

	text = reHeading.ReplaceAllString(text, "$1")
	text = reHorizRule.ReplaceAllString(text, "")
	text = reBullet.ReplaceAllString(text, " - $1")

	return strings.TrimSpace(text)
}
