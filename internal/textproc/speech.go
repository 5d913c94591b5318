package textproc

import (
	"regexp"
	"strings"
)

var (
	reThinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)
	reImage      = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	reBold       = regexp.MustCompile(`(\*\*|__)(.*?)(\*\*|__)`)
	reItalic     = regexp.MustCompile(`(\*|_)(.*?)(\*|_)`)
	reCodeBlock  = regexp.MustCompile("(?s)```.*?```")
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reHeading    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	reBullet     = regexp.MustCompile(`(?m)^\s*[-+*]\s+`)
	reNumbered   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	reBlockquote = regexp.MustCompile(`(?m)^\s*>\s+`)
	reBlankLines = regexp.MustCompile(`\n{2,}`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

var symbolReplacer = strings.NewReplacer(
	"&", " and ",
	"%", " percent ",
	"$", " dollars ",
	"+", " plus ",
	"=", " equals ",
	"@", " at ",
)

// StripThinkBlocks removes <think>...</think> reasoning blocks that some
// models emit before the article body.
func StripThinkBlocks(text string) string {
	return reThinkBlock.ReplaceAllString(text, "")
}

// CleanMarkdown strips markdown syntax from text, keeping the readable inner
// text: images removed, links reduced to their label, emphasis and code
// markers dropped, line-start markers (headings, bullets, blockquotes)
// removed, and runs of blank lines collapsed.
func CleanMarkdown(text string) string {
	text = reImage.ReplaceAllString(text, "")
	text = reLink.ReplaceAllString(text, "$1")
	text = reBold.ReplaceAllString(text, "$2")
	text = reItalic.ReplaceAllString(text, "$2")
	text = reCodeBlock.ReplaceAllString(text, "")
	text = reInlineCode.ReplaceAllString(text, "$1")
	text = reHeading.ReplaceAllString(text, "")
	text = reBullet.ReplaceAllString(text, "")
	text = reNumbered.ReplaceAllString(text, "")
	text = reBlockquote.ReplaceAllString(text, "")
	text = reBlankLines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// NormalizeForSpeech rewrites symbols a speech synthesizer mispronounces into
// words and collapses whitespace runs to single spaces.
func NormalizeForSpeech(text string) string {
	text = symbolReplacer.Replace(text)
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// StripHTMLTags removes markup from search snippets returned by encyclopedia
// sources.
func StripHTMLTags(text string) string {
	return reHTMLTag.ReplaceAllString(text, "")
}

var reHTMLTag = regexp.MustCompile(`<[^>]*>?`)
