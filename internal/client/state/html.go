package state

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// embeddedMedia matches elements that make a body non-empty without text.
const embeddedMedia = "img, video, iframe, audio, embed, object"

func htmlText(doc *goquery.Document) string {
	return strings.TrimSpace(strings.ReplaceAll(doc.Text(), "\u00a0", " "))
}

// IsBlankHTML reports whether a rich-text body has neither text nor embedded
// media. Editor output such as "<p><br></p>" is blank.
func IsBlankHTML(body string) bool {
	if strings.TrimSpace(body) == "" {
		return true
	}
	if !strings.Contains(body, "<") {
		return false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return false
	}
	if htmlText(doc) != "" {
		return false
	}
	return doc.Find(embeddedMedia).Length() == 0
}

// Excerpt returns the plain text of a rich-text body with whitespace
// collapsed, cut to at most n runes.
func Excerpt(body string, n int) string {
	text := body
	if strings.Contains(body, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
			text = htmlText(doc)
		}
	}
	text = strings.Join(strings.Fields(text), " ")

	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	r := []rune(text)
	return strings.TrimSpace(string(r[:n])) + "…"
}
