package weft

import (
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// SameMarkup reports whether two HTML fragments share the same tag skeleton:
// the same element names opened and closed in the same order. Text content
// and attribute values are ignored, so a faithfully translated fragment
// compares equal to its source while one with dropped or invented tags does
// not. Fragments that fail to tokenize compare by their raw text.
func SameMarkup(a, b string) bool {
	sa, okA := tagSkeleton(a)
	sb, okB := tagSkeleton(b)
	if !okA || !okB {
		return a == b
	}
	if len(sa) != len(sb) {
		return false
	}
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// tagSkeleton tokenizes a fragment into its ordered sequence of tag events.
func tagSkeleton(fragment string) ([]string, bool) {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var skeleton []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return skeleton, true
			}
			return nil, false
		case html.StartTagToken:
			name, _ := z.TagName()
			skeleton = append(skeleton, "<"+string(name)+">")
		case html.EndTagToken:
			name, _ := z.TagName()
			skeleton = append(skeleton, "</"+string(name)+">")
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			skeleton = append(skeleton, "<"+string(name)+"/>")
		}
	}
}

// PlainText strips markup from an HTML fragment, returning its trimmed text
// content. Review surfaces use it to show readable leaf text next to the
// raw payload.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}
