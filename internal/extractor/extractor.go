// Package extractor turns fetched HTML bytes into the two things the
// engine needs: the page's plain text, for tokenization and duplicate
// detection, and the raw hrefs of its outbound links.
//
// Responsibilities:
//   - Extractor: the interface the engine depends on
//   - GoqueryExtractor: the default implementation, built on goquery
package extractor

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/docs-crawler/pkg/failure"
)

// Result is what Extract returns for one page: its visible text with
// whitespace collapsed, and the href attribute of every <a> element, in
// document order.
type Result struct {
	Text  string
	Hrefs []string
}

// Extractor turns HTML bytes into a Result.
type Extractor interface {
	Extract(htmlBytes []byte) (Result, failure.ClassifiedError)
}

// GoqueryExtractor is the default Extractor. It strips <script> and
// <style> content before reading text, since neither is meant for a
// reader or a tokenizer.
type GoqueryExtractor struct{}

// NewGoqueryExtractor returns the default Extractor.
func NewGoqueryExtractor() GoqueryExtractor {
	return GoqueryExtractor{}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func (GoqueryExtractor) Extract(htmlBytes []byte) (Result, failure.ClassifiedError) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return Result{}, &ExtractionError{Message: err.Error(), Cause: ErrCauseNotHTML}
	}

	doc.Find("script, style").Remove()

	text := whitespaceRun.ReplaceAllString(doc.Text(), " ")
	text = strings.TrimSpace(text)

	var hrefs []string
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})

	return Result{Text: text, Hrefs: hrefs}, nil
}
