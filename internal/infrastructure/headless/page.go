package headless

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// page is a parsed document: its visible text and inline scripts in order.
type page struct {
	Title   string
	Text    string
	Scripts []string
}

func parsePage(src string) (page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return page{}, fmt.Errorf("parse page: %w", err)
	}

	var p page
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		if kind, ok := s.Attr("type"); ok && !isJavaScriptType(kind) {
			return
		}
		if code := strings.TrimSpace(s.Text()); code != "" {
			p.Scripts = append(p.Scripts, code)
		}
	})
	p.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, noscript, template, head").Remove()
	p.Text = strings.TrimSpace(doc.Find("body").Text())
	return p, nil
}

func isJavaScriptType(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "text/javascript", "application/javascript":
		return true
	}
	return false
}
