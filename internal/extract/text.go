package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/clearuse/clearuse/internal/model"
)

// extractPlainText reads the leading bytes of a text file as the sample.
func extractPlainText(path string, src *model.SourceInfo) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, textSampleLimit)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		src.Warnings = append(src.Warnings, "could not read text: "+err.Error())
		return nil
	}
	src.TextSample = clampSample(string(buf[:n]))
	return nil
}

// extractHTML parses an HTML file and keeps the visible text plus any
// rel="license" link targets, which often point at a Creative Commons URL.
func extractHTML(path string, src *model.SourceInfo) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		src.Warnings = append(src.Warnings, "could not parse html: "+err.Error())
		return nil
	}

	src.TextSample = clampSample(visibleText(doc))

	for _, href := range licenseLinks(doc) {
		src.CopyrightFields = append(src.CopyrightFields, href)
	}
	if title := documentTitle(doc); title != "" && src.Title == "" {
		src.Title = title
	}
	if canonical := canonicalURL(doc); canonical != "" && src.OriginalURL == "" {
		src.OriginalURL = canonical
	}
	return nil
}

// canonicalURL returns the page's own address, from <link rel="canonical">
// or the og:url meta property. Saved pages keep these, which lets the
// source host be classified.
func canonicalURL(doc *html.Node) string {
	var canonical string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if canonical != "" {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "link" || n.Data == "meta") {
			var rel, href, property, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "href":
					href = attr.Val
				case "property":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if strings.EqualFold(rel, "canonical") && isHTTPURL(href) {
				canonical = href
				return
			}
			if strings.EqualFold(property, "og:url") && isHTTPURL(content) {
				canonical = content
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return canonical
}

// visibleText collects text nodes, skipping script, style and other
// non-content subtrees.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// licenseLinks returns the href of every <a rel="license"> and
// <link rel="license"> element.
func licenseLinks(doc *html.Node) []string {
	var links []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "a" || n.Data == "link") {
			var rel, href string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "href":
					href = attr.Val
				}
			}
			if strings.Contains(strings.ToLower(rel), "license") && href != "" {
				links = append(links, href)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return links
}

func documentTitle(doc *html.Node) string {
	var title string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return title
}
