package article

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/veridict/veridict/internal/model"
)

const excerptLength = 200

// parseArticle runs the readability pass over raw HTML and builds the
// article payload. The main content node is picked by preference:
// <article>, then <main>, then <body>.
func parseArticle(rawHTML string) (*model.ArticleData, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	meta := collectMeta(doc)

	content := extractReadableText(contentRoot(doc))
	title := pageTitle(doc, meta)

	data := &model.ArticleData{
		Title:    title,
		Content:  content,
		Length:   utf8.RuneCountInString(content),
		Excerpt:  excerpt(content),
		SiteName: firstNonEmpty(meta["og:site_name"], meta["application-name"]),
		Byline:   firstNonEmpty(meta["article:author"], meta["author"]),
	}
	data.PublishedTime = firstNonEmpty(meta["article:published_time"], meta["date"], meta["publish-date"])
	if data.PublishedTime != "" {
		v := data.PublishedTime
		data.PublishDate = &v
	}
	if data.Byline != "" {
		v := data.Byline
		data.Author = &v
	}
	return data, nil
}

// contentRoot returns the most article-like element in the document
func contentRoot(doc *html.Node) *html.Node {
	for _, tag := range []string{"article", "main", "body"} {
		if n := findElement(doc, tag); n != nil {
			return n
		}
	}
	return doc
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// extractReadableText extracts text nodes, skipping scripts, styles and
// page chrome (nav, header, footer, aside)
func extractReadableText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "header", "footer", "aside", "form":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}

// collectMeta gathers <meta> name/property values keyed by lowercase name
func collectMeta(doc *html.Node) map[string]string {
	meta := make(map[string]string)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var key, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "name", "property":
					key = strings.ToLower(attr.Val)
				case "content":
					content = attr.Val
				}
			}
			if key != "" && content != "" {
				if _, seen := meta[key]; !seen {
					meta[key] = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return meta
}

func pageTitle(doc *html.Node, meta map[string]string) string {
	if t := meta["og:title"]; t != "" {
		return t
	}
	if n := findElement(doc, "title"); n != nil && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
		return strings.TrimSpace(n.FirstChild.Data)
	}
	if n := findElement(doc, "h1"); n != nil {
		return extractReadableText(n)
	}
	return ""
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
