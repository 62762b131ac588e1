package reader

import (
	"archive/zip"
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// epubPlainText extracts collapsed plain text from every chapter-like entry
// in the archive, joined with newlines in entry order. Used by search, which
// addresses matches as offsets into this flattened text.
func epubPlainText(filePath string) string {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return ""
	}
	defer zr.Close()

	var chapters []string
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if !(strings.HasSuffix(name, ".xhtml") || strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm")) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		doc, err := html.Parse(rc)
		rc.Close()
		if err != nil {
			continue
		}
		text := collapseWhitespace(extractText(doc))
		if text != "" {
			chapters = append(chapters, text)
		}
	}
	return strings.Join(chapters, "\n")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func extractText(n *html.Node) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			buf.WriteString(node.Data)
			buf.WriteString(" ")
		case html.ElementNode:
			if node.Data == "script" || node.Data == "style" {
				return
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if node.Type == html.ElementNode && (node.Data == "p" || node.Data == "br" || node.Data == "div" || node.Data == "li") {
			buf.WriteString(" ")
		}
	}
	walk(n)
	return buf.String()
}
