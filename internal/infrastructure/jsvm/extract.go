package jsvm

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoInlineScript is returned when a document carries no inline script.
var ErrNoInlineScript = errors.New("document has no inline script")

// Parts is what a scene document is made of once parsed.
type Parts struct {
	// ContainerIDs lists the ids of every div in the document.
	ContainerIDs []string
	// ExternalScripts lists script src attributes in document order.
	ExternalScripts []string
	// InlineScripts lists script bodies in document order.
	InlineScripts []string
}

// Extract parses doc as an HTML fragment and collects its scripts.
func Extract(doc string) (*Parts, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	parts := &Parts{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Div:
				if id := attr(n, "id"); id != "" {
					parts.ContainerIDs = append(parts.ContainerIDs, id)
				}
			case atom.Script:
				if src := attr(n, "src"); src != "" {
					parts.ExternalScripts = append(parts.ExternalScripts, src)
				} else if body := text(n); strings.TrimSpace(body) != "" {
					parts.InlineScripts = append(parts.InlineScripts, body)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if len(parts.InlineScripts) == 0 {
		return parts, ErrNoInlineScript
	}
	return parts, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
