package testutils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Page is a parsed HTML response.
type Page struct {
	root *html.Node
}

// ParsePage parses body as an HTML document.
func ParsePage(t testing.TB, body string) *Page {
	t.Helper()

	root, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return &Page{root: root}
}

// ByID returns the element with the given id, or nil.
func (p *Page) ByID(id string) *html.Node {
	return p.find(func(n *html.Node) bool {
		return attr(n, "id") == id
	})
}

// InputValue returns the value attribute of the element with the given id.
// Text areas report their text content.
func (p *Page) InputValue(id string) string {
	n := p.ByID(id)
	if n == nil {
		return ""
	}
	if n.Data == "textarea" {
		return text(n)
	}
	return attr(n, "value")
}

// Text returns the text content of the element with the given id.
func (p *Page) Text(id string) string {
	n := p.ByID(id)
	if n == nil {
		return ""
	}
	return strings.TrimSpace(text(n))
}

// SelectedOption returns the value of the selected option of the select with
// the given id.
func (p *Page) SelectedOption(id string) string {
	sel := p.ByID(id)
	if sel == nil {
		return ""
	}
	var value string
	walk(sel, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "option" && hasAttr(n, "selected") {
			value = attr(n, "value")
			return true
		}
		return false
	})
	return value
}

// CheckedBoxes returns the values of the checked checkboxes named name, in
// document order.
func (p *Page) CheckedBoxes(name string) []string {
	var values []string
	walk(p.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "input" && attr(n, "type") == "checkbox" &&
			attr(n, "name") == name && hasAttr(n, "checked") {
			values = append(values, attr(n, "value"))
		}
		return false
	})
	return values
}

// Errors returns the validation messages listed on the page.
func (p *Page) Errors() []string {
	var msgs []string
	list := p.find(func(n *html.Node) bool {
		return n.Data == "ul" && attr(n, "class") == "errors"
	})
	if list == nil {
		return nil
	}
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			msgs = append(msgs, strings.TrimSpace(text(c)))
		}
	}
	return msgs
}

func (p *Page) find(match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(p.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			found = n
			return true
		}
		return false
	})
	return found
}

// walk visits n and its descendants depth first until visit returns true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return false
	})
	return sb.String()
}
