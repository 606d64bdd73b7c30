package content

import (
	"strings"

	"golang.org/x/net/html"
)

// matcher tests a single element.
type matcher func(*html.Node) bool

func isTag(tag string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func hasClass(class string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, _ := attr(n, "class")
		for _, c := range strings.Fields(v) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func hasID(id string) matcher {
	return func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return n.Type == html.ElementNode && ok && v == id
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// descendants returns the elements below root matching m, in document order.
func descendants(root *html.Node, m matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if m(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// selectAll evaluates a descendant-combinator chain ("a b c") below root and
// returns each matching element once, in document order.
func selectAll(root *html.Node, chain ...matcher) []*html.Node {
	if root == nil || len(chain) == 0 {
		return nil
	}
	current := []*html.Node{root}
	for _, m := range chain {
		seen := make(map[*html.Node]bool)
		var next []*html.Node
		for _, n := range current {
			for _, d := range descendants(n, m) {
				if !seen[d] {
					seen[d] = true
					next = append(next, d)
				}
			}
		}
		current = next
	}
	return inDocumentOrder(root, current)
}

func inDocumentOrder(root *html.Node, nodes []*html.Node) []*html.Node {
	if len(nodes) < 2 {
		return nodes
	}
	want := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		want[n] = true
	}
	return descendants(root, func(n *html.Node) bool { return want[n] })
}

func selectFirst(root *html.Node, chain ...matcher) *html.Node {
	all := selectAll(root, chain...)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}
