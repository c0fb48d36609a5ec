package dom

import (
	"io"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes n and its descendants as HTML.
func Render(w io.Writer, n *Node) error {
	hn, err := toHTMLNode(n)
	if err != nil {
		return err
	}
	return errors.Wrap(html.Render(w, hn), "render")
}

func toHTMLNode(n *Node) (*html.Node, error) {
	var hn *html.Node
	switch n.NodeType {
	case DocumentNode:
		hn = &html.Node{Type: html.DocumentNode}
	case DocumentTypeNode:
		hn = &html.Node{Type: html.DoctypeNode, Data: n.DocumentType.Name}
		if n.PublicID != "" {
			hn.Attr = append(hn.Attr, html.Attribute{Key: "public", Val: n.PublicID})
		}
		if n.SystemID != "" {
			hn.Attr = append(hn.Attr, html.Attribute{Key: "system", Val: n.SystemID})
		}
	case ElementNode:
		hn = &html.Node{
			Type:      html.ElementNode,
			Data:      n.LocalName,
			DataAtom:  atom.Lookup([]byte(n.LocalName)),
			Namespace: foreignNamespace(n.NamespaceURI),
		}
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			hn.Attr = append(hn.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
		}
	case TextNode:
		hn = &html.Node{Type: html.TextNode, Data: n.Data}
	case CommentNode:
		hn = &html.Node{Type: html.CommentNode, Data: n.Data}
	default:
		return nil, errors.Errorf("render: unsupported node type %d", n.NodeType)
	}

	for _, c := range n.ChildNodes {
		hc, err := toHTMLNode(c)
		if err != nil {
			return nil, err
		}
		hn.AppendChild(hc)
	}
	return hn, nil
}

func foreignNamespace(ns Namespace) string {
	switch ns {
	case SVGNamespace:
		return "svg"
	case MathMLNamespace:
		return "math"
	}
	return ""
}
