package dom

import (
	"strings"

	"github.com/llj1985/servo/webidl"
)

type DocumentKind string

const (
	HTMLDocument DocumentKind = "html"
	XMLDocument  DocumentKind = "xml"
)

// Document is https://dom.spec.whatwg.org/#interface-document
type Document struct {
	Type        DocumentKind
	URL         webidl.USVString
	ContentType string
	CompatMode  string

	node *Node
}

func newDocumentNode(kind DocumentKind, contentType string) *Node {
	n := &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
	}
	n.Document = &Document{
		Type:        kind,
		URL:         "about:blank",
		ContentType: contentType,
		CompatMode:  "CSS1Compat",
		node:        n,
	}
	return n
}

// Implementation returns the DOMImplementation associated with the document.
func (d *Document) Implementation() *DOMImplementation {
	return &DOMImplementation{document: d.node}
}

// https://dom.spec.whatwg.org/#dom-document-doctype
func (d *Document) Doctype() *Node {
	return d.node.firstChildOfType(DocumentTypeNode)
}

// https://dom.spec.whatwg.org/#dom-document-documentelement
func (d *Document) DocumentElement() *Node {
	return d.node.firstChildOfType(ElementNode)
}

// https://html.spec.whatwg.org/#dom-document-head
func (d *Document) Head() *Node {
	return d.htmlChild("head")
}

// https://html.spec.whatwg.org/#dom-document-body
func (d *Document) Body() *Node {
	return d.htmlChild("body")
}

func (d *Document) htmlChild(localName string) *Node {
	root := d.DocumentElement()
	if root == nil || root.LocalName != "html" || root.NamespaceURI != HTMLNamespace {
		return nil
	}
	for _, c := range root.ChildNodes {
		if c.NodeType == ElementNode && c.LocalName == localName && c.NamespaceURI == HTMLNamespace {
			return c
		}
	}
	return nil
}

// CreateElement creates an element in the HTML namespace. HTML documents
// lowercase the name.
// https://dom.spec.whatwg.org/#dom-document-createelement
func (d *Document) CreateElement(localName string) (*Node, error) {
	if xmlNameType(localName) == invalidXMLName {
		return nil, newDOMException(InvalidCharacterError, "%q is not a valid XML name", localName)
	}
	if d.Type == HTMLDocument {
		localName = strings.ToLower(localName)
	}
	ns := NoNamespace
	if d.Type == HTMLDocument || d.ContentType == "application/xhtml+xml" {
		ns = HTMLNamespace
	}
	return newElementNode(d.node, ns, "", localName), nil
}

// https://dom.spec.whatwg.org/#dom-document-createelementns
func (d *Document) CreateElementNS(namespace Namespace, qualifiedName string) (*Node, error) {
	prefix, localName, err := validateAndExtract(namespace, qualifiedName)
	if err != nil {
		return nil, err
	}
	return newElementNode(d.node, namespace, prefix, localName), nil
}

func (d *Document) CreateTextNode(data string) *Node {
	return newTextNode(d.node, data)
}

func (d *Document) CreateComment(data string) *Node {
	return newCommentNode(d.node, data)
}

func (n *Node) firstChildOfType(t NodeType) *Node {
	for _, c := range n.ChildNodes {
		if c.NodeType == t {
			return c
		}
	}
	return nil
}
