package dom

type Namespace string

// https://infra.spec.whatwg.org/#namespaces
const (
	NoNamespace     Namespace = ""
	HTMLNamespace   Namespace = "http://www.w3.org/1999/xhtml"
	MathMLNamespace Namespace = "http://www.w3.org/1998/Math/MathML"
	SVGNamespace    Namespace = "http://www.w3.org/2000/svg"
	XLinkNamespace  Namespace = "http://www.w3.org/1999/xlink"
	XMLNamespace    Namespace = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace  Namespace = "http://www.w3.org/2000/xmlns/"
)

// Element is an individual element in the tree.
// https://dom.spec.whatwg.org/#interface-element
type Element struct {
	NamespaceURI      Namespace
	Prefix, LocalName string
	Attrs             map[string]string
}

func newElementNode(od *Node, namespace Namespace, prefix, localName string) *Node {
	name := localName
	if prefix != "" {
		name = prefix + ":" + localName
	}
	return &Node{
		NodeType:      ElementNode,
		NodeName:      name,
		OwnerDocument: od,
		Element: &Element{
			NamespaceURI: namespace,
			Prefix:       prefix,
			LocalName:    localName,
			Attrs:        map[string]string{},
		},
	}
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.Attrs[name]
	return ok
}

func (e *Element) GetAttribute(name string) string { return e.Attrs[name] }

func (e *Element) SetAttribute(name, value string) {
	if e.Attrs == nil {
		e.Attrs = map[string]string{}
	}
	e.Attrs[name] = value
}

func (e *Element) RemoveAttribute(name string) { delete(e.Attrs, name) }
