package dom

import (
	"sort"
	"strings"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

// https://dom.spec.whatwg.org/#node
//
// Only the embedded struct matching NodeType is non-nil, so Element and
// Document accessors must not be called on nodes of another type.
type Node struct {
	NodeType                                                        NodeType
	NodeName                                                        string
	OwnerDocument                                                   *Node
	ParentNode, FirstChild, LastChild, PreviousSibling, NextSibling *Node
	ChildNodes                                                      NodeList

	// Node types
	*Element
	*CharacterData
	*Document
	*DocumentType

	EventListeners
}

// https://dom.spec.whatwg.org/#characterdata
type CharacterData struct {
	Data string
}

// https://dom.spec.whatwg.org/#documenttype
type DocumentType struct {
	Name     string
	PublicID string
	SystemID string
}

func newTextNode(od *Node, data string) *Node {
	return &Node{
		NodeType:      TextNode,
		NodeName:      "#text",
		OwnerDocument: od,
		CharacterData: &CharacterData{Data: data},
	}
}

func newCommentNode(od *Node, data string) *Node {
	return &Node{
		NodeType:      CommentNode,
		NodeName:      "#comment",
		OwnerDocument: od,
		CharacterData: &CharacterData{Data: data},
	}
}

func newDocTypeNode(od *Node, name, pub, sys string) *Node {
	return &Node{
		NodeType:      DocumentTypeNode,
		NodeName:      name,
		OwnerDocument: od,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: pub,
			SystemID: sys,
		},
	}
}

// Ancestors returns n's ancestors, nearest parent first. The slice is a
// snapshot; later tree mutations do not change it.
func (n *Node) Ancestors() []EventTarget {
	if n == nil {
		return nil
	}
	var chain []EventTarget
	for p := n.ParentNode; p != nil; p = p.ParentNode {
		chain = append(chain, p)
	}
	return chain
}

// DispatchEvent dispatches e with n as its target.
// https://dom.spec.whatwg.org/#dom-eventtarget-dispatchevent
func (n *Node) DispatchEvent(e *Event) bool {
	return DispatchEvent(n, nil, e)
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// https://dom.spec.whatwg.org/#dom-node-getrootnode
func (n *Node) GetRootNode() *Node {
	root := n
	for root.ParentNode != nil {
		root = root.ParentNode
	}
	return root
}

// Contains reports whether on is an inclusive descendant of n.
// https://dom.spec.whatwg.org/#dom-node-contains
func (n *Node) Contains(on *Node) bool {
	for ; on != nil; on = on.ParentNode {
		if on == n {
			return true
		}
	}
	return false
}

// https://dom.spec.whatwg.org/#dom-node-appendchild
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// https://dom.spec.whatwg.org/#concept-node-pre-insert
func (n *Node) InsertBefore(child, ref *Node) error {
	if err := n.ensurePreInsertionValidity(child, ref); err != nil {
		return err
	}
	if ref == child {
		ref = child.NextSibling
	}
	if child.ParentNode != nil {
		child.ParentNode.detach(child)
	}

	i := len(n.ChildNodes)
	if ref != nil {
		i = n.ChildNodes.Contains(ref)
	}
	n.ChildNodes.WedgeIn(i, child)
	child.ParentNode = n
	n.relink()
	child.adopt(n.ownerDocumentOrSelf())
	return nil
}

// https://dom.spec.whatwg.org/#dom-node-removechild
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.ParentNode != n {
		return newDOMException(NotFoundError, "node is not a child of %s", n.NodeName)
	}
	n.detach(child)
	return nil
}

func (n *Node) detach(child *Node) {
	n.ChildNodes.Remove(n.ChildNodes.Contains(child))
	child.ParentNode = nil
	child.PreviousSibling = nil
	child.NextSibling = nil
	n.relink()
}

// relink recomputes the sibling and first/last pointers from ChildNodes.
func (n *Node) relink() {
	n.FirstChild, n.LastChild = nil, nil
	for i, c := range n.ChildNodes {
		c.PreviousSibling, c.NextSibling = nil, nil
		if i > 0 {
			c.PreviousSibling = n.ChildNodes[i-1]
		}
		if i < len(n.ChildNodes)-1 {
			c.NextSibling = n.ChildNodes[i+1]
		}
	}
	if len(n.ChildNodes) > 0 {
		n.FirstChild = n.ChildNodes[0]
		n.LastChild = n.ChildNodes[len(n.ChildNodes)-1]
	}
}

func (n *Node) ownerDocumentOrSelf() *Node {
	if n.NodeType == DocumentNode {
		return n
	}
	return n.OwnerDocument
}

func (n *Node) adopt(od *Node) {
	if n.NodeType == DocumentNode || n.OwnerDocument == od {
		return
	}
	n.OwnerDocument = od
	for _, c := range n.ChildNodes {
		c.adopt(od)
	}
}

// https://dom.spec.whatwg.org/#concept-node-ensure-pre-insertion-validity
func (n *Node) ensurePreInsertionValidity(child, ref *Node) error {
	if child == nil {
		return newDOMException(HierarchyRequestError, "cannot insert a nil node")
	}
	switch n.NodeType {
	case DocumentNode, ElementNode:
	default:
		return newDOMException(HierarchyRequestError, "%s cannot have children", n.NodeName)
	}
	if child.Contains(n) {
		return newDOMException(HierarchyRequestError, "%s is an inclusive ancestor of %s", child.NodeName, n.NodeName)
	}
	if ref != nil && ref.ParentNode != n {
		return newDOMException(NotFoundError, "reference node is not a child of %s", n.NodeName)
	}

	switch child.NodeType {
	case ElementNode, CommentNode:
	case TextNode:
		if n.NodeType == DocumentNode {
			return newDOMException(HierarchyRequestError, "text cannot be a child of a document")
		}
	case DocumentTypeNode:
		if n.NodeType != DocumentNode {
			return newDOMException(HierarchyRequestError, "doctype must be a child of a document")
		}
	default:
		return newDOMException(HierarchyRequestError, "%s cannot be inserted", child.NodeName)
	}

	if n.NodeType != DocumentNode {
		return nil
	}

	switch child.NodeType {
	case ElementNode:
		if n.hasChildOfType(ElementNode, child) {
			return newDOMException(HierarchyRequestError, "document already has a document element")
		}
		if ref != nil && n.typeFollows(DocumentTypeNode, ref) {
			return newDOMException(HierarchyRequestError, "document element cannot precede the doctype")
		}
	case DocumentTypeNode:
		if n.hasChildOfType(DocumentTypeNode, child) {
			return newDOMException(HierarchyRequestError, "document already has a doctype")
		}
		if ref != nil && n.typePrecedes(ElementNode, ref) ||
			ref == nil && n.hasChildOfType(ElementNode, nil) {
			return newDOMException(HierarchyRequestError, "doctype cannot follow the document element")
		}
	}
	return nil
}

func (n *Node) hasChildOfType(t NodeType, except *Node) bool {
	for _, c := range n.ChildNodes {
		if c.NodeType == t && c != except {
			return true
		}
	}
	return false
}

// typeFollows reports whether a child of type t is ref or comes after it.
func (n *Node) typeFollows(t NodeType, ref *Node) bool {
	for c := ref; c != nil; c = c.NextSibling {
		if c.NodeType == t {
			return true
		}
	}
	return false
}

func (n *Node) typePrecedes(t NodeType, ref *Node) bool {
	for c := ref.PreviousSibling; c != nil; c = c.PreviousSibling {
		if c.NodeType == t {
			return true
		}
	}
	return false
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		switch node.NamespaceURI {
		case SVGNamespace:
			e += "svg "
		case MathMLNamespace:
			e += "math "
		}
		e += node.NodeName + ">"
		if len(node.Attrs) == 0 {
			return e
		}
		keys := make([]string, 0, len(node.Attrs))
		for name := range node.Attrs {
			keys = append(keys, name)
		}
		sort.Strings(keys)
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		for _, name := range keys {
			e += "\n" + spaces + name + "=\"" + node.Attrs[name] + "\""
		}
		return e
	case TextNode:
		return "\"" + node.Data + "\""
	case CommentNode:
		return "<!-- " + node.Data + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + node.DocumentType.Name
		if node.PublicID != "" || node.SystemID != "" {
			d += " \"" + node.PublicID + "\" \"" + node.SystemID + "\""
		}
		return d + ">"
	case DocumentNode:
		return "#document"
	default:
		return ""
	}
}

func (node *Node) serialize(ident int) string {
	ser := serializeNodeType(node, ident+1) + "\n"
	if node.NodeType != DocumentNode {
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		ser = spaces + ser
	}
	for _, child := range node.ChildNodes {
		ser += child.serialize(ident + 1)
	}

	return ser
}

// String dumps the tree in the html5lib test format.
func (node *Node) String() string {
	return strings.TrimRight(node.serialize(0), "\n")
}
