package dom

import "github.com/pkg/errors"

// https://dom.spec.whatwg.org/#domimplementation
type DOMImplementation struct {
	document *Node
}

// NewDOMImplementation returns an implementation associated with a fresh,
// empty HTML document.
func NewDOMImplementation() *DOMImplementation {
	return &DOMImplementation{document: newDocumentNode(HTMLDocument, "text/html")}
}

// https://dom.spec.whatwg.org/#dom-domimplementation-createdocumenttype
func (d *DOMImplementation) CreateDocumentType(qualifiedName, publicID, systemID string) (*Node, error) {
	if err := validateQualifiedName(qualifiedName); err != nil {
		return nil, err
	}
	return newDocTypeNode(d.document, qualifiedName, publicID, systemID), nil
}

// CreateDocument creates an XML document. An empty qualifiedName skips the
// document element; a nil doctype skips the doctype.
// https://dom.spec.whatwg.org/#dom-domimplementation-createdocument
func (d *DOMImplementation) CreateDocument(namespace Namespace, qualifiedName string, doctype *Node) (*Node, error) {
	contentType := "application/xml"
	switch namespace {
	case HTMLNamespace:
		contentType = "application/xhtml+xml"
	case SVGNamespace:
		contentType = "image/svg+xml"
	}
	doc := newDocumentNode(XMLDocument, contentType)

	var elem *Node
	if qualifiedName != "" {
		var err error
		if elem, err = doc.CreateElementNS(namespace, qualifiedName); err != nil {
			return nil, err
		}
	}

	if doctype != nil {
		if err := doc.AppendChild(doctype); err != nil {
			return nil, errors.Wrap(err, "append doctype")
		}
	}
	if elem != nil {
		if err := doc.AppendChild(elem); err != nil {
			return nil, errors.Wrap(err, "append document element")
		}
	}
	return doc, nil
}

// CreateHTMLDocument builds doctype, html, head, an optional title and body.
// https://dom.spec.whatwg.org/#dom-domimplementation-createhtmldocument
func (d *DOMImplementation) CreateHTMLDocument(title *string) (*Node, error) {
	doc := newDocumentNode(HTMLDocument, "text/html")

	if err := doc.AppendChild(newDocTypeNode(doc, "html", "", "")); err != nil {
		return nil, errors.Wrap(err, "append doctype")
	}

	html := newElementNode(doc, HTMLNamespace, "", "html")
	if err := doc.AppendChild(html); err != nil {
		return nil, errors.Wrap(err, "append html")
	}

	head := newElementNode(doc, HTMLNamespace, "", "head")
	if err := html.AppendChild(head); err != nil {
		return nil, errors.Wrap(err, "append head")
	}

	if title != nil {
		titleElem := newElementNode(doc, HTMLNamespace, "", "title")
		if err := head.AppendChild(titleElem); err != nil {
			return nil, errors.Wrap(err, "append title")
		}
		if err := titleElem.AppendChild(newTextNode(doc, *title)); err != nil {
			return nil, errors.Wrap(err, "append title text")
		}
	}

	body := newElementNode(doc, HTMLNamespace, "", "body")
	if err := html.AppendChild(body); err != nil {
		return nil, errors.Wrap(err, "append body")
	}
	return doc, nil
}

// https://dom.spec.whatwg.org/#dom-domimplementation-hasfeature
func (d *DOMImplementation) HasFeature() bool { return true }
