package dom

import (
	"strings"
	"unicode/utf8"
)

type xmlNameKind uint8

const (
	invalidXMLName xmlNameKind = iota
	// a valid Name that is not a valid QName
	xmlName
	xmlQName
)

// https://www.w3.org/TR/xml/#NT-NameStartChar
func isNameStartChar(r rune) bool {
	switch {
	case r == ':', r == '_', 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z':
		return true
	case 0xC0 <= r && r <= 0xD6, 0xD8 <= r && r <= 0xF6, 0xF8 <= r && r <= 0x2FF:
		return true
	case 0x370 <= r && r <= 0x37D, 0x37F <= r && r <= 0x1FFF, 0x200C <= r && r <= 0x200D:
		return true
	case 0x2070 <= r && r <= 0x218F, 0x2C00 <= r && r <= 0x2FEF, 0x3001 <= r && r <= 0xD7FF:
		return true
	case 0xF900 <= r && r <= 0xFDCF, 0xFDF0 <= r && r <= 0xFFFD, 0x10000 <= r && r <= 0xEFFFF:
		return true
	}
	return false
}

// https://www.w3.org/TR/xml/#NT-NameChar
func isNameChar(r rune) bool {
	switch {
	case isNameStartChar(r), r == '-', r == '.', '0' <= r && r <= '9', r == 0xB7:
		return true
	case 0x300 <= r && r <= 0x36F, 0x203F <= r && r <= 0x2040:
		return true
	}
	return false
}

func xmlNameType(name string) xmlNameKind {
	if name == "" || !utf8.ValidString(name) {
		return invalidXMLName
	}
	for i, r := range name {
		if i == 0 && !isNameStartChar(r) || !isNameChar(r) {
			return invalidXMLName
		}
	}

	colon := strings.IndexByte(name, ':')
	if colon < 0 {
		return xmlQName
	}
	if colon == 0 || colon == len(name)-1 || strings.Count(name, ":") > 1 {
		return xmlName
	}
	if r, _ := utf8.DecodeRuneInString(name[colon+1:]); !isNameStartChar(r) {
		return xmlName
	}
	return xmlQName
}

func validateQualifiedName(qualifiedName string) error {
	switch xmlNameType(qualifiedName) {
	case invalidXMLName:
		return newDOMException(InvalidCharacterError, "%q is not a valid XML name", qualifiedName)
	case xmlName:
		return newDOMException(NamespaceError, "%q is not a valid qualified name", qualifiedName)
	}
	return nil
}

// https://dom.spec.whatwg.org/#validate-and-extract
func validateAndExtract(namespace Namespace, qualifiedName string) (prefix, localName string, err error) {
	if err := validateQualifiedName(qualifiedName); err != nil {
		return "", "", err
	}

	localName = qualifiedName
	if i := strings.IndexByte(qualifiedName, ':'); i >= 0 {
		prefix, localName = qualifiedName[:i], qualifiedName[i+1:]
	}

	switch {
	case prefix != "" && namespace == NoNamespace:
		return "", "", newDOMException(NamespaceError, "prefix %q without a namespace", prefix)
	case prefix == "xml" && namespace != XMLNamespace:
		return "", "", newDOMException(NamespaceError, "prefix xml bound to %q", namespace)
	case (qualifiedName == "xmlns" || prefix == "xmlns") && namespace != XMLNSNamespace:
		return "", "", newDOMException(NamespaceError, "xmlns outside the XMLNS namespace")
	case namespace == XMLNSNamespace && qualifiedName != "xmlns" && prefix != "xmlns":
		return "", "", newDOMException(NamespaceError, "XMLNS namespace requires the xmlns prefix")
	}
	return prefix, localName, nil
}
