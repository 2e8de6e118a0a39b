// Package xmlfeed builds the XML documents ShipStation consumes.
//
// Text values go into CDATA sections so names, notes and SKUs never need
// entity escaping; numbers and dates are written as plain text.
package xmlfeed

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const indentSpaces = 2

// Field is a named child value
type Field struct {
	Name  string
	Value string
}

// Fields groups child values by how they are written. CData fields are
// applied before Other fields, each group in insertion order.
type Fields struct {
	CData []Field
	Other []Field
}

// AddCData appends a CDATA field
func (f *Fields) AddCData(name, value string) {
	f.CData = append(f.CData, Field{Name: name, Value: value})
}

// AddOther appends a plain text field
func (f *Fields) AddOther(name, value string) {
	f.Other = append(f.Other, Field{Name: name, Value: value})
}

// Apply writes every field as a child of el
func Apply(el *etree.Element, f Fields) {
	for _, field := range f.CData {
		SetCData(el, field.Name, field.Value)
	}
	for _, field := range f.Other {
		SetText(el, field.Name, field.Value)
	}
}

// NewDocument creates a UTF-8 document with the given root element
func NewDocument(root string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc, doc.CreateElement(root)
}

// SetCData sets the child called name to a single CDATA section holding
// value, creating the child when missing and keeping its position otherwise.
// An empty value leaves the child empty.
func SetCData(el *etree.Element, name, value string) *etree.Element {
	child := resetChild(el, name)
	if value != "" {
		child.CreateCData(escapeCData(value))
	}
	return child
}

// SetText sets the child called name to a plain, escaped text value
func SetText(el *etree.Element, name, value string) *etree.Element {
	child := resetChild(el, name)
	child.SetText(value)
	return child
}

// Render pretty-prints the document
func Render(doc *etree.Document) (string, error) {
	doc.Indent(indentSpaces)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to render xml: %w", err)
	}
	return out, nil
}

func resetChild(el *etree.Element, name string) *etree.Element {
	child := el.SelectElement(name)
	if child == nil {
		return el.CreateElement(name)
	}
	for len(child.Child) > 0 {
		child.RemoveChildAt(0)
	}
	return child
}

// escapeCData splits the CDATA terminator across two sections.
func escapeCData(v string) string {
	return strings.ReplaceAll(v, "]]>", "]]]]><![CDATA[>")
}
