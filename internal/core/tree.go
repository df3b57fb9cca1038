package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/xsd/pkg/xmlstream"
)

var errEmptyDocument = errors.New("empty document")

// NodeKind distinguishes element nodes from character data.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

// Attr is an attribute of an element. Namespace declarations are not included.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Node is one node of a parsed document. Comments and processing
// instructions are dropped while parsing.
type Node struct {
	Kind     NodeKind
	Space    string // namespace URI, empty when unqualified
	Name     string // local name; empty for text nodes
	Attrs    []Attr
	Data     string // character data of text nodes
	Parent   *Node
	Children []*Node
	Line     int
	Column   int
}

// Document is a navigable tree of one XML document.
type Document struct {
	Root *Node
}

// ParseDocument reads data into a Document. It fails on any well-formedness
// error, reporting the position from the underlying reader.
func ParseDocument(data []byte) (*Document, error) {
	reader, err := xmlstream.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xml reader: %w", err)
	}

	doc := &Document{}
	var stack []*Node

	for {
		ev, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml read: %w", err)
		}

		switch ev.Kind {
		case xmlstream.EventStartElement:
			if doc.Root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("unexpected element %s after document end", ev.Name.Local)
			}
			node := &Node{
				Kind:   ElementNode,
				Space:  ev.Name.Namespace,
				Name:   ev.Name.Local,
				Line:   ev.Line,
				Column: ev.Column,
			}
			if len(ev.Attrs) > 0 {
				node.Attrs = make([]Attr, 0, len(ev.Attrs))
				for _, a := range ev.Attrs {
					node.Attrs = append(node.Attrs, Attr{
						Space: a.Name.Namespace,
						Name:  a.Name.Local,
						Value: string(a.Value),
					})
				}
			}
			if len(stack) == 0 {
				doc.Root = node
			} else {
				node.Parent = stack[len(stack)-1]
				node.Parent.Children = append(node.Parent.Children, node)
			}
			stack = append(stack, node)

		case xmlstream.EventEndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xmlstream.EventCharData:
			if len(stack) == 0 {
				if len(bytes.Trim(ev.Text, " \t\r\n\ufeff")) > 0 {
					return nil, fmt.Errorf("unexpected character data outside root element")
				}
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{
				Kind:   TextNode,
				Data:   string(ev.Text),
				Parent: parent,
			})
		}
	}

	if doc.Root == nil {
		return nil, errEmptyDocument
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("document ended with unclosed element %s", stack[len(stack)-1].Name)
	}
	return doc, nil
}

// Attr returns the value of the attribute with the given local name,
// regardless of its namespace.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ChildElements returns the element children of n in document order.
func (n *Node) ChildElements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Text returns the concatenated character data of n and all its descendants.
func (n *Node) Text() string {
	if n.Kind == TextNode {
		return n.Data
	}
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	for _, c := range n.Children {
		if c.Kind == TextNode {
			b.WriteString(c.Data)
		} else {
			c.appendText(b)
		}
	}
}

// FindAll returns every descendant element of n with the given local name,
// in document order. n itself is not considered.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			if c.Kind != ElementNode {
				continue
			}
			if c.Name == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}
