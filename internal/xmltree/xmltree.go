// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xmltree decodes an XML document into an owned node tree whose
// element and attribute names carry only their local part. A name declared as
// {namespace-uri}local in the source is stored as local, so callers look nodes
// up by plain names whatever namespaces the producer declared.
//
// Every lookup method is safe on a nil *Node and returns the zero value, which
// lets callers chain optional sections without intermediate nil checks:
//
//	root.Find("logement/sortie/ep_conso").TextAt("classe_bilan_dpe")
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Parse errors. Callers match them with errors.Is.
var (
	ErrMalformed = errors.New("xmltree: malformed document")
	ErrNoRoot    = errors.New("xmltree: no root element")
)

// Attr is an attribute stripped of its namespace prefix. Space keeps the
// resolved namespace URI for diagnostics only; lookups ignore it.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Node is one element of the normalized tree.
type Node struct {
	// Name is the local element name, without namespace.
	Name string

	// Space is the namespace URI the element was declared in, if any.
	Space string

	// Content is the concatenated character data directly under the element.
	Content string

	Attrs    []Attr
	Children []*Node
}

// Parse reads a complete document from r and returns its root element.
// Namespace declarations are consumed by the decoder and do not appear as
// attributes. Encodings other than UTF-8 are converted when the XML
// declaration names them.
func Parse(r io.Reader) (*Node, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := newNode(t)
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: second root element <%s>", ErrMalformed, n.Name)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrMalformed, t.Name.Local)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("%w: text outside the root element", ErrMalformed)
				}
				continue
			}
			top := stack[len(stack)-1]
			top.Content += string(t)
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: unclosed <%s>", ErrMalformed, stack[len(stack)-1].Name)
	}
	return root, nil
}

func newNode(t xml.StartElement) *Node {
	n := &Node{Name: t.Name.Local, Space: t.Name.Space}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		n.Attrs = append(n.Attrs, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
	}
	return n
}

// Text returns the trimmed character data of n, or "" for a nil node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Content)
}

// Child returns the first direct child named name.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find follows a slash-separated path of local names, taking the first
// matching child at each step. It returns nil as soon as a step is missing.
// An empty path returns n itself.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, step := range strings.Split(path, "/") {
		if step == "" {
			continue
		}
		cur = cur.Child(step)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// FindAll returns the direct children named name in document order.
func (n *Node) FindAll(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// TextAt is shorthand for n.Find(path).Text().
func (n *Node) TextAt(path string) string {
	return n.Find(path).Text()
}

// Attr returns the value of the first attribute whose local name is name.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Walk visits n and its descendants depth-first in document order.
func (n *Node) Walk(fn func(n *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	if n == nil {
		return
	}
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}
