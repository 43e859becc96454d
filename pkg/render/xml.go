package render

import (
	"io"
	"strconv"

	"github.com/yaklabco/gocmark/pkg/mdast"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
	`<!DOCTYPE CommonMark SYSTEM "CommonMark.dtd">` + "\n"

// XMLRenderer renders a document in the CommonMark XML format, one element
// per node, indented two spaces per level.
type XMLRenderer struct {
	opts Options
}

// NewXMLRenderer creates an XML renderer. Softbreak, Safe and
// DetectLanguage do not apply to XML output.
func NewXMLRenderer(opts Options) *XMLRenderer {
	return &XMLRenderer{opts: opts}
}

// Render writes root as CommonMark XML to w.
func (r *XMLRenderer) Render(w io.Writer, root *mdast.Node) error {
	o := newOutput(w)
	o.indent = "  "
	o.raw(xmlHeader)

	for node, entering := range mdast.Events(root) {
		name := node.Kind.String()

		if !entering {
			o.indentLevel--
			o.cr()
			o.out(tag("/"+name, nil, false))
			continue
		}

		attrs := xmlAttrs(node)
		if r.opts.Sourcepos && node.Pos.IsValid() {
			attrs = append(attrs, attr{"sourcepos", node.Pos.String()})
		}

		selfClosing := node.Kind == mdast.NodeHorizontalRule ||
			node.Kind == mdast.NodeSoftBreak ||
			node.Kind == mdast.NodeHardBreak

		o.cr()
		o.out(tag(name, attrs, selfClosing))

		switch {
		case node.IsContainer():
			o.indentLevel++
		case !selfClosing:
			if node.Kind == mdast.NodeHTML || node.Kind == mdast.NodeHTMLBlock {
				o.out(node.Literal)
			} else {
				o.out(escape(node.Literal))
			}
			o.out(tag("/"+name, nil, false))
		}
	}

	o.raw("\n")
	return o.flush()
}

// xmlAttrs returns the kind-specific attributes of node.
func xmlAttrs(node *mdast.Node) []attr {
	switch node.Kind {
	case mdast.NodeList:
		data := node.List
		attrs := []attr{{"type", data.Type.String()}}
		if data.Type == mdast.ListOrdered {
			attrs = append(attrs, attr{"start", strconv.Itoa(data.Start)})
		}
		attrs = append(attrs, attr{"tight", strconv.FormatBool(data.Tight)})
		if delim := data.DelimiterName(); delim != "" {
			attrs = append(attrs, attr{"delimiter", delim})
		}
		return attrs

	case mdast.NodeCodeBlock:
		if node.Fenced {
			return []attr{{"info", escape(node.Info)}}
		}

	case mdast.NodeHeader:
		return []attr{{"level", strconv.Itoa(node.Level)}}

	case mdast.NodeLink, mdast.NodeImage:
		return []attr{
			{"destination", escape(node.Destination)},
			{"title", escape(node.Title)},
		}
	}
	return nil
}
