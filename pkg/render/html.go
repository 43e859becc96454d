package render

import (
	"io"
	"regexp"
	"strconv"

	"github.com/yaklabco/gocmark/pkg/langdetect"
	"github.com/yaklabco/gocmark/pkg/mdast"
	"github.com/yaklabco/gocmark/pkg/textutil"
)

// rawHTMLOmitted replaces raw HTML in safe mode.
const rawHTMLOmitted = "<!-- raw HTML omitted -->"

var (
	reUnsafeProtocol   = regexp.MustCompile(`(?i)^(?:javascript|vbscript|file|data):`)
	reSafeDataProtocol = regexp.MustCompile(`(?i)^data:image/(?:png|gif|jpeg|webp)`)
	reInfoWordSep      = regexp.MustCompile(textutil.Space + `+`)
)

// potentiallyUnsafe reports whether url uses a scheme that safe mode drops.
func potentiallyUnsafe(url string) bool {
	return reUnsafeProtocol.MatchString(url) && !reSafeDataProtocol.MatchString(url)
}

// HTMLRenderer renders a document as HTML.
type HTMLRenderer struct {
	opts Options
}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{opts: opts}
}

// Render writes root as HTML to w.
func (r *HTMLRenderer) Render(w io.Writer, root *mdast.Node) error {
	o := newOutput(w)
	softbreak := r.opts.softbreak()

	for node, entering := range mdast.Events(root) {
		var attrs []attr
		if r.opts.Sourcepos && node.Pos.IsValid() {
			attrs = append(attrs, attr{"data-sourcepos", node.Pos.String()})
		}

		switch node.Kind {
		case mdast.NodeText:
			o.out(escape(node.Literal))

		case mdast.NodeSoftBreak:
			o.out(softbreak)

		case mdast.NodeHardBreak:
			o.out(tag("br", nil, true))
			o.cr()

		case mdast.NodeEmph:
			o.out(tag(closing("em", entering), nil, false))

		case mdast.NodeStrong:
			o.out(tag(closing("strong", entering), nil, false))

		case mdast.NodeHTML:
			if r.opts.Safe {
				o.out(rawHTMLOmitted)
			} else {
				o.out(node.Literal)
			}

		case mdast.NodeLink:
			if !entering {
				o.out(tag("/a", nil, false))
				break
			}
			if !r.opts.Safe || !potentiallyUnsafe(node.Destination) {
				attrs = append(attrs, attr{"href", escapeAttr(node.Destination)})
			}
			if node.Title != "" {
				attrs = append(attrs, attr{"title", escapeAttr(node.Title)})
			}
			o.out(tag("a", attrs, false))

		case mdast.NodeImage:
			r.renderImage(o, node, entering)

		case mdast.NodeCode:
			o.out(tag("code", nil, false) + escape(node.Literal) + tag("/code", nil, false))

		case mdast.NodeDocument:

		case mdast.NodeParagraph:
			if inTightList(node) {
				break
			}
			if entering {
				o.cr()
				o.out(tag("p", attrs, false))
			} else {
				o.out(tag("/p", nil, false))
				o.cr()
			}

		case mdast.NodeBlockQuote:
			o.cr()
			if entering {
				o.out(tag("blockquote", attrs, false))
			} else {
				o.out(tag("/blockquote", nil, false))
			}
			o.cr()

		case mdast.NodeItem:
			if entering {
				o.out(tag("li", attrs, false))
			} else {
				o.out(tag("/li", nil, false))
				o.cr()
			}

		case mdast.NodeList:
			name := "ul"
			if node.List.Type == mdast.ListOrdered {
				name = "ol"
			}
			o.cr()
			if entering {
				if node.List.Type == mdast.ListOrdered && node.List.Start != 1 {
					attrs = append(attrs, attr{"start", strconv.Itoa(node.List.Start)})
				}
				o.out(tag(name, attrs, false))
			} else {
				o.out(tag("/"+name, nil, false))
			}
			o.cr()

		case mdast.NodeHeader:
			name := "h" + strconv.Itoa(node.Level)
			if entering {
				o.cr()
				o.out(tag(name, attrs, false))
			} else {
				o.out(tag("/"+name, nil, false))
				o.cr()
			}

		case mdast.NodeCodeBlock:
			if lang := r.codeLanguage(node); lang != "" {
				attrs = append(attrs, attr{"class", "language-" + escapeAttr(lang)})
			}
			o.cr()
			o.out(tag("pre", nil, false) + tag("code", attrs, false))
			o.out(escape(node.Literal))
			o.out(tag("/code", nil, false) + tag("/pre", nil, false))
			o.cr()

		case mdast.NodeHTMLBlock:
			o.cr()
			if r.opts.Safe {
				o.out(rawHTMLOmitted)
			} else {
				o.out(node.Literal)
			}
			o.cr()

		case mdast.NodeHorizontalRule:
			o.cr()
			o.out(tag("hr", attrs, true))
			o.cr()
		}
	}

	return o.flush()
}

// renderImage writes an img tag whose alt text is the plain text of the
// image's children. Nested images contribute only their text.
func (r *HTMLRenderer) renderImage(o *output, node *mdast.Node, entering bool) {
	if entering {
		if o.disableTags == 0 {
			src := ""
			if !r.opts.Safe || !potentiallyUnsafe(node.Destination) {
				src = escapeAttr(node.Destination)
			}
			o.out(`<img src="` + src + `" alt="`)
		}
		o.disableTags++
		return
	}

	o.disableTags--
	if o.disableTags == 0 {
		if node.Title != "" {
			o.out(`" title="` + escapeAttr(node.Title))
		}
		o.out(`" />`)
	}
}

// codeLanguage returns the language for a code block's class: the first
// word of the info string, or a detected language for an unlabeled fence.
func (r *HTMLRenderer) codeLanguage(node *mdast.Node) string {
	if node.Info != "" {
		if word := reInfoWordSep.Split(node.Info, 2)[0]; word != "" {
			return word
		}
	}
	if r.opts.DetectLanguage && node.Fenced && node.Info == "" {
		if lang, ok := langdetect.Detect(node.Literal); ok {
			return lang
		}
	}
	return ""
}

// inTightList reports whether a paragraph sits directly in an item of a
// tight list, where it renders without <p> tags.
func inTightList(para *mdast.Node) bool {
	item := para.Parent
	if item == nil {
		return false
	}
	list := item.Parent
	return list != nil && list.Kind == mdast.NodeList && list.List.Tight
}

func closing(name string, entering bool) string {
	if entering {
		return name
	}
	return "/" + name
}
