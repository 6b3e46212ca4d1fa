package course

import (
	"bytes"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// lesson stylesheet
const (
	classH1         = "text-3xl font-display text-[#FFFFFF] mb-4"
	classH2         = "text-2xl font-display text-[#FFFFFF] mb-3"
	classH3         = "text-xl font-display text-[#FFFFFF] mb-2"
	classParagraph  = "mb-4"
	classLink       = "text-[#00FF9D] hover:text-[#00E589] underline transition-colors"
	classStrong     = "font-bold text-[#FFFFFF]"
	classEmph       = "italic text-[#D9D9D9]"
	classUnordered  = "list-disc ml-6 mb-4"
	classOrdered    = "list-decimal ml-6 mb-4"
	classItem       = "mb-2"
	classInlineCode = "bg-[#1A1A1A] px-2 py-1 rounded text-[#00FF9D]"
	classPre        = "bg-[#1A1A1A] p-4 rounded-lg overflow-x-auto mb-4"
)

var headingClasses = map[int]string{1: classH1, 2: classH2, 3: classH3}

const markdownExtensions = blackfriday.CommonExtensions | blackfriday.Autolink | blackfriday.Strikethrough

// Markdown turns lesson markdown into styled HTML. Raw HTML in the source is kept as is.
func Markdown(src string) template.HTML {
	r := &lessonRenderer{
		HTMLRenderer: blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
			Flags: blackfriday.UseXHTML,
		}),
	}
	out := blackfriday.Run(
		[]byte(strings.ReplaceAll(src, "\r\n", "\n")),
		blackfriday.WithRenderer(r),
		blackfriday.WithExtensions(markdownExtensions),
	)
	return template.HTML(out) // nolint:gosec
}

// lessonRenderer adds the lesson classes to the nodes it knows and leaves the rest to blackfriday.
type lessonRenderer struct {
	*blackfriday.HTMLRenderer
}

func (r *lessonRenderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	switch node.Type {
	case blackfriday.Heading:
		class, ok := headingClasses[node.HeadingData.Level]
		if !ok || node.HeadingData.IsTitleblock {
			break
		}
		tag := []byte{'h', byte('0' + node.HeadingData.Level)}
		if entering {
			openTag(w, tag, attr("class", class))
		} else {
			closeTag(w, tag)
			_, _ = io.WriteString(w, "\n")
		}
		return blackfriday.GoToNext

	case blackfriday.Paragraph:
		if skipParagraphTags(node) {
			break
		}
		if entering {
			openTag(w, []byte("p"), attr("class", classParagraph))
		} else {
			closeTag(w, []byte("p"))
			_, _ = io.WriteString(w, "\n")
		}
		return blackfriday.GoToNext

	case blackfriday.Link:
		if node.LinkData.Footnote != nil {
			break
		}
		if entering {
			attrs := [][]byte{
				attr("href", string(node.LinkData.Destination)),
			}
			if len(node.LinkData.Title) > 0 {
				attrs = append(attrs, attr("title", string(node.LinkData.Title)))
			}
			attrs = append(attrs,
				attr("class", classLink),
				attr("target", "_blank"),
				attr("rel", "noopener noreferrer"),
			)
			openTag(w, []byte("a"), attrs...)
		} else {
			closeTag(w, []byte("a"))
		}
		return blackfriday.GoToNext

	case blackfriday.Strong:
		if entering {
			openTag(w, []byte("strong"), attr("class", classStrong))
		} else {
			closeTag(w, []byte("strong"))
		}
		return blackfriday.GoToNext

	case blackfriday.Emph:
		if entering {
			openTag(w, []byte("em"), attr("class", classEmph))
		} else {
			closeTag(w, []byte("em"))
		}
		return blackfriday.GoToNext

	case blackfriday.List:
		if node.ListFlags&blackfriday.ListTypeDefinition != 0 {
			break
		}
		tag, class := []byte("ul"), classUnordered
		if node.ListFlags&blackfriday.ListTypeOrdered != 0 {
			tag, class = []byte("ol"), classOrdered
		}
		if entering {
			// nested lists start on their own line
			if node.Parent != nil && node.Parent.Type == blackfriday.Item {
				_, _ = io.WriteString(w, "\n")
			}
			openTag(w, tag, attr("class", class))
			_, _ = io.WriteString(w, "\n")
		} else {
			closeTag(w, tag)
			_, _ = io.WriteString(w, "\n")
		}
		return blackfriday.GoToNext

	case blackfriday.Item:
		if node.ListFlags&(blackfriday.ListTypeDefinition|blackfriday.ListTypeTerm) != 0 {
			break
		}
		if entering {
			openTag(w, []byte("li"), attr("class", classItem))
		} else {
			closeTag(w, []byte("li"))
			_, _ = io.WriteString(w, "\n")
		}
		return blackfriday.GoToNext

	case blackfriday.Code:
		openTag(w, []byte("code"), attr("class", classInlineCode))
		_, _ = io.WriteString(w, html.EscapeString(string(node.Literal)))
		closeTag(w, []byte("code"))
		return blackfriday.GoToNext

	case blackfriday.CodeBlock:
		openTag(w, []byte("pre"), attr("class", classPre))
		lang := strings.Fields(string(node.Info))
		if len(lang) > 0 {
			openTag(w, []byte("code"), attr("class", "language-"+lang[0]))
		} else {
			openTag(w, []byte("code"))
		}
		_, _ = io.WriteString(w, html.EscapeString(string(node.Literal)))
		closeTag(w, []byte("code"))
		closeTag(w, []byte("pre"))
		_, _ = io.WriteString(w, "\n")
		return blackfriday.GoToNext
	}
	return r.HTMLRenderer.RenderNode(w, node, entering)
}

// skipParagraphTags mirrors blackfriday: paragraphs of tight list items render bare.
func skipParagraphTags(node *blackfriday.Node) bool {
	if node.Parent == nil {
		return false
	}
	grandparent := node.Parent.Parent
	if grandparent == nil || grandparent.Type != blackfriday.List {
		return false
	}
	return grandparent.Tight || node.Parent.ListFlags&blackfriday.ListTypeTerm != 0
}

func attr(name, value string) []byte {
	return []byte(name + `="` + html.EscapeString(value) + `"`)
}

func openTag(w io.Writer, tag []byte, attrs ...[]byte) {
	var buf bytes.Buffer
	buf.WriteByte('<')
	buf.Write(tag)
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.Write(a)
	}
	buf.WriteByte('>')
	_, _ = w.Write(buf.Bytes())
}

func closeTag(w io.Writer, tag []byte) {
	_, _ = w.Write([]byte("</" + string(tag) + ">"))
}
