package chart

import (
	"sort"

	"golang.org/x/net/html"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type createOptions struct {
	inside *html.Node
	attr   []html.Attribute
	text   string
}

// createSVG builds an element node. Text children of <style> are written
// verbatim by html.Render.
func createSVG(tag string, o createOptions) *html.Node {
	e := &html.Node{
		Type: html.ElementNode,
		Data: tag,
		Attr: o.attr,
	}
	if o.text != "" {
		e.AppendChild(&html.Node{
			Type: html.TextNode,
			Data: o.text,
		})
	}
	if o.inside != nil {
		o.inside.AppendChild(e)
	}
	return e
}

// attrs turns m into attributes with sorted keys so output is stable.
func attrs(m map[string]string) []html.Attribute {
	ls := make([]string, 0, len(m))
	for k := range m {
		ls = append(ls, k)
	}
	sort.Strings(ls)
	out := make([]html.Attribute, 0, len(ls))
	for _, k := range ls {
		out = append(out, html.Attribute{Key: k, Val: m[k]})
	}
	return out
}

func setGradientStop(gradElem *html.Node, offset, color string) *html.Node {
	return createSVG("stop", createOptions{
		inside: gradElem,
		attr: []html.Attribute{
			{Key: "offset", Val: offset},
			{Key: "stop-color", Val: color},
		},
	})
}

func renderHorizontalGradient(defs *html.Node, gradientID string) *html.Node {
	return createSVG("linearGradient", createOptions{
		inside: defs,
		attr: []html.Attribute{
			{Key: "id", Val: gradientID},
			{Key: "x1", Val: "0%"},
			{Key: "y1", Val: "0%"},
			{Key: "x2", Val: "100%"},
			{Key: "y2", Val: "0%"},
		},
	})
}
