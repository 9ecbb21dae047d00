package web

import (
	"net/http"
	"strings"

	"github.com/evanschultz/moncal/internal/calendar"
	"github.com/evanschultz/moncal/internal/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Modal element ids.
const (
	ModalID      = "taskModal"
	ModalLabelID = "taskModalLabel"
	ModalBodyID  = "taskModalBody"
)

// document wraps the rendered calendar in a complete HTML page.
func document(title string, p *page) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element("html", html.Attribute{Key: "lang", Val: "en"})
	head := element("head")
	head.AppendChild(element("meta", html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(element("meta",
		html.Attribute{Key: "name", Val: "viewport"},
		html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1"},
	))
	head.AppendChild(withText(element("title"), "moncal - "+title))
	head.AppendChild(withText(element("style"), stylesheet))

	body := element("body")
	ym := domain.YearMonth{Year: p.view.Year(), Month: p.view.Month()}
	for _, child := range p.root.Children() {
		body.AppendChild(convert(child, ym))
	}
	if p.modal != nil {
		body.AppendChild(modal(*p.modal, ym))
	}

	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)
	return doc
}

// convert maps one calendar node onto markup. Navigation buttons and clickable cells become links.
func convert(n *calendar.Node, ym domain.YearMonth) *html.Node {
	tag, text := n.Tag, n.Text()
	var href string
	switch {
	case n.HasClass(calendar.ClassPrev):
		tag, href, text = "a", monthHref(ym.Add(-1)), "< prev"
	case n.HasClass(calendar.ClassNext):
		tag, href, text = "a", monthHref(ym.Add(1)), "next >"
	case n.HasClass(calendar.ClassCell) && n.Clickable():
		day, _ := n.Attr(calendar.AttrDay)
		tag, href = "a", dayHref(ym, day)
	}

	classes := n.Classes()
	styles := make([]string, 0, len(n.Styles()))
	for _, style := range n.Styles() {
		styles = append(styles, style.Property+": "+style.Value)
	}
	var attrs []html.Attribute
	for _, attr := range n.Attrs() {
		switch attr.Name {
		case "class":
			classes = append(classes, strings.Fields(attr.Value)...)
		case "style":
			styles = append(styles, strings.TrimSuffix(strings.TrimSpace(attr.Value), ";"))
		default:
			attrs = append(attrs, html.Attribute{Key: attr.Name, Val: attr.Value})
		}
	}
	if len(classes) > 0 {
		attrs = append([]html.Attribute{{Key: "class", Val: strings.Join(classes, " ")}}, attrs...)
	}
	if len(styles) > 0 {
		attrs = append(attrs, html.Attribute{Key: "style", Val: strings.Join(styles, "; ")})
	}
	if href != "" {
		attrs = append(attrs, html.Attribute{Key: "href", Val: href})
	}
	if n.Tag == "button" {
		attrs = append(attrs, html.Attribute{Key: "role", Val: "button"})
	}

	el := element(tag, attrs...)
	if text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	for _, child := range n.Children() {
		el.AppendChild(convert(child, ym))
	}
	return el
}

// modal renders the default day dialog: header label plus one paragraph per task.
func modal(detail calendar.DayDetail, ym domain.YearMonth) *html.Node {
	overlay := element("div",
		html.Attribute{Key: "id", Val: ModalID},
		html.Attribute{Key: "class", Val: "modal"},
		html.Attribute{Key: "role", Val: "dialog"},
		html.Attribute{Key: "aria-labelledby", Val: ModalLabelID},
	)
	content := element("div", html.Attribute{Key: "class", Val: "modal-content"})
	content.AppendChild(withText(element("h5", html.Attribute{Key: "id", Val: ModalLabelID}), detail.Label))

	body := element("div", html.Attribute{Key: "id", Val: ModalBodyID})
	for _, line := range detail.Lines {
		body.AppendChild(withText(element("p"), line))
	}
	content.AppendChild(body)
	content.AppendChild(withText(element("a",
		html.Attribute{Key: "class", Val: "btn btn-primary modal-close"},
		html.Attribute{Key: "href", Val: monthHref(ym)},
	), "Close"))
	overlay.AppendChild(content)
	return overlay
}

// writeErrorPage renders a minimal page carrying one message.
func writeErrorPage(w http.ResponseWriter, status int, message string) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element("html")
	body := element("body")
	body.AppendChild(withText(element("h1"), http.StatusText(status)))
	body.AppendChild(withText(element("p", html.Attribute{Key: "class", Val: "error"}), message))
	root.AppendChild(body)
	doc.AppendChild(root)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = html.Render(w, doc)
}

func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag)), Attr: attrs}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
