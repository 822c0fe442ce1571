package domain

import (
	"html"
	"strconv"
	"strings"
)

// RenderHTML renders a result for an HTML output region.
// A successful result becomes an ordered list; a failed one becomes its message.
// Item text and the topic are escaped before being placed into markup.
func RenderHTML(r QuoteResult) string {
	if !r.OK() {
		return NotFoundMessage(html.EscapeString(r.Topic))
	}

	var b strings.Builder

	b.WriteString("<ol>")

	for _, item := range r.Items {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(item))
		b.WriteString("</li>")
	}

	b.WriteString("</ol>")

	return b.String()
}

// RenderText renders a result as a numbered plain-text list, one item per line.
func RenderText(r QuoteResult) string {
	if !r.OK() {
		return r.Message
	}

	var b strings.Builder

	for i, item := range r.Items {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(item)
		b.WriteByte('\n')
	}

	return b.String()
}
