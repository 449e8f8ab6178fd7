package entity

import "strings"

// BookContent is the page tree shared by story templates (base content) and
// rendered books. It is stored as a JSONB document.
type BookContent struct {
	Pages []Page `json:"pages"`
}

// Page is a single page of a book. Text may carry {{token}} placeholders
// until the book is rendered.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Image  string `json:"image,omitempty"`
}

// Replacement binds one placeholder name to its substitution value.
// The placeholder is the bare name; the literal token in page text is
// "{{name}}".
type Replacement struct {
	Placeholder string
	Value       string
}

// Token returns the literal marker searched for in page text.
func (r Replacement) Token() string {
	return "{{" + r.Placeholder + "}}"
}

// DeepCopy returns a structurally independent copy of the content. Rendering
// must never alias the stored story template, so callers always copy first.
func (c BookContent) DeepCopy() BookContent {
	if c.Pages == nil {
		return BookContent{}
	}

	pages := make([]Page, len(c.Pages))
	copy(pages, c.Pages)

	return BookContent{Pages: pages}
}

// Render applies the replacements to a deep copy of the content and returns
// the copy; the receiver is left untouched. Replacements are applied in
// sequence order across all pages, so when two replacements target the same
// token the last one wins.
func (c BookContent) Render(replacements []Replacement) BookContent {
	rendered := c.DeepCopy()

	for _, rep := range replacements {
		token := rep.Token()
		for i := range rendered.Pages {
			rendered.Pages[i].Text = strings.ReplaceAll(rendered.Pages[i].Text, token, rep.Value)
		}
	}

	return rendered
}
