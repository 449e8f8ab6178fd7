package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookContent_Render_ReplacesAllTokens(t *testing.T) {
	content := BookContent{Pages: []Page{
		{Number: 1, Text: "Once upon a time, {{name}} found a {{animal}}."},
		{Number: 2, Text: "{{name}} and the {{animal}} became friends."},
	}}

	rendered := content.Render([]Replacement{
		{Placeholder: "name", Value: "Mia"},
		{Placeholder: "animal", Value: "fox"},
	})

	require.Len(t, rendered.Pages, 2)
	assert.Equal(t, "Once upon a time, Mia found a fox.", rendered.Pages[0].Text)
	assert.Equal(t, "Mia and the fox became friends.", rendered.Pages[1].Text)
}

func TestBookContent_Render_DoesNotMutateReceiver(t *testing.T) {
	content := BookContent{Pages: []Page{
		{Number: 1, Text: "Hello {{name}}"},
	}}

	_ = content.Render([]Replacement{{Placeholder: "name", Value: "Mia"}})

	assert.Equal(t, "Hello {{name}}", content.Pages[0].Text)
}

func TestBookContent_Render_LastReplacementWins(t *testing.T) {
	content := BookContent{Pages: []Page{
		{Number: 1, Text: "{{name}}"},
	}}

	rendered := content.Render([]Replacement{
		{Placeholder: "name", Value: "First"},
		{Placeholder: "name", Value: "Second"},
	})

	assert.Equal(t, "Second", rendered.Pages[0].Text)
}

func TestBookContent_Render_UnknownTokenSurvives(t *testing.T) {
	content := BookContent{Pages: []Page{
		{Number: 1, Text: "{{name}} meets {{villain}}"},
	}}

	rendered := content.Render([]Replacement{{Placeholder: "name", Value: "Mia"}})

	assert.Equal(t, "Mia meets {{villain}}", rendered.Pages[0].Text)
}

func TestBookContent_DeepCopy_EmptyContent(t *testing.T) {
	var content BookContent

	copied := content.DeepCopy()

	assert.Nil(t, copied.Pages)
}

func TestReplacement_Token(t *testing.T) {
	rep := Replacement{Placeholder: "hero", Value: "Mia"}

	assert.Equal(t, "{{hero}}", rep.Token())
}
