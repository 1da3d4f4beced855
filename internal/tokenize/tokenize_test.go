package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single sentence", "Hello world.", []string{"Hello world."}},
		{"multiple sentences", "Hello. How are you? I'm fine!", []string{"Hello.", "How are you?", "I'm fine!"}},
		{"no terminal punctuation", "just a fragment", []string{"just a fragment"}},
		{"quoted ending", `He said "stop." Then left.`, []string{`He said "stop."`, "Then left."}},
		{"paragraphs", "First line\n\nSecond line", []string{"First line", "Second line"}},
		{"whitespace only", "   \n\t ", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Rules{}.Sentences(tt.input))
		})
	}
}

func TestPunkt(t *testing.T) {
	p, err := NewPunkt()
	require.NoError(t, err)

	got := p.Sentences("Dr. Smith arrived at noon. The meeting started late.")
	assert.Len(t, got, 2)
	assert.Equal(t, "The meeting started late.", got[1])

	assert.Empty(t, p.Sentences("   "))
}

func TestDefault(t *testing.T) {
	tok := Default()
	require.NotNil(t, tok)
	assert.Len(t, tok.Sentences("The sun rose. The birds sang. The day began."), 3)
}
