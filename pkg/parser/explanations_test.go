package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/flowchart-explainer/pkg/model"
)

func TestParseFencedJSON(t *testing.T) {
	raw := "```json\n[{\"term\":\"Start\",\"explanation\":\"Entry point of the process\"}]\n```"

	res := Parse(raw)

	assert.False(t, res.Fallback)
	assert.Equal(t, []model.Explanation{{Term: "Start", Explanation: "Entry point of the process"}}, res.Explanations)
}

func TestParsePreservesOrder(t *testing.T) {
	raw := "Here you go:\n```json\n[" +
		`{"term":"Start","explanation":"a"},` +
		`{"term":"Decision","explanation":"b"},` +
		`{"term":"End","explanation":"c"}` +
		"]\n```\nHope this helps."

	res := Parse(raw)

	require.False(t, res.Fallback)
	require.Len(t, res.Explanations, 3)
	assert.Equal(t, "Start", res.Explanations[0].Term)
	assert.Equal(t, "Decision", res.Explanations[1].Term)
	assert.Equal(t, "End", res.Explanations[2].Term)
}

func TestParseUntaggedFence(t *testing.T) {
	res := Parse("```\n[{\"term\":\"Loop\",\"explanation\":\"Repeats a step\"}]\n```")

	assert.False(t, res.Fallback)
	assert.Equal(t, []model.Explanation{{Term: "Loop", Explanation: "Repeats a step"}}, res.Explanations)
}

func TestParseBareJSON(t *testing.T) {
	res := Parse(` [{"term":"Process","explanation":"Does work"}] `)

	assert.False(t, res.Fallback)
	assert.Len(t, res.Explanations, 1)
}

func TestParseEmptyArray(t *testing.T) {
	res := Parse("[]")

	assert.False(t, res.Fallback)
	assert.NotNil(t, res.Explanations)
	assert.Empty(t, res.Explanations)
}

func TestParsePlainTextFallsBack(t *testing.T) {
	raw := "This flowchart shows a login process."

	res := Parse(raw)

	assert.True(t, res.Fallback)
	assert.Equal(t, []model.Explanation{{Term: FallbackTerm, Explanation: raw}}, res.Explanations)
}

func TestParseBrokenFenceKeepsFullText(t *testing.T) {
	raw := "Summary first.\n```json\n[{\"term\": \"Start\",]\n```"

	res := Parse(raw)

	assert.True(t, res.Fallback)
	require.Len(t, res.Explanations, 1)
	assert.Equal(t, FallbackTerm, res.Explanations[0].Term)
	assert.Equal(t, raw, res.Explanations[0].Explanation)
}

func TestParseObjectIsNotAList(t *testing.T) {
	res := Parse(`{"term":"Start","explanation":"x"}`)

	assert.True(t, res.Fallback)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n[1]\n```", "[1]"},
		{"json fence no newlines", "```json[1]```", "[1]"},
		{"bare fence", "text ```\n[2]\n``` more", "[2]"},
		{"json fence wins", "```\nx\n```\n```json\n[3]\n```", "[3]"},
		{"no fence", "plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}
