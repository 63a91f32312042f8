package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/flowchart-explainer/pkg/model"
)

var sample = []model.Explanation{
	{Term: "Start", Explanation: "Entry point of the process"},
	{Term: "Decision", Explanation: "A yes/no branch"},
}

func TestDisplayJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, sample, "json"))

	var out map[string][]model.Explanation
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, sample, out["explanations"])
}

func TestDisplayJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, nil, "json"))
	assert.JSONEq(t, `{"explanations":[]}`, buf.String())
}

func TestDisplayYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, sample, "yaml"))

	var out map[string][]model.Explanation
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, sample, out["explanations"])
}

func TestDisplayHuman(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, sample, "human"))

	out := buf.String()
	assert.Contains(t, out, "2 CONCEPTS EXPLAINED")
	assert.Contains(t, out, "1. Start")
	assert.Contains(t, out, "2. Decision")
	assert.Less(t, strings.Index(out, "Start"), strings.Index(out, "Decision"))
}

func TestDisplayHumanEmpty(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	require.NoError(t, DisplayResults(&buf, nil, ""))
	assert.Contains(t, buf.String(), "No concepts found")
}

func TestWrapText(t *testing.T) {
	text := strings.Repeat("word ", 40)
	for _, line := range strings.Split(wrapText(text, 30, "  "), "\n") {
		assert.LessOrEqual(t, len(line), 30)
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}
