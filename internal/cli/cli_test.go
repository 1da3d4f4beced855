package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `The committee reviewed the proposal in detail. It was approved after a short debate.
Members noted that the budget, which had grown considerably since the previous year, would require additional oversight from the finance office.
The vote was unanimous.`

const aiText = `In today's fast-paced world, it is important to note that we must delve into the rich tapestry of ideas.
Moreover, this serves as a testament to our commitment. Furthermore, it is crucial to leverage synergy.`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeFile(t, "doc.txt", sampleText)

	out, err := run(t, "", "analyze", path, "--format", "json", "--metrics", "smog,gunning_fog")
	require.NoError(t, err)

	var result struct {
		Grade      float64            `json:"flesch_kincaid_grade"`
		Metrics    map[string]float64 `json:"metrics"`
		Statistics struct {
			SentenceCount int `json:"sentence_count"`
		} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Metrics, 2)
	assert.Contains(t, result.Metrics, "smog_index")
	assert.Equal(t, 4, result.Statistics.SentenceCount)
}

func TestAnalyzeHelpMetricsAreAccepted(t *testing.T) {
	cmd := NewRootCmd()
	analyze, _, err := cmd.Find([]string{"analyze"})
	require.NoError(t, err)

	listed := []string{"smog", "ari", "coleman_liau", "linsear", "gunning_fog", "dale_chall"}
	for _, name := range listed {
		assert.Contains(t, analyze.Long, name)
	}

	out, err := run(t, sampleText, "analyze", "-f", "json", "--metrics", strings.Join(listed, ","))
	require.NoError(t, err)
	var result struct {
		Metrics map[string]float64 `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Metrics, len(listed))
}

func TestAnalyzeTerminalFromStdin(t *testing.T) {
	out, err := run(t, sampleText, "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "Flesch-Kincaid grade")
	assert.Contains(t, out, "Reading time")
}

func TestAnalyzeMarkdownStdin(t *testing.T) {
	md := "# Notes\n\n```\nignored code block\n```\n\n" + sampleText
	out, err := run(t, md, "analyze", "--input-format", "markdown", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"word_count"`)
}

func TestSentences(t *testing.T) {
	path := writeFile(t, "doc.md", "## Heading\n\n"+sampleText)

	out, err := run(t, "", "sentences", path, "-n", "1", "--threshold", "10", "-f", "json")
	require.NoError(t, err)

	var result struct {
		Sentences []struct {
			Text string `json:"sentence"`
		} `json:"difficult_sentences"`
		ThresholdUsed *float64 `json:"threshold_used"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Sentences, 1)
	assert.Contains(t, result.Sentences[0].Text, "budget")
	require.NotNil(t, result.ThresholdUsed)
	assert.Equal(t, 10.0, *result.ThresholdUsed)
}

func TestAI(t *testing.T) {
	out, err := run(t, aiText, "ai", "-s", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "AI pattern check")
	assert.Contains(t, out, "delve into")
	assert.Contains(t, out, "high")
}

func TestBatchAndCompare(t *testing.T) {
	first := writeFile(t, "a.txt", sampleText)
	second := writeFile(t, "b.txt", aiText)

	out, err := run(t, "", "batch", first, second, "--types", "ai_patterns", "-f", "json")
	require.NoError(t, err)
	var batch struct {
		Items []struct {
			Readability interface{} `json:"readability"`
			AIPatterns  interface{} `json:"ai_patterns"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &batch))
	require.Len(t, batch.Items, 2)
	assert.Nil(t, batch.Items[0].Readability)
	assert.NotNil(t, batch.Items[1].AIPatterns)

	out, err = run(t, "", "compare", second, first)
	require.NoError(t, err)
	assert.Contains(t, out, "Verdict:")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"blank stdin", "   ", []string{"analyze"}, "stdin"},
		{"bad metric", sampleText, []string{"analyze", "--metrics", "bogus"}, "Invalid metric 'bogus'"},
		{"bad sensitivity", sampleText, []string{"ai", "-s", "extreme"}, "Sensitivity must be one of"},
		{"count too high", sampleText, []string{"sentences", "-n", "500"}, "Count"},
		{"bad output format", sampleText, []string{"analyze", "-f", "yaml"}, "unsupported output format"},
		{"bad input format", sampleText, []string{"analyze", "--input-format", "docx"}, "docx"},
		{"missing file", "", []string{"analyze", "/nonexistent/file.txt"}, "file.txt"},
		{"compare arity", "", []string{"compare", "only-one"}, "accepts 2 arg(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "analysis:\n  default_sensitivity: low\n  default_count: 2\n")

	out, err := run(t, aiText, "ai", "--config", cfgPath, "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"sensitivity_used": "low"`)

	out, err = run(t, sampleText, "sentences", "--config", cfgPath, "-f", "json")
	require.NoError(t, err)
	var result struct {
		Sentences []interface{} `json:"difficult_sentences"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Sentences, 2)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "readability "))
	assert.Contains(t, out, "commit")
}
