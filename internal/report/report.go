// Package report renders analysis results for the command line, either as
// styled terminal text or as indented JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/zombar/readability-analyzer/internal/models"
)

// Format is an output format
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatJSON     Format = "json"
)

// ParseFormat validates an output format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatTerminal, FormatJSON:
		return f, nil
	case "text", "":
		return FormatTerminal, nil
	}
	return "", fmt.Errorf("unsupported output format %q (want terminal or json)", name)
}

const defaultWidth = 80

// Renderer writes results to w
type Renderer struct {
	w      io.Writer
	format Format
	width  int
	styles *Styles
}

// New creates a Renderer. Colors are used only when w is a terminal.
func New(w io.Writer, format Format) *Renderer {
	interactive := false
	width := defaultWidth

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		interactive = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 20 {
			width = cols
		}
	}

	return &Renderer{
		w:      w,
		format: format,
		width:  width,
		styles: NewStyles(interactive && format == FormatTerminal),
	}
}

// Render writes one result
func (r *Renderer) Render(v interface{}) error {
	if r.format == FormatJSON {
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	var out string
	switch res := v.(type) {
	case models.ReadabilityResult:
		out = r.readability(res)
	case models.SentenceAnalysisResult:
		out = r.sentences(res)
	case models.AIScoreResult:
		out = r.aiScore(res)
	case models.BatchResult:
		out = r.batch(res)
	case models.ComparisonResult:
		out = r.comparison(res)
	default:
		return fmt.Errorf("no terminal layout for %T", v)
	}

	_, err := io.WriteString(r.w, out+"\n")
	return err
}

func (r *Renderer) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", r.styles.Label.Render(fmt.Sprintf("%-28s", label)), value)
}

func (r *Renderer) readability(res models.ReadabilityResult) string {
	s := r.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Readability") + "\n")
	r.row(&b, "Flesch-Kincaid grade", fmt.Sprintf("%s  %s",
		s.Grade(res.FleschKincaidGrade).Render(fmt.Sprintf("%.1f", res.FleschKincaidGrade)),
		s.Muted.Render(res.GradeLevelInterpretation)))
	r.row(&b, "Flesch reading ease", fmt.Sprintf("%s  %s",
		s.Value.Render(fmt.Sprintf("%.2f", res.FleschReadingEase)),
		s.Muted.Render(res.Interpretation)))

	keys := make([]string, 0, len(res.Metrics))
	for k := range res.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.row(&b, strings.ReplaceAll(k, "_", " "), fmt.Sprintf("%.2f", res.Metrics[k]))
	}

	st := res.Statistics
	b.WriteString("\n" + s.Title.Render("Statistics") + "\n")
	r.row(&b, "Words", humanize.Comma(int64(st.WordCount)))
	r.row(&b, "Sentences", humanize.Comma(int64(st.SentenceCount)))
	r.row(&b, "Syllables", humanize.Comma(int64(st.SyllableCount)))
	r.row(&b, "Average words per sentence", fmt.Sprintf("%.1f", st.AvgWordsPerSentence))
	r.row(&b, "Reading time", res.EstimatedReadingTime)

	return b.String()
}

func (r *Renderer) sentences(res models.SentenceAnalysisResult) string {
	s := r.styles
	var b strings.Builder

	header := fmt.Sprintf("Hardest sentences (%d of %s)", len(res.Sentences), humanize.Comma(int64(res.TotalSentences)))
	b.WriteString(s.Title.Render(header) + "\n")
	r.row(&b, "Average grade level", s.Grade(res.AverageGradeLevel).Render(fmt.Sprintf("%.1f", res.AverageGradeLevel)))
	if res.ThresholdUsed != nil && res.ExceedingCount != nil {
		r.row(&b, fmt.Sprintf("At or above grade %.1f", *res.ThresholdUsed), humanize.Comma(int64(*res.ExceedingCount)))
	}

	if len(res.Sentences) == 0 {
		b.WriteString("\n  " + s.Muted.Render("No sentences to show") + "\n")
		return b.String()
	}

	wrap := lipgloss.NewStyle().Width(r.width - 6)
	for i, sent := range res.Sentences {
		fmt.Fprintf(&b, "\n  %d. %s sentence, grade %s, %d words\n",
			i+1,
			humanize.Ordinal(sent.Position),
			s.Grade(sent.GradeLevel).Render(fmt.Sprintf("%.1f", sent.GradeLevel)),
			sent.WordCount)
		b.WriteString(indent(wrap.Render(sent.Text), "     ") + "\n")
		for _, detail := range sent.IssueDetails {
			fmt.Fprintf(&b, "     %s %s\n", s.Warn.Render(s.Bullet), detail)
		}
	}

	return b.String()
}

func (r *Renderer) aiScore(res models.AIScoreResult) string {
	s := r.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("AI pattern check") + "\n")
	r.row(&b, "AI likelihood", fmt.Sprintf("%s  %s",
		s.Score(res.Score).Render(fmt.Sprintf("%.1f/100", res.Score)),
		s.Muted.Render(res.Interpretation)))
	r.row(&b, "Sensitivity", res.Sensitivity.String())
	r.row(&b, "Words", humanize.Comma(int64(res.WordCount)))
	r.row(&b, "Patterns found", fmt.Sprintf("%d in %d categories",
		res.PatternSummary.TotalPatterns, res.PatternSummary.CategoriesTriggered))

	if len(res.Matches) > 0 {
		b.WriteString("\n" + s.Title.Render("Matches") + "\n")
		for _, m := range res.Matches {
			fmt.Fprintf(&b, "  %s %s %s\n", s.Bullet,
				s.Value.Render(fmt.Sprintf("%q", m.Phrase)),
				s.Label.Render("("+strings.ReplaceAll(m.Category, "_", " ")+")"))
			fmt.Fprintf(&b, "    %s\n", s.Muted.Render(truncate(m.Context, r.width-6)))
		}
	}

	if len(res.Recommendations) > 0 {
		wrap := lipgloss.NewStyle().Width(r.width - 6)
		b.WriteString("\n" + s.Title.Render("Recommendations") + "\n")
		for _, rec := range res.Recommendations {
			fmt.Fprintf(&b, "  %s %s\n", s.Good.Render(s.Arrow), strings.TrimLeft(indent(wrap.Render(rec), "    "), " "))
		}
	}

	return b.String()
}

func (r *Renderer) batch(res models.BatchResult) string {
	s := r.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(fmt.Sprintf("Batch of %s texts", humanize.Comma(int64(res.Summary.Items)))) + "\n")
	for _, item := range res.Items {
		parts := []string{}
		if item.Readability != nil {
			parts = append(parts, "grade "+s.Grade(item.Readability.FleschKincaidGrade).Render(fmt.Sprintf("%.1f", item.Readability.FleschKincaidGrade)))
		}
		if item.Sentences != nil {
			parts = append(parts, fmt.Sprintf("%d sentences", item.Sentences.TotalSentences))
		}
		if item.AIPatterns != nil {
			parts = append(parts, "AI "+s.Score(item.AIPatterns.Score).Render(fmt.Sprintf("%.1f", item.AIPatterns.Score)))
		}
		if item.Error != nil {
			parts = append(parts, s.Bad.Render("error: "+item.Error.Message))
		}
		fmt.Fprintf(&b, "  #%d  %s\n", item.Index+1, strings.Join(parts, "  "))
	}

	b.WriteString("\n")
	r.row(&b, "Failed", fmt.Sprintf("%d", res.Summary.Failed))
	if res.Summary.AverageGradeLevel != nil {
		r.row(&b, "Average grade level", fmt.Sprintf("%.1f", *res.Summary.AverageGradeLevel))
	}
	if res.Summary.AverageAIScore != nil {
		r.row(&b, "Average AI score", fmt.Sprintf("%.1f", *res.Summary.AverageAIScore))
	}

	return b.String()
}

func (r *Renderer) comparison(res models.ComparisonResult) string {
	s := r.styles
	var b strings.Builder

	verdict := string(res.Verdict)
	switch res.Verdict {
	case models.VerdictImproved:
		verdict = s.Good.Render(verdict)
	case models.VerdictRegressed:
		verdict = s.Bad.Render(verdict)
	default:
		verdict = s.Warn.Render(verdict)
	}
	b.WriteString(s.Box.Render(s.Title.Render("Verdict: ")+verdict) + "\n")

	section := func(title string, deltas []models.Delta, style lipgloss.Style) {
		if len(deltas) == 0 {
			return
		}
		b.WriteString("\n" + s.Title.Render(title) + "\n")
		for _, d := range deltas {
			r.row(&b, strings.ReplaceAll(d.Metric, "_", " "), fmt.Sprintf("%.2f %s %.2f  %s",
				d.Before, s.Arrow, d.After, style.Render(fmt.Sprintf("%+.2f", d.Change))))
		}
	}
	section("Improvements", res.Improvements, s.Good)
	section("Regressions", res.Regressions, s.Bad)

	return b.String()
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if max < 4 || len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
