package report

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/bft-labs/speciesdiff/internal/adapters/fs"
	"github.com/bft-labs/speciesdiff/internal/domain"
	"github.com/bft-labs/speciesdiff/internal/ports"
)

// SummaryReporter writes the fixed-template statistics report.
type SummaryReporter struct {
	opts Options
}

// NewSummaryReporter creates a summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{opts: opts.withDefaults()}
}

var _ ports.Reporter = (*SummaryReporter)(nil)

// Name returns "summary".
func (r *SummaryReporter) Name() string { return KindSummary }

// Render writes the summary to <OutputDir>/<SummaryFile>.
func (r *SummaryReporter) Render(ctx context.Context, result domain.ComparisonResult) (string, error) {
	path := r.opts.path(r.opts.SummaryFile)
	data, err := RenderSummary(result, r.opts.Language)
	if err != nil {
		return "", domain.IOWrite("report.summary", path, err)
	}
	if err := fs.WriteFileAtomic(ctx, path, data); err != nil {
		return "", err
	}
	return path, nil
}

// RenderSummary formats the six statistics of result.
func RenderSummary(result domain.ComparisonResult, lang Language) ([]byte, error) {
	tmpl, err := template.New("summary").Parse(textsFor(lang).summary)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		LabelA string
		LabelB string
		Counts domain.Counts
	}{
		LabelA: result.LabelA,
		LabelB: result.LabelB,
		Counts: result.Counts(),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ListsReporter writes the common and per-side species lists.
type ListsReporter struct {
	opts Options
}

// NewListsReporter creates a lists reporter.
func NewListsReporter(opts Options) *ListsReporter {
	return &ListsReporter{opts: opts.withDefaults()}
}

var _ ports.Reporter = (*ListsReporter)(nil)

// Name returns "lists".
func (r *ListsReporter) Name() string { return KindLists }

// Render writes the lists to <OutputDir>/<ListsFile>.
func (r *ListsReporter) Render(ctx context.Context, result domain.ComparisonResult) (string, error) {
	path := r.opts.path(r.opts.ListsFile)
	if err := fs.WriteFileAtomic(ctx, path, RenderLists(result, r.opts.Language)); err != nil {
		return "", err
	}
	return path, nil
}

// RenderLists formats three headed, newline-joined, sorted name lists.
func RenderLists(result domain.ComparisonResult, lang Language) []byte {
	t := textsFor(lang)

	var b strings.Builder
	b.WriteString(t.listsCommon)
	b.WriteString("\n")
	b.WriteString(strings.Join(result.Common.Strings(), "\n"))
	b.WriteString("\n\n")
	b.WriteString(expand(t.listsOnly, result.LabelA, result.LabelB))
	b.WriteString("\n")
	b.WriteString(strings.Join(result.OnlyA.Strings(), "\n"))
	b.WriteString("\n\n")
	b.WriteString(expand(t.listsOnly, result.LabelB, result.LabelA))
	b.WriteString("\n")
	b.WriteString(strings.Join(result.OnlyB.Strings(), "\n"))
	return []byte(b.String())
}
