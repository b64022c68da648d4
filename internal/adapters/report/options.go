// Package report renders comparison results into text, xlsx and HTML files.
//
// Every reporter sorts the sets it lists, builds the whole artifact in memory
// and only then writes it atomically, so a failed render leaves no partial
// file and repeated runs over the same inputs produce identical lists.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bft-labs/speciesdiff/internal/ports"
)

// Report kinds accepted by Build.
const (
	KindSummary  = "summary"
	KindLists    = "lists"
	KindWorkbook = "workbook"
	KindChart    = "chart"
)

// AllKinds lists every report kind in rendering order.
var AllKinds = []string{KindSummary, KindLists, KindWorkbook, KindChart}

// TimestampLayout is embedded in workbook file names (YYYYMMDD_HHMMSS).
const TimestampLayout = "20060102_150405"

// DefaultAssetsHost serves the echarts runtime when the chart page loads it
// externally. The embedded runtime is inlined unless Options.AssetsHost is set.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Options controls where and how reports are written.
type Options struct {
	// OutputDir is the base directory for every artifact.
	OutputDir string

	// Language selects the user-facing strings.
	Language Language

	// Clock supplies the workbook timestamp. Defaults to time.Now.
	Clock func() time.Time

	// AssetsHost, when set, makes the chart page load echarts.min.js from
	// this base URL instead of inlining the embedded runtime.
	AssetsHost string

	SummaryFile    string
	ListsFile      string
	WorkbookPrefix string
	ChartDir       string
	ChartFile      string
}

// DefaultOptions returns the file layout of the original scripts.
func DefaultOptions() Options {
	return Options{
		OutputDir:      ".",
		Language:       LangZH,
		Clock:          time.Now,
		SummaryFile:    "analysis_report.txt",
		ListsFile:      "analysis_results.txt",
		WorkbookPrefix: "plant_datasets_analysis_",
		ChartDir:       "visualizations",
		ChartFile:      "species_analysis.html",
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.OutputDir == "" {
		o.OutputDir = d.OutputDir
	}
	if o.Language == "" {
		o.Language = d.Language
	}
	if o.Clock == nil {
		o.Clock = d.Clock
	}
	if o.SummaryFile == "" {
		o.SummaryFile = d.SummaryFile
	}
	if o.ListsFile == "" {
		o.ListsFile = d.ListsFile
	}
	if o.WorkbookPrefix == "" {
		o.WorkbookPrefix = d.WorkbookPrefix
	}
	if o.ChartDir == "" {
		o.ChartDir = d.ChartDir
	}
	if o.ChartFile == "" {
		o.ChartFile = d.ChartFile
	}
	return o
}

func (o Options) path(elem ...string) string {
	return filepath.Join(append([]string{o.OutputDir}, elem...)...)
}

// Build returns the reporters for the given kinds, in the order given.
func Build(kinds []string, opts Options) ([]ports.Reporter, error) {
	out := make([]ports.Reporter, 0, len(kinds))
	for _, k := range kinds {
		switch k {
		case KindSummary:
			out = append(out, NewSummaryReporter(opts))
		case KindLists:
			out = append(out, NewListsReporter(opts))
		case KindWorkbook:
			out = append(out, NewWorkbookReporter(opts))
		case KindChart:
			out = append(out, NewChartReporter(opts))
		default:
			return nil, fmt.Errorf("unknown report %q (want one of %v)", k, AllKinds)
		}
	}
	return out, nil
}
