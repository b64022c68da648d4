package report

import (
	"bytes"
	"context"
	"embed"
	"regexp"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/bft-labs/speciesdiff/internal/adapters/fs"
	"github.com/bft-labs/speciesdiff/internal/domain"
	"github.com/bft-labs/speciesdiff/internal/ports"
)

//go:generate curl -sSfL -o assets/echarts.min.js https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js

//go:embed assets
var assets embed.FS

const runtimeAsset = "assets/echarts.min.js"

// runtimeTag matches the script tag go-echarts emits for the runtime.
var runtimeTag = regexp.MustCompile(`<script src="[^"]*echarts\.min\.js"></script>`)

// EmbeddedRuntime returns the echarts runtime compiled into the binary, or
// nil if the build carries none (run go generate in this package).
func EmbeddedRuntime() []byte {
	b, err := assets.ReadFile(runtimeAsset)
	if err != nil || len(b) == 0 {
		return nil
	}
	return b
}

const (
	panelWidth  = "900px"
	panelHeight = "250px"
)

// viridis approximates the plotly Viridis colorscale.
var viridis = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

// ChartReporter writes the six-panel HTML page.
type ChartReporter struct {
	opts Options
}

// NewChartReporter creates a chart reporter.
func NewChartReporter(opts Options) *ChartReporter {
	return &ChartReporter{opts: opts.withDefaults()}
}

var _ ports.Reporter = (*ChartReporter)(nil)

// Name returns "chart".
func (r *ChartReporter) Name() string { return KindChart }

// Render writes <OutputDir>/<ChartDir>/<ChartFile>, creating ChartDir if absent.
func (r *ChartReporter) Render(ctx context.Context, result domain.ComparisonResult) (string, error) {
	path := r.opts.path(r.opts.ChartDir, r.opts.ChartFile)
	data, err := RenderChartPage(result, r.opts.Language, r.opts.AssetsHost)
	if err != nil {
		return "", domain.IOWrite("report.chart", path, err)
	}
	if err := fs.WriteFileAtomic(ctx, path, data); err != nil {
		return "", err
	}
	return path, nil
}

// RenderChartPage composes the six panels into one page with a UTF-8
// charset declared in the head. With an empty assetsHost the embedded
// runtime is inlined so the page works offline; otherwise the page loads
// echarts.min.js from assetsHost.
func RenderChartPage(result domain.ComparisonResult, lang Language, assetsHost string) ([]byte, error) {
	t := textsFor(lang)
	a, b := result.LabelA, result.LabelB
	c := result.Counts()

	splitLabels := []string{t.commonLabel, expand(t.onlyLabel, a, b), expand(t.onlyLabel, b, a)}
	splitValues := []int{c.Common, c.OnlyA, c.OnlyB}

	page := components.NewPage()
	page.PageTitle = t.chartTitle
	page.AssetsHost = DefaultAssetsHost
	if assetsHost != "" {
		page.AssetsHost = assetsHost
	}
	page.SetLayout(components.PageCenterLayout)
	page.AddCharts(
		totalsBar(t.panelTitles[0], t.sizeSeries, a, b, c),
		splitPie(t.panelTitles[1], t.sizeSeries, splitLabels, splitValues),
		splitBar(t.panelTitles[2], t.sizeSeries, splitLabels, splitValues),
		overlapHeatMap(t.panelTitles[3], t.sizeSeries, splitLabels, OverlapMatrix(c)),
		sizeBoxPlot(t.panelTitles[4], t.sizeSeries, c),
		sizeLine(t.panelTitles[5], t.sizeSeries, a, b, c),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	out := ensureCharset(buf.Bytes())
	if assetsHost == "" {
		out = inlineRuntime(out, EmbeddedRuntime())
	}
	return out, nil
}

// inlineRuntime replaces the external runtime script tag with the runtime
// itself. Without a runtime the page is returned unchanged.
func inlineRuntime(page, runtime []byte) []byte {
	if len(runtime) == 0 {
		return page
	}
	// "</script" inside the source would end the inline element early.
	safe := bytes.ReplaceAll(runtime, []byte("</script"), []byte(`<\/script`))
	return runtimeTag.ReplaceAllFunc(page, func([]byte) []byte {
		var b bytes.Buffer
		b.Grow(len(safe) + 32)
		b.WriteString("<script>")
		b.Write(safe)
		b.WriteString("</script>")
		return b.Bytes()
	})
}

func panelOpts(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: panelWidth, Height: panelHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	}
}

func totalsBar(title, series, a, b string, c domain.Counts) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(panelOpts(title)...)
	bar.SetXAxis([]string{a, b}).AddSeries(series, []opts.BarData{
		{Value: c.A, ItemStyle: &opts.ItemStyle{Color: "blue"}},
		{Value: c.B, ItemStyle: &opts.ItemStyle{Color: "orange"}},
	})
	return bar
}

func splitPie(title, series string, labels []string, values []int) *charts.Pie {
	data := make([]opts.PieData, len(labels))
	for i := range labels {
		data[i] = opts.PieData{Name: labels[i], Value: values[i]}
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(panelOpts(title)...)
	pie.AddSeries(series, data).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"30%", "75%"}}),
	)
	return pie
}

func splitBar(title, series string, labels []string, values []int) *charts.Bar {
	colors := []string{"green", "red", "purple"}
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v, ItemStyle: &opts.ItemStyle{Color: colors[i]}}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(panelOpts(title)...)
	bar.SetXAxis(labels).AddSeries(series, data)
	return bar
}

// OverlapMatrix returns the 3x3 heat-map values of the original chart.
// Rows and columns are labeled common, only-A, only-B. The rows are not a
// symmetric overlap matrix; they are kept as the original page drew them.
func OverlapMatrix(c domain.Counts) [3][3]int {
	return [3][3]int{
		{c.Common, c.OnlyA, c.OnlyB},
		{c.OnlyA, c.Common, c.OnlyB},
		{c.OnlyB, c.Common, c.OnlyA},
	}
}

func overlapHeatMap(title, series string, labels []string, m [3][3]int) *charts.HeatMap {
	data := make([]opts.HeatMapData, 0, 9)
	peak := 0
	for row := range m {
		for col, v := range m[row] {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{col, row, v}})
			if v > peak {
				peak = v
			}
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(append(panelOpts(title),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min:     0,
			Max:     float32(peak),
			InRange: &opts.VisualMapInRange{Color: viridis},
		}),
	)...)
	hm.SetXAxis(labels).AddSeries(series, data)
	return hm
}

func sizeBoxPlot(title, series string, c domain.Counts) *charts.BoxPlot {
	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(panelOpts(title)...)
	bp.SetXAxis([]string{series}).AddSeries(series,
		[]opts.BoxPlotData{{Value: FiveNumberSummary([]int{c.A, c.B})}},
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "lightblue"}),
	)
	return bp
}

func sizeLine(title, series, a, b string, c domain.Counts) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(panelOpts(title)...)
	line.SetXAxis([]string{a, b}).AddSeries(series,
		[]opts.LineData{{Value: c.A}, {Value: c.B}},
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}),
	)
	return line
}

// FiveNumberSummary returns min, Q1, median, Q3 and max using linear
// interpolation between order statistics. An empty input yields zeros.
func FiveNumberSummary(values []int) []float64 {
	if len(values) == 0 {
		return []float64{0, 0, 0, 0, 0}
	}
	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	q := func(p float64) float64 {
		pos := p * float64(len(sorted)-1)
		lo := int(pos)
		if lo+1 >= len(sorted) {
			return sorted[len(sorted)-1]
		}
		frac := pos - float64(lo)
		return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
	}
	return []float64{sorted[0], q(0.25), q(0.5), q(0.75), sorted[len(sorted)-1]}
}

// ensureCharset injects a UTF-8 meta tag right after <head> unless the page
// already declares a charset.
func ensureCharset(page []byte) []byte {
	if bytes.Contains(bytes.ToLower(page), []byte("<meta charset=")) {
		return page
	}
	idx := bytes.Index(page, []byte("<head>"))
	if idx < 0 {
		return append([]byte(`<meta charset="UTF-8">`+"\n"), page...)
	}
	at := idx + len("<head>")
	var out bytes.Buffer
	out.Grow(len(page) + 24)
	out.Write(page[:at])
	out.WriteString(`<meta charset="UTF-8">`)
	out.Write(page[at:])
	return out.Bytes()
}
