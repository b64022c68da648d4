package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/bft-labs/speciesdiff/internal/adapters/fs"
	"github.com/bft-labs/speciesdiff/internal/adapters/report"
	"github.com/bft-labs/speciesdiff/internal/domain"
	"github.com/bft-labs/speciesdiff/internal/ports"
	"github.com/bft-labs/speciesdiff/pkg/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockSource serves fixed name lists keyed by path.
type mockSource struct {
	data map[string][]domain.SpeciesName
	err  map[string]error
}

func (m *mockSource) Load(_ context.Context, path string) ([]domain.SpeciesName, error) {
	if err := m.err[path]; err != nil {
		return nil, err
	}
	return m.data[path], nil
}

// mockReporter records every result it is asked to render.
type mockReporter struct {
	mu      sync.Mutex
	name    string
	err     error
	results []domain.ComparisonResult
}

func (m *mockReporter) Name() string { return m.name }

func (m *mockReporter) Render(_ context.Context, r domain.ComparisonResult) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.results = append(m.results, r)
	return "/out/" + m.name, nil
}

func (m *mockReporter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.results)
}

func scenarioSource() *mockSource {
	return &mockSource{data: map[string][]domain.SpeciesName{
		"a.json": {"Rosa", "Tulipa", "Lilium", "Rosa"},
		"b.json": {"Tulipa", "Lilium", "Iris"},
	}}
}

var scenarioConfig = AnalysisConfig{
	InputA: "a.json",
	InputB: "b.json",
	LabelA: "PlantCLEF2015",
	LabelB: "PlantNet300K",
}

func TestAnalysis_Run(t *testing.T) {
	first := &mockReporter{name: "first"}
	second := &mockReporter{name: "second"}

	a := NewAnalysis(scenarioConfig, scenarioSource(), []ports.Reporter{first, second}, nil)
	out, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := domain.Counts{A: 3, B: 3, Common: 2, OnlyA: 1, OnlyB: 1, Union: 4}
	if got := out.Result.Counts(); got != want {
		t.Errorf("Counts() = %+v, want %+v", got, want)
	}
	if out.Result.LabelA != "PlantCLEF2015" || out.Result.LabelB != "PlantNet300K" {
		t.Errorf("labels = %q, %q", out.Result.LabelA, out.Result.LabelB)
	}
	if len(out.Artifacts) != 2 || out.Artifacts[0] != "/out/first" || out.Artifacts[1] != "/out/second" {
		t.Errorf("Artifacts = %v", out.Artifacts)
	}
	if first.calls() != 1 || second.calls() != 1 {
		t.Errorf("reporter calls = %d, %d", first.calls(), second.calls())
	}
}

func TestAnalysis_LogsCountsAndRatios(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewZerologAdapterWithWriter(&buf, "debug")
	rep := &mockReporter{name: "summary"}

	if _, err := NewAnalysis(scenarioConfig, scenarioSource(), []ports.Reporter{rep}, logger).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"comparison finished", "union=4", "common_of_union=0.5", "only_a_of_a=", "only_b_of_b=", "/out/summary"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalysis_LoadFailureRendersNothing(t *testing.T) {
	src := scenarioSource()
	src.err = map[string]error{"b.json": domain.NotFound("loader.read", "b.json", os.ErrNotExist)}
	rep := &mockReporter{name: "summary"}

	_, err := NewAnalysis(scenarioConfig, src, []ports.Reporter{rep}, log.NewNoopLogger()).Run(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Run() error = %v, want ErrNotFound", err)
	}
	if rep.calls() != 0 {
		t.Errorf("reporter ran despite load failure")
	}
}

func TestAnalysis_ReporterFailureStopsRun(t *testing.T) {
	ok := &mockReporter{name: "summary"}
	bad := &mockReporter{name: "workbook", err: domain.IOWrite("report.workbook", "/x", errors.New("disk full"))}
	never := &mockReporter{name: "chart"}

	out, err := NewAnalysis(scenarioConfig, scenarioSource(), []ports.Reporter{ok, bad, never}, nil).Run(context.Background())
	if !domain.IsKind(err, domain.KindIOWrite) {
		t.Fatalf("Run() error = %v, want io_write", err)
	}
	if len(out.Artifacts) != 1 || out.Artifacts[0] != "/out/summary" {
		t.Errorf("completed artifacts = %v, want only summary", out.Artifacts)
	}
	if never.calls() != 0 {
		t.Errorf("reporter after failure ran")
	}
}

func TestAnalysis_Idempotent(t *testing.T) {
	a := NewAnalysis(scenarioConfig, scenarioSource(), nil, nil)
	first, err := a.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Result.Counts() != second.Result.Counts() {
		t.Errorf("counts differ: %+v vs %+v", first.Result.Counts(), second.Result.Counts())
	}
	for _, pair := range [][2]domain.SpeciesSet{
		{first.Result.Common, second.Result.Common},
		{first.Result.OnlyA, second.Result.OnlyA},
		{first.Result.OnlyB, second.Result.OnlyB},
	} {
		a, b := pair[0].Strings(), pair[1].Strings()
		if len(a) != len(b) {
			t.Fatalf("lists differ: %v vs %v", a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("lists differ at %d: %v vs %v", i, a, b)
			}
		}
	}
}

func TestAnalysis_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	inA := filepath.Join(dir, "plantclef2015.json")
	inB := filepath.Join(dir, "plantnet300k.json")
	if err := os.WriteFile(inA, []byte(`{"0": "Rosa", "1": "Tulipa", "2": "Lilium"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(inB, []byte(`{"0": "Tulipa", "1": "Lilium", "2": "Iris"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "out")
	reporters, err := report.Build(report.AllKinds, report.Options{OutputDir: outDir})
	if err != nil {
		t.Fatal(err)
	}

	cfg := AnalysisConfig{InputA: inA, InputB: inB, LabelA: "PlantCLEF2015", LabelB: "PlantNet300K"}
	out, err := NewAnalysis(cfg, fs.NewSpeciesFileLoader(), reporters, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out.Artifacts) != 4 {
		t.Fatalf("Artifacts = %v, want 4", out.Artifacts)
	}
	for _, p := range out.Artifacts {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("artifact %s missing: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "visualizations", "species_analysis.html")); err != nil {
		t.Errorf("chart page missing: %v", err)
	}
}
