package report

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bft-labs/speciesdiff/internal/compare"
	"github.com/bft-labs/speciesdiff/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestWorkbookReporter_FileName(t *testing.T) {
	r := NewWorkbookReporter(Options{Clock: fixedClock})
	assert.Equal(t, "plant_datasets_analysis_20240102_030405.xlsx", r.FileName())
	assert.Equal(t, KindWorkbook, r.Name())
}

func TestWorkbookReporter_ZHLayout(t *testing.T) {
	dir := t.TempDir()
	r := NewWorkbookReporter(Options{OutputDir: dir, Clock: fixedClock})

	path, err := r.Render(context.Background(), scenario())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "plant_datasets_analysis_20240102_030405.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t,
		[]string{"总体统计", "共同物种", "PlantCLEF2015独有", "PlantNet300K独有"},
		f.GetSheetList())

	rows, err := f.GetRows("总体统计")
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, []string{"统计项", "数值"}, rows[0])

	want := [][]string{
		{"PlantCLEF2015数据集物种总数", "3"},
		{"PlantNet300K数据集物种总数", "3"},
		{"共同物种数量", "2"},
		{"仅在PlantCLEF2015中的物种数量", "1"},
		{"仅在PlantNet300K中的物种数量", "1"},
		{"物种并集总数", "4"},
		{"PlantCLEF2015独有物种占比", "33.33%"},
		{"PlantNet300K独有物种占比", "33.33%"},
		{"共同物种占比(相对于并集)", "50.00%"},
	}
	assert.Equal(t, want, rows[1:])

	common, err := f.GetRows("共同物种")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"物种名称"}, {"Lilium"}, {"Tulipa"}}, common)

	onlyA, err := f.GetRows("PlantCLEF2015独有")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"物种名称"}, {"Rosa"}}, onlyA)

	onlyB, err := f.GetRows("PlantNet300K独有")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"物种名称"}, {"Iris"}}, onlyB)
}

func TestBuildWorkbook_ENEmptyInputs(t *testing.T) {
	f, err := BuildWorkbook(emptyResult(), LangEN)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t,
		[]string{"overview", "common species", "PlantCLEF2015-only", "PlantNet300K-only"},
		f.GetSheetList())

	rows, err := f.GetRows("overview")
	require.NoError(t, err)
	require.Len(t, rows, 10)
	for _, row := range rows[7:] {
		assert.Equal(t, "0.00%", row[1], "ratio row %q", row[0])
	}

	common, err := f.GetRows("common species")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"species"}}, common)
}

func TestBuildWorkbook_ListsSorted(t *testing.T) {
	a := []string{"Quercus robur", "Abies alba", "Zea mays", "Bellis perennis", "abies alba"}
	b := []string{"Zea mays", "Abies alba", "Malus domestica", "Acer campestre"}
	result := compare.Names(a, b)

	f, err := BuildWorkbook(result, LangEN)
	require.NoError(t, err)
	defer f.Close()

	for _, sheet := range []string{"common species", "A-only", "B-only"} {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		var col []string
		for _, row := range rows[1:] {
			col = append(col, row[0])
		}
		assert.True(t, sort.StringsAreSorted(col), "sheet %s not sorted: %v", sheet, col)
	}
}

func TestWorkbookReporter_UniqueNamePerRun(t *testing.T) {
	dir := t.TempDir()
	ticks := []time.Time{fixedClock(), fixedClock().Add(time.Second)}
	i := 0
	r := NewWorkbookReporter(Options{OutputDir: dir, Clock: func() time.Time {
		now := ticks[i]
		i++
		return now
	}})

	first, err := r.Render(context.Background(), scenario())
	require.NoError(t, err)
	second, err := r.Render(context.Background(), scenario())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "a_b_c", SheetName("a/b:c"))
	assert.Equal(t, "PlantCLEF2015独有", SheetName("PlantCLEF2015独有"))

	long := strings.Repeat("植", 40)
	got := SheetName(long)
	assert.Equal(t, maxSheetName, utf8.RuneCountInString(got))
}

func TestCheckSheetNames(t *testing.T) {
	assert.NoError(t, CheckSheetNames(WorkbookSheetNames(LangZH, "PlantCLEF2015", "PlantNet300K")))
	assert.Error(t, CheckSheetNames(WorkbookSheetNames(LangZH, "Flora", "flora")))
	assert.Error(t, CheckSheetNames(WorkbookSheetNames(LangEN, "a/b", "a:b")))
	assert.Error(t, CheckSheetNames([]string{"overview", "OVERVIEW"}))

	// Labels differing only past the 31 character limit clamp to one name.
	prefix := strings.Repeat("x", maxSheetName)
	assert.Error(t, CheckSheetNames(WorkbookSheetNames(LangEN, prefix+"1", prefix+"2")))
}

func TestBuildWorkbook_CaseOnlyLabelsRejected(t *testing.T) {
	result := compare.Compare(
		domain.Dataset{Label: "Flora", Names: []domain.SpeciesName{"Rosa", "Tulipa"}},
		domain.Dataset{Label: "flora", Names: []domain.SpeciesName{"Tulipa", "Iris"}},
	)
	f, err := BuildWorkbook(result, LangZH)
	assert.Error(t, err)
	assert.Nil(t, f)
}

func TestBuildWorkbook_FourDistinctSheets(t *testing.T) {
	f, err := BuildWorkbook(scenario(), LangZH)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"总体统计", "共同物种", "PlantCLEF2015独有", "PlantNet300K独有"}, f.GetSheetList())

	onlyA, err := f.GetRows("PlantCLEF2015独有")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"物种名称"}, {"Rosa"}}, onlyA)
}

func TestWorkbookReporter_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := NewWorkbookReporter(Options{OutputDir: blocker, Clock: fixedClock}).
		Render(context.Background(), scenario())
	assert.ErrorIs(t, err, domain.ErrIOWrite)
}
