package report

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/bft-labs/speciesdiff/internal/adapters/fs"
	"github.com/bft-labs/speciesdiff/internal/compare"
	"github.com/bft-labs/speciesdiff/internal/domain"
	"github.com/bft-labs/speciesdiff/internal/ports"
)

// maxSheetName is Excel's limit on sheet name length.
const maxSheetName = 31

// WorkbookReporter writes a fresh multi-sheet xlsx document per run.
type WorkbookReporter struct {
	opts Options
}

// NewWorkbookReporter creates a workbook reporter.
func NewWorkbookReporter(opts Options) *WorkbookReporter {
	return &WorkbookReporter{opts: opts.withDefaults()}
}

var _ ports.Reporter = (*WorkbookReporter)(nil)

// Name returns "workbook".
func (r *WorkbookReporter) Name() string { return KindWorkbook }

// FileName returns the timestamped workbook name for the current clock.
func (r *WorkbookReporter) FileName() string {
	return r.opts.WorkbookPrefix + r.opts.Clock().Format(TimestampLayout) + ".xlsx"
}

// Render writes <OutputDir>/<WorkbookPrefix><YYYYMMDD_HHMMSS>.xlsx.
func (r *WorkbookReporter) Render(ctx context.Context, result domain.ComparisonResult) (string, error) {
	path := r.opts.path(r.FileName())

	f, err := BuildWorkbook(result, r.opts.Language)
	if err != nil {
		return "", domain.IOWrite("report.workbook", path, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", domain.IOWrite("report.workbook", path, err)
	}
	if err := fs.WriteFileAtomic(ctx, path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// BuildWorkbook lays out the overview sheet and the three sorted list sheets.
// The caller owns the returned file and must Close it.
func BuildWorkbook(result domain.ComparisonResult, lang Language) (*excelize.File, error) {
	t := textsFor(lang)
	a, b := result.LabelA, result.LabelB
	c := result.Counts()
	ratios := compare.RatiosOf(result)

	names := WorkbookSheetNames(lang, a, b)
	if err := CheckSheetNames(names); err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	overview := names[0]
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		f.Close()
		return nil, err
	}

	values := [9]interface{}{
		c.A,
		c.B,
		c.Common,
		c.OnlyA,
		c.OnlyB,
		c.Union,
		compare.Percent(ratios.OnlyAOfA),
		compare.Percent(ratios.OnlyBOfB),
		compare.Percent(ratios.CommonOfUnion),
	}
	rows := [][]interface{}{{t.itemHeader, t.valueHeader}}
	for i, label := range t.statLabels {
		rows = append(rows, []interface{}{expand(label, a, b), values[i]})
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(overview, cell, &rows[i]); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := f.SetColWidth(overview, "A", "A", 36); err != nil {
		f.Close()
		return nil, err
	}

	lists := []struct {
		name string
		set  domain.SpeciesSet
	}{
		{names[1], result.Common},
		{names[2], result.OnlyA},
		{names[3], result.OnlyB},
	}
	for _, l := range lists {
		if err := writeListSheet(f, l.name, t.nameHeader, l.set.Strings()); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WorkbookSheetNames returns the sanitized overview, common, A-only and
// B-only sheet names for the given labels.
func WorkbookSheetNames(lang Language, a, b string) []string {
	t := textsFor(lang)
	return []string{
		SheetName(t.overviewSheet),
		SheetName(t.commonSheet),
		SheetName(expand(t.onlySheet, a, b)),
		SheetName(expand(t.onlySheet, b, a)),
	}
}

// CheckSheetNames fails if two names would address the same sheet. Excel
// compares sheet names case-insensitively.
func CheckSheetNames(names []string) error {
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if strings.EqualFold(names[i], names[j]) {
				return fmt.Errorf("sheet names %q and %q collide", names[i], names[j])
			}
		}
	}
	return nil
}

func writeListSheet(f *excelize.File, sheet, header string, names []string) error {
	// NewSheet returns an existing sheet instead of failing on a duplicate.
	if idx, err := f.GetSheetIndex(sheet); err != nil {
		return err
	} else if idx >= 0 {
		return fmt.Errorf("sheet %q already exists", sheet)
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", header); err != nil {
		return err
	}
	for i, n := range names {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, n); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "A", 48)
}

// SheetName replaces characters Excel rejects and clamps to 31 characters.
func SheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, s)
	if utf8.RuneCountInString(s) <= maxSheetName {
		return s
	}
	return string([]rune(s)[:maxSheetName])
}
