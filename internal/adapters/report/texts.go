package report

import (
	"fmt"
	"strings"
)

// Language selects the user-facing strings of every artifact.
type Language string

const (
	// LangZH reproduces the strings of the original Chinese reports exactly.
	LangZH Language = "zh"
	// LangEN renders English equivalents.
	LangEN Language = "en"
)

// ParseLanguage validates a language name. Empty means zh.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LangZH, nil
	case LangZH, LangEN:
		return l, nil
	default:
		return "", fmt.Errorf("unknown language %q (want zh or en)", s)
	}
}

// texts holds every user-facing string. {A} and {B} stand for the dataset
// labels and are substituted by expand.
type texts struct {
	summary string // text/template source

	listsCommon string
	listsOnly   string

	overviewSheet string
	itemHeader    string
	valueHeader   string
	statLabels    [9]string
	commonSheet   string
	onlySheet     string
	nameHeader    string

	chartTitle  string
	panelTitles [6]string
	commonLabel string
	onlyLabel   string
	sizeSeries  string
}

// The zh summary keeps the indentation and trailing spaces of the original
// report byte for byte.
const summaryZH = "\n" +
	"    植物数据集分析报告\n" +
	"\n" +
	"    1. 数据集概述:\n" +
	"    - {{.LabelA}} 数据集物种总数: {{.Counts.A}}\n" +
	"    - {{.LabelB}} 数据集物种总数: {{.Counts.B}}\n" +
	"\n" +
	"    2. 共同物种和独有物种数量:\n" +
	"    - 共同物种数量: {{.Counts.Common}}\n" +
	"    - 仅在 {{.LabelA}} 中出现的物种数量: {{.Counts.OnlyA}}\n" +
	"    - 仅在 {{.LabelB}} 中出现的物种数量: {{.Counts.OnlyB}}\n" +
	"\n" +
	"    3. 总的植物种类数量:\n" +
	"    - 合并后的植物种类数量: {{.Counts.Union}}\n" +
	"    "

const summaryEN = "Plant dataset analysis report\n" +
	"\n" +
	"1. Dataset overview:\n" +
	"- {{.LabelA}} species total: {{.Counts.A}}\n" +
	"- {{.LabelB}} species total: {{.Counts.B}}\n" +
	"\n" +
	"2. Common and unique species:\n" +
	"- Common species: {{.Counts.Common}}\n" +
	"- Only in {{.LabelA}}: {{.Counts.OnlyA}}\n" +
	"- Only in {{.LabelB}}: {{.Counts.OnlyB}}\n" +
	"\n" +
	"3. Total unique species:\n" +
	"- Species in union: {{.Counts.Union}}\n"

var catalog = map[Language]texts{
	LangZH: {
		summary:       summaryZH,
		listsCommon:   "共同物种列表:",
		listsOnly:     "仅在{A}中的物种:",
		overviewSheet: "总体统计",
		itemHeader:    "统计项",
		valueHeader:   "数值",
		statLabels: [9]string{
			"{A}数据集物种总数",
			"{B}数据集物种总数",
			"共同物种数量",
			"仅在{A}中的物种数量",
			"仅在{B}中的物种数量",
			"物种并集总数",
			"{A}独有物种占比",
			"{B}独有物种占比",
			"共同物种占比(相对于并集)",
		},
		commonSheet: "共同物种",
		onlySheet:   "{A}独有",
		nameHeader:  "物种名称",
		chartTitle:  "植物数据集分析",
		panelTitles: [6]string{
			"物种总数对比",
			"物种分布情况",
			"物种数量分布",
			"物种重叠度热力图",
			"物种数量箱线图",
			"物种数量散点图",
		},
		commonLabel: "共同物种",
		onlyLabel:   "仅在{A}中",
		sizeSeries:  "物种数量",
	},
	LangEN: {
		summary:       summaryEN,
		listsCommon:   "Common species:",
		listsOnly:     "Only in {A}:",
		overviewSheet: "overview",
		itemHeader:    "item",
		valueHeader:   "value",
		statLabels: [9]string{
			"{A} species total",
			"{B} species total",
			"common species",
			"only in {A}",
			"only in {B}",
			"species in union",
			"{A}-only share",
			"{B}-only share",
			"common share of union",
		},
		commonSheet: "common species",
		onlySheet:   "{A}-only",
		nameHeader:  "species",
		chartTitle:  "Plant dataset analysis",
		panelTitles: [6]string{
			"Species totals",
			"Species distribution",
			"Species counts",
			"Species overlap heat map",
			"Species count box plot",
			"Species count scatter",
		},
		commonLabel: "common species",
		onlyLabel:   "only in {A}",
		sizeSeries:  "species count",
	},
}

func textsFor(l Language) texts {
	if t, ok := catalog[l]; ok {
		return t
	}
	return catalog[LangZH]
}

// expand substitutes {A} and {B} with the given labels.
func expand(s, a, b string) string {
	return strings.NewReplacer("{A}", a, "{B}", b).Replace(s)
}
