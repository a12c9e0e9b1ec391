package main

import (
	"fmt"
	"sort"
)

type SeasonComparison struct {
	Board            string   `json:"board"`
	PerCapitaExam    float64  `json:"per_capita_exam"`
	PerCapitaNonExam float64  `json:"per_capita_non_exam"`
	YoungAdultPct    float64  `json:"young_adult_pct"`
	ChangePercent    *float64 `json:"change_percent"`
}

// compareSeasons left-joins the exam table against the non-exam table on
// board name. A nil ChangePercent marks a missing or zero baseline.
func compareSeasons(exam []BoardRates, nonExam []BoardRates, diags *Diagnostics) []SeasonComparison {
	baseline := make(map[string]BoardRates, len(nonExam))
	for _, row := range nonExam {
		baseline[row.Board] = row
	}

	rows := make([]SeasonComparison, 0, len(exam))
	for _, row := range exam {
		comparison := SeasonComparison{
			Board:         row.Board,
			PerCapitaExam: row.PerCapitaRate,
			YoungAdultPct: row.YoungAdultPct,
		}
		base, ok := baseline[row.Board]
		switch {
		case !ok:
			diags.UndefinedBaselines = append(diags.UndefinedBaselines, fmt.Sprintf("%s (no non-exam data)", row.Board))
		case base.PerCapitaRate == 0:
			diags.UndefinedBaselines = append(diags.UndefinedBaselines, fmt.Sprintf("%s (zero non-exam rate)", row.Board))
		default:
			comparison.PerCapitaNonExam = base.PerCapitaRate
			change := (row.PerCapitaRate - base.PerCapitaRate) / base.PerCapitaRate * 100
			comparison.ChangePercent = &change
		}
		rows = append(rows, comparison)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].PerCapitaExam != rows[j].PerCapitaExam {
			return rows[i].PerCapitaExam > rows[j].PerCapitaExam
		}
		return rows[i].Board < rows[j].Board
	})
	return rows
}
