package main

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type BoardRates struct {
	Board          string             `json:"board"`
	DrugQuantities map[string]float64 `json:"drug_quantities"`
	TotalQuantity  float64            `json:"total_quantity"`
	PaidItems      int                `json:"paid_items"`
	GrossCost      decimal.Decimal    `json:"gross_cost"`
	Population     int                `json:"population"`
	PerCapitaRate  float64            `json:"per_capita_rate"`
	YoungAdultPct  float64            `json:"young_adult_pct"`
}

type PeriodTotals struct {
	Period         string             `json:"period"`
	Season         string             `json:"season"`
	DrugQuantities map[string]float64 `json:"drug_quantities"`
	TotalQuantity  float64            `json:"total_quantity"`
}

func sumQuantities(events []PrescriptionEvent, season Season) map[string]map[string]float64 {
	totals := map[string]map[string]float64{}
	for _, event := range events {
		if event.Season != season {
			continue
		}
		byDrug, ok := totals[event.Board]
		if !ok {
			byDrug = map[string]float64{}
			totals[event.Board] = byDrug
		}
		byDrug[event.Drug] += event.PaidQuantity
	}
	return totals
}

func aggregateSeason(events []PrescriptionEvent, season Season, ref *ReferenceData, diags *Diagnostics) []BoardRates {
	quantities := sumQuantities(events, season)

	items := map[string]int{}
	costs := map[string]decimal.Decimal{}
	for _, event := range events {
		if event.Season != season {
			continue
		}
		items[event.Board] += event.PaidItems
		costs[event.Board] = costs[event.Board].Add(event.GrossCost)
	}

	boards := make([]string, 0, len(quantities))
	for board := range quantities {
		boards = append(boards, board)
	}
	sort.Strings(boards)

	rows := make([]BoardRates, 0, len(boards))
	for _, board := range boards {
		byDrug := quantities[board]
		drugs := make([]string, 0, len(byDrug))
		for drug := range byDrug {
			drugs = append(drugs, drug)
		}
		sort.Strings(drugs)
		total := 0.0
		for _, drug := range drugs {
			total += byDrug[drug]
		}

		population, ok := ref.Populations[board]
		if !ok || population == 0 {
			reason := "no population row"
			if ok {
				reason = "zero population"
			}
			diags.ExcludedFromRates = append(diags.ExcludedFromRates, fmt.Sprintf("%s (%s, %s season)", board, reason, season))
			logger.Warnw("board excluded from rates",
				"board", board,
				"season", season.String(),
				"reason", reason,
			)
			continue
		}

		rows = append(rows, BoardRates{
			Board:          board,
			DrugQuantities: byDrug,
			TotalQuantity:  total,
			PaidItems:      items[board],
			GrossCost:      costs[board],
			Population:     population,
			PerCapitaRate:  total / float64(population),
			YoungAdultPct:  ref.YoungAdults[board].Percentage,
		})
	}
	return rows
}

func aggregatePeriods(events []PrescriptionEvent) []PeriodTotals {
	byPeriod := map[Period]map[string]float64{}
	for _, event := range events {
		byDrug, ok := byPeriod[event.Period]
		if !ok {
			byDrug = map[string]float64{}
			byPeriod[event.Period] = byDrug
		}
		byDrug[event.Drug] += event.PaidQuantity
	}

	rows := make([]PeriodTotals, 0, len(byPeriod))
	for _, period := range allPeriods() {
		byDrug, ok := byPeriod[period]
		if !ok {
			continue
		}
		drugs := make([]string, 0, len(byDrug))
		for drug := range byDrug {
			drugs = append(drugs, drug)
		}
		sort.Strings(drugs)
		total := 0.0
		for _, drug := range drugs {
			total += byDrug[drug]
		}
		rows = append(rows, PeriodTotals{
			Period:         period.String(),
			Season:         seasonOf(period).String(),
			DrugQuantities: byDrug,
			TotalQuantity:  total,
		})
	}
	return rows
}
