package main

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func event(board string, drug string, quantity float64, period Period) PrescriptionEvent {
	return PrescriptionEvent{
		Board:        board,
		Drug:         drug,
		PaidQuantity: quantity,
		GrossCost:    decimal.Zero,
		Period:       period,
		Season:       seasonOf(period),
	}
}

func TestAggregateSeasonScenario(t *testing.T) {
	events := []PrescriptionEvent{
		event("Lothian", "SERTRALINE", 100, PeriodSemester1Finals),
		event("Lothian", "SERTRALINE", 50, PeriodSemester1Finals),
	}

	diags := newDiagnostics()
	rows := aggregateSeason(events, SeasonExam, testReference(), diags)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !floatEqual(rows[0].TotalQuantity, 150) {
		t.Fatalf("expected total 150, got %.1f", rows[0].TotalQuantity)
	}
	if got := formatRate(rows[0].PerCapitaRate); got != "0.0001667" {
		t.Fatalf("expected per-capita 0.0001667, got %s", got)
	}
	if rows[0].PerCapitaRate < 0 {
		t.Fatalf("rate must be non-negative")
	}
	if !floatEqual(rows[0].YoungAdultPct, 25.56) {
		t.Fatalf("expected share ~25.56, got %.4f", rows[0].YoungAdultPct)
	}
}

func TestAggregateSeasonPivotRoundTrip(t *testing.T) {
	events := []PrescriptionEvent{
		event("Lothian", "SERTRALINE", 100, PeriodSemester1Finals),
		event("Lothian", "SERTRALINE", 50, PeriodSemester2Finals),
		event("Lothian", "FLUOXETINE", 30, PeriodSemester1Finals),
		event("Forth Valley", "CITALOPRAM", 25, PeriodSemester1Finals),
		event("Lothian", "SERTRALINE", 10, PeriodSemester1Start), // other season
	}

	long := sumQuantities(events, SeasonExam)
	rows := aggregateSeason(events, SeasonExam, testReference(), newDiagnostics())

	if len(rows) != len(long) {
		t.Fatalf("expected %d rows, got %d", len(long), len(rows))
	}
	for _, row := range rows {
		sum := 0.0
		for _, quantity := range long[row.Board] {
			sum += quantity
		}
		if !floatEqual(sum, row.TotalQuantity) {
			t.Fatalf("board %s: long sum %.1f != wide total %.1f", row.Board, sum, row.TotalQuantity)
		}
	}

	if !floatEqual(long["Lothian"]["SERTRALINE"], 150) {
		t.Fatalf("expected duplicate dimensions summed, got %.1f", long["Lothian"]["SERTRALINE"])
	}
}

func TestAggregateSeasonExcludesMissingPopulation(t *testing.T) {
	events := []PrescriptionEvent{
		event("Lothian", "SERTRALINE", 100, PeriodSemester1Finals),
		event("Shetland", "SERTRALINE", 10, PeriodSemester1Finals),
	}

	diags := newDiagnostics()
	rows := aggregateSeason(events, SeasonExam, testReference(), diags)
	if len(rows) != 1 || rows[0].Board != "Lothian" {
		t.Fatalf("expected only Lothian, got %+v", rows)
	}
	if len(diags.ExcludedFromRates) != 1 {
		t.Fatalf("expected 1 excluded board, got %v", diags.ExcludedFromRates)
	}
}

func TestAggregateSeasonExcludesZeroPopulation(t *testing.T) {
	ref := &ReferenceData{
		Populations: map[string]int{"Lothian": 900000, "Orkney": 0},
		YoungAdults: map[string]YoungAdultShare{"Lothian": {Percentage: 25.56}},
	}
	events := []PrescriptionEvent{
		event("Lothian", "SERTRALINE", 100, PeriodSemester1Finals),
		event("Orkney", "SERTRALINE", 10, PeriodSemester1Finals),
	}

	diags := newDiagnostics()
	rows := aggregateSeason(events, SeasonExam, ref, diags)
	if len(rows) != 1 || rows[0].Board != "Lothian" {
		t.Fatalf("expected only Lothian, got %+v", rows)
	}
	if len(diags.ExcludedFromRates) != 1 || !strings.Contains(diags.ExcludedFromRates[0], "zero population") {
		t.Fatalf("expected zero population exclusion, got %v", diags.ExcludedFromRates)
	}
}

func TestAggregatePeriodsOrder(t *testing.T) {
	events := []PrescriptionEvent{
		event("Lothian", "SERTRALINE", 40, PeriodSemester2Finals),
		event("Lothian", "SERTRALINE", 10, PeriodSemester1Start),
		event("Forth Valley", "FLUOXETINE", 5, PeriodSemester1Start),
	}

	rows := aggregatePeriods(events)
	if len(rows) != 2 {
		t.Fatalf("expected 2 period rows, got %d", len(rows))
	}
	if rows[0].Period != "Semester 1 Start" || rows[0].Season != "non-exam" {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if !floatEqual(rows[0].TotalQuantity, 15) {
		t.Fatalf("expected total 15, got %.1f", rows[0].TotalQuantity)
	}
	if rows[1].Period != "Semester 2 Finals" || rows[1].Season != "exam" {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
}
