package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxisLabel string        `json:"xAxisLabel,omitempty"`
	YAxisLabel string        `json:"yAxisLabel,omitempty"`
	Series     []ChartSeries `json:"series"`
}

type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func writeArtifacts(report Report, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := writeComparisonCSV(report, filepath.Join(dir, "season_comparison.csv")); err != nil {
		return err
	}
	if err := writeRatesCSV(report.ExamRates, report.Summary.Drugs, filepath.Join(dir, "exam_rates.csv")); err != nil {
		return err
	}
	if err := writeRatesCSV(report.NonExamRates, report.Summary.Drugs, filepath.Join(dir, "non_exam_rates.csv")); err != nil {
		return err
	}
	if err := writePeriodCSV(report.PeriodTotals, report.Summary.Drugs, filepath.Join(dir, "period_totals.csv")); err != nil {
		return err
	}

	charts := []struct {
		name  string
		chart ChartConfig
	}{
		{"chart_rate_comparison", rateComparisonChart(report)},
		{"chart_drug_mix", drugMixChart(report)},
		{"chart_period_trend", periodTrendChart(report)},
	}
	for _, entry := range charts {
		if err := writeChartJSON(entry.chart, filepath.Join(dir, entry.name+".json")); err != nil {
			return err
		}
		if err := writeChartCSV(entry.chart, filepath.Join(dir, entry.name+".csv")); err != nil {
			return err
		}
	}
	return nil
}

func writeComparisonCSV(report Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"board", "per_capita_exam", "per_capita_non_exam", "young_adult_pct", "change_percent"}); err != nil {
		return err
	}
	for _, row := range report.Comparison {
		change := ""
		if row.ChangePercent != nil {
			change = fmt.Sprintf("%.2f", *row.ChangePercent)
		}
		record := []string{
			row.Board,
			fmt.Sprintf("%.7f", row.PerCapitaExam),
			fmt.Sprintf("%.7f", row.PerCapitaNonExam),
			fmt.Sprintf("%.2f", row.YoungAdultPct),
			change,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeRatesCSV(rows []BoardRates, drugs []string, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := append([]string{"board"}, drugs...)
	header = append(header, "total_quantity", "paid_items", "gross_cost", "population", "per_capita_rate")
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Board}
		for _, drug := range drugs {
			record = append(record, fmt.Sprintf("%.1f", row.DrugQuantities[drug]))
		}
		record = append(record,
			fmt.Sprintf("%.1f", row.TotalQuantity),
			fmt.Sprintf("%d", row.PaidItems),
			row.GrossCost.StringFixed(2),
			fmt.Sprintf("%d", row.Population),
			fmt.Sprintf("%.7f", row.PerCapitaRate),
		)
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writePeriodCSV(rows []PeriodTotals, drugs []string, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := append([]string{"period", "season"}, drugs...)
	header = append(header, "total_quantity")
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Period, row.Season}
		for _, drug := range drugs {
			record = append(record, fmt.Sprintf("%.1f", row.DrugQuantities[drug]))
		}
		record = append(record, fmt.Sprintf("%.1f", row.TotalQuantity))
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func rateComparisonChart(report Report) ChartConfig {
	exam := ChartSeries{Name: "Exam season"}
	nonExam := ChartSeries{Name: "Non-exam season"}
	for _, row := range report.Comparison {
		exam.Data = append(exam.Data, ChartPoint{Label: row.Board, Value: row.PerCapitaExam})
		nonExam.Data = append(nonExam.Data, ChartPoint{Label: row.Board, Value: row.PerCapitaNonExam})
	}
	return ChartConfig{
		ChartType:  "bar",
		Title:      "Per-capita prescribing by health board",
		XAxisLabel: "Health board",
		YAxisLabel: "Paid quantity per head",
		Series:     []ChartSeries{exam, nonExam},
	}
}

func drugMixChart(report Report) ChartConfig {
	series := make([]ChartSeries, 0, len(report.Summary.Drugs))
	for _, drug := range report.Summary.Drugs {
		entry := ChartSeries{Name: drug}
		for _, row := range report.ExamRates {
			entry.Data = append(entry.Data, ChartPoint{Label: row.Board, Value: row.DrugQuantities[drug]})
		}
		series = append(series, entry)
	}
	return ChartConfig{
		ChartType:  "stacked_bar",
		Title:      "Exam season drug mix by health board",
		XAxisLabel: "Health board",
		YAxisLabel: "Paid quantity",
		Series:     series,
	}
}

func periodTrendChart(report Report) ChartConfig {
	series := make([]ChartSeries, 0, len(report.Summary.Drugs))
	for _, drug := range report.Summary.Drugs {
		entry := ChartSeries{Name: drug}
		for _, row := range report.PeriodTotals {
			entry.Data = append(entry.Data, ChartPoint{Label: row.Period, Value: row.DrugQuantities[drug]})
		}
		series = append(series, entry)
	}
	return ChartConfig{
		ChartType:  "line",
		Title:      "Paid quantity by academic period",
		XAxisLabel: "Period",
		YAxisLabel: "Paid quantity",
		Series:     series,
	}
}

func writeChartJSON(chart ChartConfig, path string) error {
	data, err := json.MarshalIndent(chart, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// writeChartCSV flattens a chart into one row per label with one column per
// series; the first series drives the label order.
func writeChartCSV(chart ChartConfig, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"label"}
	for _, series := range chart.Series {
		header = append(header, series.Name)
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	if len(chart.Series) > 0 {
		for i, point := range chart.Series[0].Data {
			record := []string{point.Label}
			for _, series := range chart.Series {
				value := 0.0
				if i < len(series.Data) {
					value = series.Data[i].Value
				}
				record = append(record, strconv.FormatFloat(value, 'f', -1, 64))
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
