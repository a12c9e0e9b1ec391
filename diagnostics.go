package main

import (
	"errors"
	"fmt"
)

var (
	errMalformedReference = errors.New("malformed reference data")
	errDivisionUndefined  = errors.New("division undefined")
)

type Diagnostics struct {
	FilesRead          int            `json:"files_read"`
	RowsRead           int            `json:"rows_read"`
	RowsIncluded       int            `json:"rows_included"`
	OffListDrug        int            `json:"off_list_drug"`
	OffListBoard       int            `json:"off_list_board"`
	MalformedRows      int            `json:"malformed_rows"`
	UnclassifiedMonths int            `json:"unclassified_months"`
	SeasonMismatches   int            `json:"season_mismatches"`
	SkippedAgeBuckets  int            `json:"skipped_age_buckets"`
	UnknownBoardCodes  map[string]int `json:"unknown_board_codes,omitempty"`
	DroppedBoards      []string       `json:"dropped_boards,omitempty"`
	ExcludedFromRates  []string       `json:"excluded_from_rates,omitempty"`
	UndefinedBaselines []string       `json:"undefined_baselines,omitempty"`
}

func newDiagnostics() *Diagnostics {
	return &Diagnostics{UnknownBoardCodes: map[string]int{}}
}

func (d *Diagnostics) UnresolvedJoins() int {
	total := 0
	for _, count := range d.UnknownBoardCodes {
		total += count
	}
	return total
}

func (d *Diagnostics) noteUnknownBoard(code string) {
	if d.UnknownBoardCodes == nil {
		d.UnknownBoardCodes = map[string]int{}
	}
	d.UnknownBoardCodes[code]++
}

func (d *Diagnostics) noteDroppedBoard(board string, reason string) {
	d.DroppedBoards = append(d.DroppedBoards, fmt.Sprintf("%s (%s)", board, reason))
}

func (d *Diagnostics) merge(other Diagnostics) {
	d.FilesRead += other.FilesRead
	d.RowsRead += other.RowsRead
	d.RowsIncluded += other.RowsIncluded
	d.OffListDrug += other.OffListDrug
	d.OffListBoard += other.OffListBoard
	d.MalformedRows += other.MalformedRows
	d.UnclassifiedMonths += other.UnclassifiedMonths
	d.SeasonMismatches += other.SeasonMismatches
	d.SkippedAgeBuckets += other.SkippedAgeBuckets
	for code, count := range other.UnknownBoardCodes {
		if d.UnknownBoardCodes == nil {
			d.UnknownBoardCodes = map[string]int{}
		}
		d.UnknownBoardCodes[code] += count
	}
	d.DroppedBoards = append(d.DroppedBoards, other.DroppedBoards...)
	d.ExcludedFromRates = append(d.ExcludedFromRates, other.ExcludedFromRates...)
	d.UndefinedBaselines = append(d.UndefinedBaselines, other.UndefinedBaselines...)
}
