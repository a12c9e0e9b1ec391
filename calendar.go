package main

import (
	"fmt"
	"strings"
)

type Period int

const (
	PeriodUnclassified Period = iota
	PeriodSemester1Start
	PeriodSemester1Finals
	PeriodSemester2Start
	PeriodSemester2Finals
)

func (p Period) String() string {
	switch p {
	case PeriodSemester1Start:
		return "Semester 1 Start"
	case PeriodSemester1Finals:
		return "Semester 1 Finals"
	case PeriodSemester2Start:
		return "Semester 2 Start"
	case PeriodSemester2Finals:
		return "Semester 2 Finals"
	default:
		return "Unclassified"
	}
}

type Season int

const (
	SeasonNone Season = iota
	SeasonExam
	SeasonNonExam
)

func (s Season) String() string {
	switch s {
	case SeasonExam:
		return "exam"
	case SeasonNonExam:
		return "non-exam"
	default:
		return "unclassified"
	}
}

func parseSeason(value string) (Season, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", "-") {
	case "exam":
		return SeasonExam, nil
	case "non-exam", "nonexam":
		return SeasonNonExam, nil
	default:
		return SeasonNone, fmt.Errorf("unknown season: %s", value)
	}
}

func seasonOf(p Period) Season {
	switch p {
	case PeriodSemester1Finals, PeriodSemester2Finals:
		return SeasonExam
	case PeriodSemester1Start, PeriodSemester2Start:
		return SeasonNonExam
	default:
		return SeasonNone
	}
}

func allPeriods() []Period {
	return []Period{PeriodSemester1Start, PeriodSemester1Finals, PeriodSemester2Start, PeriodSemester2Finals}
}

type AcademicCalendar struct {
	byMonth [13]Period
}

func newAcademicCalendar(cfg CalendarConfig) (*AcademicCalendar, error) {
	cal := &AcademicCalendar{}
	assign := func(months []int, period Period) error {
		for _, month := range months {
			if month < 1 || month > 12 {
				return fmt.Errorf("calendar month out of range: %d", month)
			}
			if existing := cal.byMonth[month]; existing != PeriodUnclassified {
				return fmt.Errorf("month %d assigned to both %s and %s", month, existing, period)
			}
			cal.byMonth[month] = period
		}
		return nil
	}
	if err := assign(cfg.Semester1Start, PeriodSemester1Start); err != nil {
		return nil, err
	}
	if err := assign(cfg.Semester1Finals, PeriodSemester1Finals); err != nil {
		return nil, err
	}
	if err := assign(cfg.Semester2Start, PeriodSemester2Start); err != nil {
		return nil, err
	}
	if err := assign(cfg.Semester2Finals, PeriodSemester2Finals); err != nil {
		return nil, err
	}
	return cal, nil
}

func (c *AcademicCalendar) ClassifyMonth(month int) Period {
	if month < 1 || month > 12 {
		return PeriodUnclassified
	}
	return c.byMonth[month]
}
