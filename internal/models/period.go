package models

import "fmt"

// Period is the forecast granularity a caller asks for.
type Period int

const (
	PeriodHour Period = iota + 1
	PeriodDay
)

// Step is the timeline step stored with each observation.
type Step string

const (
	Step1h Step = "1h"
	Step1d Step = "1d"
)

func ParsePeriod(s string) (Period, error) {
	switch s {
	case "hour":
		return PeriodHour, nil
	case "day":
		return PeriodDay, nil
	}
	return 0, fmt.Errorf("unknown period %q", s)
}

func (p Period) String() string {
	switch p {
	case PeriodHour:
		return "hour"
	case PeriodDay:
		return "day"
	}
	return fmt.Sprintf("Period(%d)", int(p))
}

func (p Period) Valid() bool {
	return p == PeriodHour || p == PeriodDay
}

// Step maps the period onto the upstream timeline step.
func (p Period) Step() Step {
	if p == PeriodDay {
		return Step1d
	}
	return Step1h
}

func ParseStep(s string) (Step, error) {
	switch Step(s) {
	case Step1h, Step1d:
		return Step(s), nil
	}
	return "", fmt.Errorf("unknown step %q", s)
}
