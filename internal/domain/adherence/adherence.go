package adherence

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// Entry es lo mínimo que el cálculo necesita de un registro de dosis.
type Entry struct {
	TakenAt  time.Time
	WasTaken bool
}

// ExpectedDoses devuelve prescribedPerDay * days.
// days == 0 es válido (0 dosis); days < 0 o prescribedPerDay <= 0 no.
func ExpectedDoses(prescribedPerDay, days int) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("%w: days must be >= 0, got %d", ErrInvalidArgument, days)
	}
	if prescribedPerDay <= 0 {
		return 0, fmt.Errorf("%w: prescribed_per_day must be > 0, got %d", ErrInvalidArgument, prescribedPerDay)
	}
	if days > math.MaxInt/prescribedPerDay {
		return 0, fmt.Errorf("%w: %d days at %d per day overflows", ErrInvalidArgument, days, prescribedPerDay)
	}
	return prescribedPerDay * days, nil
}

// Rate es el porcentaje de registros marcados como tomados sobre el total histórico.
// No mira horarios ni la prescripción. Sin registros => 0.
func Rate(logs []Entry) float64 {
	if len(logs) == 0 {
		return 0.0
	}
	return percent(countTaken(logs), len(logs))
}

// RateOverPeriod compara las dosis tomadas dentro de [start, end] (días calendario, inclusivo)
// contra las esperadas para ese período. El resultado queda en [0, 100]: tomas de más
// no suben la adherencia por encima de 100.
func RateOverPeriod(prescribedPerDay int, start, end time.Time, logs []Entry) (float64, error) {
	from := truncateDay(start)
	to := truncateDay(end)
	if to.Before(from) {
		return 0, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidArgument, to.Format(time.DateOnly), from.Format(time.DateOnly))
	}

	days := DaysBetween(from, to)
	expected, err := ExpectedDoses(prescribedPerDay, days)
	if err != nil {
		return 0, err
	}
	if expected == 0 {
		return 0, fmt.Errorf("%w: expected doses for the period is 0", ErrInvalidArgument)
	}

	inRange := Between(logs, from, to)
	if len(inRange) == 0 {
		return 0.0, nil
	}
	return math.Min(100, percent(countTaken(inRange), expected)), nil
}

// DaysBetween cuenta los días calendario entre start y end, ambos incluidos.
func DaysBetween(start, end time.Time) int {
	from := truncateDay(start)
	to := truncateDay(end)
	return int(to.Sub(from).Hours()/24) + 1
}

// Between filtra las entradas cuyo TakenAt cae dentro de [start 00:00, end+1 00:00) en UTC.
func Between(logs []Entry, start, end time.Time) []Entry {
	from := truncateDay(start)
	until := truncateDay(end).AddDate(0, 0, 1)

	out := make([]Entry, 0, len(logs))
	for _, l := range logs {
		t := l.TakenAt.UTC()
		if t.Before(from) || !t.Before(until) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func countTaken(logs []Entry) int {
	n := 0
	for _, l := range logs {
		if l.WasTaken {
			n++
		}
	}
	return n
}

func percent(part, total int) float64 {
	return float64(part) * 100 / float64(total)
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
