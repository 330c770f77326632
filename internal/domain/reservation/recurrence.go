package reservation

import "fmt"

// GenerateDates lists the days a series occupies, from start up to and
// including end. start after end yields nothing.
//
// The n-th occurrence is always derived from start: monthly series clamp to
// the last day of short months without drifting, so a series starting on
// Jan 31 lands on Feb 28, Mar 31, Apr 30.
func GenerateDates(start Date, freq Frequency, end Date) []Date {
	step := stepper(freq)
	var dates []Date
	for n := 0; ; n++ {
		d := step(start, n)
		if d.After(end) {
			return dates
		}
		dates = append(dates, d)
	}
}

func stepper(freq Frequency) func(Date, int) Date {
	switch freq {
	case FrequencyDaily:
		return func(d Date, n int) Date { return d.AddDays(n) }
	case FrequencyWeekly:
		return func(d Date, n int) Date { return d.AddDays(7 * n) }
	case FrequencyBiweekly:
		return func(d Date, n int) Date { return d.AddDays(14 * n) }
	case FrequencyMonthly:
		return func(d Date, n int) Date { return d.AddMonths(n) }
	default:
		panic(fmt.Sprintf("reservation: unknown frequency %q", freq))
	}
}
