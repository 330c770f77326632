package reservation

import "time"

// CurrentModule maps a wall-clock instant to its module. Before 08:00 it returns
// the first module and after 18:00 the last one.
func CurrentModule(now time.Time) Module {
	elapsed := now.Hour()*60 + now.Minute() - dayStartMinutes
	if elapsed < 0 {
		return FirstModule
	}
	if elapsed >= ModuleCount*moduleMinutes {
		return LastModule
	}
	m := Module(elapsed/moduleMinutes + 1)
	return max(FirstModule, min(m, LastModule))
}

// HasElapsed reports whether module m of date is already over at now. Only
// today's modules can elapse; past dates are rejected elsewhere.
func HasElapsed(m Module, date Date, now time.Time) bool {
	return date.Equal(DateOf(now)) && m < CurrentModule(now)
}

// ElapsedModules returns the members of modules that are already over on date
// at now.
func ElapsedModules(date Date, modules ModuleSet, now time.Time) ModuleSet {
	out := ModuleSet{}
	for _, m := range modules {
		if HasElapsed(m, date, now) {
			out = append(out, m)
		}
	}
	return out
}

type ModuleSlot struct {
	Module  Module
	Start   string
	End     string
	Elapsed bool
	Current bool
}

// DaySchedule lists every module of date with its times and state at now.
func DaySchedule(date Date, now time.Time) []ModuleSlot {
	current := CurrentModule(now)
	today := date.Equal(DateOf(now))
	slots := make([]ModuleSlot, 0, ModuleCount)
	for _, m := range AllModules() {
		slots = append(slots, ModuleSlot{
			Module:  m,
			Start:   m.Start(),
			End:     m.End(),
			Elapsed: HasElapsed(m, date, now),
			Current: today && m == current,
		})
	}
	return slots
}
