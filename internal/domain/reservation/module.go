package reservation

import (
	"fmt"
	"slices"
	"time"
)

// Module is one 40-minute slot of the school day, numbered from 08:00.
type Module int

const (
	FirstModule Module = 1
	LastModule  Module = 15

	ModuleCount    = int(LastModule)
	ModuleDuration = 40 * time.Minute

	dayStartMinutes = 8 * 60
	moduleMinutes   = 40
)

func NewModule(n int) (Module, error) {
	m := Module(n)
	if !m.IsValid() {
		return 0, fmt.Errorf("module %d outside %d-%d", n, FirstModule, LastModule)
	}
	return m, nil
}

func (m Module) IsValid() bool {
	return m >= FirstModule && m <= LastModule
}

func (m Module) Int() int { return int(m) }

// Start is the HH:MM at which the module begins.
func (m Module) Start() string {
	return formatMinutes(dayStartMinutes + (int(m)-1)*moduleMinutes)
}

func (m Module) End() string {
	return formatMinutes(dayStartMinutes + int(m)*moduleMinutes)
}

func formatMinutes(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ModuleSet is a sorted set of modules without duplicates.
type ModuleSet []Module

func NewModuleSet(modules ...Module) ModuleSet {
	set := slices.Clone(modules)
	slices.Sort(set)
	return slices.Compact(set)
}

// ParseModules converts raw numbers into a set and reports the numbers that are
// outside the school day.
func ParseModules(numbers []int) (ModuleSet, []int) {
	var invalid []int
	modules := make([]Module, 0, len(numbers))
	for _, n := range numbers {
		m := Module(n)
		if !m.IsValid() {
			invalid = append(invalid, n)
			continue
		}
		modules = append(modules, m)
	}
	return NewModuleSet(modules...), invalid
}

// AllModules returns 1..15.
func AllModules() ModuleSet {
	set := make(ModuleSet, 0, ModuleCount)
	for m := FirstModule; m <= LastModule; m++ {
		set = append(set, m)
	}
	return set
}

func (s ModuleSet) Contains(m Module) bool {
	_, found := slices.BinarySearch(s, m)
	return found
}

func (s ModuleSet) IsEmpty() bool { return len(s) == 0 }

func (s ModuleSet) Intersect(other ModuleSet) ModuleSet {
	out := ModuleSet{}
	for _, m := range s {
		if other.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s ModuleSet) Union(other ModuleSet) ModuleSet {
	merged := make([]Module, 0, len(s)+len(other))
	merged = append(merged, s...)
	merged = append(merged, other...)
	return NewModuleSet(merged...)
}

func (s ModuleSet) Difference(other ModuleSet) ModuleSet {
	out := ModuleSet{}
	for _, m := range s {
		if !other.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s ModuleSet) Ints() []int {
	out := make([]int, len(s))
	for i, m := range s {
		out[i] = int(m)
	}
	return out
}

// ScheduleLabel renders the span of the set, e.g. "08:00 - 09:20".
func ScheduleLabel(s ModuleSet) string {
	if len(s) == 0 {
		return ""
	}
	return s[0].Start() + " - " + s[len(s)-1].End()
}
