package reservation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type RejectionKind string

const (
	KindMissingField       RejectionKind = "missing-field"
	KindEmptyModules       RejectionKind = "empty-modules"
	KindInvalidModule      RejectionKind = "invalid-module"
	KindInvalidDate        RejectionKind = "invalid-date"
	KindInvalidSeries      RejectionKind = "invalid-series"
	KindInvalidStatus      RejectionKind = "invalid-status"
	KindInvalidField       RejectionKind = "invalid-field"
	KindModulesUnavailable RejectionKind = "modules-unavailable"
	KindSeriesConflicts    RejectionKind = "series-conflicts"
)

// PreviewLimit is how many conflicting dates a message names before
// summarising the rest.
const PreviewLimit = 3

const previewLayout = "02/01/2006"

// Rejection is an expected refusal of a request. Callers branch on Kind.
type Rejection struct {
	Kind    RejectionKind
	Field   string
	Reason  string
	Modules []int
	Dates   []Date
}

func (r *Rejection) Error() string {
	return string(r.Kind) + ": " + r.Message()
}

// Message is the text shown to the person making the request.
func (r *Rejection) Message() string {
	switch r.Kind {
	case KindModulesUnavailable:
		return "modules already reserved: " + joinInts(r.Modules)
	case KindSeriesConflicts:
		return "conflicts on " + ConflictPreview(r.Dates, PreviewLimit)
	case KindInvalidModule:
		if r.Reason != "" {
			return r.Reason
		}
		return "modules must be between 1 and 15: " + joinInts(r.Modules)
	}
	if r.Reason != "" {
		return r.Reason
	}
	return string(r.Kind)
}

// Detail carries the data the client needs to highlight the problem.
func (r *Rejection) Detail() any {
	switch r.Kind {
	case KindModulesUnavailable, KindInvalidModule:
		return r.Modules
	case KindSeriesConflicts:
		return r.Dates
	}
	if r.Field != "" {
		return r.Field
	}
	return nil
}

func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// ModulesUnavailable builds the rejection for a single-date conflict. Storage
// races surface through it as well.
func ModulesUnavailable(modules ModuleSet) *Rejection {
	return &Rejection{Kind: KindModulesUnavailable, Modules: modules.Ints()}
}

func SeriesConflicts(dates []Date) *Rejection {
	return &Rejection{Kind: KindSeriesConflicts, Dates: dates}
}

func MissingField(field string) *Rejection {
	return &Rejection{Kind: KindMissingField, Field: field, Reason: field + " is required"}
}

func invalidDate(field, reason string) *Rejection {
	return &Rejection{Kind: KindInvalidDate, Field: field, Reason: reason}
}

func invalidSeries(field, reason string) *Rejection {
	return &Rejection{Kind: KindInvalidSeries, Field: field, Reason: reason}
}

// ConflictPreview renders up to limit dates as dd/mm/yyyy and counts the rest:
// "06/10/2025, 13/10/2025, 20/10/2025 and 2 more".
func ConflictPreview(dates []Date, limit int) string {
	if limit <= 0 {
		limit = PreviewLimit
	}
	shown := dates
	if len(shown) > limit {
		shown = shown[:limit]
	}
	parts := make([]string, len(shown))
	for i, d := range shown {
		parts[i] = d.Format(previewLayout)
	}
	out := strings.Join(parts, ", ")
	if rest := len(dates) - len(shown); rest > 0 {
		out += fmt.Sprintf(" and %d more", rest)
	}
	return out
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
