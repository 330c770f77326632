package reservation

import (
	"strings"

	"github.com/google/uuid"
)

const MaxObservationsLength = 500

type Observations struct {
	text string
}

func NewObservations(s string) (Observations, error) {
	t := strings.TrimSpace(s)
	if len(t) > MaxObservationsLength {
		return Observations{}, ErrObservationsTooLong
	}
	return Observations{text: t}, nil
}

func (o Observations) String() string { return o.text }
func (o Observations) IsEmpty() bool  { return o.text == "" }

// withSeriesSuffix appends the marker every occurrence of a series carries.
func (o Observations) withSeriesSuffix(f Frequency) Observations {
	suffix := "Recurring reservation (" + f.String() + ")"
	if o.text == "" {
		return Observations{text: suffix}
	}
	return Observations{text: o.text + " • " + suffix}
}

// Series ties an occurrence to the request that generated it.
type Series struct {
	ID        uuid.UUID
	Frequency Frequency
	EndDate   Date
}
