package response

import (
	"school-reservations/internal/usecase/commands"
	"school-reservations/internal/usecase/queries"
)

type ReservationListResponse struct {
	Reservations []*queries.ReservationView `json:"reservations"`
	NextCursor   string                     `json:"next_cursor,omitempty"`
}

func FromReservationList(items []*queries.ReservationView, next *queries.Cursor) ReservationListResponse {
	resp := ReservationListResponse{Reservations: items}
	if resp.Reservations == nil {
		resp.Reservations = []*queries.ReservationView{}
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}

type SeriesResponse struct {
	SeriesID     string                     `json:"series_id"`
	Count        int                        `json:"count"`
	Reservations []*queries.ReservationView `json:"reservations"`
}

func FromSeriesResult(r *commands.CreateSeriesResult) SeriesResponse {
	return SeriesResponse{
		SeriesID:     r.SeriesID.String(),
		Count:        len(r.Reservations),
		Reservations: r.Reservations,
	}
}

type CancelSeriesResponse struct {
	SeriesID     string `json:"series_id"`
	UpdatedCount int    `json:"updated_count"`
}

func FromCancelSeriesResult(r *commands.CancelSeriesResult) CancelSeriesResponse {
	return CancelSeriesResponse{
		SeriesID:     r.SeriesID.String(),
		UpdatedCount: r.UpdatedCount,
	}
}
