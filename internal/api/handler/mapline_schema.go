package handler

import "time"

// createMapLineRequest carries both station positions. Pointers distinguish a
// missing coordinate from a legal zero.
type createMapLineRequest struct {
	LatSt1 *float64 `json:"latSt1" validate:"required,latitude"`
	LonSt1 *float64 `json:"lonSt1" validate:"required,longitude"`
	LatSt2 *float64 `json:"latSt2" validate:"required,latitude"`
	LonSt2 *float64 `json:"lonSt2" validate:"required,longitude"`
}

type pointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type mapLineLinks struct {
	Self string `json:"self"`
}

type mapLineResponse struct {
	ID        string        `json:"id"`
	Start     pointResponse `json:"start"`
	End       pointResponse `json:"end"`
	LengthKm  float64       `json:"lengthKm"`
	CreatedBy string        `json:"createdBy"`
	CreatedAt time.Time     `json:"createdAt"`
	Links     mapLineLinks  `json:"_links"`
}

type listMapLinesResponse struct {
	Items      []mapLineResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}
