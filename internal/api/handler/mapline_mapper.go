package handler

import (
	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

const mapLinesPath = "/api/v1/maplines"

// --- Request → Service input ---

// toCreateMapLineInput expects a validated request; every coordinate is set.
func toCreateMapLineInput(req createMapLineRequest, createdBy string) ports.CreateMapLineInput {
	return ports.CreateMapLineInput{
		LatSt1:    *req.LatSt1,
		LonSt1:    *req.LonSt1,
		LatSt2:    *req.LatSt2,
		LonSt2:    *req.LonSt2,
		CreatedBy: createdBy,
	}
}

// --- Domain → Response ---

func toMapLineResponse(l *domain.MapLine) mapLineResponse {
	return mapLineResponse{
		ID:        l.ID,
		Start:     pointResponse{Lat: l.Start.Lat, Lon: l.Start.Lon},
		End:       pointResponse{Lat: l.End.Lat, Lon: l.End.Lon},
		LengthKm:  l.LengthKm,
		CreatedBy: l.CreatedBy,
		CreatedAt: l.CreatedAt,
		Links:     mapLineLinks{Self: mapLinesPath + "/" + l.ID},
	}
}

func toListMapLinesResponse(res *ports.ListMapLinesResult) listMapLinesResponse {
	items := make([]mapLineResponse, 0, len(res.Items))
	for _, l := range res.Items {
		items = append(items, toMapLineResponse(l))
	}
	return listMapLinesResponse{
		Items:      items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	}
}
