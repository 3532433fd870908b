package geo

import (
	"math"
	"sort"

	"craftedbyher/models"
)

const earthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance is the haversine distance between a and b in kilometres.
func Distance(a, b models.Coordinates) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

type RankedHub struct {
	models.Hub
	DistanceKm *float64 `json:"distance"`
	IsNearest  bool     `json:"isNearest"`
}

// RankByDistance orders hubs by distance from origin, rounded to 0.1 km.
// Hubs without coordinates sort last with a nil distance.
func RankByDistance(origin models.Coordinates, hubs []models.Hub) []RankedHub {
	ranked := make([]RankedHub, 0, len(hubs))
	nearest := -1
	best := math.Inf(1)
	for _, h := range hubs {
		r := RankedHub{Hub: h}
		if c := h.Location.Coordinates; c != nil && (c.Latitude != 0 || c.Longitude != 0) {
			d := Distance(origin, *c)
			rounded := math.Round(d*10) / 10
			r.DistanceKm = &rounded
			if d < best {
				best = d
				nearest = len(ranked)
			}
		}
		ranked = append(ranked, r)
	}
	if nearest >= 0 {
		ranked[nearest].IsNearest = true
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].DistanceKm, ranked[j].DistanceKm
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a < *b
	})
	return ranked
}
