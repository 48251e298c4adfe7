package scout

import "time"

const (
	// GoldenHourLead is how long before sunset golden hour starts.
	GoldenHourLead = 30 * time.Minute
	// ArrivalBuffer is the slack between arriving and golden hour.
	ArrivalBuffer = 5 * time.Minute
)

// TransitPlan is when to leave home to reach a spot before golden hour.
type TransitPlan struct {
	LocationKey     string    `json:"locationKey"`
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	Sunset          time.Time `json:"sunset"`
	GoldenHourStart time.Time `json:"goldenHourStart"`
	Arrival         time.Time `json:"arrival"`
	Departure       time.Time `json:"departure"`
	TransitMinutes  int       `json:"transitMinutes"`
}

// PlanTransit walks back from sunset: golden hour, the arrival buffer, then the trip itself.
func PlanTransit(sunset time.Time, loc Location) TransitPlan {
	golden := sunset.Add(-GoldenHourLead)
	arrival := golden.Add(-ArrivalBuffer)
	departure := arrival.Add(-time.Duration(loc.TransitMinutes) * time.Minute)

	return TransitPlan{
		LocationKey:     loc.Key,
		Location:        loc.Name,
		Description:     loc.Description,
		Sunset:          sunset,
		GoldenHourStart: golden,
		Arrival:         arrival,
		Departure:       departure,
		TransitMinutes:  loc.TransitMinutes,
	}
}
