package weather

import (
	"math"
	"time"
)

// AggregateReadings combines multiple provider readings into a single Observation.
// Numeric fields are averaged; the condition is selected by majority, ties going
// to the condition seen first. The description follows the winning condition.
func AggregateReadings(readings []ProviderReading) Observation {
	if len(readings) == 0 {
		return Observation{
			Time:       time.Now().UTC(),
			CloudCover: DefaultCloudCover,
			Humidity:   DefaultHumidity,
			Visibility: DefaultVisibility,
			Condition:  DefaultCondition,
		}
	}

	var (
		sumCloud      float64
		sumHumidity   float64
		sumVisibility float64
		sumTemp       float64
	)

	conditionCounts := make(map[Condition]int)
	var order []Condition
	descriptions := make(map[Condition]string)
	providers := make([]ProviderContribution, 0, len(readings))
	var newestTS time.Time

	for _, r := range readings {
		sumCloud += float64(r.CloudCover)
		sumHumidity += float64(r.Humidity)
		sumVisibility += float64(r.Visibility)
		sumTemp += r.TemperatureC

		if _, seen := conditionCounts[r.Condition]; !seen {
			order = append(order, r.Condition)
			descriptions[r.Condition] = r.Description
		}
		conditionCounts[r.Condition]++

		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}

		providers = append(providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	n := float64(len(readings))

	bestCond := order[0]
	for _, cond := range order[1:] {
		if conditionCounts[cond] > conditionCounts[bestCond] {
			bestCond = cond
		}
	}

	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	return Observation{
		Time:         newestTS,
		CloudCover:   int(math.Round(sumCloud / n)),
		Humidity:     int(math.Round(sumHumidity / n)),
		Visibility:   int(math.Round(sumVisibility / n)),
		TemperatureC: sumTemp / n,
		Condition:    bestCond,
		Description:  descriptions[bestCond],
		Providers:    providers,
	}
}
