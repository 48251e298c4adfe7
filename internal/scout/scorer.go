// Package scout scores sunset conditions, plans the trip to a viewing spot
// and renders the daily report. Everything here is pure computation.
package scout

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/sunset-scout/internal/common"
	"github.com/i474232898/sunset-scout/internal/weather"
)

const (
	baseScore = 50
	minScore  = 0
	maxScore  = 100

	// maxOutlookEntries bounds the forecast scan to roughly the next 24h of 3-hour samples.
	maxOutlookEntries = 8

	outlookPromising = "Tomorrow shows promise with better cloud conditions forecast"
	outlookGeneric   = "Check conditions again tomorrow for updated forecast"
)

// Assessment is the scorer's verdict for one evening.
type Assessment struct {
	Score             int            `json:"score"`
	Tier              Tier           `json:"-"`
	Rating            Rating         `json:"rating"`
	Recommendation    Recommendation `json:"recommendation"`
	LocationKey       string         `json:"bestLocation"`
	VibeCheck         string         `json:"vibeCheck"`
	ProTip            string         `json:"proTip"`
	CloudAnalysis     string         `json:"cloudAnalysis"`
	HumidityImpact    string         `json:"humidityImpact"`
	OverallAssessment string         `json:"overallAssessment"`
	TomorrowOutlook   string         `json:"tomorrowOutlook"`
}

// Config is injected into the scorer at construction.
type Config struct {
	Locations Locations
	// Bands defaults to DefaultBands.
	Bands BandTable
}

// Scorer turns weather observations into assessments.
type Scorer struct {
	locations Locations
	bands     BandTable
}

// NewScorer validates cfg and returns a Scorer.
func NewScorer(cfg Config) (*Scorer, error) {
	bands := cfg.Bands
	if bands == nil {
		bands = DefaultBands
	}
	if err := bands.check(); err != nil {
		return nil, fmt.Errorf("bands: %w", err)
	}
	if err := cfg.Locations.check(); err != nil {
		return nil, fmt.Errorf("locations: %w", err)
	}
	return &Scorer{locations: cfg.Locations, bands: bands}, nil
}

// Locations returns the configured viewing spots.
func (s *Scorer) Locations() Locations {
	return s.locations
}

// Score rates the evening. forecast may be nil.
func (s *Scorer) Score(obs *weather.Observation, forecast weather.Forecast, sunset time.Time) (Assessment, error) {
	if obs == nil {
		return Assessment{}, &PreconditionError{Field: "weather observation"}
	}

	cloudDelta, cloudAnalysis := cloudTerm(obs.CloudCover)
	humidityDelta, humidityImpact := humidityTerm(obs.Humidity)
	visibilityDelta, visibilityNote := visibilityTerm(obs.Visibility)
	penalty, penaltyNote := conditionPenalty(obs.Condition, obs.CloudCover)

	score := common.Clamp(baseScore+cloudDelta+humidityDelta+visibilityDelta+penalty, minScore, maxScore)
	tier := TierForScore(score)
	band := s.bands[tier]

	// NewScorer guarantees every role is present.
	dest, _ := s.locations.ByRole(band.Destination)

	parts := []string{cloudAnalysis, humidityImpact}
	if obs.Visibility < weather.DefaultVisibility {
		parts = append(parts, visibilityNote)
	}
	if penaltyNote != "" {
		parts = append(parts, penaltyNote)
	}

	return Assessment{
		Score:             score,
		Tier:              tier,
		Rating:            band.Rating,
		Recommendation:    band.Recommendation,
		LocationKey:       dest.Key,
		VibeCheck:         band.VibeCheck,
		ProTip:            band.ProTip,
		CloudAnalysis:     cloudAnalysis,
		HumidityImpact:    humidityImpact,
		OverallAssessment: strings.Join(parts, ". "),
		TomorrowOutlook:   tomorrowOutlook(forecast, sunset),
	}, nil
}

func idealClouds(c int) bool {
	return c >= 30 && c <= 70
}

func cloudTerm(c int) (int, string) {
	switch {
	case idealClouds(c):
		return 30, fmt.Sprintf("%d%% cloud cover - ideal scattered clouds for color reflection", c)
	case (c >= 20 && c < 30) || (c > 70 && c <= 80):
		return 15, fmt.Sprintf("%d%% cloud cover - some clouds to catch light", c)
	case c < 20:
		return -15, fmt.Sprintf("%d%% cloud cover - mostly clear sky, limited color potential", c)
	default:
		return -25, fmt.Sprintf("%d%% cloud cover - heavy overcast will block colors", c)
	}
}

func humidityTerm(h int) (int, string) {
	switch {
	case h < 60:
		return 15, "Low humidity will produce crisp, vibrant colors"
	case h < 75:
		return 5, "Moderate humidity may add slight haze but colors still good"
	default:
		return -15, "High humidity will create haze and wash out colors"
	}
}

func visibilityTerm(v int) (int, string) {
	switch {
	case v >= 10000:
		return 10, "Excellent visibility"
	case v >= 5000:
		return 0, "Good visibility"
	default:
		return -10, "Poor visibility will obscure sunset"
	}
}

func conditionPenalty(cond weather.Condition, cloud int) (int, string) {
	switch {
	case cond == weather.ConditionRain || cond == weather.ConditionDrizzle || cond == weather.ConditionThunderstorm:
		return -30, "Active precipitation will block sunset views"
	case cond == weather.ConditionMist || cond == weather.ConditionFog || cond == weather.ConditionHaze:
		return -20, "Fog/mist will obscure colors"
	case cond == weather.ConditionClouds && cloud > 90:
		return -15, "Heavy overcast conditions"
	default:
		return 0, ""
	}
}

// tomorrowOutlook looks at the first forecast sample dated after the sunset's
// calendar day; the scan ends there whether or not it is promising.
func tomorrowOutlook(fc weather.Forecast, sunset time.Time) string {
	today := civilDay(sunset)
	for i, e := range fc {
		if i >= maxOutlookEntries {
			break
		}
		if civilDay(e.Time.In(sunset.Location())) > today {
			if idealClouds(e.CloudCover) {
				return outlookPromising
			}
			break
		}
	}
	return outlookGeneric
}

func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
