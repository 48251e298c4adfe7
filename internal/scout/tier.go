package scout

import "fmt"

// Tier is one of the four score bands.
type Tier int

const (
	TierPoor Tier = iota
	TierFair
	TierGood
	TierSpectacular
)

// Tiers lists every tier from best to worst.
var Tiers = []Tier{TierSpectacular, TierGood, TierFair, TierPoor}

// Lower bounds of each band on the clamped score.
const (
	spectacularMin = 80
	goodMin        = 60
	fairMin        = 40
)

// TierForScore maps a clamped score to its band.
func TierForScore(score int) Tier {
	switch {
	case score >= spectacularMin:
		return TierSpectacular
	case score >= goodMin:
		return TierGood
	case score >= fairMin:
		return TierFair
	default:
		return TierPoor
	}
}

func (t Tier) String() string {
	switch t {
	case TierSpectacular:
		return "spectacular"
	case TierGood:
		return "good"
	case TierFair:
		return "fair"
	case TierPoor:
		return "poor"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Rating is the headline label of an assessment.
type Rating string

const (
	RatingSpectacular Rating = "SPECTACULAR"
	RatingGood        Rating = "GOOD"
	RatingFair        Rating = "FAIR"
	RatingPoor        Rating = "POOR"
)

// Recommendation says whether the trip is worth it.
type Recommendation string

const (
	RecommendGo    Recommendation = "GO"
	RecommendMaybe Recommendation = "MAYBE"
	RecommendSkip  Recommendation = "SKIP"
)

// Band is everything a tier decides: labels, destination and narrative text.
type Band struct {
	Rating         Rating
	Recommendation Recommendation
	Destination    Role
	VibeCheck      string
	ProTip         string
}

// BandTable maps every tier to its band.
type BandTable map[Tier]Band

// DefaultBands is the stock narrative for each tier.
var DefaultBands = BandTable{
	TierSpectacular: {
		Rating:         RatingSpectacular,
		Recommendation: RecommendGo,
		Destination:    RoleFar,
		VibeCheck:      "Expect dramatic oranges, pinks, and purples with excellent cloud positioning for maximum color",
		ProTip:         "Bring your best lens! Use graduated ND filter and shoot in RAW for maximum dynamic range",
	},
	TierGood: {
		Rating:         RatingGood,
		Recommendation: RecommendGo,
		Destination:    RoleNear,
		VibeCheck:      "Good sunset potential with warm colors and decent cloud patterns",
		ProTip:         "Good opportunity for sunset photography. Arrive early to scout compositions",
	},
	TierFair: {
		Rating:         RatingFair,
		Recommendation: RecommendMaybe,
		Destination:    RoleNear,
		VibeCheck:      "Might get some color, but conditions aren't ideal - manage expectations",
		ProTip:         "If you go, focus on silhouettes rather than color-heavy shots",
	},
	TierPoor: {
		Rating:         RatingPoor,
		Recommendation: RecommendSkip,
		Destination:    RoleNear,
		VibeCheck:      "Poor conditions - expect muted colors or blocked sunset",
		ProTip:         "Skip tonight and save your energy for a better sunset. Check back tomorrow!",
	},
}

// check requires every tier to have a complete band.
func (bt BandTable) check() error {
	for _, t := range Tiers {
		b, ok := bt[t]
		if !ok {
			return fmt.Errorf("no band for %s tier", t)
		}
		if b.Rating == "" || b.Recommendation == "" || b.Destination == "" {
			return fmt.Errorf("%s tier: rating, recommendation and destination are required", t)
		}
		if b.VibeCheck == "" || b.ProTip == "" {
			return fmt.Errorf("%s tier: vibe check and pro tip are required", t)
		}
	}
	return nil
}
