package scout

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/sunset-scout/internal/weather"
)

const (
	clockLayout = "03:04 PM"
	dateLayout  = "Monday, January 02, 2006"
	rule        = "───────────────────────────────────────────────────────────────"
)

// Report is the outcome of one scouting run.
type Report struct {
	RunID       string              `json:"runId"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Observation weather.Observation `json:"observation"`
	Sunset      time.Time           `json:"sunset"`
	Assessment  Assessment          `json:"assessment"`
	Transit     TransitPlan         `json:"transit"`
	Text        string              `json:"text"`
}

// ReportInput is everything the formatter renders.
type ReportInput struct {
	Region      string
	HomeStation string
	Assessment  Assessment
	Observation weather.Observation
	Sunset      time.Time
	Transit     TransitPlan
	Location    Location
}

func ratingMarker(score int) string {
	switch {
	case score >= spectacularMin:
		return "✅"
	case score >= goodMin:
		return "⚠️"
	default:
		return "❌"
	}
}

func titleCase(s string) string {
	if s == "" {
		return "N/A"
	}
	return cases.Title(language.English).String(s)
}

// FormatReport renders the fixed-layout text report.
func FormatReport(in ReportInput) string {
	a := in.Assessment
	obs := in.Observation
	var b strings.Builder

	fmt.Fprintf(&b, "\n╔═══════════════════════════════════════════════════════════════╗\n")
	fmt.Fprintf(&b, "║           🌅 SUNSET & TRANSIT SCOUT - %s\n", strings.ToUpper(in.Region))
	fmt.Fprintf(&b, "║           %s\n", in.Sunset.Format(dateLayout))
	fmt.Fprintf(&b, "╚═══════════════════════════════════════════════════════════════╝\n\n")

	fmt.Fprintf(&b, "📊 SUNSET QUALITY SCORE: %d/100\n", a.Score)
	fmt.Fprintf(&b, "Rating: %s %s\n\n", a.Rating, ratingMarker(a.Score))
	fmt.Fprintf(&b, "Golden Hour: %s - %s\n", in.Transit.GoldenHourStart.Format(clockLayout), in.Sunset.Format(clockLayout))
	fmt.Fprintf(&b, "Sunset Time: %s\n\n", in.Sunset.Format(clockLayout))
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "🌤️  ATMOSPHERIC CONDITIONS\n\n")
	fmt.Fprintf(&b, "Cloud Cover: %d%%\n", obs.CloudCover)
	fmt.Fprintf(&b, "Humidity: %d%%\n", obs.Humidity)
	fmt.Fprintf(&b, "Visibility: %dm\n", obs.Visibility)
	fmt.Fprintf(&b, "Weather: %s\n", titleCase(obs.Description))
	fmt.Fprintf(&b, "Temperature: %.1f°C\n\n", obs.TemperatureC)
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "🔍 VIBE CHECK\n%s\n\n", a.VibeCheck)
	fmt.Fprintf(&b, "ANALYSIS:\n")
	fmt.Fprintf(&b, "• Cloud Situation: %s\n", a.CloudAnalysis)
	fmt.Fprintf(&b, "• Humidity Impact: %s\n", a.HumidityImpact)
	fmt.Fprintf(&b, "• Overall: %s\n\n", a.OverallAssessment)
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "📸 PRO-TIP\n%s\n\n", a.ProTip)
	fmt.Fprintf(&b, "%s\n\n", rule)

	fmt.Fprintf(&b, "🚇 TRANSIT PLAN\n")
	if a.Recommendation == RecommendGo {
		writeGoPlan(&b, in)
	} else {
		fmt.Fprintf(&b, "\n⏸️  RECOMMENDATION: %s\n", a.Recommendation)
		fmt.Fprintf(&b, "Today's conditions don't warrant the trip. Save your time for a better sunset!\n\n")
		fmt.Fprintf(&b, "%s\n", a.TomorrowOutlook)
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	return b.String()
}

func writeGoPlan(b *strings.Builder, in ReportInput) {
	t := in.Transit
	fmt.Fprintf(b, "\n✅ RECOMMENDED LOCATION: %s\n", t.Location)
	fmt.Fprintf(b, "%s\n\n", t.Description)
	fmt.Fprintf(b, "Departure from %s: %s\n", in.HomeStation, t.Departure.Format(clockLayout))
	fmt.Fprintf(b, "Estimated Arrival: %s\n", t.Arrival.Format(clockLayout))
	fmt.Fprintf(b, "Transit Duration: %d minutes\n", t.TransitMinutes)

	if len(in.Location.Route) > 0 {
		fmt.Fprintf(b, "\nROUTE:\n")
		for _, step := range in.Location.Route {
			fmt.Fprintf(b, "  → %s\n", step)
		}
	}

	if c := in.Location.Cafe; c != nil {
		fmt.Fprintf(b, "\n☕ CAFE RECOMMENDATION: %s\n", c.Name)
		fmt.Fprintf(b, "%s • Opens %s\n", c.Walk, c.Opens)
		fmt.Fprintf(b, "%s\n", c.Why)
	}
}
