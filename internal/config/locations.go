package config

import "github.com/i474232898/sunset-scout/internal/scout"

// DefaultLocations are the two Taipei viewing spots, reached from the
// Technology Building MRT station.
func DefaultLocations() scout.Locations {
	return scout.Locations{
		{
			Key:            "dadaocheng",
			Name:           "Dadaocheng Wharf",
			Role:           scout.RoleNear,
			Lat:            25.0644,
			Lon:            121.5089,
			TransitMinutes: 25,
			Description:    "Riverside view with city skyline",
			Route: []string{
				"Brown Line to Zhongxiao Xinsheng",
				"Transfer to Orange Line",
				"Exit at Daqiaotou Station",
				"10 minute walk to wharf",
			},
			Cafe: &scout.Cafe{
				Name:  "No Worries Cafe",
				Walk:  "2 min walk from wharf",
				Opens: "4:00 PM",
				Why:   "Creative cocktails, right at sunset spot, opens perfectly timed",
			},
		},
		{
			Key:            "maokong",
			Name:           "Maokong",
			Role:           scout.RoleFar,
			Lat:            24.9683,
			Lon:            121.5879,
			TransitMinutes: 50,
			Description:    "Mountain tea area with panoramic views",
			Route: []string{
				"Brown Line (or transfer to Red Line at Technology Building)",
				"Red Line to Taipei Zoo Station",
				"Maokong Gondola to summit",
				"Enjoy tea houses with view",
			},
			Cafe: &scout.Cafe{
				Name:  "Maokong CAFE Alley",
				Walk:  "5 min from gondola station",
				Opens: "11:00 AM",
				Why:   "Tea ice cream, reasonably priced, accepts cards",
			},
		},
	}
}
