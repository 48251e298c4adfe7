package scout

import "fmt"

// Role tells the scorer which spot to recommend for a tier.
type Role string

const (
	// RoleNear is the low-effort spot recommended on ordinary evenings.
	RoleNear Role = "near"
	// RoleFar is the high-reward spot reserved for spectacular evenings.
	RoleFar Role = "far"
)

// Cafe is a place to wait near a viewing spot.
type Cafe struct {
	Name  string `json:"name"`
	Walk  string `json:"walk"`
	Opens string `json:"opens"`
	Why   string `json:"why"`
}

// Location is a sunset viewing spot reachable from the home station.
type Location struct {
	Key            string   `json:"key" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Role           Role     `json:"role" validate:"required,oneof=near far"`
	Lat            float64  `json:"lat" validate:"gte=-90,lte=90"`
	Lon            float64  `json:"lon" validate:"gte=-180,lte=180"`
	TransitMinutes int      `json:"transitMinutes" validate:"gt=0"`
	Description    string   `json:"description"`
	Route          []string `json:"route"`
	Cafe           *Cafe    `json:"cafe,omitempty"`
}

// Locations is an ordered set of viewing spots.
type Locations []Location

// ByKey returns the location with the given key.
func (ls Locations) ByKey(key string) (Location, bool) {
	for _, l := range ls {
		if l.Key == key {
			return l, true
		}
	}
	return Location{}, false
}

// ByRole returns the first location with the given role.
func (ls Locations) ByRole(r Role) (Location, bool) {
	for _, l := range ls {
		if l.Role == r {
			return l, true
		}
	}
	return Location{}, false
}

// check requires unique keys and exactly one spot per role.
func (ls Locations) check() error {
	seen := make(map[string]bool, len(ls))
	roles := make(map[Role]int, 2)
	for _, l := range ls {
		if l.Key == "" {
			return fmt.Errorf("location %q has no key", l.Name)
		}
		if seen[l.Key] {
			return fmt.Errorf("duplicate location key %q", l.Key)
		}
		seen[l.Key] = true
		if l.TransitMinutes <= 0 {
			return fmt.Errorf("location %q: transit minutes must be positive", l.Key)
		}
		roles[l.Role]++
	}
	for _, r := range []Role{RoleNear, RoleFar} {
		if roles[r] != 1 {
			return fmt.Errorf("need exactly one %s location, have %d", r, roles[r])
		}
	}
	return nil
}
