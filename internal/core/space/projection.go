package space

import "github.com/taibuivan/stellar/pkg/slice"

// # Response projections
//
// Each response shape is its own type. Nested entities are always the flat
// list projection ([Scientist], [Planet]), so no shape can reach back into
// the relation it came through and encoding always terminates.

// ScientistDetail is the full projection of a scientist: its missions, each
// with the planet it targets.
type ScientistDetail struct {
	Scientist
	Missions []MissionWithPlanet `json:"missions"`
}

// MissionWithPlanet is a mission seen from its scientist.
type MissionWithPlanet struct {
	Mission
	Planet Planet `json:"planet"`
}

// PlanetDetail is the full projection of a planet: its missions, each with
// the scientist flying it.
type PlanetDetail struct {
	Planet
	Missions []MissionWithScientist `json:"missions"`
}

// MissionWithScientist is a mission seen from its planet.
type MissionWithScientist struct {
	Mission
	Scientist Scientist `json:"scientist"`
}

// MissionDetail is a mission with both ends expanded one level.
type MissionDetail struct {
	Mission
	Scientist Scientist `json:"scientist"`
	Planet    Planet    `json:"planet"`
}

// scientistFull assembles the full scientist projection.
func scientistFull(scientist *Scientist, missions []MissionWithPlanet) ScientistDetail {
	return ScientistDetail{Scientist: *scientist, Missions: slice.NonNil(missions)}
}

// planetFull assembles the full planet projection.
func planetFull(planet *Planet, missions []MissionWithScientist) PlanetDetail {
	return PlanetDetail{Planet: *planet, Missions: slice.NonNil(missions)}
}
