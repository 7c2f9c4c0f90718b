package schema

// MissionTable represents the 'missions' join table between scientists and planets
type MissionTable struct {
	Table       string
	ID          string
	Name        string
	ScientistID string
	PlanetID    string

	// Constraint names follow fk_<table>_<column>_<referred_table>.
	FKScientist string
	FKPlanet    string
}

// Mission is the schema definition for missions
var Mission = MissionTable{
	Table:       "missions",
	ID:          "id",
	Name:        "name",
	ScientistID: "scientist_id",
	PlanetID:    "planet_id",
	FKScientist: "fk_missions_scientist_id_scientists",
	FKPlanet:    "fk_missions_planet_id_planets",
}

func (t MissionTable) Columns() []string {
	return []string{t.ID, t.Name, t.ScientistID, t.PlanetID}
}
