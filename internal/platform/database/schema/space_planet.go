package schema

// PlanetTable represents the 'planets' table
type PlanetTable struct {
	Table             string
	ID                string
	Name              string
	DistanceFromEarth string
	NearestStar       string
}

// Planet is the schema definition for planets
var Planet = PlanetTable{
	Table:             "planets",
	ID:                "id",
	Name:              "name",
	DistanceFromEarth: "distance_from_earth",
	NearestStar:       "nearest_star",
}

func (t PlanetTable) Columns() []string {
	return []string{t.ID, t.Name, t.DistanceFromEarth, t.NearestStar}
}
