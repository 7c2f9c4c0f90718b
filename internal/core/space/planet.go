package space

import "encoding/json"

// Planet is a mission destination. Every attribute except the id is
// optional and serialized as null when unset.
type Planet struct {
	ID                int64   `json:"id"`
	Name              *string `json:"name"`
	DistanceFromEarth *int64  `json:"distance_from_earth"`
	NearestStar       *string `json:"nearest_star"`
}

var planetFields = fieldSet[Planet]{
	FieldName: func(planet *Planet, raw json.RawMessage) error {
		name, err := decodeOptionalText(FieldName, raw)
		if err != nil {
			return err
		}
		planet.Name = name
		return nil
	},
	FieldDistanceFromEarth: func(planet *Planet, raw json.RawMessage) error {
		distance, err := decodeOptionalInt(FieldDistanceFromEarth, raw)
		if err != nil {
			return err
		}
		planet.DistanceFromEarth = distance
		return nil
	},
	FieldNearestStar: func(planet *Planet, raw json.RawMessage) error {
		star, err := decodeOptionalText(FieldNearestStar, raw)
		if err != nil {
			return err
		}
		planet.NearestStar = star
		return nil
	},
}

// NewPlanet builds a planet from a create payload.
func NewPlanet(fields Fields) (*Planet, error) {
	planet := &Planet{}
	if err := assign(planet, fields, planetFields); err != nil {
		return nil, err
	}
	return planet, nil
}

// Apply validates and writes a partial update. On failure the planet is
// left unchanged.
func (planet *Planet) Apply(fields Fields) error {
	return assign(planet, fields, planetFields)
}
