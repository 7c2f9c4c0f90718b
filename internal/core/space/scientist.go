package space

import (
	"encoding/json"

	"github.com/taibuivan/stellar/internal/platform/validate"
)

// Scientist is a researcher who flies missions. Serialized as-is it is the
// list projection: no relations.
type Scientist struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FieldOfStudy string `json:"field_of_study"`
}

// Attribute names shared by the entities.
const (
	FieldID                = "id"
	FieldName              = "name"
	FieldFieldOfStudy      = "field_of_study"
	FieldDistanceFromEarth = "distance_from_earth"
	FieldNearestStar       = "nearest_star"
	FieldScientistID       = "scientist_id"
	FieldPlanetID          = "planet_id"
)

// ValidateScientistName rejects an empty name.
func ValidateScientistName(name string) error {
	return validate.Present(FieldName, name, "Name has to be present")
}

// ValidateFieldOfStudy rejects an empty field of study.
func ValidateFieldOfStudy(fieldOfStudy string) error {
	return validate.Present(FieldFieldOfStudy, fieldOfStudy, "field_of_study has to be present")
}

var scientistFields = fieldSet[Scientist]{
	FieldName: func(scientist *Scientist, raw json.RawMessage) error {
		name, err := decodeText(FieldName, raw)
		if err != nil {
			return err
		}
		if err := ValidateScientistName(name); err != nil {
			return err
		}
		scientist.Name = name
		return nil
	},
	FieldFieldOfStudy: func(scientist *Scientist, raw json.RawMessage) error {
		fieldOfStudy, err := decodeText(FieldFieldOfStudy, raw)
		if err != nil {
			return err
		}
		if err := ValidateFieldOfStudy(fieldOfStudy); err != nil {
			return err
		}
		scientist.FieldOfStudy = fieldOfStudy
		return nil
	},
}

// NewScientist builds a scientist from a create payload. Missing required
// attributes fail exactly like empty ones.
func NewScientist(fields Fields) (*Scientist, error) {
	scientist := &Scientist{}
	if err := assign(scientist, withRequired(fields, FieldName, FieldFieldOfStudy), scientistFields); err != nil {
		return nil, err
	}
	return scientist, nil
}

// Apply validates and writes a partial update. On failure the scientist is
// left unchanged.
func (scientist *Scientist) Apply(fields Fields) error {
	return assign(scientist, fields, scientistFields)
}
