package space

import (
	"encoding/json"

	"github.com/taibuivan/stellar/internal/platform/validate"
)

// Mission links one scientist to one planet. It is a join entity with its
// own identity and name, not a bare link row.
type Mission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ScientistID int64  `json:"scientist_id"`
	PlanetID    int64  `json:"planet_id"`
}

// ValidateMissionName rejects an empty name.
func ValidateMissionName(name string) error {
	return validate.Present(FieldName, name, "Name has to be present")
}

// ValidateScientistID rejects a missing scientist reference.
func ValidateScientistID(id int64) error {
	return validate.PresentID(FieldScientistID, id, "scientist_id has to be present")
}

// ValidatePlanetID rejects a missing planet reference.
func ValidatePlanetID(id int64) error {
	return validate.PresentID(FieldPlanetID, id, "planet_id has to be present")
}

var missionFields = fieldSet[Mission]{
	FieldName: func(mission *Mission, raw json.RawMessage) error {
		name, err := decodeText(FieldName, raw)
		if err != nil {
			return err
		}
		if err := ValidateMissionName(name); err != nil {
			return err
		}
		mission.Name = name
		return nil
	},
	FieldScientistID: func(mission *Mission, raw json.RawMessage) error {
		id, err := decodeID(FieldScientistID, raw)
		if err != nil {
			return err
		}
		if err := ValidateScientistID(id); err != nil {
			return err
		}
		mission.ScientistID = id
		return nil
	},
	FieldPlanetID: func(mission *Mission, raw json.RawMessage) error {
		id, err := decodeID(FieldPlanetID, raw)
		if err != nil {
			return err
		}
		if err := ValidatePlanetID(id); err != nil {
			return err
		}
		mission.PlanetID = id
		return nil
	},
}

// NewMission builds a mission from a create payload. Foreign keys are only
// checked for presence here; the store resolves them.
func NewMission(fields Fields) (*Mission, error) {
	mission := &Mission{}
	if err := assign(mission, withRequired(fields, FieldName, FieldScientistID, FieldPlanetID), missionFields); err != nil {
		return nil, err
	}
	return mission, nil
}

// Apply validates and writes a partial update. On failure the mission is
// left unchanged.
func (mission *Mission) Apply(fields Fields) error {
	return assign(mission, fields, missionFields)
}
