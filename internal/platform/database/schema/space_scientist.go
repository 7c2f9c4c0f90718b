package schema

// ScientistTable represents the 'scientists' table
type ScientistTable struct {
	Table        string
	ID           string
	Name         string
	FieldOfStudy string
}

// Scientist is the schema definition for scientists
var Scientist = ScientistTable{
	Table:        "scientists",
	ID:           "id",
	Name:         "name",
	FieldOfStudy: "field_of_study",
}

func (t ScientistTable) Columns() []string {
	return []string{t.ID, t.Name, t.FieldOfStudy}
}
