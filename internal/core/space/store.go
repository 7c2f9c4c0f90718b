package space

import "context"

// Repository is the persistence contract for the three entities. Lists are
// returned in primary-key order.
//
// Implementations report a missing row with dberr.ErrNotFound and integrity
// failures as apperr constraint violations.
type Repository interface {
	ScientistRepository
	PlanetRepository
	MissionRepository

	// Ping reports whether the underlying database is reachable.
	Ping(ctx context.Context) error
}

// ScientistRepository stores scientists and answers their relation queries.
type ScientistRepository interface {
	ListScientists(ctx context.Context) ([]*Scientist, error)
	GetScientist(ctx context.Context, id int64) (*Scientist, error)
	CreateScientist(ctx context.Context, scientist *Scientist) error
	UpdateScientist(ctx context.Context, scientist *Scientist) error
	// DeleteScientist removes the scientist and all of its missions.
	DeleteScientist(ctx context.Context, id int64) error

	ListScientistMissions(ctx context.Context, scientistID int64) ([]MissionWithPlanet, error)
	// ListScientistPlanets is the derived collection: distinct planets
	// reachable through the scientist's missions.
	ListScientistPlanets(ctx context.Context, scientistID int64) ([]*Planet, error)
}

// PlanetRepository stores planets and answers their relation queries.
type PlanetRepository interface {
	ListPlanets(ctx context.Context) ([]*Planet, error)
	GetPlanet(ctx context.Context, id int64) (*Planet, error)
	CreatePlanet(ctx context.Context, planet *Planet) error
	UpdatePlanet(ctx context.Context, planet *Planet) error
	// DeletePlanet removes the planet and all of its missions.
	DeletePlanet(ctx context.Context, id int64) error

	ListPlanetMissions(ctx context.Context, planetID int64) ([]MissionWithScientist, error)
	// ListPlanetScientists is the derived collection: distinct scientists
	// reachable through the planet's missions.
	ListPlanetScientists(ctx context.Context, planetID int64) ([]*Scientist, error)
}

// MissionRepository stores missions. Create and update resolve both foreign
// keys inside the same transaction as the write.
type MissionRepository interface {
	ListMissions(ctx context.Context) ([]MissionDetail, error)
	GetMission(ctx context.Context, id int64) (*MissionDetail, error)
	CreateMission(ctx context.Context, mission *Mission) error
	UpdateMission(ctx context.Context, mission *Mission) error
	DeleteMission(ctx context.Context, id int64) error
}
