package space

import (
	"context"
	"database/sql"

	"github.com/taibuivan/stellar/internal/platform/dberr"
	"github.com/taibuivan/stellar/internal/platform/sqlite"
)

// SQLiteRepository implements [Repository] on the embedded SQLite database.
//
// The handle is limited to one connection, so every helper drains and
// closes its rows before the next statement runs.
type SQLiteRepository struct {
	db  *sql.DB
	sql statements
}

// NewSQLiteRepository constructs a [SQLiteRepository].
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{
		db:  db,
		sql: buildStatements(func(int) string { return "?" }),
	}
}

// Ping implements [Repository].
func (repository *SQLiteRepository) Ping(ctx context.Context) error {
	return sqlite.Ping(ctx, repository.db)
}

// # Scientists

func (repository *SQLiteRepository) ListScientists(ctx context.Context) ([]*Scientist, error) {
	return sqlCollect(ctx, repository.db, "list_scientists", scanScientist, repository.sql.listScientists)
}

func (repository *SQLiteRepository) GetScientist(ctx context.Context, id int64) (*Scientist, error) {
	scientist, err := scanScientist(repository.db.QueryRowContext(ctx, repository.sql.getScientist, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_scientist")
	}
	return scientist, nil
}

func (repository *SQLiteRepository) CreateScientist(ctx context.Context, scientist *Scientist) error {
	err := repository.db.QueryRowContext(ctx, repository.sql.insertScientist, scientist.Name, scientist.FieldOfStudy).Scan(&scientist.ID)
	return dberr.Wrap(err, "create_scientist")
}

func (repository *SQLiteRepository) UpdateScientist(ctx context.Context, scientist *Scientist) error {
	result, err := repository.db.ExecContext(ctx, repository.sql.updateScientist, scientist.Name, scientist.FieldOfStudy, scientist.ID)
	return sqlAffected(result, err, "update_scientist")
}

func (repository *SQLiteRepository) DeleteScientist(ctx context.Context, id int64) error {
	return repository.deleteOwner(ctx, repository.sql.deleteMissionsByScientist, repository.sql.deleteScientist, id, "delete_scientist")
}

func (repository *SQLiteRepository) ListScientistMissions(ctx context.Context, scientistID int64) ([]MissionWithPlanet, error) {
	return sqlCollect(ctx, repository.db, "list_scientist_missions", scanMissionWithPlanet, repository.sql.missionsOfScientist, scientistID)
}

func (repository *SQLiteRepository) ListScientistPlanets(ctx context.Context, scientistID int64) ([]*Planet, error) {
	return sqlCollect(ctx, repository.db, "list_scientist_planets", scanPlanet, repository.sql.planetsOfScientist, scientistID)
}

// # Planets

func (repository *SQLiteRepository) ListPlanets(ctx context.Context) ([]*Planet, error) {
	return sqlCollect(ctx, repository.db, "list_planets", scanPlanet, repository.sql.listPlanets)
}

func (repository *SQLiteRepository) GetPlanet(ctx context.Context, id int64) (*Planet, error) {
	planet, err := scanPlanet(repository.db.QueryRowContext(ctx, repository.sql.getPlanet, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_planet")
	}
	return planet, nil
}

func (repository *SQLiteRepository) CreatePlanet(ctx context.Context, planet *Planet) error {
	err := repository.db.QueryRowContext(ctx, repository.sql.insertPlanet, planet.Name, planet.DistanceFromEarth, planet.NearestStar).Scan(&planet.ID)
	return dberr.Wrap(err, "create_planet")
}

func (repository *SQLiteRepository) UpdatePlanet(ctx context.Context, planet *Planet) error {
	result, err := repository.db.ExecContext(ctx, repository.sql.updatePlanet, planet.Name, planet.DistanceFromEarth, planet.NearestStar, planet.ID)
	return sqlAffected(result, err, "update_planet")
}

func (repository *SQLiteRepository) DeletePlanet(ctx context.Context, id int64) error {
	return repository.deleteOwner(ctx, repository.sql.deleteMissionsByPlanet, repository.sql.deletePlanet, id, "delete_planet")
}

func (repository *SQLiteRepository) ListPlanetMissions(ctx context.Context, planetID int64) ([]MissionWithScientist, error) {
	return sqlCollect(ctx, repository.db, "list_planet_missions", scanMissionWithScientist, repository.sql.missionsOfPlanet, planetID)
}

func (repository *SQLiteRepository) ListPlanetScientists(ctx context.Context, planetID int64) ([]*Scientist, error) {
	return sqlCollect(ctx, repository.db, "list_planet_scientists", scanScientist, repository.sql.scientistsOfPlanet, planetID)
}

// # Missions

func (repository *SQLiteRepository) ListMissions(ctx context.Context) ([]MissionDetail, error) {
	details, err := sqlCollect(ctx, repository.db, "list_missions", scanMissionDetail, repository.sql.listMissions)
	if err != nil {
		return nil, err
	}
	return derefAll(details), nil
}

func (repository *SQLiteRepository) GetMission(ctx context.Context, id int64) (*MissionDetail, error) {
	detail, err := scanMissionDetail(repository.db.QueryRowContext(ctx, repository.sql.getMission, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_mission")
	}
	return detail, nil
}

func (repository *SQLiteRepository) CreateMission(ctx context.Context, mission *Mission) error {
	err := sqlite.InTx(ctx, repository.db, func(tx *sql.Tx) error {
		if err := repository.resolveReferences(ctx, tx, mission); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, repository.sql.insertMission, mission.Name, mission.ScientistID, mission.PlanetID).Scan(&mission.ID)
	})
	return dberr.Wrap(err, "create_mission")
}

func (repository *SQLiteRepository) UpdateMission(ctx context.Context, mission *Mission) error {
	err := sqlite.InTx(ctx, repository.db, func(tx *sql.Tx) error {
		if err := repository.resolveReferences(ctx, tx, mission); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, repository.sql.updateMission, mission.Name, mission.ScientistID, mission.PlanetID, mission.ID)
		return sqlAffected(result, err, "update_mission")
	})
	return dberr.Wrap(err, "update_mission")
}

func (repository *SQLiteRepository) DeleteMission(ctx context.Context, id int64) error {
	result, err := repository.db.ExecContext(ctx, repository.sql.deleteMission, id)
	return sqlAffected(result, err, "delete_mission")
}

// # Helpers

// resolveReferences checks both foreign keys of mission inside tx.
func (repository *SQLiteRepository) resolveReferences(ctx context.Context, tx *sql.Tx, mission *Mission) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, repository.sql.scientistExists, mission.ScientistID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return unresolvedReference(FieldScientistID, "Scientist", mission.ScientistID)
	}

	if err := tx.QueryRowContext(ctx, repository.sql.planetExists, mission.PlanetID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return unresolvedReference(FieldPlanetID, "Planet", mission.PlanetID)
	}
	return nil
}

// deleteOwner removes dependent missions and then the owning row in one
// transaction.
func (repository *SQLiteRepository) deleteOwner(ctx context.Context, deleteMissions, deleteRow string, id int64, action string) error {
	err := sqlite.InTx(ctx, repository.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteMissions, id); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, deleteRow, id)
		return sqlAffected(result, err, action)
	})
	return dberr.Wrap(err, action)
}

// sqlCollect runs a query and scans every row with scan.
func sqlCollect[T any](ctx context.Context, db *sql.DB, action string, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		items = append(items, item)
	}

	return items, dberr.Wrap(rows.Err(), action)
}

// sqlAffected maps "no row matched" to dberr.ErrNotFound.
func sqlAffected(result sql.Result, err error, action string) error {
	if err != nil {
		return dberr.Wrap(err, action)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
