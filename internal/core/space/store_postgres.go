/*
PostgreSQL implementation of the [Repository].

Relationships are never stored as back-pointers: the missions table holds
both foreign keys and every relation (owned or derived) is a query through
it. Multi-statement writes run in one ACID transaction:

  - Delete of a scientist or planet removes its missions first.
  - Mission create/update resolves both references before writing.
*/

package space

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/stellar/internal/platform/dberr"
	"github.com/taibuivan/stellar/internal/platform/postgres"
)

// PostgresRepository implements [Repository] on a pgx pool.
type PostgresRepository struct {
	db  *pgxpool.Pool
	sql statements
}

// NewPostgresRepository constructs a [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sql: buildStatements(func(position int) string {
			return "$" + strconv.Itoa(position)
		}),
	}
}

// Ping implements [Repository].
func (repository *PostgresRepository) Ping(ctx context.Context) error {
	return postgres.Ping(ctx, repository.db)
}

// # Scientists

func (repository *PostgresRepository) ListScientists(ctx context.Context) ([]*Scientist, error) {
	return pgCollect(ctx, repository.db, "list_scientists", scanScientist, repository.sql.listScientists)
}

func (repository *PostgresRepository) GetScientist(ctx context.Context, id int64) (*Scientist, error) {
	scientist, err := scanScientist(repository.db.QueryRow(ctx, repository.sql.getScientist, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_scientist")
	}
	return scientist, nil
}

func (repository *PostgresRepository) CreateScientist(ctx context.Context, scientist *Scientist) error {
	err := repository.db.QueryRow(ctx, repository.sql.insertScientist, scientist.Name, scientist.FieldOfStudy).Scan(&scientist.ID)
	return dberr.Wrap(err, "create_scientist")
}

func (repository *PostgresRepository) UpdateScientist(ctx context.Context, scientist *Scientist) error {
	tag, err := repository.db.Exec(ctx, repository.sql.updateScientist, scientist.Name, scientist.FieldOfStudy, scientist.ID)
	return pgAffected(tag.RowsAffected(), err, "update_scientist")
}

func (repository *PostgresRepository) DeleteScientist(ctx context.Context, id int64) error {
	return repository.deleteOwner(ctx, repository.sql.deleteMissionsByScientist, repository.sql.deleteScientist, id, "delete_scientist")
}

func (repository *PostgresRepository) ListScientistMissions(ctx context.Context, scientistID int64) ([]MissionWithPlanet, error) {
	return pgCollect(ctx, repository.db, "list_scientist_missions", scanMissionWithPlanet, repository.sql.missionsOfScientist, scientistID)
}

func (repository *PostgresRepository) ListScientistPlanets(ctx context.Context, scientistID int64) ([]*Planet, error) {
	return pgCollect(ctx, repository.db, "list_scientist_planets", scanPlanet, repository.sql.planetsOfScientist, scientistID)
}

// # Planets

func (repository *PostgresRepository) ListPlanets(ctx context.Context) ([]*Planet, error) {
	return pgCollect(ctx, repository.db, "list_planets", scanPlanet, repository.sql.listPlanets)
}

func (repository *PostgresRepository) GetPlanet(ctx context.Context, id int64) (*Planet, error) {
	planet, err := scanPlanet(repository.db.QueryRow(ctx, repository.sql.getPlanet, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_planet")
	}
	return planet, nil
}

func (repository *PostgresRepository) CreatePlanet(ctx context.Context, planet *Planet) error {
	err := repository.db.QueryRow(ctx, repository.sql.insertPlanet, planet.Name, planet.DistanceFromEarth, planet.NearestStar).Scan(&planet.ID)
	return dberr.Wrap(err, "create_planet")
}

func (repository *PostgresRepository) UpdatePlanet(ctx context.Context, planet *Planet) error {
	tag, err := repository.db.Exec(ctx, repository.sql.updatePlanet, planet.Name, planet.DistanceFromEarth, planet.NearestStar, planet.ID)
	return pgAffected(tag.RowsAffected(), err, "update_planet")
}

func (repository *PostgresRepository) DeletePlanet(ctx context.Context, id int64) error {
	return repository.deleteOwner(ctx, repository.sql.deleteMissionsByPlanet, repository.sql.deletePlanet, id, "delete_planet")
}

func (repository *PostgresRepository) ListPlanetMissions(ctx context.Context, planetID int64) ([]MissionWithScientist, error) {
	return pgCollect(ctx, repository.db, "list_planet_missions", scanMissionWithScientist, repository.sql.missionsOfPlanet, planetID)
}

func (repository *PostgresRepository) ListPlanetScientists(ctx context.Context, planetID int64) ([]*Scientist, error) {
	return pgCollect(ctx, repository.db, "list_planet_scientists", scanScientist, repository.sql.scientistsOfPlanet, planetID)
}

// # Missions

func (repository *PostgresRepository) ListMissions(ctx context.Context) ([]MissionDetail, error) {
	details, err := pgCollect(ctx, repository.db, "list_missions", scanMissionDetail, repository.sql.listMissions)
	if err != nil {
		return nil, err
	}
	return derefAll(details), nil
}

func (repository *PostgresRepository) GetMission(ctx context.Context, id int64) (*MissionDetail, error) {
	detail, err := scanMissionDetail(repository.db.QueryRow(ctx, repository.sql.getMission, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_mission")
	}
	return detail, nil
}

func (repository *PostgresRepository) CreateMission(ctx context.Context, mission *Mission) error {
	err := postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := repository.resolveReferences(ctx, tx, mission); err != nil {
			return err
		}
		return tx.QueryRow(ctx, repository.sql.insertMission, mission.Name, mission.ScientistID, mission.PlanetID).Scan(&mission.ID)
	})
	return dberr.Wrap(err, "create_mission")
}

func (repository *PostgresRepository) UpdateMission(ctx context.Context, mission *Mission) error {
	err := postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		if err := repository.resolveReferences(ctx, tx, mission); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, repository.sql.updateMission, mission.Name, mission.ScientistID, mission.PlanetID, mission.ID)
		return pgAffected(tag.RowsAffected(), err, "update_mission")
	})
	return dberr.Wrap(err, "update_mission")
}

func (repository *PostgresRepository) DeleteMission(ctx context.Context, id int64) error {
	tag, err := repository.db.Exec(ctx, repository.sql.deleteMission, id)
	return pgAffected(tag.RowsAffected(), err, "delete_mission")
}

// # Helpers

// resolveReferences checks both foreign keys of mission inside tx.
func (repository *PostgresRepository) resolveReferences(ctx context.Context, tx pgx.Tx, mission *Mission) error {
	var exists bool
	if err := tx.QueryRow(ctx, repository.sql.scientistExists, mission.ScientistID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return unresolvedReference(FieldScientistID, "Scientist", mission.ScientistID)
	}

	if err := tx.QueryRow(ctx, repository.sql.planetExists, mission.PlanetID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return unresolvedReference(FieldPlanetID, "Planet", mission.PlanetID)
	}
	return nil
}

// deleteOwner removes dependent missions and then the owning row in one
// transaction.
func (repository *PostgresRepository) deleteOwner(ctx context.Context, deleteMissions, deleteRow string, id int64, action string) error {
	err := postgres.InTx(ctx, repository.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteMissions, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, deleteRow, id)
		return pgAffected(tag.RowsAffected(), err, action)
	})
	return dberr.Wrap(err, action)
}

// pgQuerier is satisfied by *pgxpool.Pool and pgx.Tx.
type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// pgCollect runs a query and scans every row with scan.
func pgCollect[T any](ctx context.Context, db pgQuerier, action string, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
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

// pgAffected maps "no row matched" to dberr.ErrNotFound.
func pgAffected(affected int64, err error, action string) error {
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
