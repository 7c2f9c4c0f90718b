package space

import (
	"fmt"
	"strings"

	"github.com/taibuivan/stellar/internal/platform/apperr"
	"github.com/taibuivan/stellar/internal/platform/database/schema"
	"github.com/taibuivan/stellar/pkg/slice"
)

// # Shared SQL
//
// PostgreSQL and SQLite accept the same statements here; only the bind
// placeholder differs ($1 vs ?). Every placeholder is used once and in
// argument order so both styles bind identically.

// statements holds the SQL text for one dialect.
type statements struct {
	listScientists  string
	getScientist    string
	insertScientist string
	updateScientist string
	deleteScientist string
	scientistExists string

	listPlanets  string
	getPlanet    string
	insertPlanet string
	updatePlanet string
	deletePlanet string
	planetExists string

	listMissions              string
	getMission                string
	insertMission             string
	updateMission             string
	deleteMission             string
	deleteMissionsByScientist string
	deleteMissionsByPlanet    string

	missionsOfScientist string
	missionsOfPlanet    string
	planetsOfScientist  string
	scientistsOfPlanet  string
}

// selectList renders "alias.col, alias.col, ..." for a column set.
func selectList(alias string, columns []string) string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}

// buildStatements renders every statement with the given placeholder style.
func buildStatements(bind func(position int) string) statements {
	s, p, m := schema.Scientist, schema.Planet, schema.Mission

	scientistCols := selectList("s", s.Columns())
	planetCols := selectList("p", p.Columns())
	missionCols := selectList("m", m.Columns())

	missionJoin := fmt.Sprintf(`
		FROM %s m
		JOIN %s s ON s.%s = m.%s
		JOIN %s p ON p.%s = m.%s`,
		m.Table,
		s.Table, s.ID, m.ScientistID,
		p.Table, p.ID, m.PlanetID,
	)

	return statements{
		listScientists: fmt.Sprintf(`SELECT %s FROM %s s ORDER BY s.%s`, scientistCols, s.Table, s.ID),
		getScientist:   fmt.Sprintf(`SELECT %s FROM %s s WHERE s.%s = %s`, scientistCols, s.Table, s.ID, bind(1)),
		insertScientist: fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (%s, %s) RETURNING %s`,
			s.Table, s.Name, s.FieldOfStudy, bind(1), bind(2), s.ID),
		updateScientist: fmt.Sprintf(`UPDATE %s SET %s = %s, %s = %s WHERE %s = %s`,
			s.Table, s.Name, bind(1), s.FieldOfStudy, bind(2), s.ID, bind(3)),
		deleteScientist: fmt.Sprintf(`DELETE FROM %s WHERE %s = %s`, s.Table, s.ID, bind(1)),
		scientistExists: fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = %s)`, s.Table, s.ID, bind(1)),

		listPlanets: fmt.Sprintf(`SELECT %s FROM %s p ORDER BY p.%s`, planetCols, p.Table, p.ID),
		getPlanet:   fmt.Sprintf(`SELECT %s FROM %s p WHERE p.%s = %s`, planetCols, p.Table, p.ID, bind(1)),
		insertPlanet: fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES (%s, %s, %s) RETURNING %s`,
			p.Table, p.Name, p.DistanceFromEarth, p.NearestStar, bind(1), bind(2), bind(3), p.ID),
		updatePlanet: fmt.Sprintf(`UPDATE %s SET %s = %s, %s = %s, %s = %s WHERE %s = %s`,
			p.Table, p.Name, bind(1), p.DistanceFromEarth, bind(2), p.NearestStar, bind(3), p.ID, bind(4)),
		deletePlanet: fmt.Sprintf(`DELETE FROM %s WHERE %s = %s`, p.Table, p.ID, bind(1)),
		planetExists: fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = %s)`, p.Table, p.ID, bind(1)),

		listMissions: fmt.Sprintf(`SELECT %s, %s, %s %s ORDER BY m.%s`,
			missionCols, scientistCols, planetCols, missionJoin, m.ID),
		getMission: fmt.Sprintf(`SELECT %s, %s, %s %s WHERE m.%s = %s`,
			missionCols, scientistCols, planetCols, missionJoin, m.ID, bind(1)),
		insertMission: fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES (%s, %s, %s) RETURNING %s`,
			m.Table, m.Name, m.ScientistID, m.PlanetID, bind(1), bind(2), bind(3), m.ID),
		updateMission: fmt.Sprintf(`UPDATE %s SET %s = %s, %s = %s, %s = %s WHERE %s = %s`,
			m.Table, m.Name, bind(1), m.ScientistID, bind(2), m.PlanetID, bind(3), m.ID, bind(4)),
		deleteMission:             fmt.Sprintf(`DELETE FROM %s WHERE %s = %s`, m.Table, m.ID, bind(1)),
		deleteMissionsByScientist: fmt.Sprintf(`DELETE FROM %s WHERE %s = %s`, m.Table, m.ScientistID, bind(1)),
		deleteMissionsByPlanet:    fmt.Sprintf(`DELETE FROM %s WHERE %s = %s`, m.Table, m.PlanetID, bind(1)),

		missionsOfScientist: fmt.Sprintf(`SELECT %s, %s %s WHERE m.%s = %s ORDER BY m.%s`,
			missionCols, planetCols, missionJoin, m.ScientistID, bind(1), m.ID),
		missionsOfPlanet: fmt.Sprintf(`SELECT %s, %s %s WHERE m.%s = %s ORDER BY m.%s`,
			missionCols, scientistCols, missionJoin, m.PlanetID, bind(1), m.ID),

		// Derived collections: the join through missions, deduplicated.
		planetsOfScientist: fmt.Sprintf(`
			SELECT %s FROM %s p
			WHERE p.%s IN (SELECT %s FROM %s WHERE %s = %s)
			ORDER BY p.%s`,
			planetCols, p.Table, p.ID, m.PlanetID, m.Table, m.ScientistID, bind(1), p.ID),
		scientistsOfPlanet: fmt.Sprintf(`
			SELECT %s FROM %s s
			WHERE s.%s IN (SELECT %s FROM %s WHERE %s = %s)
			ORDER BY s.%s`,
			scientistCols, s.Table, s.ID, m.ScientistID, m.Table, m.PlanetID, bind(1), s.ID),
	}
}

// # Row scanning
//
// pgx.Row, pgx.Rows, *sql.Row and *sql.Rows all satisfy rowScanner.

type rowScanner interface {
	Scan(dest ...any) error
}

func scientistDest(scientist *Scientist) []any {
	return []any{&scientist.ID, &scientist.Name, &scientist.FieldOfStudy}
}

func planetDest(planet *Planet) []any {
	return []any{&planet.ID, &planet.Name, &planet.DistanceFromEarth, &planet.NearestStar}
}

func missionDest(mission *Mission) []any {
	return []any{&mission.ID, &mission.Name, &mission.ScientistID, &mission.PlanetID}
}

func scanScientist(row rowScanner) (*Scientist, error) {
	scientist := &Scientist{}
	return scientist, row.Scan(scientistDest(scientist)...)
}

func scanPlanet(row rowScanner) (*Planet, error) {
	planet := &Planet{}
	return planet, row.Scan(planetDest(planet)...)
}

func scanMissionDetail(row rowScanner) (*MissionDetail, error) {
	detail := &MissionDetail{}
	dest := append(missionDest(&detail.Mission), scientistDest(&detail.Scientist)...)
	dest = append(dest, planetDest(&detail.Planet)...)
	return detail, row.Scan(dest...)
}

func scanMissionWithPlanet(row rowScanner) (MissionWithPlanet, error) {
	var item MissionWithPlanet
	err := row.Scan(append(missionDest(&item.Mission), planetDest(&item.Planet)...)...)
	return item, err
}

func scanMissionWithScientist(row rowScanner) (MissionWithScientist, error) {
	var item MissionWithScientist
	err := row.Scan(append(missionDest(&item.Mission), scientistDest(&item.Scientist)...)...)
	return item, err
}

// unresolvedReference reports a foreign key that names no existing row.
func unresolvedReference(field, entity string, id int64) error {
	return apperr.ConstraintViolation(fmt.Sprintf("%s %d does not reference an existing %s", field, id, entity), nil)
}

// derefAll copies pointed-to values into a value slice.
func derefAll[T any](items []*T) []T {
	return slice.Map(items, func(item *T) T { return *item })
}
