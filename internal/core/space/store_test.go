package space_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stellar/internal/core/space"
	"github.com/taibuivan/stellar/internal/platform/apperr"
	"github.com/taibuivan/stellar/internal/platform/dberr"
	"github.com/taibuivan/stellar/internal/platform/migration"
	"github.com/taibuivan/stellar/internal/platform/postgres"
	"github.com/taibuivan/stellar/internal/platform/sqlite"
	"github.com/taibuivan/stellar/pkg/pointer"
)

// postgresDSNEnv points the repository tests at a disposable PostgreSQL
// database. The tables are truncated before every test.
const postgresDSNEnv = "STELLAR_POSTGRES_DSN"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newRepository opens a private, migrated in-memory database.
func newRepository(t *testing.T) *space.SQLiteRepository {
	t.Helper()
	db, err := sqlite.Open(context.Background(), "sqlite://:memory:", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.RunUpSQLite(db, "", discardLogger()))
	return space.NewSQLiteRepository(db)
}

// newPostgresRepository migrates the database behind STELLAR_POSTGRES_DSN
// and empties it.
func newPostgresRepository(t *testing.T) *space.PostgresRepository {
	t.Helper()
	dsn := os.Getenv(postgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", postgresDSNEnv)
	}

	ctx := context.Background()
	require.NoError(t, migration.RunUp(dsn, "", discardLogger()))

	pool, err := postgres.NewPool(ctx, dsn, discardLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE missions, scientists, planets RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return space.NewPostgresRepository(pool)
}

// eachRepository runs fn against every store implementation.
func eachRepository(t *testing.T, fn func(t *testing.T, repository space.Repository)) {
	t.Helper()
	stores := []struct {
		name string
		open func(t *testing.T) space.Repository
	}{
		{"sqlite", func(t *testing.T) space.Repository { return newRepository(t) }},
		{"postgres", func(t *testing.T) space.Repository { return newPostgresRepository(t) }},
	}

	for _, store := range stores {
		t.Run(store.name, func(t *testing.T) {
			fn(t, store.open(t))
		})
	}
}

// seeded is the fixture written by seed.
type seeded struct {
	rubin, sagan *space.Scientist
	mars, venus  *space.Planet
	missions     []*space.Mission
}

// seed stores two scientists, two planets and three missions:
// rubin to mars, rubin to venus, sagan to mars.
func seed(t *testing.T, repository space.Repository) seeded {
	t.Helper()
	ctx := context.Background()

	data := seeded{
		rubin: &space.Scientist{Name: "Vera Rubin", FieldOfStudy: "Astronomy"},
		sagan: &space.Scientist{Name: "Carl Sagan", FieldOfStudy: "Planetary science"},
		mars:  &space.Planet{Name: pointer.To("Mars"), DistanceFromEarth: pointer.To(int64(225)), NearestStar: pointer.To("Sun")},
		venus: &space.Planet{Name: pointer.To("Venus")},
	}
	require.NoError(t, repository.CreateScientist(ctx, data.rubin))
	require.NoError(t, repository.CreateScientist(ctx, data.sagan))
	require.NoError(t, repository.CreatePlanet(ctx, data.mars))
	require.NoError(t, repository.CreatePlanet(ctx, data.venus))

	for _, mission := range []*space.Mission{
		{Name: "Viking", ScientistID: data.rubin.ID, PlanetID: data.mars.ID},
		{Name: "Magellan", ScientistID: data.rubin.ID, PlanetID: data.venus.ID},
		{Name: "Mariner", ScientistID: data.sagan.ID, PlanetID: data.mars.ID},
	} {
		require.NoError(t, repository.CreateMission(ctx, mission))
		data.missions = append(data.missions, mission)
	}
	return data
}

func TestRepository_ScientistCRUD(t *testing.T) {
	eachRepository(t, func(t *testing.T, repository space.Repository) {
		ctx := context.Background()

		scientist := &space.Scientist{Name: "Vera Rubin", FieldOfStudy: "Astronomy"}
		require.NoError(t, repository.CreateScientist(ctx, scientist))
		assert.NotZero(t, scientist.ID)

		stored, err := repository.GetScientist(ctx, scientist.ID)
		require.NoError(t, err)
		assert.Equal(t, scientist, stored)

		scientist.FieldOfStudy = "Dark matter"
		require.NoError(t, repository.UpdateScientist(ctx, scientist))

		list, err := repository.ListScientists(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Dark matter", list[0].FieldOfStudy)

		require.NoError(t, repository.DeleteScientist(ctx, scientist.ID))
		_, err = repository.GetScientist(ctx, scientist.ID)
		assert.True(t, dberr.IsNotFound(err))
	})
}

func TestRepository_MissingRows(t *testing.T) {
	eachRepository(t, func(t *testing.T, repository space.Repository) {
		ctx := context.Background()

		assert.True(t, dberr.IsNotFound(repository.DeleteScientist(ctx, 42)))
		assert.True(t, dberr.IsNotFound(repository.DeletePlanet(ctx, 42)))
		assert.True(t, dberr.IsNotFound(repository.DeleteMission(ctx, 42)))
		assert.True(t, dberr.IsNotFound(repository.UpdatePlanet(ctx, &space.Planet{ID: 42})))

		_, err := repository.GetMission(ctx, 42)
		assert.True(t, dberr.IsNotFound(err))

		empty, err := repository.ListMissions(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})
}

func TestRepository_PlanetNullsRoundTrip(t *testing.T) {
	eachRepository(t, func(t *testing.T, repository space.Repository) {
		ctx := context.Background()

		planet := &space.Planet{DistanceFromEarth: pointer.To(int64(0))}
		require.NoError(t, repository.CreatePlanet(ctx, planet))

		stored, err := repository.GetPlanet(ctx, planet.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.Name)
		assert.Nil(t, stored.NearestStar)
		require.NotNil(t, stored.DistanceFromEarth)
		assert.Equal(t, int64(0), *stored.DistanceFromEarth)
	})
}

func TestRepository_MissionReferences(t *testing.T) {
	eachRepository(t, func(t *testing.T, repository space.Repository) {
		ctx := context.Background()
		data := seed(t, repository)

		tests := []struct {
			name        string
			mission     *space.Mission
			wantMessage string
		}{
			{
				name:        "unknown_scientist",
				mission:     &space.Mission{Name: "Ghost", ScientistID: 999, PlanetID: data.mars.ID},
				wantMessage: "scientist_id 999 does not reference an existing Scientist",
			},
			{
				name:        "unknown_planet",
				mission:     &space.Mission{Name: "Ghost", ScientistID: data.rubin.ID, PlanetID: 999},
				wantMessage: "planet_id 999 does not reference an existing Planet",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := repository.CreateMission(ctx, tt.mission)
				require.True(t, apperr.HasCode(err, apperr.CodeConstraintViolation), "got %v", err)
				assert.Equal(t, []string{tt.wantMessage}, apperr.As(err).Messages())
			})
		}

		missions, err := repository.ListMissions(ctx)
		require.NoError(t, err)
		assert.Len(t, missions, 3, "failed creates must not persist")

		moved := *data.missions[0]
		moved.PlanetID = 999
		err = repository.UpdateMission(ctx, &moved)
		assert.True(t, apperr.HasCode(err, apperr.CodeConstraintViolation))

		stored, err := repository.GetMission(ctx, moved.ID)
		require.NoError(t, err)
		assert.Equal(t, data.mars.ID, stored.PlanetID)
	})
}

func TestRepository_DeleteCascades(t *testing.T) {
	eachRepository(t, func(t *testing.T, repository space.Repository) {
		ctx := context.Background()
		data := seed(t, repository)

		require.NoError(t, repository.DeleteScientist(ctx, data.rubin.ID))

		missions, err := repository.ListMissions(ctx)
		require.NoError(t, err)
		require.Len(t, missions, 1)
		assert.Equal(t, "Mariner", missions[0].Name)

		venusScientists, err := repository.ListPlanetScientists(ctx, data.venus.ID)
		require.NoError(t, err)
		assert.Empty(t, venusScientists)

		require.NoError(t, repository.DeletePlanet(ctx, data.mars.ID))
		missions, err = repository.ListMissions(ctx)
		require.NoError(t, err)
		assert.Empty(t, missions)
	})
}

func TestRepository_Relations(t *testing.T) {
	eachRepository(t, func(t *testing.T, repository space.Repository) {
		ctx := context.Background()
		data := seed(t, repository)

		rubinMissions, err := repository.ListScientistMissions(ctx, data.rubin.ID)
		require.NoError(t, err)
		require.Len(t, rubinMissions, 2)
		assert.Equal(t, "Viking", rubinMissions[0].Name)
		assert.Equal(t, "Mars", *rubinMissions[0].Planet.Name)
		assert.Equal(t, "Venus", *rubinMissions[1].Planet.Name)

		marsMissions, err := repository.ListPlanetMissions(ctx, data.mars.ID)
		require.NoError(t, err)
		require.Len(t, marsMissions, 2)
		assert.Equal(t, "Vera Rubin", marsMissions[0].Scientist.Name)
		assert.Equal(t, "Carl Sagan", marsMissions[1].Scientist.Name)

		rubinPlanets, err := repository.ListScientistPlanets(ctx, data.rubin.ID)
		require.NoError(t, err)
		assert.Equal(t, []*space.Planet{data.mars, data.venus}, rubinPlanets)

		// Two missions to Mars by different scientists, each listed once.
		marsScientists, err := repository.ListPlanetScientists(ctx, data.mars.ID)
		require.NoError(t, err)
		assert.Equal(t, []*space.Scientist{data.rubin, data.sagan}, marsScientists)

		detail, err := repository.GetMission(ctx, data.missions[2].ID)
		require.NoError(t, err)
		assert.Equal(t, *data.sagan, detail.Scientist)
		assert.Equal(t, *data.mars, detail.Planet)
	})
}

func TestRepository_Ping(t *testing.T) {
	eachRepository(t, func(t *testing.T, repository space.Repository) {
		assert.NoError(t, repository.Ping(context.Background()))
	})
}

func TestRepository_RejectsBlankRequiredText(t *testing.T) {
	eachRepository(t, func(t *testing.T, repository space.Repository) {
		ctx := context.Background()
		data := seed(t, repository)

		tests := []struct {
			name   string
			create func() error
		}{
			{"scientist_name", func() error {
				return repository.CreateScientist(ctx, &space.Scientist{Name: "", FieldOfStudy: "Astronomy"})
			}},
			{"scientist_field_of_study", func() error {
				return repository.CreateScientist(ctx, &space.Scientist{Name: "Edwin Hubble", FieldOfStudy: ""})
			}},
			{"mission_name", func() error {
				return repository.CreateMission(ctx, &space.Mission{Name: "", ScientistID: data.rubin.ID, PlanetID: data.mars.ID})
			}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.create()
				assert.True(t, apperr.HasCode(err, apperr.CodeConstraintViolation), "got %v", err)
			})
		}

		scientists, err := repository.ListScientists(ctx)
		require.NoError(t, err)
		assert.Len(t, scientists, 2)
	})
}
