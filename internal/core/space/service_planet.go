package space

import (
	"context"
	"log/slog"

	"github.com/taibuivan/stellar/pkg/pointer"
)

func (service *Service) ListPlanets(ctx context.Context) ([]*Planet, error) {
	return service.repo.ListPlanets(ctx)
}

// GetPlanet returns the full projection: the planet with its missions and
// each mission's scientist.
func (service *Service) GetPlanet(ctx context.Context, id int64) (*PlanetDetail, error) {
	planet, err := service.repo.GetPlanet(ctx, id)
	if err != nil {
		return nil, named(err, resourcePlanet)
	}

	missions, err := service.repo.ListPlanetMissions(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := planetFull(planet, missions)
	return &detail, nil
}

func (service *Service) CreatePlanet(ctx context.Context, fields Fields) (*Planet, error) {
	planet, err := NewPlanet(fields)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreatePlanet(ctx, planet); err != nil {
		return nil, err
	}

	service.logger.Info("planet_created",
		slog.Int64("planet_id", planet.ID),
		slog.String("name", pointer.Val(planet.Name)),
	)
	return planet, nil
}

func (service *Service) UpdatePlanet(ctx context.Context, id int64, read FieldsReader) (*Planet, error) {
	planet, err := service.repo.GetPlanet(ctx, id)
	if err != nil {
		return nil, named(err, resourcePlanet)
	}

	fields, err := read()
	if err != nil {
		return nil, err
	}

	if err := planet.Apply(fields); err != nil {
		return nil, err
	}

	if err := service.repo.UpdatePlanet(ctx, planet); err != nil {
		return nil, named(err, resourcePlanet)
	}

	service.logger.Info("planet_updated", slog.Int64("planet_id", id))
	return planet, nil
}

func (service *Service) DeletePlanet(ctx context.Context, id int64) error {
	if err := service.repo.DeletePlanet(ctx, id); err != nil {
		return named(err, resourcePlanet)
	}

	service.logger.Warn("planet_deleted", slog.Int64("planet_id", id))
	return nil
}

func (service *Service) ListPlanetScientists(ctx context.Context, id int64) ([]*Scientist, error) {
	if _, err := service.repo.GetPlanet(ctx, id); err != nil {
		return nil, named(err, resourcePlanet)
	}
	return service.repo.ListPlanetScientists(ctx, id)
}
