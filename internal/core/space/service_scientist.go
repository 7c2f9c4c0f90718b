package space

import (
	"context"
	"log/slog"
)

func (service *Service) ListScientists(ctx context.Context) ([]*Scientist, error) {
	return service.repo.ListScientists(ctx)
}

// GetScientist returns the full projection: the scientist with its missions
// and each mission's planet.
func (service *Service) GetScientist(ctx context.Context, id int64) (*ScientistDetail, error) {
	scientist, err := service.repo.GetScientist(ctx, id)
	if err != nil {
		return nil, named(err, resourceScientist)
	}

	missions, err := service.repo.ListScientistMissions(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := scientistFull(scientist, missions)
	return &detail, nil
}

func (service *Service) CreateScientist(ctx context.Context, fields Fields) (*Scientist, error) {
	scientist, err := NewScientist(fields)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateScientist(ctx, scientist); err != nil {
		return nil, err
	}

	service.logger.Info("scientist_created", slog.Int64("scientist_id", scientist.ID))
	return scientist, nil
}

// UpdateScientist applies a partial update. Nothing is written when any
// attribute is rejected.
func (service *Service) UpdateScientist(ctx context.Context, id int64, read FieldsReader) (*Scientist, error) {
	scientist, err := service.repo.GetScientist(ctx, id)
	if err != nil {
		return nil, named(err, resourceScientist)
	}

	fields, err := read()
	if err != nil {
		return nil, err
	}

	if err := scientist.Apply(fields); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateScientist(ctx, scientist); err != nil {
		return nil, named(err, resourceScientist)
	}

	service.logger.Info("scientist_updated", slog.Int64("scientist_id", id))
	return scientist, nil
}

func (service *Service) DeleteScientist(ctx context.Context, id int64) error {
	if err := service.repo.DeleteScientist(ctx, id); err != nil {
		return named(err, resourceScientist)
	}

	service.logger.Warn("scientist_deleted", slog.Int64("scientist_id", id))
	return nil
}

// ListScientistPlanets returns the distinct planets the scientist has
// missions to.
func (service *Service) ListScientistPlanets(ctx context.Context, id int64) ([]*Planet, error) {
	if _, err := service.repo.GetScientist(ctx, id); err != nil {
		return nil, named(err, resourceScientist)
	}
	return service.repo.ListScientistPlanets(ctx, id)
}
