package space

import (
	"context"
	"log/slog"
)

func (service *Service) ListMissions(ctx context.Context) ([]MissionDetail, error) {
	return service.repo.ListMissions(ctx)
}

func (service *Service) GetMission(ctx context.Context, id int64) (*MissionDetail, error) {
	detail, err := service.repo.GetMission(ctx, id)
	if err != nil {
		return nil, named(err, resourceMission)
	}
	return detail, nil
}

// CreateMission validates the payload, lets the store resolve both
// references and returns the stored mission with its ends expanded.
func (service *Service) CreateMission(ctx context.Context, fields Fields) (*MissionDetail, error) {
	mission, err := NewMission(fields)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateMission(ctx, mission); err != nil {
		return nil, err
	}

	service.logger.Info("mission_created",
		slog.Int64("mission_id", mission.ID),
		slog.Int64("scientist_id", mission.ScientistID),
		slog.Int64("planet_id", mission.PlanetID),
	)
	return service.GetMission(ctx, mission.ID)
}

func (service *Service) UpdateMission(ctx context.Context, id int64, read FieldsReader) (*MissionDetail, error) {
	detail, err := service.repo.GetMission(ctx, id)
	if err != nil {
		return nil, named(err, resourceMission)
	}

	mission := detail.Mission
	fields, err := read()
	if err != nil {
		return nil, err
	}

	if err := mission.Apply(fields); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateMission(ctx, &mission); err != nil {
		return nil, named(err, resourceMission)
	}

	service.logger.Info("mission_updated", slog.Int64("mission_id", id))
	return service.GetMission(ctx, id)
}

func (service *Service) DeleteMission(ctx context.Context, id int64) error {
	if err := service.repo.DeleteMission(ctx, id); err != nil {
		return named(err, resourceMission)
	}

	service.logger.Warn("mission_deleted", slog.Int64("mission_id", id))
	return nil
}
