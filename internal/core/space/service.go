package space

import (
	"log/slog"

	"github.com/taibuivan/stellar/internal/platform/apperr"
	"github.com/taibuivan/stellar/internal/platform/dberr"
)

// Entity names used in not-found messages.
const (
	resourceScientist = "Scientist"
	resourcePlanet    = "Planet"
	resourceMission   = "Mission"
)

// Service coordinates validation, persistence and projection for the three
// entities.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// named replaces the store's generic missing-row error with one naming the
// entity. Other errors pass through.
func named(err error, resource string) error {
	if dberr.IsNotFound(err) {
		return apperr.NotFound(resource)
	}
	return err
}
