/*
Package space provides the Scientists, Planets and Missions resources.

It holds the entity model, its response projections, the PostgreSQL and
SQLite repositories, the service layer and the HTTP handlers.

# Routing Strategy

  - /scientists, /planets: CRUD plus one derived collection each.
  - /missions: CRUD. Responses expand both the scientist and the planet.

A malformed id in the path is reported as a missing entity.
*/
package space

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stellar/internal/platform/apperr"
	requestutil "github.com/taibuivan/stellar/internal/platform/request"
	"github.com/taibuivan/stellar/internal/platform/respond"
)

// Handler translates HTTP requests into [Service] calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ScientistRoutes returns the router mounted at /scientists.
func (handler *Handler) ScientistRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listScientists)
	router.Post("/", handler.createScientist)
	router.Get("/{id}", handler.getScientist)
	router.Patch("/{id}", handler.updateScientist)
	router.Delete("/{id}", handler.deleteScientist)
	router.Get("/{id}/planets", handler.listScientistPlanets)

	return router
}

// PlanetRoutes returns the router mounted at /planets.
func (handler *Handler) PlanetRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPlanets)
	router.Post("/", handler.createPlanet)
	router.Get("/{id}", handler.getPlanet)
	router.Patch("/{id}", handler.updatePlanet)
	router.Delete("/{id}", handler.deletePlanet)
	router.Get("/{id}/scientists", handler.listPlanetScientists)

	return router
}

// MissionRoutes returns the router mounted at /missions.
func (handler *Handler) MissionRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMissions)
	router.Post("/", handler.createMission)
	router.Get("/{id}", handler.getMission)
	router.Patch("/{id}", handler.updateMission)
	router.Delete("/{id}", handler.deleteMission)

	return router
}

// pathID reads the {id} parameter. When it is not a positive integer the
// not-found error for resource is written and ok is false.
func pathID(writer http.ResponseWriter, request *http.Request, resource string) (id int64, ok bool) {
	id, ok = requestutil.IntID(request, "id")
	if !ok {
		respond.Error(writer, request, apperr.NotFound(resource))
	}
	return id, ok
}

// bodyFields decodes the request body as an attribute map, writing the
// error response itself on failure.
func bodyFields(writer http.ResponseWriter, request *http.Request) (Fields, bool) {
	fields, err := requestutil.DecodeFields(request)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, false
	}
	return Fields(fields), true
}

// bodyReader decodes the request body on demand.
func bodyReader(request *http.Request) FieldsReader {
	return func() (Fields, error) {
		fields, err := requestutil.DecodeFields(request)
		if err != nil {
			return nil, err
		}
		return Fields(fields), nil
	}
}
