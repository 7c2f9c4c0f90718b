package space

import (
	"net/http"

	"github.com/taibuivan/stellar/internal/platform/respond"
)

// # Planets

func (handler *Handler) listPlanets(writer http.ResponseWriter, request *http.Request) {
	planets, err := handler.service.ListPlanets(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, planets)
}

/*
POST /planets.

Request (all optional, null allowed):
  - name: string
  - distance_from_earth: integer
  - nearest_star: string

Response:
  - 201: Planet
  - 422: {"errors": [...]}
*/
func (handler *Handler) createPlanet(writer http.ResponseWriter, request *http.Request) {
	fields, ok := bodyFields(writer, request)
	if !ok {
		return
	}

	planet, err := handler.service.CreatePlanet(request.Context(), fields)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, planet)
}

// getPlanet serves GET /planets/{id} as a PlanetDetail.
func (handler *Handler) getPlanet(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourcePlanet)
	if !ok {
		return
	}

	detail, err := handler.service.GetPlanet(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) updatePlanet(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourcePlanet)
	if !ok {
		return
	}

	planet, err := handler.service.UpdatePlanet(request.Context(), id, bodyReader(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Accepted(writer, planet)
}

// deletePlanet cascades to the planet's missions.
func (handler *Handler) deletePlanet(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourcePlanet)
	if !ok {
		return
	}

	if err := handler.service.DeletePlanet(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listPlanetScientists(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourcePlanet)
	if !ok {
		return
	}

	scientists, err := handler.service.ListPlanetScientists(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, scientists)
}
