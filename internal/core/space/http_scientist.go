package space

import (
	"net/http"

	"github.com/taibuivan/stellar/internal/platform/respond"
)

// # Scientists

/*
GET /scientists.

Description: Lists every scientist in id order, without relations.

Response:
  - 200: []Scientist
*/
func (handler *Handler) listScientists(writer http.ResponseWriter, request *http.Request) {
	scientists, err := handler.service.ListScientists(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, scientists)
}

/*
POST /scientists.

Request:
  - name: string (required)
  - field_of_study: string (required)

Response:
  - 201: Scientist
  - 422: {"errors": [...]}
*/
func (handler *Handler) createScientist(writer http.ResponseWriter, request *http.Request) {
	fields, ok := bodyFields(writer, request)
	if !ok {
		return
	}

	scientist, err := handler.service.CreateScientist(request.Context(), fields)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, scientist)
}

/*
GET /scientists/{id}.

Description: Returns the scientist with its missions, each mission carrying
the planet it targets.

Response:
  - 200: ScientistDetail
  - 404: Scientist not found
*/
func (handler *Handler) getScientist(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourceScientist)
	if !ok {
		return
	}

	detail, err := handler.service.GetScientist(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

/*
PATCH /scientists/{id}.

Description: Partial update. Any rejected attribute aborts the whole update.

Response:
  - 202: Scientist
  - 404: Scientist not found
  - 422: {"errors": [...]}
*/
func (handler *Handler) updateScientist(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourceScientist)
	if !ok {
		return
	}

	scientist, err := handler.service.UpdateScientist(request.Context(), id, bodyReader(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Accepted(writer, scientist)
}

/*
DELETE /scientists/{id}.

Description: Removes the scientist and all of its missions.

Response:
  - 204: No Content
  - 404: Scientist not found
*/
func (handler *Handler) deleteScientist(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourceScientist)
	if !ok {
		return
	}

	if err := handler.service.DeleteScientist(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
GET /scientists/{id}/planets.

Description: Distinct planets the scientist has missions to.

Response:
  - 200: []Planet
  - 404: Scientist not found
*/
func (handler *Handler) listScientistPlanets(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourceScientist)
	if !ok {
		return
	}

	planets, err := handler.service.ListScientistPlanets(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, planets)
}
