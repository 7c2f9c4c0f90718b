package space

import (
	"net/http"

	"github.com/taibuivan/stellar/internal/platform/respond"
)

// # Missions

func (handler *Handler) listMissions(writer http.ResponseWriter, request *http.Request) {
	missions, err := handler.service.ListMissions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, missions)
}

/*
POST /missions.

Request:
  - name: string (required)
  - scientist_id: integer (required, must exist)
  - planet_id: integer (required, must exist)

Response:
  - 201: MissionDetail
  - 422: {"errors": [...]}
*/
func (handler *Handler) createMission(writer http.ResponseWriter, request *http.Request) {
	fields, ok := bodyFields(writer, request)
	if !ok {
		return
	}

	mission, err := handler.service.CreateMission(request.Context(), fields)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, mission)
}

func (handler *Handler) getMission(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourceMission)
	if !ok {
		return
	}

	mission, err := handler.service.GetMission(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, mission)
}

func (handler *Handler) updateMission(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourceMission)
	if !ok {
		return
	}

	mission, err := handler.service.UpdateMission(request.Context(), id, bodyReader(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Accepted(writer, mission)
}

func (handler *Handler) deleteMission(writer http.ResponseWriter, request *http.Request) {
	id, ok := pathID(writer, request, resourceMission)
	if !ok {
		return
	}

	if err := handler.service.DeleteMission(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
