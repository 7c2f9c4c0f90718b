package space_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stellar/internal/core/space"
)

// apiClient drives the space routes in-process.
type apiClient struct {
	t      *testing.T
	router http.Handler
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	handler := space.NewHandler(space.NewService(newRepository(t), discardLogger()))

	router := chi.NewRouter()
	router.Mount("/scientists", handler.ScientistRoutes())
	router.Mount("/planets", handler.PlanetRoutes())
	router.Mount("/missions", handler.MissionRoutes())

	return &apiClient{t: t, router: router}
}

// do sends a request and decodes the JSON response body into a generic value.
func (client *apiClient) do(method, path, body string) (int, any) {
	client.t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	client.router.ServeHTTP(recorder, request)

	if recorder.Body.Len() == 0 {
		return recorder.Code, nil
	}
	var decoded any
	require.NoError(client.t, json.Unmarshal(recorder.Body.Bytes(), &decoded), recorder.Body.String())
	return recorder.Code, decoded
}

// create POSTs body and returns the new id.
func (client *apiClient) create(path, body string) int {
	client.t.Helper()
	status, created := client.do(http.MethodPost, path, body)
	require.Equal(client.t, http.StatusCreated, status, created)
	return int(created.(map[string]any)["id"].(float64))
}

func errorsBody(messages ...string) any {
	list := make([]any, len(messages))
	for i, message := range messages {
		list[i] = message
	}
	return map[string]any{"errors": list}
}

func TestScientists_CreateThenGetRoundTrip(t *testing.T) {
	client := newAPIClient(t)

	status, created := client.do(http.MethodPost, "/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)
	require.Equal(t, http.StatusCreated, status)
	id := created.(map[string]any)["id"]
	assert.Equal(t, map[string]any{"id": id, "name": "Vera Rubin", "field_of_study": "Astronomy"}, created)

	status, fetched := client.do(http.MethodGet, fmt.Sprintf("/scientists/%v", id), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{
		"id":             id,
		"name":           "Vera Rubin",
		"field_of_study": "Astronomy",
		"missions":       []any{},
	}, fetched)
}

func TestScientists_InvalidCreatePersistsNothing(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantBody any
	}{
		{"empty_name", `{"name": "", "field_of_study": "Astronomy"}`, errorsBody("Name has to be present")},
		{"empty_field_of_study", `{"name": "Vera Rubin", "field_of_study": ""}`, errorsBody("field_of_study has to be present")},
		{"not_an_object", `["Vera Rubin"]`, errorsBody("Invalid JSON payload")},
		{"null_body", `null`, errorsBody("Invalid JSON payload")},
		{"malformed", `{"name":`, errorsBody("Invalid JSON payload")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newAPIClient(t)

			status, body := client.do(http.MethodPost, "/scientists", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, status)
			assert.Equal(t, tt.wantBody, body)

			status, list := client.do(http.MethodGet, "/scientists", "")
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, []any{}, list)
		})
	}
}

func TestScientists_ListHasNoMissionsKey(t *testing.T) {
	client := newAPIClient(t)
	scientistID := client.create("/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)
	planetID := client.create("/planets", `{"name": "Mars"}`)
	client.create("/missions", fmt.Sprintf(`{"name": "Viking", "scientist_id": %d, "planet_id": %d}`, scientistID, planetID))

	status, list := client.do(http.MethodGet, "/scientists", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)
	assert.NotContains(t, list.([]any)[0], "missions")
}

func TestScientists_GetHasNoCycle(t *testing.T) {
	client := newAPIClient(t)
	scientistID := client.create("/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)
	planetID := client.create("/planets", `{"name": "Mars", "distance_from_earth": 225}`)
	client.create("/missions", fmt.Sprintf(`{"name": "Viking", "scientist_id": %d, "planet_id": %d}`, scientistID, planetID))

	status, body := client.do(http.MethodGet, fmt.Sprintf("/scientists/%d", scientistID), "")
	require.Equal(t, http.StatusOK, status)

	missions := body.(map[string]any)["missions"].([]any)
	require.Len(t, missions, 1)
	planet := missions[0].(map[string]any)["planet"].(map[string]any)
	assert.Equal(t, "Mars", planet["name"])
	assert.NotContains(t, planet, "missions")
	assert.NotContains(t, planet, "scientists")
}

func TestScientists_PatchRejectsEmptyFieldOfStudy(t *testing.T) {
	client := newAPIClient(t)
	id := client.create("/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)
	path := fmt.Sprintf("/scientists/%d", id)

	status, body := client.do(http.MethodPatch, path, `{"name": "Rubin", "field_of_study": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, errorsBody("field_of_study has to be present"), body)

	_, fetched := client.do(http.MethodGet, path, "")
	assert.Equal(t, "Astronomy", fetched.(map[string]any)["field_of_study"])
	assert.Equal(t, "Vera Rubin", fetched.(map[string]any)["name"])

	status, updated := client.do(http.MethodPatch, path, `{"field_of_study": "Dark matter"}`)
	assert.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, map[string]any{"id": float64(id), "name": "Vera Rubin", "field_of_study": "Dark matter"}, updated)
}

func TestScientists_NotFound(t *testing.T) {
	client := newAPIClient(t)
	notFound := map[string]any{"error": "Scientist not found"}

	for _, tt := range []struct{ method, path, body string }{
		{http.MethodGet, "/scientists/42", ""},
		{http.MethodPatch, "/scientists/42", `{"name": "x"}`},
		{http.MethodGet, "/scientists/42/planets", ""},
		{http.MethodGet, "/scientists/abc", ""},
		{http.MethodGet, "/scientists/-1", ""},
	} {
		status, body := client.do(tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusNotFound, status, tt.path)
		assert.Equal(t, notFound, body, tt.path)
	}
}

func TestPatch_MissingEntityWinsOverMalformedBody(t *testing.T) {
	client := newAPIClient(t)

	tests := []struct {
		path string
		want string
	}{
		{"/scientists/42", "Scientist not found"},
		{"/planets/42", "Planet not found"},
		{"/missions/42", "Mission not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			for _, body := range []string{`{"name":`, `[1, 2]`, `{"name": "x"} {"name": "y"}`} {
				status, decoded := client.do(http.MethodPatch, tt.path, body)
				assert.Equal(t, http.StatusNotFound, status, body)
				assert.Equal(t, map[string]any{"error": tt.want}, decoded, body)
			}
		})
	}

	// An existing entity still reports the malformed body.
	id := client.create("/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)
	status, decoded := client.do(http.MethodPatch, fmt.Sprintf("/scientists/%d", id), `{"name":`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, errorsBody("Invalid JSON payload"), decoded)
}

func TestScientists_CreateRejectsTrailingData(t *testing.T) {
	client := newAPIClient(t)

	status, body := client.do(http.MethodPost, "/scientists", `{"name": "X", "field_of_study": "Y"} {"x": 1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, errorsBody("Invalid JSON payload"), body)

	_, list := client.do(http.MethodGet, "/scientists", "")
	assert.Empty(t, list)
}

func TestScientists_DeleteMissingIsRepeatable(t *testing.T) {
	client := newAPIClient(t)
	client.create("/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)

	for range 2 {
		status, body := client.do(http.MethodDelete, "/scientists/999", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, map[string]any{"error": "Scientist not found"}, body)
	}

	_, list := client.do(http.MethodGet, "/scientists", "")
	assert.Len(t, list, 1)
}

func TestScientists_DeleteCascadesToMissions(t *testing.T) {
	client := newAPIClient(t)
	rubin := client.create("/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)
	sagan := client.create("/scientists", `{"name": "Carl Sagan", "field_of_study": "Planetary science"}`)
	mars := client.create("/planets", `{"name": "Mars"}`)
	venus := client.create("/planets", `{"name": "Venus"}`)

	for _, pair := range [][2]int{{rubin, mars}, {rubin, venus}, {sagan, mars}} {
		client.create("/missions", fmt.Sprintf(`{"name": "m", "scientist_id": %d, "planet_id": %d}`, pair[0], pair[1]))
	}

	status, _ := client.do(http.MethodDelete, fmt.Sprintf("/scientists/%d", rubin), "")
	require.Equal(t, http.StatusNoContent, status)

	_, missions := client.do(http.MethodGet, "/missions", "")
	assert.Len(t, missions, 1)

	_, venusScientists := client.do(http.MethodGet, fmt.Sprintf("/planets/%d/scientists", venus), "")
	assert.Equal(t, []any{}, venusScientists)

	_, marsScientists := client.do(http.MethodGet, fmt.Sprintf("/planets/%d/scientists", mars), "")
	require.Len(t, marsScientists, 1)
	assert.Equal(t, "Carl Sagan", marsScientists.([]any)[0].(map[string]any)["name"])

	_, venusDetail := client.do(http.MethodGet, fmt.Sprintf("/planets/%d", venus), "")
	assert.Equal(t, []any{}, venusDetail.(map[string]any)["missions"])
}

func TestScientists_DerivedPlanetsAreDistinct(t *testing.T) {
	client := newAPIClient(t)
	rubin := client.create("/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)
	mars := client.create("/planets", `{"name": "Mars"}`)

	for range 2 {
		client.create("/missions", fmt.Sprintf(`{"name": "m", "scientist_id": %d, "planet_id": %d}`, rubin, mars))
	}

	status, planets := client.do(http.MethodGet, fmt.Sprintf("/scientists/%d/planets", rubin), "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, planets, 1)
	assert.Equal(t, map[string]any{
		"id":                  float64(mars),
		"name":                "Mars",
		"distance_from_earth": nil,
		"nearest_star":        nil,
	}, planets.([]any)[0])
}

func TestMissions_UnresolvedReferencePersistsNothing(t *testing.T) {
	client := newAPIClient(t)
	scientistID := client.create("/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)

	status, body := client.do(http.MethodPost, "/missions",
		fmt.Sprintf(`{"name": "Ghost", "scientist_id": %d, "planet_id": 404}`, scientistID))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, errorsBody("planet_id 404 does not reference an existing Planet"), body)

	status, body = client.do(http.MethodPost, "/missions", `{"name": "Ghost"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, errorsBody("planet_id has to be present", "scientist_id has to be present"), body)

	_, missions := client.do(http.MethodGet, "/missions", "")
	assert.Equal(t, []any{}, missions)
}

func TestMissions_Lifecycle(t *testing.T) {
	client := newAPIClient(t)
	rubin := client.create("/scientists", `{"name": "Vera Rubin", "field_of_study": "Astronomy"}`)
	mars := client.create("/planets", `{"name": "Mars"}`)
	venus := client.create("/planets", `{"name": "Venus", "nearest_star": "Sun"}`)

	status, created := client.do(http.MethodPost, "/missions",
		fmt.Sprintf(`{"name": "Viking", "scientist_id": %d, "planet_id": %d}`, rubin, mars))
	require.Equal(t, http.StatusCreated, status)
	mission := created.(map[string]any)
	assert.Equal(t, "Vera Rubin", mission["scientist"].(map[string]any)["name"])
	assert.Equal(t, "Mars", mission["planet"].(map[string]any)["name"])
	path := fmt.Sprintf("/missions/%v", mission["id"])

	status, updated := client.do(http.MethodPatch, path, fmt.Sprintf(`{"planet_id": %d}`, venus))
	require.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, float64(venus), updated.(map[string]any)["planet_id"])
	assert.Equal(t, "Sun", updated.(map[string]any)["planet"].(map[string]any)["nearest_star"])

	status, _ = client.do(http.MethodPatch, path, `{"scientist_id": 12345}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = client.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body := client.do(http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, map[string]any{"error": "Mission not found"}, body)
}

func TestPlanets_Lifecycle(t *testing.T) {
	client := newAPIClient(t)

	status, created := client.do(http.MethodPost, "/planets", `{}`)
	require.Equal(t, http.StatusCreated, status)
	id := created.(map[string]any)["id"]
	path := fmt.Sprintf("/planets/%v", id)

	status, updated := client.do(http.MethodPatch, path, `{"name": "Kepler-22b", "distance_from_earth": 600}`)
	require.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, map[string]any{
		"id":                  id,
		"name":                "Kepler-22b",
		"distance_from_earth": float64(600),
		"nearest_star":        nil,
	}, updated)

	status, body := client.do(http.MethodPatch, path, `{"distance_from_earth": "far", "name": "X"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, errorsBody("distance_from_earth must be an integer or null"), body)

	_, fetched := client.do(http.MethodGet, path, "")
	assert.Equal(t, "Kepler-22b", fetched.(map[string]any)["name"])

	status, _ = client.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body = client.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, map[string]any{"error": "Planet not found"}, body)
}
