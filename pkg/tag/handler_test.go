package tag

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, Service) {
	repo := NewRepositoryStub()
	service := NewService(repo)
	handler := NewHandler(service)

	router := mux.NewRouter()
	router.HandleFunc("/api/tag", handler.ListTags).Methods("GET")
	router.HandleFunc("/api/tag", handler.CreateTag).Methods("POST")
	router.HandleFunc("/api/tag/{tagId}", handler.UpdateTag).Methods("PUT")
	router.HandleFunc("/api/tag/{tagId}", handler.DeleteTag).Methods("DELETE")
	return router, service
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateTag(t *testing.T) {
	t.Run("should derive style from single color", func(t *testing.T) {
		// given
		router, _ := setupHandlerTest(t)

		// when
		w := doRequest(t, router, http.MethodPost, "/api/tag", TagDTO{Name: "Math", Color: "#3b82f6"})

		// then
		require.Equal(t, http.StatusCreated, w.Code)
		var dto TagDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.NotEmpty(t, dto.Id)
		assert.Equal(t, "Math", dto.Name)
		assert.Equal(t, "#3b82f6", dto.Accent)
		expected := DeriveStyle(MustParseColor("#3b82f6"))
		assert.Equal(t, expected.Background.Hex(), dto.Background)
		assert.Equal(t, expected.Foreground.Hex(), dto.Foreground)
	})

	t.Run("should keep explicit style", func(t *testing.T) {
		// given
		router, _ := setupHandlerTest(t)
		body := TagDTO{Name: "Math", Background: "#ffffff", Foreground: "#000000", Accent: "#ff0000"}

		// when
		w := doRequest(t, router, http.MethodPost, "/api/tag", body)

		// then
		require.Equal(t, http.StatusCreated, w.Code)
		var dto TagDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, "#ffffff", dto.Background)
		assert.Equal(t, "#000000", dto.Foreground)
		assert.Equal(t, "#ff0000", dto.Accent)
		assert.Equal(t, "#ff0000", dto.Color)
	})

	t.Run("should reject invalid color", func(t *testing.T) {
		// given
		router, _ := setupHandlerTest(t)

		// when
		w := doRequest(t, router, http.MethodPost, "/api/tag", TagDTO{Name: "Math", Color: "blue-ish"})

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject empty name", func(t *testing.T) {
		// given
		router, _ := setupHandlerTest(t)

		// when
		w := doRequest(t, router, http.MethodPost, "/api/tag", TagDTO{Name: " ", Color: "#3b82f6"})

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var errResponse struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.Equal(t, "Invalid tag", errResponse.Error)
	})
}

func TestHandler_ListTags(t *testing.T) {
	t.Run("should return empty array when no tags", func(t *testing.T) {
		// given
		router, _ := setupHandlerTest(t)

		// when
		w := doRequest(t, router, http.MethodGet, "/api/tag", nil)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("should return stored tags", func(t *testing.T) {
		// given
		router, service := setupHandlerTest(t)
		_, err := service.Create(context.Background(), "Math", DeriveStyle(MustParseColor("#3b82f6")))
		require.NoError(t, err)

		// when
		w := doRequest(t, router, http.MethodGet, "/api/tag", nil)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var dtos []TagDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dtos))
		require.Len(t, dtos, 1)
		parsed, err := DTOToTag(dtos[0])
		require.NoError(t, err)
		assert.Equal(t, "Math", parsed.Name)
		assert.Equal(t, "#3b82f6", parsed.Color().Hex())
	})
}

func TestHandler_UpdateTag(t *testing.T) {
	t.Run("should update existing tag", func(t *testing.T) {
		// given
		router, service := setupHandlerTest(t)
		created, _ := service.Create(context.Background(), "Math", FallbackStyle)

		// when
		w := doRequest(t, router, http.MethodPut, "/api/tag/"+created.Id.String(), TagDTO{Name: "Algebra", Color: "#10b981"})

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var dto TagDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, created.Id.String(), dto.Id)
		assert.Equal(t, "Algebra", dto.Name)
		assert.Equal(t, "#10b981", dto.Accent)
	})

	t.Run("should return 404 for unknown tag", func(t *testing.T) {
		// given
		router, _ := setupHandlerTest(t)

		// when
		w := doRequest(t, router, http.MethodPut, "/api/tag/"+uuid.NewString(), TagDTO{Name: "Algebra", Color: "#10b981"})

		// then
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should return 400 for malformed id", func(t *testing.T) {
		// given
		router, _ := setupHandlerTest(t)

		// when
		w := doRequest(t, router, http.MethodPut, "/api/tag/not-a-uuid", TagDTO{Name: "Algebra", Color: "#10b981"})

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_DeleteTag(t *testing.T) {
	t.Run("should delete tag", func(t *testing.T) {
		// given
		router, service := setupHandlerTest(t)
		created, _ := service.Create(context.Background(), "Math", FallbackStyle)

		// when
		w := doRequest(t, router, http.MethodDelete, "/api/tag/"+created.Id.String(), nil)

		// then
		assert.Equal(t, http.StatusNoContent, w.Code)
		tags, _ := service.List(context.Background())
		assert.Empty(t, tags)
	})

	t.Run("should return 404 for unknown tag", func(t *testing.T) {
		// given
		router, _ := setupHandlerTest(t)

		// when
		w := doRequest(t, router, http.MethodDelete, "/api/tag/"+uuid.NewString(), nil)

		// then
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
