package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/planta-io/planta/internal/auth"
	"github.com/planta-io/planta/internal/repository/sqlite"
	"github.com/planta-io/planta/internal/service"
)

// newTestServer builds the full API surface over an in-memory SQLite
// database.
func newTestServer(t *testing.T, strictOwnership bool) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(":memory:"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))

	userRepo := sqlite.NewUserRepository(db)
	plantRepo := sqlite.NewPlantRepository(db)
	eventRepo := sqlite.NewEventRepository(db)

	userService := service.NewUserService(userRepo, logger)
	authService := service.NewAuthService(userRepo, nil, 0, logger)
	plantService := service.NewPlantService(plantRepo, strictOwnership, logger)
	eventService := service.NewEventService(eventRepo, strictOwnership, logger)

	router := NewRouter(RouterConfig{
		UserHandler:     NewUserHandler(userService, logger),
		PlantHandler:    NewPlantHandler(plantService, logger),
		EventHandler:    NewEventHandler(eventService, logger),
		AuthMiddleware:  auth.Middleware(authService, logger),
		StrictOwnership: strictOwnership,
		DB:              db,
		Logger:          logger,
	})

	srv := httptest.NewServer(router.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

// registerUser registers an account and returns its access token.
func registerUser(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()

	resp, body := doJSON(t, srv, http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"password": "longpass1",
		"email":    username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	response := body["response"].(map[string]any)
	token := response["accessToken"].(string)
	require.Len(t, token, 256)
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t, false)

	resp, body := doJSON(t, srv, http.MethodPost, "/register", "", map[string]string{
		"username": "ada",
		"password": "longpass1",
		"email":    "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["success"])

	response := body["response"].(map[string]any)
	require.Equal(t, "ada", response["username"])
	require.Equal(t, "ada@example.com", response["email"])
	require.NotEmpty(t, response["accessToken"])
	registeredToken := response["accessToken"].(string)

	// Login returns the flat shape with the same token.
	resp, body = doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": "ada",
		"password": "longpass1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	require.Equal(t, "ada", body["username"])
	require.Equal(t, registeredToken, body["accessToken"])
	require.NotContains(t, body, "response")
}

func TestRegister_ShortPassword(t *testing.T) {
	srv := newTestServer(t, false)

	resp, body := doJSON(t, srv, http.MethodPost, "/register", "", map[string]string{
		"username": "ada",
		"password": "short",
		"email":    "ada@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, false, body["success"])
}

func TestLogin_MismatchIsGeneric(t *testing.T) {
	srv := newTestServer(t, false)
	registerUser(t, srv, "ada")

	// Wrong password and unknown username produce identical rejections.
	resp1, body1 := doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": "ada",
		"password": "wrongpass",
	})
	resp2, body2 := doJSON(t, srv, http.MethodPost, "/login", "", map[string]string{
		"username": "ghost",
		"password": "longpass1",
	})
	require.Equal(t, http.StatusBadRequest, resp1.StatusCode)
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)
	require.Equal(t, body1, body2)
}

func TestGatedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t, false)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/plants"},
		{http.MethodPost, "/plants"},
		{http.MethodGet, "/calendarevents"},
		{http.MethodPost, "/calendarevents"},
	} {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			resp, body := doJSON(t, srv, route.method, route.path, "", nil)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			require.Equal(t, false, body["success"])
			require.Equal(t, "Please log in", body["response"])
		})
	}

	// An unknown token is rejected with the same shape.
	resp, body := doJSON(t, srv, http.MethodGet, "/plants", "not-a-real-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Please log in", body["response"])
}

func TestPlantLifecycle(t *testing.T) {
	srv := newTestServer(t, false)
	token := registerUser(t, srv, "ada")

	// Create.
	resp, body := doJSON(t, srv, http.MethodPost, "/plants", token, map[string]string{
		"plantName":       "monstera",
		"typeOfPlant":     "tropical",
		"indoorOrOutdoor": "indoor",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	plant := body["response"].(map[string]any)
	plantID := plant["id"].(string)
	require.Equal(t, "monstera", plant["plantName"])

	// Single read uses the data envelope and needs no token.
	resp, body = doJSON(t, srv, http.MethodGet, "/plant/"+plantID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])
	require.Equal(t, "monstera", body["data"].(map[string]any)["plantName"])

	// Partial update touches only the provided fields.
	resp, body = doJSON(t, srv, http.MethodPatch, "/plant/"+plantID+"/updated", "", map[string]string{
		"information": "water weekly",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := body["response"].(map[string]any)
	require.Equal(t, "water weekly", updated["information"])
	require.Equal(t, "monstera", updated["plantName"])
	require.Equal(t, "tropical", updated["typeOfPlant"])

	// Delete echoes the record, then the id is gone.
	resp, body = doJSON(t, srv, http.MethodDelete, "/plant/"+plantID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "monstera", body["response"].(map[string]any)["plantName"])

	resp, _ = doJSON(t, srv, http.MethodDelete, "/plant/"+plantID, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlantList_OwnerScoped(t *testing.T) {
	srv := newTestServer(t, false)
	adaToken := registerUser(t, srv, "ada")
	bobToken := registerUser(t, srv, "bob")

	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, srv, http.MethodPost, "/plants", adaToken, map[string]string{
			"plantName": fmt.Sprintf("fern-%d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp, _ := doJSON(t, srv, http.MethodPost, "/plants", bobToken, map[string]string{
		"plantName": "cactus",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body := doJSON(t, srv, http.MethodGet, "/plants", adaToken, nil)
	plants := body["response"].([]any)
	require.Len(t, plants, 3)
	for _, p := range plants {
		require.NotEqual(t, "cactus", p.(map[string]any)["plantName"])
	}

	_, body = doJSON(t, srv, http.MethodGet, "/plants", bobToken, nil)
	require.Len(t, body["response"].([]any), 1)
}

func TestPlantGet_UnknownID(t *testing.T) {
	srv := newTestServer(t, false)

	resp, body := doJSON(t, srv, http.MethodGet, "/plant/00000000-0000-0000-0000-000000000042", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Sorry! Can't find a plant with that name.", body["response"])

	// A malformed id reads the same as a missing one.
	resp, _ = doJSON(t, srv, http.MethodGet, "/plant/not-a-uuid", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEventLifecycle(t *testing.T) {
	srv := newTestServer(t, false)
	token := registerUser(t, srv, "ada")

	resp, body := doJSON(t, srv, http.MethodPost, "/calendarevents", token, map[string]string{
		"eventTitle": "water the monstera",
		"startDate":  "2026-09-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	event := body["response"].(map[string]any)
	eventID := event["id"].(string)
	require.Equal(t, false, event["isCompleted"])

	resp, body = doJSON(t, srv, http.MethodPatch, "/calendarevents/"+eventID+"/completed", "", map[string]bool{
		"isCompleted": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["response"].(map[string]any)["isCompleted"])

	_, body = doJSON(t, srv, http.MethodGet, "/calendarevents", token, nil)
	events := body["response"].([]any)
	require.Len(t, events, 1)

	resp, _ = doJSON(t, srv, http.MethodDelete, "/event/"+eventID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodDelete, "/event/"+eventID, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStrictOwnership_GatesIDRoutes(t *testing.T) {
	srv := newTestServer(t, true)
	adaToken := registerUser(t, srv, "ada")
	bobToken := registerUser(t, srv, "bob")

	resp, body := doJSON(t, srv, http.MethodPost, "/plants", adaToken, map[string]string{
		"plantName": "monstera",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	plantID := body["response"].(map[string]any)["id"].(string)

	// Without a token the id routes are gated.
	resp, _ = doJSON(t, srv, http.MethodGet, "/plant/"+plantID, "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A different owner sees a 404, not a 403, so ids cannot be probed.
	resp, _ = doJSON(t, srv, http.MethodGet, "/plant/"+plantID, bobToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodDelete, "/plant/"+plantID, bobToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner retains full access.
	resp, _ = doJSON(t, srv, http.MethodGet, "/plant/"+plantID, adaToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGreetingAndHealth(t *testing.T) {
	srv := newTestServer(t, false)

	resp, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	resp2, body := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	require.Equal(t, "healthy", body["status"])
}
