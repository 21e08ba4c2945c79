package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/database/testutil"
	"github.com/vitalog/vitalog/internal/notify"
	"github.com/vitalog/vitalog/internal/realtime"
	"github.com/vitalog/vitalog/internal/services"
)

func newRouterForTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	users, err := services.NewUserService(db)
	require.NoError(t, err)
	settings, err := services.NewSettingsService(db)
	require.NoError(t, err)
	store, err := services.NewNotificationService(db)
	require.NoError(t, err)
	activities, err := services.NewActivityService(db)
	require.NoError(t, err)
	snapshots, err := services.NewContextService(db, activities)
	require.NoError(t, err)

	hub := realtime.NewHub()
	generator := notify.NewGenerator(notify.NewDedupCache(notify.DefaultDedupWindow))
	dispatcher := notify.NewDispatcher([]notify.Channel{notify.NewInAppChannel(hub)})
	scheduler, err := notify.NewScheduler(users, settings, snapshots, store, generator, dispatcher)
	require.NoError(t, err)

	router, err := NewRouter(db, scheduler, dispatcher, hub)
	require.NoError(t, err)
	return router
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newRouterForTest(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newRouterForTest(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newRouterForTest(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Contains(t, recorder.Body.String(), "NOT_FOUND")
}

func TestRouterNotificationRoutesMounted(t *testing.T) {
	router := newRouterForTest(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/users/user-1/notifications", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/users/user-1/notification-settings", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouterRequiresDependencies(t *testing.T) {
	_, err := NewRouter(nil, nil, nil, nil)
	require.Error(t, err)
}
