package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearshare/service-rental/internal/middleware"
	"github.com/gearshare/service-rental/internal/response"
)

// The request-shape tests below never reach the service layer: gin routing,
// the subject middleware and parameter parsing reject the request first, so a
// nil service is safe.
func newBookingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBookingHandler(nil).RegisterRoutes(&router.RouterGroup)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestBookingRoutes_RequireSubjectHeader(t *testing.T) {
	router := newBookingRouter()

	rec := doRequest(t, router, http.MethodGet, "/bookings", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec).Error, middleware.SubjectHeader)
}

func TestBookingRoutes_RejectMalformedSubject(t *testing.T) {
	router := newBookingRouter()

	rec := doRequest(t, router, http.MethodGet, "/bookings", map[string]string{
		middleware.SubjectHeader: "42",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec).Error, middleware.SubjectHeader)
}

func TestGetBooking_InvalidID(t *testing.T) {
	router := newBookingRouter()

	rec := doRequest(t, router, http.MethodGet, "/bookings/not-a-uuid", map[string]string{
		middleware.SubjectHeader: uuid.New().String(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid booking ID", errorBody(t, rec).Error)
}

func TestDecideBooking_RequiresApprovedParam(t *testing.T) {
	router := newBookingRouter()
	headers := map[string]string{middleware.SubjectHeader: uuid.New().String()}

	rec := doRequest(t, router, http.MethodPatch, "/bookings/"+uuid.New().String(), headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPatch, "/bookings/"+uuid.New().String()+"?approved=maybe", headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListBookings_RejectsBadPaginationParams(t *testing.T) {
	router := newBookingRouter()
	headers := map[string]string{middleware.SubjectHeader: uuid.New().String()}

	rec := doRequest(t, router, http.MethodGet, "/bookings?from=abc&size=2", headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/bookings/owner?from=0&size=x", headers)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
