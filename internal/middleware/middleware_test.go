package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject_ParsesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var got uuid.UUID
	router.GET("/probe", Subject(), func(c *gin.Context) {
		id, ok := SubjectID(c)
		require.True(t, ok)
		got = id
		c.Status(http.StatusOK)
	})

	want := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(SubjectHeader, want.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, got)
}

func TestSubject_RejectsMissingAndMalformed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", Subject(), func(c *gin.Context) {
		t.Fatal("handler must not run without a valid subject")
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(SubjectHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestID_EchoesAndAssigns(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", RequestID(), func(c *gin.Context) { c.Status(http.StatusOK) })

	// The caller's id is echoed back.
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))

	// A missing id gets assigned.
	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
