package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/kevin-luna/cursito-api/internal/models"
	"github.com/kevin-luna/cursito-api/internal/service"
	appErrors "github.com/kevin-luna/cursito-api/pkg/errors"
)

type tokenStub map[string]*models.JWTClaims

func (s tokenStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

func claimsFor(role models.UserRole, workerID string) *models.JWTClaims {
	return &models.JWTClaims{Role: role, RegisteredClaims: jwt.RegisteredClaims{Subject: workerID}}
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := tokenStub{
		"admin":   claimsFor(models.RoleAdmin, "w-admin"),
		"teacher": claimsFor(models.RoleTeacher, "w-1"),
	}
	r := gin.New()
	group := r.Group("/reports", JWT(tokens))
	group.GET("/attendance/:courseId", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.GET("/instructor-courses/:workerId",
		RBAC(string(models.RoleAdmin), string(models.RoleDepartmentHead), Self),
		func(c *gin.Context) { c.String(http.StatusOK, Claims(c).WorkerID()) })
	return r
}

func serve(r http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTRequiresBearerToken(t *testing.T) {
	r := newRouter()

	require.Equal(t, http.StatusUnauthorized, serve(r, "/reports/attendance/c-1", "").Code)
	require.Equal(t, http.StatusUnauthorized, serve(r, "/reports/attendance/c-1", "Basic teacher").Code)
	require.Equal(t, http.StatusUnauthorized, serve(r, "/reports/attendance/c-1", "Bearer forged").Code)
	require.Equal(t, http.StatusOK, serve(r, "/reports/attendance/c-1", "bearer teacher").Code)
}

func TestRBACAllowsRolesAndSelf(t *testing.T) {
	r := newRouter()

	w := serve(r, "/reports/instructor-courses/w-1", "Bearer teacher")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "w-1", w.Body.String())

	require.Equal(t, http.StatusForbidden, serve(r, "/reports/instructor-courses/w-2", "Bearer teacher").Code)
	require.Equal(t, http.StatusOK, serve(r, "/reports/instructor-courses/w-2", "Bearer admin").Code)
}

func TestRBACWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x/:workerId", RBAC(Self), func(c *gin.Context) { c.Status(http.StatusOK) })
	require.Equal(t, http.StatusUnauthorized, serve(r, "/x/w-1", "").Code)
}

func TestMetricsLabelsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(Metrics(metrics))
	r.GET("/reports/attendance/:courseId", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, "/reports/attendance/c-1", "")
	serve(r, "/reports/attendance/c-2", "")
	serve(r, "/nowhere", "")

	count, err := testutil.GatherAndCount(metrics.Registry(), "http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count, "one series per route template plus one for unmatched paths")
}
