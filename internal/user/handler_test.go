package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LeDuoc95/BE-FEDUU/config"
	userModel "github.com/LeDuoc95/BE-FEDUU/internal/model/user"
	"github.com/LeDuoc95/BE-FEDUU/internal/testutils"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = config.Default()

	db, svc, _ := setupService(t)
	r := gin.New()
	RegisterRoutes(r.Group("/user"), NewUserHandler(svc), func(c *gin.Context) { c.Next() })

	admin := testutils.CreateTestUser(db, testutils.WithRole(userModel.RoleAdmin))

	send := func(method, path string, body any, prepare func(*http.Request)) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if prepare != nil {
			prepare(req)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(http.MethodPost, "/user/create", map[string]any{"username": "newbie"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, response.RequiredFieldMissing, env.Code)
	assert.Equal(t, "email is required", env.Message)

	w = send(http.MethodPost, "/user/create", map[string]any{
		"email": "newbie@example.com", "username": "newbie", "password": "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = send(http.MethodPost, "/user/create", map[string]any{
		"email": "newbie@example.com", "username": "newbie2",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = send(http.MethodPost, "/user/login", map[string]any{"username": "newbie", "password": "secret123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "access_token", cookies[0].Name)

	w = send(http.MethodGet, "/user/me", nil, func(req *http.Request) { req.AddCookie(cookies[0]) })
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Data ProfileView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "newbie", me.Data.Username)

	w = send(http.MethodGet, "/user/list", nil, func(req *http.Request) { req.AddCookie(cookies[0]) })
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminAuth := func(req *http.Request) {
		req.Header.Set("Authorization", testutils.BearerToken(admin, config.Conf.JWT.Secret))
	}
	w = send(http.MethodGet, "/user/list?position=student", nil, adminAuth)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []UserView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "newbie", list.Data[0].Username)

	w = send(http.MethodDelete, "/user/delete/abc", nil, adminAuth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(http.MethodPost, "/user/api/token/refresh", map[string]any{"refresh": "bogus"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
