package course

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LeDuoc95/BE-FEDUU/config"
	"github.com/LeDuoc95/BE-FEDUU/internal/activation"
	userModel "github.com/LeDuoc95/BE-FEDUU/internal/model/user"
	"github.com/LeDuoc95/BE-FEDUU/internal/testutils"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Message string                `json:"message"`
	Code    response.ResponseCode `json:"code"`
	Data    json.RawMessage       `json:"data"`
}

func TestCourseRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = config.Default()

	db := testutils.SetupTestDB(t)
	svc := NewCourseService(db, activation.NewLedger(db, activation.DefaultBatchSize), nil, config.Conf.Course)

	r := gin.New()
	RegisterRoutes(r.Group("/course"), NewCourseHandler(svc))

	lecturer := testutils.CreateTestUser(db, testutils.WithRole(userModel.RoleLecturer))
	student := testutils.CreateTestUser(db)
	photo := testutils.CreateTestPhoto(db, lecturer.ID)
	lecturerAuth := testutils.BearerToken(lecturer, config.Conf.JWT.Secret)
	studentAuth := testutils.BearerToken(student, config.Conf.JWT.Secret)

	do := func(method, path, auth string, body any) (*httptest.ResponseRecorder, envelope) {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
		return w, env
	}

	body := map[string]any{
		"photo":       photo.ID,
		"old_price":   120,
		"new_price":   99,
		"title":       "Algebra",
		"type":        []int{1},
		"description": "linear equations",
	}

	w, _ := do(http.MethodPost, "/course/create", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(http.MethodPost, "/course/create", studentAuth, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := do(http.MethodPost, "/course/create", lecturerAuth, map[string]any{"title": "No photo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.RequiredFieldMissing, env.Code)
	assert.Equal(t, "photo is required", env.Message)

	w, env = do(http.MethodPost, "/course/create", lecturerAuth, body)
	require.Equal(t, http.StatusCreated, w.Code)
	var created CourseView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Algebra", created.Title)
	assert.Equal(t, lecturer.Username, created.User)

	w, env = do(http.MethodPost, "/course/create", lecturerAuth, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.DuplicateTitle, env.Code)

	body["title"] = "Algebra II"
	w, _ = do(http.MethodPost, "/course/create", lecturerAuth, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	body["title"] = "Algebra Revised"
	delete(body, "new_price")
	w, env = do(http.MethodPut, fmt.Sprintf("/course/update/%d", created.ID), lecturerAuth, body)
	require.Equal(t, http.StatusOK, w.Code)
	var updated CourseView
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Algebra Revised", updated.Title)
	assert.Equal(t, int64(99), updated.NewPrice)

	w, _ = do(http.MethodPut, "/course/update/abc", lecturerAuth, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(http.MethodPut, "/course/update/4040", lecturerAuth, body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(http.MethodGet, "/course/list", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var public struct {
		Count   int64        `json:"count"`
		Results []CourseView `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &public))
	assert.Equal(t, int64(2), public.Count)

	w, env = do(http.MethodDelete, fmt.Sprintf("/course/delete/%d", created.ID), lecturerAuth, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, string(env.Data))

	w, _ = do(http.MethodDelete, fmt.Sprintf("/course/delete/%d", created.ID), lecturerAuth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(http.MethodGet, "/course/list-owner", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &public))
	assert.Equal(t, int64(1), public.Count)
	assert.Equal(t, "Algebra II", public.Results[0].Title)

	w, _ = do(http.MethodGet, "/course/list?old_price=1x", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(http.MethodGet, fmt.Sprintf("/course/list/%d", created.ID), studentAuth, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
