package activation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LeDuoc95/BE-FEDUU/config"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = config.Default()

	db, ledger := setupLedger(t)
	c, keys := newCourseWithKeys(t, db, ledger, "Handler Course")

	r := gin.New()
	RegisterRoutes(r.Group("/course"), NewActivationHandler(ledger), func(c *gin.Context) { c.Next() })

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/course/activate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	body := `{"key_active":"` + keys[0].KeyActive + `"}`

	w := post(body)
	require.Equal(t, http.StatusOK, w.Code)
	var ok struct {
		Data RedeemResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.Equal(t, RedeemResponse{ID: c.ID, Title: "Handler Course"}, ok.Data)

	w = post(body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(`{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var missing response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &missing))
	assert.Equal(t, response.RequiredFieldMissing, missing.Code)

	w = post(`not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPoolHandler_RequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Conf = config.Default()

	_, ledger := setupLedger(t)
	r := gin.New()
	RegisterRoutes(r.Group("/course"), NewActivationHandler(ledger), func(c *gin.Context) { c.Next() })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/course/keys/1", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
