package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testContext(t *testing.T, method string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", nil)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccessReturnsOKRegardlessOfMethod(t *testing.T) {
	// POSTs toggle dialogs and page state; nothing is created, so no 201
	for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
		t.Run(method, func(t *testing.T) {
			c, w := testContext(t, method)
			Success(c, gin.H{"ok": true})

			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, decodeBody(t, w).Success)
		})
	}
}

func TestHandleMapsValidationError(t *testing.T) {
	c, w := testContext(t, "POST")
	Handle(c, nil, NewValidationError("price", "must be a decimal number"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "price: must be a decimal number", resp.Error.Message)
}

func TestHandleMapsRecordNotFound(t *testing.T) {
	c, w := testContext(t, "GET")
	Handle(c, nil, gorm.ErrRecordNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeBody(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}
