package xhttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/labelchain/LabelChain/errcode"
)

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w
}

func TestOkJson(t *testing.T) {
	w := record(func(c *gin.Context) {
		OkJson(c, gin.H{"id": "p1"})
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != errcode.CodeOK || resp.Msg != "success" {
		t.Errorf("envelope %+v", resp)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{errcode.ErrInvalidParams, http.StatusBadRequest},
		{errcode.NewCustomErr("boom"), http.StatusBadRequest},
		{errcode.ErrNotFound, http.StatusNotFound},
		{errcode.ErrForbidden, http.StatusForbidden},
		{errcode.ErrAlreadyCompleted, http.StatusConflict},
		// 超时不是失败，202让前端继续处理
		{errcode.ErrTimeout, http.StatusAccepted},
		{errors.New("db gone"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := record(func(c *gin.Context) {
			Error(c, tc.err)
		})
		if w.Code != tc.status {
			t.Errorf("%v: status %d, want %d", tc.err, w.Code, tc.status)
		}
	}
}
