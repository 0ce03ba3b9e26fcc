package result

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Result_WriteResponse(t *testing.T) {
	testCases := []struct {
		name         string
		r            Result
		expectStatus int
		expectBody   string
		expectType   string
	}{
		{
			name:         "OK",
			r:            OK(map[string]int{"result": 3}),
			expectStatus: http.StatusOK,
			expectBody:   `{"result":3}`,
			expectType:   "application/json",
		},
		{
			name:         "not found",
			r:            NotFound(),
			expectStatus: http.StatusNotFound,
			expectBody:   `{"error":"The requested resource was not found","status":404}`,
			expectType:   "application/json",
		},
		{
			name:         "bad expression with position",
			r:            BadExpression("division by zero", 2, 4, "eval failed"),
			expectStatus: http.StatusBadRequest,
			expectBody:   `{"error":"division by zero","status":400,"line":2,"position":4}`,
			expectType:   "application/json",
		},
		{
			name:         "bad expression without position",
			r:            BadExpression("unexpected end of input", 0, 0),
			expectStatus: http.StatusBadRequest,
			expectBody:   `{"error":"unexpected end of input","status":400}`,
			expectType:   "application/json",
		},
		{
			name:         "text error",
			r:            TextErr(http.StatusInternalServerError, "oh no", "panic"),
			expectStatus: http.StatusInternalServerError,
			expectBody:   "oh no",
			expectType:   "text/plain; charset=utf-8",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := httptest.NewRecorder()

			tc.r.WriteResponse(w)

			assert.Equal(tc.expectStatus, w.Code)
			assert.Equal(tc.expectBody, w.Body.String())
			assert.Equal(tc.expectType, w.Header().Get("Content-Type"))
		})
	}
}

func Test_Result_WithHeader(t *testing.T) {
	assert := assert.New(t)
	w := httptest.NewRecorder()

	orig := Redirection("/api/v1/info")
	withHdr := orig.WithHeader("X-Remora", "yes")
	withHdr.WriteResponse(w)

	assert.Empty(orig.hdrs)
	assert.Equal(http.StatusPermanentRedirect, w.Code)
	assert.Equal("/api/v1/info", w.Header().Get("Location"))
	assert.Equal("yes", w.Header().Get("X-Remora"))
}

func Test_Result_WriteResponse_Unpopulated(t *testing.T) {
	assert.Panics(t, func() {
		Result{}.WriteResponse(httptest.NewRecorder())
	})
}

func Test_InternalMsg(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("not found", NotFound().InternalMsg)
	assert.Equal("no evaluation 12", NotFound("no evaluation %d", 12).InternalMsg)
	assert.Equal("created", Created(nil).InternalMsg)
}
