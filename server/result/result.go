// Package result contains results that are used to write out API responses.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the JSON body of every error result.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`

	// Line and Position locate the problem in a submitted expression. Both
	// are omitted when the error has no position.
	Line     int `json:"line,omitempty"`
	Position int `json:"position,omitempty"`
}

// internalMsg builds the message that is logged but never shown to the
// client. If msg is empty, def is used. Otherwise the first element of msg is
// a format string and the rest are its arguments.
func internalMsg(def string, msg []interface{}) string {
	if len(msg) == 0 {
		return def
	}
	return fmt.Sprintf(msg[0].(string), msg[1:]...)
}

// OK is an HTTP-200 with respObj as the body. The optional internal message
// defaults to "OK".
func OK(respObj interface{}, internal ...interface{}) Result {
	return Response(http.StatusOK, respObj, "%s", internalMsg("OK", internal))
}

// Created is an HTTP-201 with respObj as the body. The optional internal
// message defaults to "created".
func Created(respObj interface{}, internal ...interface{}) Result {
	return Response(http.StatusCreated, respObj, "%s", internalMsg("created", internal))
}

// BadRequest is an HTTP-400 that shows userMsg to the client.
func BadRequest(userMsg string, internal ...interface{}) Result {
	return Err(http.StatusBadRequest, userMsg, "%s", internalMsg("bad request", internal))
}

// BadExpression is an HTTP-400 for an expression that could not be evaluated.
// line and pos give where in the expression the problem is; pass 0 for both
// if it is not known.
func BadExpression(userMsg string, line, pos int, internal ...interface{}) Result {
	r := BadRequest(userMsg, internal...)
	r.resp = ErrorResponse{
		Error:    userMsg,
		Status:   r.Status,
		Line:     line,
		Position: pos,
	}
	return r
}

// MethodNotAllowed is an HTTP-405 naming the method and path of req.
func MethodNotAllowed(req *http.Request, internal ...interface{}) Result {
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return Err(http.StatusMethodNotAllowed, userMsg, "%s", internalMsg("method not allowed", internal))
}

// NotFound is an HTTP-404 with a generic message for the client.
func NotFound(internal ...interface{}) Result {
	return Err(http.StatusNotFound, "The requested resource was not found", "%s", internalMsg("not found", internal))
}

// InternalServerError is an HTTP-500 with a generic message for the client.
// The details belong in the internal message.
func InternalServerError(internal ...interface{}) Result {
	return Err(http.StatusInternalServerError, "An internal server error occurred", "%s", internalMsg("internal server error", internal))
}

// Response returns a successful JSON result. If status is
// http.StatusNoContent, respObj is not read and may be nil.
func Response(status int, respObj interface{}, internalFmt string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalFmt, v...),
		resp:        respObj,
	}
}

// Err returns an error result whose body is an ErrorResponse holding userMsg.
func Err(status int, userMsg, internalFmt string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalFmt, v...),
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// Redirection is a permanent redirect to uri.
func Redirection(uri string) Result {
	return Result{
		Status:      http.StatusPermanentRedirect,
		InternalMsg: "redirect -> " + uri,
		redir:       uri,
	}
}

// TextErr is like Err but writes userMsg as plain text instead of JSON.
func TextErr(status int, userMsg, internalFmt string, v ...interface{}) Result {
	return Result{
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalFmt, v...),
		resp:        userMsg,
	}
}

// Result is the outcome of an endpoint: what to write to the client and what
// to log.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp  interface{}
	redir string // only used for redirects
	hdrs  [][2]string

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

func (r Result) WithHeader(name, val string) Result {
	erCopy := r
	erCopy.hdrs = make([][2]string, len(r.hdrs), len(r.hdrs)+1)
	copy(erCopy.hdrs, r.hdrs)

	erCopy.hdrs = append(erCopy.hdrs, [2]string{name, val})
	return erCopy
}

// PrepareMarshaledResponse sets the respJSONBytes to the marshaled version of
// the response if required. If required, and there is a problem marshaling, an
// error is returned. If not required, nil error is always returned.
//
// If PrepareMarshaledResponse has been successfully called at least once for
// r, calling this method again has no effect.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent && r.redir == "" {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r Result) WriteResponse(w http.ResponseWriter) {
	// if this hasn't been properly created, panic
	if r.Status == 0 {
		panic("result not populated")
	}

	err := r.PrepareMarshaledResponse()
	if err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte

	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if r.redir == "" {
			respBytes = r.respJSONBytes
		}
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if r.Status != http.StatusNoContent && r.redir == "" {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}

	// if there is a redir, handle that now
	if r.redir != "" {
		w.Header().Set("Location", r.redir)
	}

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent {
		w.Write(respBytes)
	}
}
