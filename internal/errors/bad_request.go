package errors

import "net/http"

var ErrBadRequest = &Exception{
	Message:    "bad request",
	StatusCode: http.StatusBadRequest,
}
