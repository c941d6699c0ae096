package errors

import "net/http"

var ErrInternal = &Exception{
	Message:    "internal error",
	StatusCode: http.StatusInternalServerError,
}
