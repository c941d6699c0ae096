package errors

import "net/http"

var ErrForbidden = &Exception{
	Message:    "forbidden",
	StatusCode: http.StatusForbidden,
}
