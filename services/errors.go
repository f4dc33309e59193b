package services

import (
	"errors"
	"net/http"
)

// Error is a service failure with the HTTP status it should surface as.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

func BadRequest(msg string) *Error   { return &Error{Status: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Status: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) *Error    { return &Error{Status: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Status: http.StatusNotFound, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Status: http.StatusConflict, Msg: msg} }
func BadGateway(msg string) *Error   { return &Error{Status: http.StatusBadGateway, Msg: msg} }

// StatusOf maps any error to a response code; unknown errors are 500s.
func StatusOf(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}
