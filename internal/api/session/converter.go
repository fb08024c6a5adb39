package session

import (
	"errors"
	"net/http"

	"github.com/futig/ragdesk/internal/entity"
	domain "github.com/futig/ragdesk/internal/session"
)

// AskRequest is the body of POST /api/session/ask
type AskRequest struct {
	Question string `json:"question"`
}

// StateResponse is returned by every session endpoint, errors included
type StateResponse struct {
	View          domain.View           `json:"view"`
	Answer        string                `json:"answer,omitempty"`
	Notifications []entity.Notification `json:"notifications"`
	Error         string                `json:"error,omitempty"`
	Message       string                `json:"message,omitempty"`
}

func toStateResponse(s *domain.Session, notifications []entity.Notification) StateResponse {
	if notifications == nil {
		notifications = []entity.Notification{}
	}
	return StateResponse{
		View:          s.Snapshot().View(),
		Notifications: notifications,
	}
}

// statusFor maps controller and validation errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case entity.IsValidation(err):
		return http.StatusBadRequest
	case entity.IsPrecondition(err):
		return http.StatusConflict
	case errors.Is(err, entity.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
