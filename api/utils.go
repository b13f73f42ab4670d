package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"hermannm.dev/csvexplorer/session"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

func sendJSON(res http.ResponseWriter, value any) {
	sendJSONWithStatus(res, http.StatusOK, value)
}

func sendJSONWithStatus(res http.ResponseWriter, statusCode int, value any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)

	if err := json.NewEncoder(res).Encode(value); err != nil {
		log.ErrorCause(err, "failed to serialize response")
	}
}

// sendError picks the status code from the type of the error: invalid input from the client gives
// 400, unknown sessions 404, and everything else 500.
func sendError(res http.ResponseWriter, err error, message string) {
	var parseErr session.ParseError
	var validationErr session.ValidationError

	switch {
	case errors.As(err, &parseErr), errors.As(err, &validationErr):
		sendClientError(res, err, message)
	case errors.Is(err, ErrSessionNotFound):
		sendErrorWithStatus(res, http.StatusNotFound, err, message)
	default:
		sendServerError(res, err, message)
	}
}

func sendClientError(res http.ResponseWriter, err error, message string) {
	sendErrorWithStatus(res, http.StatusBadRequest, err, message)
}

func sendServerError(res http.ResponseWriter, err error, message string) {
	sendErrorWithStatus(res, http.StatusInternalServerError, err, message)
}

func sendErrorWithStatus(res http.ResponseWriter, statusCode int, err error, message string) {
	if err != nil {
		if message == "" {
			message = err.Error()
		} else {
			message = wrap.Error(err, message).Error()
		}
	}

	if statusCode >= http.StatusInternalServerError {
		log.ErrorCause(err, "server error")
	} else {
		log.Debugf("client error (%d): %s", statusCode, message)
	}

	http.Error(res, message, statusCode)
}

func decodeJSONBody(req *http.Request, target any) error {
	if err := json.NewDecoder(req.Body).Decode(target); err != nil {
		return session.ValidationError{Message: "invalid JSON request body", Cause: err}
	}
	return nil
}
