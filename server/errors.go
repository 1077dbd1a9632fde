package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eliauren/sqs-dlq-redrive-webapp/auth"
	"github.com/eliauren/sqs-dlq-redrive-webapp/aws"
)

// ErrRegionNotAllowed reports a request for a region outside the
// environment's permitted region set.
var ErrRegionNotAllowed = errors.New("region not allowed for environment")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnknownProfile):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrUnknownEnvironment):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrNoActiveSession):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrMissingAccountInfo):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrRegionNotAllowed):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, aws.ErrIncompleteResponse):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, aws.ErrIncompleteCredentials):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
