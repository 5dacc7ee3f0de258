package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"ewintr.nl/yt2blog/apperr"
	"golang.org/x/exp/slog"
)

const maxBodySize = 1 << 20

func Index(w http.ResponseWriter) {
	Message(w, http.StatusOK, "yt2blog index")
}

func Message(w http.ResponseWriter, status int, message string, details ...any) {
	response := struct {
		Message string `json:"message"`
		Details []any  `json:"details,omitempty"`
	}{
		Message: message,
		Details: details,
	}
	JSON(w, status, response)
}

// Error writes a failed response. The message is shown to the end user as is.
func Error(w http.ResponseWriter, status int, message string) {
	response := struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{
		Success: false,
		Error:   message,
	}
	JSON(w, status, response)
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	body, marshalErr := json.Marshal(v)
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"success": false, "error": %q}`, marshalErr.Error())
		return
	}

	w.WriteHeader(status)
	w.Write(body)
}

// decodeBody reads the json request body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperr.NewInvalidInputWrap("Invalid request body.", err)
	}

	return nil
}

// returnErr logs the failure with all details and answers with the status
// and message that belong to its category.
func returnErr(logger *slog.Logger, w http.ResponseWriter, message string, err error) {
	logger.Error(message, slog.String("kind", apperr.KindOf(err).String()), slog.String("error", err.Error()))
	Error(w, apperr.HTTPStatus(err), apperr.UserMessage(err))
}
