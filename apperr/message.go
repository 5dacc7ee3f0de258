package apperr

import (
	"errors"
	"net/http"
)

var userMessages = map[Kind]string{
	KindTranscriptsDisabled: "Transcripts are disabled for this video.",
	KindNoTranscript:        "No transcript found for this video.",
	KindEmptyTranscript:     "The extracted transcript is empty after processing.",
	KindAuthentication:      "The text generation service is not configured.",
	KindTimeout:             "The request to an external service timed out. Please try again.",
	KindConnectivity:        "Could not reach an external service. Please try again later.",
	KindUpstream:            "An external service returned an error. Please try again later.",
	KindUnknown:             "An unexpected error occurred.",
}

// UserMessage returns a short message that is safe to show to an end user.
// Input errors carry their own message, everything else is reported on the
// category level only.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return userMessages[KindUnknown]
	}
	if e.Kind == KindInvalidInput {
		return e.Message
	}
	if msg, ok := userMessages[e.Kind]; ok {
		return msg
	}
	return userMessages[KindUnknown]
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindTranscriptsDisabled, KindNoTranscript, KindEmptyTranscript:
		return http.StatusUnprocessableEntity
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindConnectivity, KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
