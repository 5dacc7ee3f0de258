package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindTranscriptsDisabled
	KindNoTranscript
	KindEmptyTranscript
	KindAuthentication
	KindTimeout
	KindConnectivity
	KindUpstream
	KindParse
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown",
	KindInvalidInput:        "invalid input",
	KindTranscriptsDisabled: "transcripts disabled",
	KindNoTranscript:        "no transcript",
	KindEmptyTranscript:     "empty transcript",
	KindAuthentication:      "authentication",
	KindTimeout:             "timeout",
	KindConnectivity:        "connectivity",
	KindUpstream:            "upstream",
	KindParse:               "parse",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Error is a failure tagged with its category. Status is only set for
// upstream failures and holds the status code the upstream answered with.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewInvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

func NewInvalidInputWrap(msg string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg, Err: err}
}

func NewTranscriptsDisabled(videoID string) *Error {
	return &Error{Kind: KindTranscriptsDisabled, Message: fmt.Sprintf("transcripts are disabled for video %s", videoID)}
}

func NewNoTranscript(videoID, reason string) *Error {
	msg := fmt.Sprintf("no transcript found for video %s", videoID)
	if reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, reason)
	}
	return &Error{Kind: KindNoTranscript, Message: msg}
}

func NewEmptyTranscript(videoID string) *Error {
	return &Error{Kind: KindEmptyTranscript, Message: fmt.Sprintf("transcript for video %s is empty after processing", videoID)}
}

func NewAuthentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func NewTimeout(msg string, err error) *Error {
	return &Error{Kind: KindTimeout, Message: msg, Err: err}
}

func NewConnectivity(msg string, err error) *Error {
	return &Error{Kind: KindConnectivity, Message: msg, Err: err}
}

func NewUpstream(status int, msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Status: status, Err: err}
}

// NewTransport separates deadlines from other network failures.
func NewTransport(service string, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewTimeout(fmt.Sprintf("request to %s timed out", service), err)
	}

	return NewConnectivity(fmt.Sprintf("could not reach %s", service), err)
}

func NewParse(msg string, err error) *Error {
	return &Error{Kind: KindParse, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
