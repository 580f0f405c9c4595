package service

import (
	"fmt"
	"strings"
)

// Cause is the closed set of failure kinds an operation can report.
// The numeric values are part of the wire contract.
type Cause int

const (
	ErrNotFound      Cause = 1
	ErrHashMismatch  Cause = 2
	ErrAlreadyExists Cause = 3
	ErrDBError       Cause = 4
)

var causeMessages = map[Cause]string{
	ErrNotFound:      "File not found",
	ErrHashMismatch:  "Hash does not match",
	ErrAlreadyExists: "File with the same MD5 already exists",
	ErrDBError:       "Exception occurs when connecting database",
}

// Code returns the numeric code sent to clients.
func (c Cause) Code() int { return int(c) }

// Message returns the fixed human-readable message for c.
func (c Cause) Message() string {
	if m, ok := causeMessages[c]; ok {
		return m
	}
	return fmt.Sprintf("unknown failure %d", int(c))
}

func (c Cause) Error() string { return c.Message() }

// Failure is the error every CorpusService operation returns when it does not succeed.
// errors.Is(err, ErrNotFound) and friends match on Cause.
type Failure struct {
	Cause Cause
	// Fingerprints names the documents involved, e.g. the missing ones in a comparison.
	Fingerprints []string
	// Err is the underlying store error, if any. It is logged, never sent to clients.
	Err error
}

func (f *Failure) Error() string {
	var sb strings.Builder
	sb.WriteString(f.Cause.Message())
	if len(f.Fingerprints) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(f.Fingerprints, ", "))
		sb.WriteString(")")
	}
	if f.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(f.Err.Error())
	}
	return sb.String()
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Cause}
	}
	return []error{f.Cause, f.Err}
}

func fail(c Cause, err error, fps ...string) *Failure {
	return &Failure{Cause: c, Fingerprints: fps, Err: err}
}
