/*
Package core holds types and helpers shared by all karafx packages.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package core

import (
	"errors"
	"fmt"
)

// General error codes
const (
	NOERROR      int = 0
	EMISSING     int = 122 // prerequisite data or resource does not exist
	EINVALID     int = 123 // validation failed, malformed argument
	EUNSUPPORTED int = 124 // capability not supported by environment or document
	EINTERNAL    int = 125 // internal error
	ETIMING      int = 126 // end of an interval would precede its start
	EREDEFINED   int = 127 // one-shot process-wide value set a second time
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EMISSING:
		return "missing data"
	case EINVALID:
		return "invalid"
	case EUNSUPPORTED:
		return "unsupported operation"
	case EINTERNAL:
		return "internal error"
	case ETIMING:
		return "invalid timing"
	case EREDEFINED:
		return "environment redefinition"
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	if e.msg != "" && e.msg != e.error.Error() {
		return fmt.Sprintf("[%d] %v: %s", e.code, e.error, e.msg)
	}
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting the code's default text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// --- Taxonomy --------------------------------------------------------------

// Unsupported signals a capability (styles, images, video-info, line-reading,
// line-writing) not supported by the active environment or document.
func Unsupported(format string, v ...interface{}) error {
	return Error(EUNSUPPORTED, format, v...)
}

// InvalidTiming signals that an operation would make end < start.
func InvalidTiming(format string, v ...interface{}) error {
	return Error(ETIMING, format, v...)
}

// Redefinition signals an attempt to install the process-wide environment twice.
func Redefinition(format string, v ...interface{}) error {
	return Error(EREDEFINED, format, v...)
}

// MissingData signals that a processor lacks prerequisite data.
func MissingData(format string, v ...interface{}) error {
	return Error(EMISSING, format, v...)
}

// Invalid signals a malformed argument, e.g. a slice with stop < start.
func Invalid(format string, v ...interface{}) error {
	return Error(EINVALID, format, v...)
}

// Is reports whether err carries error code code.
func Is(err error, code int) bool {
	return err != nil && Code(err) == code
}
