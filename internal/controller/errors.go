package controller

import "errors"

// ValidationError is a missing or unusable local input. No request was sent.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

const (
	msgEnterFilename = "Please enter a filename."
	msgSelectFile    = "Please select a file first."
)
