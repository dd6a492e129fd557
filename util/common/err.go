package common

import (
	"errors"
)

// Combine merges multiple errors into one, skipping nils.
func Combine(errs ...error) error {
	errText := ""
	for _, err := range errs {
		if err != nil {
			if errText == "" {
				errText = err.Error()
			} else {
				errText += ", " + err.Error()
			}
		}
	}
	if errText != "" {
		return errors.New(errText)
	}
	return nil
}
