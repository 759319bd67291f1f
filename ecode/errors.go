package ecode

import (
	"fmt"
)

const (
	requiredMsg = "required"
	invalidMsg  = "invalid"
	blankMsg    = "must not be blank"
)

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return requiredMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// FieldIsBlank returns field blank message
func FieldIsBlank(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], blankMsg)
	}
	return blankMsg
}
