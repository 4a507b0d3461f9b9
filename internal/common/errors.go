// Package common defines shared constants and sentinel errors used across
// the client layers of legacyvault. Callers should use errors.Is to
// match these values.
package common

import "errors"

// ErrorValidation marks input rejected before any request is made.
var ErrorValidation = errors.New("validation error")
