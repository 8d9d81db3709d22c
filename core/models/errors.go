package models

import "errors"

// ErrModelMismatch is returned when decoding JSON whose "__model__" field names a different model.
var ErrModelMismatch = errors.New("model discriminator mismatch")
