package annotate

import "errors"

// ErrInvalidInput is returned for keyframe data that breaks the store or
// interpolation contract. Callers match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
