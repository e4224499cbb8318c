package reference

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrUnsupportedCrop matches any UnsupportedCropError via errors.Is.
var ErrUnsupportedCrop = eris.New("unsupported crop")

// UnsupportedCropError is returned when a crop identifier has no reference
// profile or weather requirement. It is the only lookup failure surfaced to
// callers; a missing district degrades to neutral defaults instead.
type UnsupportedCropError struct {
	CropID string
}

func (e *UnsupportedCropError) Error() string {
	return fmt.Sprintf("unsupported crop %q", e.CropID)
}

// Is reports whether target is ErrUnsupportedCrop.
func (e *UnsupportedCropError) Is(target error) bool {
	return target == ErrUnsupportedCrop
}
