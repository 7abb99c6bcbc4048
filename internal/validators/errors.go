package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrEmptyDescription     = errors.New("description is required")
	ErrDescriptionTooShort  = errors.New("description must be at least 10 characters")
	ErrMissingPhoto         = errors.New("photo is required")
	ErrPhotoTooLarge        = errors.New("photo is too large")
	ErrUnsupportedPhotoType = errors.New("photo must be a JPEG or PNG image")
	ErrMissingCoordinates   = errors.New("both latitude and longitude are required")
	ErrInvalidCoordinates   = errors.New("coordinates are out of range")
)
