package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/storyshare/storyshare/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	FieldDescription = "description"
	FieldPhoto       = "photo"
	FieldCoordinates = "coordinates"
)

const (
	minDescriptionLength = 10

	// MaxPhotoBytes mirrors the remote service's upload limit.
	MaxPhotoBytes = 1 << 20
)

var allowedPhotoTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
}

type SubmissionValidator struct {
}

func NewSubmissionValidator() Validator {
	return &SubmissionValidator{}
}

func (v *SubmissionValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.StorySubmission:
		return v.validateSubmission(ctx, value, fields...)
	case *models.StorySubmission:
		return v.validateSubmission(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isAllowedPhotoType(mimeType string) bool {
	for _, t := range allowedPhotoTypes {
		if strings.EqualFold(mimeType, t) {
			return true
		}
	}
	return false
}

// Coordinates are only required when explicitly scoped: the map-based
// submission flow demands them, the plain text flow does not.
func (v *SubmissionValidator) validateSubmission(_ context.Context, s models.StorySubmission, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDescription, FieldPhoto}
	}

	for _, f := range fields {
		switch f {
		case FieldDescription:
			if strings.TrimSpace(s.Description) == "" {
				return ErrEmptyDescription
			}
			if len(strings.TrimSpace(s.Description)) < minDescriptionLength {
				return ErrDescriptionTooShort
			}
		case FieldPhoto:
			if len(s.Photo) == 0 {
				return ErrMissingPhoto
			}
			if len(s.Photo) > MaxPhotoBytes {
				return fmt.Errorf("%w: got %s, the limit is %s",
					ErrPhotoTooLarge,
					humanize.Bytes(uint64(len(s.Photo))),
					humanize.Bytes(MaxPhotoBytes))
			}
			if !isAllowedPhotoType(s.PhotoType) {
				return ErrUnsupportedPhotoType
			}
		case FieldCoordinates:
			if s.Lat == nil || s.Lon == nil {
				return ErrMissingCoordinates
			}
			if *s.Lat < -90 || *s.Lat > 90 || *s.Lon < -180 || *s.Lon > 180 {
				return ErrInvalidCoordinates
			}
		}
	}

	return nil
}
