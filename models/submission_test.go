package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePhoto_DataURIForm(t *testing.T) {
	payload := EncodePhoto([]byte{0xFF, 0xD8, 0xFF}, "image/jpeg")

	assert.True(t, strings.HasPrefix(payload, "data:image/jpeg;base64,"))
}

func TestPendingSubmission_DecodePhoto_RoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 1024)

	p := PendingSubmission{
		PhotoPayload: EncodePhoto(original, "image/png"),
		PhotoType:    "image/png",
	}

	decoded, err := p.DecodePhoto()
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestPendingSubmission_DecodePhoto_MissingSeparator(t *testing.T) {
	p := PendingSubmission{PhotoPayload: "not-a-data-uri"}

	_, err := p.DecodePhoto()
	require.ErrorIs(t, err, ErrInvalidPhotoPayload)
}

func TestPendingSubmission_DecodePhoto_BadBase64(t *testing.T) {
	p := PendingSubmission{PhotoPayload: "data:image/jpeg;base64,@@@"}

	_, err := p.DecodePhoto()
	require.ErrorIs(t, err, ErrInvalidPhotoPayload)
}

func TestNewFavoriteRecord_SnapshotsStoryFields(t *testing.T) {
	lat, lon := -6.2, 106.8
	story := Story{
		ID:          "story-42",
		Name:        "Dinda",
		Description: "Sunset at Kuta beach",
		PhotoURL:    "https://cdn.example.com/photos/42.jpg",
		Lat:         &lat,
		Lon:         &lon,
	}

	fav := NewFavoriteRecord(story)

	assert.Equal(t, story.ID, fav.ID)
	assert.Equal(t, story.Name, fav.Name)
	assert.Equal(t, story.Description, fav.Description)
	assert.Equal(t, story.PhotoURL, fav.PhotoURL)
	assert.Equal(t, story.Lat, fav.Lat)
	assert.Equal(t, story.Lon, fav.Lon)
	assert.True(t, fav.FavoritedAt.IsZero())
}
