// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// StorySubmission is the user's input for a new story: description text, the
// raw photo bytes, and coordinates picked on the map.
type StorySubmission struct {
	Description string
	Photo       []byte
	PhotoName   string
	PhotoType   string
	Lat         *float64
	Lon         *float64
}

// PendingSubmission is a story capture that could not reach the remote
// service and is queued locally for later delivery. A record exists if and
// only if it has not yet been acknowledged by the server: deletion is the
// only "synced" signal.
type PendingSubmission struct {
	ID           int64      `json:"id"`
	Description  string     `json:"description"`
	PhotoPayload string     `json:"photo_payload"`
	PhotoName    string     `json:"photo_name"`
	PhotoType    string     `json:"photo_type"`
	Lat          *float64   `json:"lat,omitempty"`
	Lon          *float64   `json:"lon,omitempty"`
	AuthToken    string     `json:"auth_token"`
	CreatedAt    time.Time  `json:"created_at"`
	Synced       bool       `json:"synced"`
	RetryCount   int        `json:"retry_count"`
	LastRetry    *time.Time `json:"last_retry,omitempty"`
}

// ErrInvalidPhotoPayload is returned when a stored photo payload cannot be
// decoded back into the original bytes.
var ErrInvalidPhotoPayload = errors.New("invalid photo payload")

// EncodePhoto converts raw photo bytes into the text-safe data-URI form
// persisted inside a PendingSubmission, e.g. "data:image/jpeg;base64,...".
// The MIME type travels inside the payload so the original blob can be
// reconstructed byte for byte.
func EncodePhoto(photo []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(photo))
}

// DecodePhoto reconstructs the original photo bytes from the stored payload.
func (p PendingSubmission) DecodePhoto() ([]byte, error) {
	_, encoded, found := strings.Cut(p.PhotoPayload, ",")
	if !found {
		return nil, fmt.Errorf("%w: missing data-uri separator", ErrInvalidPhotoPayload)
	}

	photo, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPhotoPayload, err)
	}

	return photo, nil
}
