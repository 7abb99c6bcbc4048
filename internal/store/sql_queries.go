// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StoryShare Authors

package store

const (
	insertFavorite = `
		INSERT INTO favorites (
			id,
			name,
			description,
			photo_url,
			lat,
			lon,
			created_at,
			favorited_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	deleteFavorite = `
		DELETE FROM favorites
		WHERE id = ?;`

	existsFavorite = `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE id = ?
		);`

	insertPendingSubmission = `
		INSERT INTO pending_submissions (
			description,
			photo_payload,
			photo_name,
			photo_type,
			lat,
			lon,
			auth_token,
			created_at,
			synced,
			retry_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, FALSE, 0);`

	selectPendingSubmissions = `
		SELECT
			id,
			description,
			photo_payload,
			photo_name,
			photo_type,
			lat,
			lon,
			auth_token,
			created_at,
			synced,
			retry_count,
			last_retry
		FROM pending_submissions;`

	deletePendingSubmission = `
		DELETE FROM pending_submissions
		WHERE id = ?;`

	incrementPendingRetry = `
		UPDATE pending_submissions SET
			retry_count = retry_count + 1,
			last_retry  = ?
		WHERE id = ?;`

	selectPendingRetryCount = `
		SELECT retry_count
		FROM pending_submissions
		WHERE id = ?;`

	upsertSession = `
		INSERT INTO session (id, user_id, name, token, logged_in_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			user_id      = excluded.user_id,
			name         = excluded.name,
			token        = excluded.token,
			logged_in_at = excluded.logged_in_at;`

	selectSession = `
		SELECT user_id, name, token, logged_in_at
		FROM session
		WHERE id = 1;`

	deleteSession = `
		DELETE FROM session
		WHERE id = 1;`
)
