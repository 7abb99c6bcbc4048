package service

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyFavorite  = errors.New("story is already a favorite")

	ErrRegisterOnServer = errors.New("registration failed on server")
	ErrLoginOnServer    = errors.New("login failed on server")
	ErrCaptureFailed    = errors.New("could not save story for later delivery")
)
