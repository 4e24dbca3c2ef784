package storage

import "errors"

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrUsernameTaken  = errors.New("username already registered")
	ErrUserNotFound   = errors.New("user not found")
	ErrLinkNotFound   = errors.New("link not found")
	ErrFolderNotFound = errors.New("folder not found")
)
