package util

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTutorialNotFound   = errors.New("tutorial not found")
	ErrInvalidVideoExt    = errors.New("unsupported video file extension")
)
