package repository

import "errors"

var (
	// ErrInvalidImageURL indicates an invalid capture or mask URL
	ErrInvalidImageURL = errors.New("invalid image URL")

	// ErrImageNotFound indicates the capture was not found
	ErrImageNotFound = errors.New("image not found")

	// ErrMaskMismatch indicates the mask does not match the capture dimensions
	ErrMaskMismatch = errors.New("mask dimensions do not match image")
)
