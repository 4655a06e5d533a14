package models

import "errors"

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrEmailTaken      = errors.New("student with this email already exists")
	ErrFieldsRequired  = errors.New("all fields are required")
	ErrInvalidEmail    = errors.New("invalid email format")
)
