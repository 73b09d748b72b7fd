package util

import "errors"

var (
	ErrMissingFields           = errors.New("please provide all required fields")
	ErrPasswordTooShort        = errors.New("password must be at least 6 characters")
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailRegistered         = errors.New("email already registered")
	ErrUsernameTaken           = errors.New("username already taken")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrTokenRevoked            = errors.New("token revoked")
	ErrSkillNotFound           = errors.New("skill not found")
	ErrSkillFieldsRequired     = errors.New("please provide skillId, title, and categoryId")
	ErrSkillExists             = errors.New("skill ID already exists")
	ErrInvalidDifficulty       = errors.New("difficulty must be beginner, intermediate or advanced")
	ErrProgressNotFound        = errors.New("progress not found")
	ErrPersonalizationNotFound = errors.New("no personalization found")
	ErrCatalogEmpty            = errors.New("no skills found in database. Please seed the database first")
	ErrInvalidFileType         = errors.New("invalid file type")
)
