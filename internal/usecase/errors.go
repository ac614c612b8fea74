package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrNoRecommendations  = errors.New("no matching postings found")
	ErrTrainingInProgress = errors.New("training already in progress")
	ErrInternal           = errors.New("internal error")
)
