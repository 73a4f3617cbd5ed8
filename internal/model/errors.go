package model

import "errors"

// Common errors used across the application
var (
	// Controller errors
	ErrControlChannelClosed = errors.New("control channel closed")
	ErrPlayerChannelClosed  = errors.New("player channel closed")

	// Move errors
	ErrInvalidMoveFormat = errors.New("invalid move format")
	ErrInvalidMove       = errors.New("invalid move")

	// Configuration errors
	ErrUnknownGame = errors.New("unknown game")
	ErrUnknownMode = errors.New("unknown game mode")

	// Auth errors
	ErrWrongPassword    = errors.New("wrong password")
	ErrUsernameNotFound = errors.New("username not found")
	ErrUsernameExists   = errors.New("username already exists")
	ErrMalformedMessage = errors.New("malformed message")
	ErrConnectionClosed = errors.New("connection closed")

	// Storage errors
	ErrStateNotFound = errors.New("no state published")
)
