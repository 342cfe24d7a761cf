package domain

import "errors"

var (
	ErrScenarioRunning   = errors.New("scenario already running")
	ErrUnsupportedLocale = errors.New("unsupported locale")
	ErrUnknownAgent      = errors.New("unknown agent")
)
