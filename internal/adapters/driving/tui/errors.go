package tui

import "errors"

// ErrMissingSession is returned when no browse session is provided.
var ErrMissingSession = errors.New("tui: browse session is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
