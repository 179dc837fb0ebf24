package tui

import (
	"fmt"

	"github.com/skim-search/skim-cli/internal/core/ports/driving"
)

// Ports bundles the driving ports the TUI runs against.
type Ports struct {
	// Session is the browse session the TUI navigates.
	Session driving.BrowseSession

	// PageSize is the number of results per page. Zero means the
	// default of 10.
	PageSize int

	// InitialQuery, when set, is searched immediately on startup.
	InitialQuery string
}

// Validate checks that the required ports are present.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingSession)
	}
	return nil
}
