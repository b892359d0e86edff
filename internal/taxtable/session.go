package taxtable

import (
	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/taxrate"
)

// RegionOptions are the subdivisions offered for the draft row's country
type RegionOptions struct {
	Country string
	Regions []domain.Region
	// NoRegions is set when the country has no subdivisions to choose from
	NoRegions bool
}

// RegionResult is delivered when a region lookup finishes
type RegionResult struct {
	Token   uint64
	Options RegionOptions
	Err     error
}

// Session is the state of one tax rate editing session. The caller owns it
// and passes it to every Controller operation; it must only be touched from
// one goroutine at a time.
type Session struct {
	Rates *taxrate.Collection
	// Draft is the new row being composed
	Draft   taxrate.Record
	Regions RegionOptions
	// Dirty is set by every successful change and cleared by a successful save
	Dirty   bool
	ShowAll bool

	regionToken uint64
}

// ConfirmOnExit reports whether leaving the session should ask the user to
// confirm discarding unsaved changes.
func (s *Session) ConfirmOnExit() bool {
	return s.Dirty
}
