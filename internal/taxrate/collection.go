// Package taxrate holds the tax rate table of an editing session and enforces
// that no two active rates share a scope.
package taxrate

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

// ConfirmFunc is asked to affirm a warning; returning false abandons the
// operation.
type ConfirmFunc func(w *errors.Warning) bool

// Filter matches records exactly on every non-nil field
type Filter struct {
	Country *string
	Region  *string
	Global  *bool
	Status  *domain.TaxRateStatus
}

func (f Filter) matches(r Record) bool {
	if f.Country != nil && r.Country != *f.Country {
		return false
	}
	if f.Region != nil && r.Region != *f.Region {
		return false
	}
	if f.Global != nil && r.Global != *f.Global {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	return true
}

// Collection is an ordered set of tax rate records. It is not safe for
// concurrent use: the duplicate check and the write that follows it are not
// atomic, so callers sharing a collection must serialize every mutation.
type Collection struct {
	records []Record
}

// NewCollection creates a collection holding the given records in order
func NewCollection(records ...Record) *Collection {
	c := &Collection{records: make([]Record, 0, len(records))}
	for _, r := range records {
		if r.Key == "" {
			r.Key = uuid.NewString()
		}
		r.Unsaved = false
		c.records = append(c.records, r)
	}
	return c
}

// Len returns the number of records
func (c *Collection) Len() int {
	return len(c.records)
}

// Records returns a copy of every record in order
func (c *Collection) Records() []Record {
	return append([]Record(nil), c.records...)
}

// Get returns the record with the given key
func (c *Collection) Get(key string) (Record, bool) {
	i := c.indexOf(key)
	if i < 0 {
		return Record{}, false
	}
	return c.records[i], true
}

// Where returns every record matching the filter
func (c *Collection) Where(f Filter) []Record {
	out := make([]Record, 0)
	for _, r := range c.records {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Add validates a new rate and appends it as active.
//
// The country is required; AllCountries is stored as an empty country with
// no region and Global set. An active rate with the same scope, or a negative
// amount, rejects the rate. A zero amount is a warning that confirm must
// affirm, otherwise the warning is returned and nothing changes.
func (c *Collection) Add(rec Record, confirm ConfirmFunc) (Record, error) {
	rec.Country = strings.TrimSpace(rec.Country)
	rec.Region = strings.TrimSpace(rec.Region)

	if rec.Country == "" {
		return Record{}, &errors.ErrValidation{
			Code:    errors.CodeEmptyCountry,
			Message: "Please select a country",
		}
	}

	rec = normalize(rec)

	if conflict, ok := c.activeConflict(rec, ""); ok {
		return Record{}, duplicateError(conflict)
	}

	if rec.Amount.IsNegative() {
		return Record{}, &errors.ErrValidation{
			Code:    errors.CodeNegativeAmount,
			Message: "Tax rates cannot be negative",
		}
	}

	if rec.Amount.IsZero() {
		w := &errors.Warning{
			Code:    errors.CodeZeroAmountRate,
			Message: "Are you sure you want to add a 0% tax rate?",
		}
		if confirm == nil || !confirm(w) {
			return Record{}, w
		}
	}

	if rec.Key == "" {
		rec.Key = uuid.NewString()
	}
	rec.Status = domain.TaxRateStatusActive
	rec.Unsaved = false
	rec.Selected = false

	c.records = append(c.records, rec)
	return rec, nil
}

// Activate marks a record active unless another active record already
// covers the same scope. A rejected record keeps its status.
func (c *Collection) Activate(key string) error {
	i := c.indexOf(key)
	if i < 0 {
		return notFound(key)
	}

	if conflict, ok := c.activeConflict(c.records[i], key); ok {
		return duplicateError(conflict)
	}

	c.records[i].Status = domain.TaxRateStatusActive
	return nil
}

// Deactivate marks a record inactive
func (c *Collection) Deactivate(key string) error {
	i := c.indexOf(key)
	if i < 0 {
		return notFound(key)
	}
	c.records[i].Status = domain.TaxRateStatusInactive
	return nil
}

// Remove deletes a record
func (c *Collection) Remove(key string) error {
	i := c.indexOf(key)
	if i < 0 {
		return notFound(key)
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	return nil
}

// Select sets the bulk selection flag of a record
func (c *Collection) Select(key string, selected bool) error {
	i := c.indexOf(key)
	if i < 0 {
		return notFound(key)
	}
	c.records[i].Selected = selected
	return nil
}

// SelectOnly selects exactly the records with the given keys
func (c *Collection) SelectOnly(keys []string) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	for i := range c.records {
		c.records[i].Selected = want[c.records[i].Key]
	}
}

// BulkApplyStatus sets status on every selected record and returns how many
// were updated. Unlike Activate it does not check for duplicate scopes.
func (c *Collection) BulkApplyStatus(status domain.TaxRateStatus) int {
	n := 0
	for i := range c.records {
		if c.records[i].Selected {
			c.records[i].Status = status
			n++
		}
	}
	return n
}

// SetID records the stored identifier of a saved record
func (c *Collection) SetID(key string, id int64) error {
	i := c.indexOf(key)
	if i < 0 {
		return notFound(key)
	}
	c.records[i].ID = &id
	return nil
}

func (c *Collection) indexOf(key string) int {
	for i, r := range c.records {
		if r.Key == key {
			return i
		}
	}
	return -1
}

// activeConflict finds an active record other than exclude sharing rec's scope
func (c *Collection) activeConflict(rec Record, exclude string) (Record, bool) {
	active := domain.TaxRateStatusActive
	matches := c.Where(Filter{
		Country: &rec.Country,
		Region:  &rec.Region,
		Global:  &rec.Global,
		Status:  &active,
	})
	for _, m := range matches {
		if m.Key != exclude {
			return m, true
		}
	}
	return Record{}, false
}

func normalize(rec Record) Record {
	if rec.Country == AllCountries {
		rec.Country = ""
		rec.Region = ""
		rec.Global = true
		return rec
	}
	rec.Global = rec.Region == ""
	return rec
}

func duplicateError(conflict Record) error {
	scope := conflict.ScopeLabel()
	return &errors.ErrValidation{
		Code:    errors.CodeDuplicateRate,
		Message: fmt.Sprintf("Duplicate tax rates are not allowed. Please deactivate the existing %s tax rate before adding or activating another.", scope),
		Scope:   scope,
	}
}

func notFound(key string) error {
	return &errors.ErrNotFound{Resource: "tax rate", ID: key}
}
