// Package filter owns the listing filter criteria and their translation to
// and from the flat query-parameter form the web client persists in its URL.
// The package is pure: callers hand in the parsed query values and the
// configured defaults, and get structured criteria back.
package filter

import (
	"fmt"
	"net/url"
	"strconv"

	"shopkeeper/internal/db/models"
)

// Persisted query keys. Array-valued fields repeat the key once per value.
const (
	KeyStatus    = "status"
	KeyType      = "type"
	KeyOwner     = "owner"
	KeyHasIssues = "has_issues"
)

// Field names a multivalue criteria field for Toggle
type Field string

const (
	// FieldStatuses is the listing status set
	FieldStatuses Field = "statuses"
	// FieldTypes is the listing type set
	FieldTypes Field = "types"
	// FieldOwners is the owner restriction set
	FieldOwners Field = "owners"
)

// ValidationError reports a persisted filter value that could not be parsed.
// Callers recover by falling back to the default criteria; it never crashes
// the view.
type ValidationError struct {
	Key   string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid filter value for %q: %q", e.Key, e.Value)
}

// Defaults are the criteria that apply when the persisted form carries no
// explicit filter. They are configuration, not constants: deployments have
// shipped with different default status sets.
type Defaults struct {
	Statuses []models.ListingStatus
	Types    []models.ListingType
}

// StandardDefaults returns the shipped default criteria: open and pending
// listings of both types.
func StandardDefaults() Defaults {
	return Defaults{
		Statuses: []models.ListingStatus{models.ListingStatusOpen, models.ListingStatusPending},
		Types:    []models.ListingType{models.ListingTypeBuy, models.ListingTypeSell},
	}
}

// Criteria is one immutable snapshot of the active listing filters.
//
// For Statuses and Types a nil slice means "not set" (the defaults apply),
// while a non-nil empty slice is an explicit empty set meaning "show
// nothing". The two must stay distinguishable: reset depends on unset fields
// serializing to nothing at all, and a deliberate empty filter must not be
// silently replaced by the defaults.
type Criteria struct {
	Statuses  []models.ListingStatus
	Types     []models.ListingType
	Owners    []string
	HasIssues *bool
}

// Parse reads criteria from the persisted query form. Missing status/type
// keys stay unset, so the configured defaults apply; a present-but-empty key
// is preserved as an explicit empty set. Unknown enum values fail with a
// ValidationError naming the offending key and value.
func Parse(values url.Values) (Criteria, error) {
	var c Criteria

	if raw, ok := values[KeyStatus]; ok {
		statuses, err := parseStatuses(raw)
		if err != nil {
			return Criteria{}, err
		}
		c.Statuses = statuses
	}

	if raw, ok := values[KeyType]; ok {
		types, err := parseTypes(raw)
		if err != nil {
			return Criteria{}, err
		}
		c.Types = types
	}

	if raw, ok := values[KeyOwner]; ok {
		owners := make([]string, 0, len(raw))
		for _, v := range raw {
			if v != "" {
				owners = append(owners, v)
			}
		}
		if len(owners) > 0 {
			c.Owners = owners
		}
	}

	if raw := values.Get(KeyHasIssues); values.Has(KeyHasIssues) {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Criteria{}, &ValidationError{Key: KeyHasIssues, Value: raw}
		}
		c.HasIssues = &parsed
	}

	return c, nil
}

func parseStatuses(raw []string) ([]models.ListingStatus, error) {
	statuses := make([]models.ListingStatus, 0, len(raw))
	for _, v := range raw {
		if v == "" {
			// explicit empty set marker
			continue
		}
		status, err := models.ParseListingStatus(v)
		if err != nil {
			return nil, &ValidationError{Key: KeyStatus, Value: v}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func parseTypes(raw []string) ([]models.ListingType, error) {
	types := make([]models.ListingType, 0, len(raw))
	for _, v := range raw {
		if v == "" {
			continue
		}
		typ, err := models.ParseListingType(v)
		if err != nil {
			return nil, &ValidationError{Key: KeyType, Value: v}
		}
		types = append(types, typ)
	}
	return types, nil
}

// Serialize writes criteria back to the persisted query form. Fields equal to
// the defaults are omitted entirely rather than written out, so untouched
// filters round-trip to an empty query string and a later change of defaults
// does not surface as "filters active" for users who never touched them.
// Explicit empty sets are written as a single empty-valued key.
func Serialize(c Criteria, d Defaults) url.Values {
	values := url.Values{}

	if c.Statuses != nil && !statusSetEqual(c.Statuses, d.Statuses) {
		if len(c.Statuses) == 0 {
			values[KeyStatus] = []string{""}
		} else {
			for _, s := range c.Statuses {
				values.Add(KeyStatus, s.String())
			}
		}
	}

	if c.Types != nil && !typeSetEqual(c.Types, d.Types) {
		if len(c.Types) == 0 {
			values[KeyType] = []string{""}
		} else {
			for _, t := range c.Types {
				values.Add(KeyType, t.String())
			}
		}
	}

	for _, owner := range c.Owners {
		values.Add(KeyOwner, owner)
	}

	if c.HasIssues != nil {
		values.Set(KeyHasIssues, strconv.FormatBool(*c.HasIssues))
	}

	return values
}

// Reset returns the criteria whose serialized form is empty: every filter
// unset, defaults in effect.
func Reset() Criteria {
	return Criteria{}
}

// IsActive reports whether any field differs from the defaults, using
// order-independent set equality for the array-valued fields and presence
// checks for the owner restriction and the issue flag.
func IsActive(c Criteria, d Defaults) bool {
	if c.Statuses != nil && !statusSetEqual(c.Statuses, d.Statuses) {
		return true
	}
	if c.Types != nil && !typeSetEqual(c.Types, d.Types) {
		return true
	}
	if len(c.Owners) > 0 {
		return true
	}
	return c.HasIssues != nil
}

// Toggle flips membership of value in the named multivalue field and returns
// the new criteria. Toggling an unset field first materializes the defaults,
// since that is the set the user sees. Callers compare the result against the
// current criteria with Equal before persisting, so a toggle that lands back
// on an equivalent set causes no redundant persisted-state write.
func Toggle(c Criteria, d Defaults, field Field, value string) (Criteria, error) {
	switch field {
	case FieldStatuses:
		status, err := models.ParseListingStatus(value)
		if err != nil {
			return c, &ValidationError{Key: KeyStatus, Value: value}
		}
		c.Statuses = toggleStatus(c.EffectiveStatuses(d), status)
		return c, nil
	case FieldTypes:
		typ, err := models.ParseListingType(value)
		if err != nil {
			return c, &ValidationError{Key: KeyType, Value: value}
		}
		c.Types = toggleType(c.EffectiveTypes(d), typ)
		return c, nil
	case FieldOwners:
		c.Owners = toggleString(c.Owners, value)
		return c, nil
	}
	return c, fmt.Errorf("unknown filter field: %s", field)
}

// Equal reports set-level equality of two criteria under the same defaults
func Equal(a, b Criteria, d Defaults) bool {
	if !statusSetEqual(a.EffectiveStatuses(d), b.EffectiveStatuses(d)) {
		return false
	}
	if !typeSetEqual(a.EffectiveTypes(d), b.EffectiveTypes(d)) {
		return false
	}
	if !stringSetEqual(a.Owners, b.Owners) {
		return false
	}
	if (a.HasIssues == nil) != (b.HasIssues == nil) {
		return false
	}
	return a.HasIssues == nil || *a.HasIssues == *b.HasIssues
}

// EffectiveStatuses resolves the status set the criteria select: the explicit
// set when present, the defaults otherwise.
func (c Criteria) EffectiveStatuses(d Defaults) []models.ListingStatus {
	if c.Statuses != nil {
		return c.Statuses
	}
	return d.Statuses
}

// EffectiveTypes resolves the type set the criteria select
func (c Criteria) EffectiveTypes(d Defaults) []models.ListingType {
	if c.Types != nil {
		return c.Types
	}
	return d.Types
}

// QueryString returns the canonical persisted form, used both for URLs and as
// the listings cache key.
func (c Criteria) QueryString(d Defaults) string {
	return Serialize(c, d).Encode()
}

func toggleStatus(set []models.ListingStatus, value models.ListingStatus) []models.ListingStatus {
	out := make([]models.ListingStatus, 0, len(set)+1)
	found := false
	for _, s := range set {
		if s == value {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

func toggleType(set []models.ListingType, value models.ListingType) []models.ListingType {
	out := make([]models.ListingType, 0, len(set)+1)
	found := false
	for _, t := range set {
		if t == value {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

func toggleString(set []string, value string) []string {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, s := range set {
		if s == value {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

func statusSetEqual(a, b []models.ListingStatus) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[models.ListingStatus]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			return false
		}
	}
	return true
}

func typeSetEqual(a, b []models.ListingType) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[models.ListingType]bool, len(a))
	for _, t := range a {
		seen[t] = true
	}
	for _, t := range b {
		if !seen[t] {
			return false
		}
	}
	return true
}

func stringSetEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			return false
		}
	}
	return true
}
