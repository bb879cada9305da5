package core

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDraft    = errors.New("unknown draft")
	ErrIneligibleDraft = errors.New("draft is not eligible for this step")
)

// DraftFilter reports whether a draft may be selected.
type DraftFilter func(SafetyDepositDraft) bool

// CreatorsVerified reports whether every listed creator has signed the metadata.
// A draft without creators passes.
func CreatorsVerified(d SafetyDepositDraft) bool {
	for _, c := range d.Creators {
		if !c.Verified {
			return false
		}
	}
	return true
}

// HasLimitedSupply reports whether d is a master edition with a finite print supply.
func HasLimitedSupply(d SafetyDepositDraft) bool {
	return d.MasterEdition != nil && d.MasterEdition.MaxSupply != nil
}

// HasOpenSupply reports whether d is a master edition with unlimited prints.
func HasOpenSupply(d SafetyDepositDraft) bool {
	return d.MasterEdition != nil && d.MasterEdition.MaxSupply == nil
}

// CopiesFilter returns the predicate for the item selected on the copies step of a category.
// The creator check applies to every category.
func CopiesFilter(category Category) DraftFilter {
	var supply DraftFilter
	switch category {
	case CategoryLimited:
		supply = HasLimitedSupply
	case CategoryOpen:
		supply = HasOpenSupply
	case CategorySingle, CategoryTiered:
		supply = func(SafetyDepositDraft) bool { return true }
	default:
		supply = func(SafetyDepositDraft) bool { return false }
	}
	return func(d SafetyDepositDraft) bool {
		return supply(d) && CreatorsVerified(d)
	}
}

// ParticipationFilter returns the predicate for the participation NFT.
func ParticipationFilter() DraftFilter {
	return CreatorsVerified
}

// TierFilter returns the predicate for items placed into tier slots.
func TierFilter() DraftFilter {
	return CreatorsVerified
}

// FirstSelected enforces single selection: everything after the first entry is dropped.
func FirstSelected(selected []SafetyDepositDraft) (SafetyDepositDraft, bool) {
	if len(selected) == 0 {
		return SafetyDepositDraft{}, false
	}
	return selected[0], true
}

// DraftRegistry holds the drafts a seller owns, in the order they were supplied.
type DraftRegistry struct {
	drafts []SafetyDepositDraft
	byKey  map[string]int
}

// NewDraftRegistry indexes drafts by identity key. When a key repeats the first draft wins.
func NewDraftRegistry(drafts []SafetyDepositDraft) *DraftRegistry {
	r := &DraftRegistry{
		drafts: make([]SafetyDepositDraft, 0, len(drafts)),
		byKey:  make(map[string]int, len(drafts)),
	}
	for _, d := range drafts {
		key := d.Key()
		if _, exists := r.byKey[key]; exists {
			continue
		}
		r.byKey[key] = len(r.drafts)
		r.drafts = append(r.drafts, d)
	}
	return r
}

// Len returns the number of distinct drafts.
func (r *DraftRegistry) Len() int {
	return len(r.drafts)
}

// Drafts returns a copy of all drafts.
func (r *DraftRegistry) Drafts() []SafetyDepositDraft {
	return append([]SafetyDepositDraft(nil), r.drafts...)
}

// Lookup finds a draft by its base58 identity key.
func (r *DraftRegistry) Lookup(key string) (SafetyDepositDraft, error) {
	i, ok := r.byKey[key]
	if !ok {
		return SafetyDepositDraft{}, fmt.Errorf("%w: %s", ErrUnknownDraft, key)
	}
	return r.drafts[i], nil
}

// Select resolves keys in order, failing on the first unknown key.
func (r *DraftRegistry) Select(keys ...string) ([]SafetyDepositDraft, error) {
	selected := make([]SafetyDepositDraft, 0, len(keys))
	for _, key := range keys {
		d, err := r.Lookup(key)
		if err != nil {
			return nil, err
		}
		selected = append(selected, d)
	}
	return selected, nil
}

// Filter returns the drafts accepted by f.
func (r *DraftRegistry) Filter(f DraftFilter) []SafetyDepositDraft {
	out := make([]SafetyDepositDraft, 0, len(r.drafts))
	for _, d := range r.drafts {
		if f(d) {
			out = append(out, d)
		}
	}
	return out
}

// EligibleForCopies returns the drafts selectable on the copies step of a category.
func (r *DraftRegistry) EligibleForCopies(category Category) []SafetyDepositDraft {
	return r.Filter(CopiesFilter(category))
}

// EligibleForParticipation returns the drafts selectable as participation NFT.
func (r *DraftRegistry) EligibleForParticipation() []SafetyDepositDraft {
	return r.Filter(ParticipationFilter())
}

// EligibleForTier returns the drafts selectable for tier slots.
func (r *DraftRegistry) EligibleForTier() []SafetyDepositDraft {
	return r.Filter(TierFilter())
}
