package core

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var canonicalEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("core: canonical CBOR options rejected: %v", err))
	}
	canonicalEncMode = em
}

// settingsFingerprint is the canonical view of a compiled auction that gets hashed.
type settingsFingerprint struct {
	Category               uint8                  `cbor:"1,keyasint"`
	WinnerLimit            WinnerLimit            `cbor:"2,keyasint"`
	Settings               AuctionManagerSettings `cbor:"3,keyasint"`
	PriceFloor             PriceFloor             `cbor:"4,keyasint"`
	AuctionDurationSeconds int64                  `cbor:"5,keyasint"`
	GapTimeSeconds         int64                  `cbor:"6,keyasint"`
	ItemKeys               []string               `cbor:"7,keyasint"`
	ParticipationKey       string                 `cbor:"8,keyasint,omitempty"`
}

// ComputeSettingsHash computes a fingerprint of a compiled auction.
// Two compilations hash equally iff they would produce the same auction builder inputs.
//
// Formula: SHA256(canonical_cbor(category, winner_limit, settings, price_floor,
// duration_s, gap_s, item_keys, participation_key))
func ComputeSettingsHash(compiled *CompiledAuction) (string, error) {
	fp := settingsFingerprint{
		Category:               uint8(compiled.Category),
		WinnerLimit:            compiled.WinnerLimit,
		Settings:               compiled.Settings,
		PriceFloor:             compiled.PriceFloor,
		AuctionDurationSeconds: int64(compiled.AuctionDuration.Seconds()),
		GapTimeSeconds:         int64(compiled.GapTime.Seconds()),
		ItemKeys:               make([]string, 0, len(compiled.Items)),
	}
	for _, d := range compiled.Items {
		fp.ItemKeys = append(fp.ItemKeys, d.Key())
	}
	if compiled.ParticipationItem != nil {
		fp.ParticipationKey = compiled.ParticipationItem.Key()
	}

	data, err := canonicalEncMode.Marshal(fp)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}
