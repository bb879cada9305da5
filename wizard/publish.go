package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/cloudx-io/auctionwizard/auctionapi"
	"github.com/cloudx-io/auctionwizard/validation"
)

// ProgressReporter receives publish progress in percent.
type ProgressReporter interface {
	SetProgress(percent int)
}

// ProgressFunc adapts a function to ProgressReporter.
type ProgressFunc func(percent int)

func (f ProgressFunc) SetProgress(percent int) { f(percent) }

type noProgress struct{}

func (noProgress) SetProgress(int) {}

var progressInterval = 600 * time.Millisecond

const maxPendingProgress = 99

// Validate runs the pre-publish checks on the session state.
func (s Session) Validate() *validation.ListingValidationResult {
	return validation.ValidateListing(&validation.ListingValidationInput{
		Attributes: s.Attributes,
		Tiered:     s.Tiered,
		Now:        s.now(),
	})
}

// Publish hands the compiled listing to creator.
//
// Parameters:
//   - ctx: Passed to the collaborator, no other cancellation
//   - creator: Builds the on-chain accounts
//   - progress: Receives ticks while the collaborator runs, may be nil
//
// Returns:
//   - The session advanced past publish with Accounts set
//   - ErrNotPublishable when validation fails, or the collaborator error wrapped.
//     On error the returned session is the receiver, still on the publish step.
//
// Processing flow:
//  1. Validate the listing
//  2. Compile settings and build the request
//  3. Call the collaborator while ticking progress every 600ms up to 99
//  4. Report 100 and advance on success
func (s Session) Publish(ctx context.Context, creator auctionapi.AuctionCreator, progress ProgressReporter) (Session, error) {
	if s.Current().ID != StepPublish {
		return s, fmt.Errorf("%w: publish on %s", ErrWrongStep, s.Current().ID)
	}
	if progress == nil {
		progress = noProgress{}
	}
	logger := log.WithFields(log.Fields{
		"session":  s.ID.String(),
		"category": s.Attributes.Category.String(),
	})

	result := s.Validate()
	if !result.IsValid() {
		logger.Warnf("listing rejected: %d issues", len(result.ValidationDetails))
		return s, fmt.Errorf("%w: %s", ErrNotPublishable, strings.Join(result.ValidationDetails, "; "))
	}

	compiled := s.Compile()
	req, err := auctionapi.NewCreateAuctionManagerRequest(compiled, s.Whitelist, s.QuoteMint)
	if err != nil {
		return s, fmt.Errorf("build request: %w", err)
	}
	logger.WithField("settings_hash", req.SettingsHash).Infof("publishing listing with %d items", len(req.Items))

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tickProgress(stop, progress)
	}()

	start := time.Now()
	accounts, err := creator.CreateAuctionManager(ctx, req)
	close(stop)
	wg.Wait()

	if err != nil {
		logger.WithError(err).Error("failed to create auction manager")
		return s, fmt.Errorf("create auction manager: %w", err)
	}
	if accounts == nil {
		return s, fmt.Errorf("create auction manager: no accounts returned")
	}
	progress.SetProgress(100)
	logger.Infof("listing published as %s in %s", accounts.Auction.ToBase58(), time.Since(start).Round(time.Millisecond))

	next := s.Clone()
	next.Accounts = accounts
	return next.Confirm()
}

func tickProgress(stop <-chan struct{}, progress ProgressReporter) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	percent := 0
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if percent < maxPendingProgress {
				percent++
				progress.SetProgress(percent)
			}
		}
	}
}
