// Package cache accumulates campaign pages and the viewer's
// application outcomes in memory. Pages append monotonically and
// campaigns dedup by id, so re-fetching a page is idempotent and
// pagination survives out-of-order loads.
package cache

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/me/matchably/pkg/matchably"
	"github.com/me/matchably/pkg/model"
)

// Gateway is the slice of the backend client the cache needs.
// *matchably.Client satisfies it.
type Gateway interface {
	CampaignsPage(ctx context.Context, page int) ([]model.CampaignSummary, error)
	AppliedCampaigns(ctx context.Context) (*matchably.AppliedResult, error)
}

// Cache is the in-memory campaign list plus the viewer's application
// state. All methods are safe for concurrent use.
type Cache struct {
	gateway Gateway
	logger  *slog.Logger

	mu               sync.Mutex
	byID             map[string]model.CampaignSummary
	order            []string
	nextPage         int
	exhausted        bool
	applications     map[string]*model.Application
	appliedIDs       map[string]bool
	appliedThisMonth int
}

// New builds an empty cache around the gateway.
func New(gateway Gateway, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Cache{
		gateway: gateway,
		logger:  logger.With("component", "cache"),
	}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.byID = make(map[string]model.CampaignSummary)
	c.order = nil
	c.nextPage = 1
	c.exhausted = false
	c.applications = make(map[string]*model.Application)
	c.appliedIDs = make(map[string]bool)
	c.appliedThisMonth = 0
}

// Reset drops everything and rewinds pagination to the first page.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// LoadNextPage fetches the next unfetched page and merges it in.
// Returns the number of campaigns that were new. An empty page marks
// the list exhausted; further calls are no-ops.
func (c *Cache) LoadNextPage(ctx context.Context) (int, error) {
	c.mu.Lock()
	if c.exhausted {
		c.mu.Unlock()
		return 0, nil
	}
	page := c.nextPage
	c.mu.Unlock()

	campaigns, err := c.gateway.CampaignsPage(ctx, page)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(campaigns) == 0 {
		c.exhausted = true
		c.logger.Debug("campaign list exhausted", "page", page)
		return 0, nil
	}
	added := c.merge(campaigns)
	if page == c.nextPage {
		c.nextPage = page + 1
	}
	c.logger.Debug("page loaded", "page", page, "received", len(campaigns), "new", added)
	return added, nil
}

// merge appends unknown campaigns and refreshes known ones in place.
// Caller holds the lock.
func (c *Cache) merge(campaigns []model.CampaignSummary) int {
	added := 0
	for _, campaign := range campaigns {
		if campaign.ID == "" {
			continue
		}
		if _, known := c.byID[campaign.ID]; !known {
			c.order = append(c.order, campaign.ID)
			added++
		}
		c.byID[campaign.ID] = campaign
	}
	return added
}

// LoadAll pages until the backend reports exhaustion.
func (c *Cache) LoadAll(ctx context.Context) error {
	for !c.Exhausted() {
		if _, err := c.LoadNextPage(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RefreshApplied reloads the viewer's applications and monthly count.
// Campaigns piggybacked on the applied response merge into the list so
// a user's applied campaigns render even before their page arrives.
func (c *Cache) RefreshApplied(ctx context.Context) error {
	result, err := c.gateway.AppliedCampaigns(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.applications = make(map[string]*model.Application, len(result.Campaigns))
	c.appliedIDs = make(map[string]bool, len(result.Campaigns))
	for i := range result.Campaigns {
		ac := &result.Campaigns[i]
		c.appliedIDs[ac.ID] = true
		c.applications[ac.ID] = ac.Application()
		if _, known := c.byID[ac.ID]; !known {
			c.order = append(c.order, ac.ID)
		}
		c.byID[ac.ID] = ac.CampaignSummary
	}
	c.appliedThisMonth = result.AppliedThisMonth
	return nil
}

// MarkApplied records a just-submitted application locally so the list
// reflects it before the next refresh.
func (c *Cache) MarkApplied(campaignID string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.appliedIDs[campaignID] {
		return
	}
	c.appliedIDs[campaignID] = true
	c.applications[campaignID] = &model.Application{
		CampaignID: campaignID,
		Status:     model.ApplicationStatusPending,
		AppliedAt:  now,
	}
	c.appliedThisMonth++
}

// Campaigns returns all cached campaigns in arrival order.
func (c *Cache) Campaigns() []model.CampaignSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.CampaignSummary, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// VisibleCampaigns returns cached campaigns the viewer is allowed to
// see, in arrival order.
func (c *Cache) VisibleCampaigns(authenticated bool, now time.Time) []model.CampaignSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.CampaignSummary
	for _, id := range c.order {
		campaign := c.byID[id]
		if model.VisibleTo(authenticated, campaign, c.appliedIDs[id], now) {
			out = append(out, campaign)
		}
	}
	return out
}

// Get returns one cached campaign by id.
func (c *Cache) Get(id string) (model.CampaignSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	campaign, ok := c.byID[id]
	return campaign, ok
}

// Replace swaps in a fresh copy of a campaign already in the cache.
// Unknown ids append to the end of the list.
func (c *Cache) Replace(campaign model.CampaignSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if campaign.ID == "" {
		return
	}
	if _, known := c.byID[campaign.ID]; !known {
		c.order = append(c.order, campaign.ID)
	}
	c.byID[campaign.ID] = campaign
}

// Remove drops a campaign from the cache.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, known := c.byID[id]; !known {
		return
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Applied reports whether the viewer has applied to the campaign.
func (c *Cache) Applied(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appliedIDs[id]
}

// Application returns the viewer's application for a campaign, or nil.
func (c *Cache) Application(id string) *model.Application {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applications[id]
}

// AppliedThisMonth returns the count of applications this calendar
// month, as last reported by the backend plus local applies.
func (c *Cache) AppliedThisMonth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appliedThisMonth
}

// Exhausted reports whether pagination has reached the end.
func (c *Cache) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// Len returns the number of cached campaigns.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// StateFor derives the viewer's display state for a cached campaign.
func (c *Cache) StateFor(id string, authenticated bool, now time.Time) model.EffectiveCampaignState {
	c.mu.Lock()
	defer c.mu.Unlock()
	campaign := c.byID[id]
	return model.DeriveState(authenticated, campaign, c.applications[id], c.appliedIDs[id], c.appliedThisMonth, now)
}
