// Package services – InventoryService
//
// This file implements donor-side stock recording. A scan hands the image to
// the classification endpoint, derives a display-ready item from the verdict
// (name fallbacks, condition mapping, tag filtering) and appends it to the
// persisted inventory. Items can also be added manually, bypassing the
// classifier entirely.
package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/replate/replate-backend/internal/classify"
	"github.com/replate/replate-backend/internal/domain"
	"github.com/replate/replate-backend/internal/store"
)

// commonProduce is scanned for in the classifier's reasoning when it names a
// produce type without a concrete item.
var commonProduce = []string{"banana", "apple", "orange", "tomato", "potato", "carrot"}

var titleCaser = cases.Title(language.English)

// InventoryService records scanned and manually entered stock items.
type InventoryService struct {
	// Store is the persisted key-value store holding the inventory list.
	Store store.Store
	// Classifier is the external classification endpoint (or a stub).
	Classifier classify.Classifier
	// IDs generates unique item ids.
	IDs *IDGenerator
}

// NewInventoryService constructs an InventoryService.
func NewInventoryService(st store.Store, cl classify.Classifier) *InventoryService {
	return &InventoryService{Store: st, Classifier: cl, IDs: &IDGenerator{}}
}

// List returns the recorded inventory, newest first.
func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if _, err := s.Store.Get(ctx, store.KeyInventory, &items); err != nil {
		return nil, err
	}
	// Stored append order is oldest first; browsing wants newest first.
	out := make([]domain.InventoryItem, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	return out, nil
}

// Add appends an item to the persisted inventory and assigns it an id.
func (s *InventoryService) Add(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, ErrNoItems
	}
	item.ID = s.IDs.Next()
	if item.RestrictionTags == nil {
		item.RestrictionTags = []string{}
	}

	var items []domain.InventoryItem
	if _, err := s.Store.Get(ctx, store.KeyInventory, &items); err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := s.Store.Set(ctx, store.KeyInventory, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Scan classifies an image and records the resulting item. The raw verdict is
// returned alongside the stored item so callers can surface the reasoning.
func (s *InventoryService) Scan(ctx context.Context, imageBase64 string) (*domain.InventoryItem, *classify.Result, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, nil, ErrEmptyImage
	}

	res, err := s.Classifier.Classify(ctx, imageBase64)
	if err != nil {
		return nil, nil, err
	}

	item := domain.InventoryItem{
		Name:            itemName(res),
		FoodType:        res.FoodType,
		Condition:       classify.DisplayCondition(res.Condition),
		RestrictionTags: usableTags(res.Restrictions),
	}
	stored, err := s.Add(ctx, item)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("name", stored.Name).Str("condition", stored.Condition).Msg("inventory item scanned")
	return stored, res, nil
}

// itemName picks a display name for a classified item: the endpoint's own
// item_name when present, otherwise a name derived from the food type, with
// the reasoning text mined for a concrete produce item.
func itemName(res *classify.Result) string {
	if res.ItemName != "" {
		return res.ItemName
	}
	ft := res.FoodType
	switch {
	case strings.Contains(ft, "Fruits & Vegetables"):
		reason := strings.ToLower(res.Reason)
		for _, p := range commonProduce {
			if strings.Contains(reason, p) {
				return titleCaser.String(p)
			}
		}
		return "Produce Item"
	case strings.Contains(ft, "Dairy"):
		return "Dairy Product"
	case strings.Contains(ft, "Meat"):
		return "Meat Product"
	case strings.Contains(ft, "Bakery"):
		return "Baked Good"
	default:
		return ft
	}
}

// usableTags drops the classifier's "None identified" placeholder.
func usableTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "None identified" {
			out = append(out, t)
		}
	}
	return out
}
