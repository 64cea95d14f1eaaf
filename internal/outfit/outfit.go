// Package outfit assembles outfit suggestions from a user's wardrobe.
package outfit

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"

	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// OuterwearThreshold is the temperature (°C) below which outerwear is added.
const OuterwearThreshold = 18

// Outfit is one suggested combination. Outerwear is nil when the weather
// does not call for it or the wardrobe has none.
type Outfit struct {
	Top       model.ClothingItem  `json:"top"`
	Bottom    model.ClothingItem  `json:"bottom"`
	Shoes     model.ClothingItem  `json:"shoes"`
	Outerwear *model.ClothingItem `json:"outerwear,omitempty"`
}

// itemIDs returns the IDs of every item included in the outfit.
func (o *Outfit) itemIDs() []int64 {
	ids := []int64{o.Top.ID, o.Bottom.ID, o.Shoes.ID}
	if o.Outerwear != nil {
		ids = append(ids, o.Outerwear.ID)
	}
	return ids
}

// Selector picks outfits using an injectable random source so selection is
// deterministic under test.
type Selector struct {
	// Intn returns a uniform random int in [0, n). Must not be nil.
	Intn func(n int) int
}

// NewSelector returns a Selector backed by math/rand.
func NewSelector() *Selector {
	return &Selector{Intn: rand.Intn}
}

// Select assembles an outfit from the given wardrobe, or returns nil when any
// required category has no item for the occasion. Pure: no store access, no
// counter mutation.
//
// Top, bottom and shoes are drawn uniformly at random from the items matching
// the occasion. Outerwear is added only when temp is set and below
// OuterwearThreshold, preferring the first outerwear item matching the
// occasion, then the first outerwear item at all — a deliberate first-match
// policy, unlike the random required picks.
func (s *Selector) Select(items []model.ClothingItem, occasion string, temp *int) *Outfit {
	var tops, bottoms, shoes []model.ClothingItem
	for _, item := range items {
		if item.Occasion != occasion {
			continue
		}
		switch item.Category {
		case model.CategoryTop:
			tops = append(tops, item)
		case model.CategoryBottom:
			bottoms = append(bottoms, item)
		case model.CategoryShoes:
			shoes = append(shoes, item)
		}
	}

	if len(tops) == 0 || len(bottoms) == 0 || len(shoes) == 0 {
		return nil
	}

	outfit := &Outfit{
		Top:    tops[s.Intn(len(tops))],
		Bottom: bottoms[s.Intn(len(bottoms))],
		Shoes:  shoes[s.Intn(len(shoes))],
	}

	if temp != nil && *temp < OuterwearThreshold {
		outfit.Outerwear = pickOuterwear(items, occasion)
	}

	return outfit
}

// pickOuterwear returns the first outerwear item matching the occasion, then
// the first outerwear item regardless of occasion, then nil.
func pickOuterwear(items []model.ClothingItem, occasion string) *model.ClothingItem {
	var fallback *model.ClothingItem
	for i := range items {
		if items[i].Category != model.CategoryOuterwear {
			continue
		}
		if items[i].Occasion == occasion {
			return &items[i]
		}
		if fallback == nil {
			fallback = &items[i]
		}
	}
	return fallback
}

// Suggest loads the user's wardrobe, assembles an outfit and, if one was
// produced, increments the wear counter of every included item by 1 in a
// single transaction. A nil outfit with nil error means no suggestion is
// available; no counters are touched in that case.
func (s *Selector) Suggest(ctx context.Context, db *sql.DB, userID int64, occasion string, temp *int) (*Outfit, error) {
	items, err := store.ListItems(ctx, db, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("loading wardrobe: %w", err)
	}

	outfit := s.Select(items, occasion, temp)
	if outfit == nil {
		return nil, nil
	}

	if err := store.IncrementWear(ctx, db, outfit.itemIDs()); err != nil {
		return nil, fmt.Errorf("updating wear counts: %w", err)
	}

	// Reflect the increments in the returned items.
	outfit.Top.TimesWorn++
	outfit.Bottom.TimesWorn++
	outfit.Shoes.TimesWorn++
	if outfit.Outerwear != nil {
		outfit.Outerwear.TimesWorn++
	}

	return outfit, nil
}
