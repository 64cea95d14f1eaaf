package outfit

import (
	"context"
	"testing"

	"github.com/rewear-ai/rewear/internal/db"
	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// firstPick always selects index 0, making selection deterministic.
func firstPick(n int) int { return 0 }

func intPtr(v int) *int { return &v }

func casualWardrobe() []model.ClothingItem {
	return []model.ClothingItem{
		{ID: 1, Name: "White Tee", Category: model.CategoryTop, Occasion: "Casual"},
		{ID: 2, Name: "Black Tee", Category: model.CategoryTop, Occasion: "Casual"},
		{ID: 3, Name: "Jeans", Category: model.CategoryBottom, Occasion: "Casual"},
		{ID: 4, Name: "Sneakers", Category: model.CategoryShoes, Occasion: "Casual"},
		{ID: 5, Name: "Suit Jacket", Category: model.CategoryOuterwear, Occasion: "Formal"},
		{ID: 6, Name: "Denim Jacket", Category: model.CategoryOuterwear, Occasion: "Casual"},
	}
}

func TestSelectMissingBucketReturnsNil(t *testing.T) {
	s := &Selector{Intn: firstPick}

	tests := []struct {
		name  string
		items []model.ClothingItem
	}{
		{"empty wardrobe", nil},
		{"no shoes", []model.ClothingItem{
			{Category: model.CategoryTop, Occasion: "Casual"},
			{Category: model.CategoryBottom, Occasion: "Casual"},
		}},
		{"wrong occasion", []model.ClothingItem{
			{Category: model.CategoryTop, Occasion: "Formal"},
			{Category: model.CategoryBottom, Occasion: "Formal"},
			{Category: model.CategoryShoes, Occasion: "Formal"},
		}},
	}

	for _, tt := range tests {
		if got := s.Select(tt.items, "Casual", nil); got != nil {
			t.Errorf("%s: expected nil outfit, got %+v", tt.name, got)
		}
	}
}

func TestSelectPicksFromOccasionBuckets(t *testing.T) {
	s := &Selector{Intn: firstPick}

	outfit := s.Select(casualWardrobe(), "Casual", nil)
	if outfit == nil {
		t.Fatal("expected an outfit")
	}
	if outfit.Top.Name != "White Tee" || outfit.Bottom.Name != "Jeans" || outfit.Shoes.Name != "Sneakers" {
		t.Errorf("unexpected picks: %+v", outfit)
	}
	if outfit.Outerwear != nil {
		t.Error("expected no outerwear without a temperature")
	}
}

func TestSelectRandomSourceIsUsed(t *testing.T) {
	// Always pick the last index.
	s := &Selector{Intn: func(n int) int { return n - 1 }}

	outfit := s.Select(casualWardrobe(), "Casual", nil)
	if outfit == nil {
		t.Fatal("expected an outfit")
	}
	if outfit.Top.Name != "Black Tee" {
		t.Errorf("expected random source to drive top pick, got %q", outfit.Top.Name)
	}
}

func TestSelectOuterwearThreshold(t *testing.T) {
	s := &Selector{Intn: firstPick}
	items := casualWardrobe()

	if outfit := s.Select(items, "Casual", intPtr(18)); outfit.Outerwear != nil {
		t.Error("expected no outerwear at exactly 18 degrees")
	}
	if outfit := s.Select(items, "Casual", intPtr(25)); outfit.Outerwear != nil {
		t.Error("expected no outerwear in warm weather")
	}

	outfit := s.Select(items, "Casual", intPtr(10))
	if outfit.Outerwear == nil {
		t.Fatal("expected outerwear below 18 degrees")
	}
	if outfit.Outerwear.Name != "Denim Jacket" {
		t.Errorf("expected occasion-matching outerwear preferred, got %q", outfit.Outerwear.Name)
	}
}

func TestSelectOuterwearFallbackToAny(t *testing.T) {
	s := &Selector{Intn: firstPick}

	// Only a formal jacket exists; casual outfit should still take it.
	items := []model.ClothingItem{
		{ID: 1, Category: model.CategoryTop, Occasion: "Casual"},
		{ID: 2, Category: model.CategoryBottom, Occasion: "Casual"},
		{ID: 3, Category: model.CategoryShoes, Occasion: "Casual"},
		{ID: 4, Name: "Suit Jacket", Category: model.CategoryOuterwear, Occasion: "Formal"},
	}

	outfit := s.Select(items, "Casual", intPtr(5))
	if outfit.Outerwear == nil || outfit.Outerwear.Name != "Suit Jacket" {
		t.Errorf("expected fallback to any outerwear, got %+v", outfit.Outerwear)
	}
}

func TestSelectNoOuterwearAvailable(t *testing.T) {
	s := &Selector{Intn: firstPick}

	items := []model.ClothingItem{
		{ID: 1, Category: model.CategoryTop, Occasion: "Casual"},
		{ID: 2, Category: model.CategoryBottom, Occasion: "Casual"},
		{ID: 3, Category: model.CategoryShoes, Occasion: "Casual"},
	}

	outfit := s.Select(items, "Casual", intPtr(5))
	if outfit == nil {
		t.Fatal("expected an outfit")
	}
	if outfit.Outerwear != nil {
		t.Error("expected no outerwear when wardrobe has none")
	}
}

func TestSuggestIncrementsWearCounts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := store.CreateUser(ctx, database, "ada", "ada@example.com", "hash")
	top, _ := store.CreateItem(ctx, database, &model.ClothingItem{UserID: user.ID, Name: "Tee", Category: model.CategoryTop, Occasion: "Casual"})
	bottom, _ := store.CreateItem(ctx, database, &model.ClothingItem{UserID: user.ID, Name: "Jeans", Category: model.CategoryBottom, Occasion: "Casual"})
	shoes, _ := store.CreateItem(ctx, database, &model.ClothingItem{UserID: user.ID, Name: "Sneakers", Category: model.CategoryShoes, Occasion: "Casual"})
	coat, _ := store.CreateItem(ctx, database, &model.ClothingItem{UserID: user.ID, Name: "Coat", Category: model.CategoryOuterwear, Occasion: "Casual"})

	s := &Selector{Intn: firstPick}
	outfit, err := s.Suggest(ctx, database, user.ID, "Casual", intPtr(5))
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if outfit == nil || outfit.Outerwear == nil {
		t.Fatalf("expected full outfit with outerwear, got %+v", outfit)
	}
	if outfit.Top.TimesWorn != 1 {
		t.Errorf("expected returned top to reflect the increment, got %d", outfit.Top.TimesWorn)
	}

	for _, id := range []int64{top.ID, bottom.ID, shoes.ID, coat.ID} {
		item, _ := store.GetItem(ctx, database, id)
		if item.TimesWorn != 1 {
			t.Errorf("expected item %d worn once, got %d", id, item.TimesWorn)
		}
	}
}

func TestSuggestNoOutfitLeavesCountersAlone(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := store.CreateUser(ctx, database, "ada", "ada@example.com", "hash")
	top, _ := store.CreateItem(ctx, database, &model.ClothingItem{UserID: user.ID, Name: "Tee", Category: model.CategoryTop, Occasion: "Casual"})

	s := NewSelector()
	outfit, err := s.Suggest(ctx, database, user.ID, "Casual", nil)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if outfit != nil {
		t.Fatalf("expected no outfit, got %+v", outfit)
	}

	item, _ := store.GetItem(ctx, database, top.ID)
	if item.TimesWorn != 0 {
		t.Errorf("expected zero wear mutations, got %d", item.TimesWorn)
	}
}
