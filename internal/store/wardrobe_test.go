package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rewear-ai/rewear/internal/db"
	"github.com/rewear-ai/rewear/internal/model"
)

func createTestUser(t *testing.T, database *sql.DB, email string) *model.User {
	t.Helper()
	user, err := CreateUser(context.Background(), database, "tester", email, "hash")
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}

func createTestItem(t *testing.T, database *sql.DB, userID int64, name, category, occasion string) *model.ClothingItem {
	t.Helper()
	item, err := CreateItem(context.Background(), database, &model.ClothingItem{
		UserID:   userID,
		Name:     name,
		Category: category,
		Occasion: occasion,
	})
	if err != nil {
		t.Fatalf("creating test item: %v", err)
	}
	return item
}

func TestCreateAndListItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "a@example.com")

	createTestItem(t, database, user.ID, "White Tee", model.CategoryTop, "Casual")
	createTestItem(t, database, user.ID, "Black Jeans", model.CategoryBottom, "Casual")

	items, err := ListItems(ctx, database, user.ID, "", "")
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].TimesWorn != 0 {
		t.Errorf("expected new item to have 0 wears, got %d", items[0].TimesWorn)
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "a@example.com")

	createTestItem(t, database, user.ID, "White Tee", model.CategoryTop, "Casual")
	createTestItem(t, database, user.ID, "Black Jeans", model.CategoryBottom, "Casual")

	items, _ := ListItems(ctx, database, user.ID, "Tee", "")
	if len(items) != 1 || items[0].Name != "White Tee" {
		t.Errorf("expected name search to match only White Tee, got %v", items)
	}

	items, _ = ListItems(ctx, database, user.ID, "", model.CategoryBottom)
	if len(items) != 1 || items[0].Name != "Black Jeans" {
		t.Errorf("expected category filter to match only Black Jeans, got %v", items)
	}
}

func TestListItemsScopedToUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "alice@example.com")
	bob := createTestUser(t, database, "bob@example.com")

	createTestItem(t, database, alice.ID, "Alice Coat", model.CategoryOuterwear, "")

	items, _ := ListItems(ctx, database, bob.ID, "", "")
	if len(items) != 0 {
		t.Errorf("expected bob's wardrobe to be empty, got %d items", len(items))
	}
}

func TestGetUserItemOwnership(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, database, "alice@example.com")
	bob := createTestUser(t, database, "bob@example.com")

	item := createTestItem(t, database, alice.ID, "Alice Coat", model.CategoryOuterwear, "")

	got, err := GetUserItem(ctx, database, item.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetUserItem: %v", err)
	}
	if got != nil {
		t.Error("expected nil for item owned by another user")
	}
}

func TestIncrementWear(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "a@example.com")

	top := createTestItem(t, database, user.ID, "Tee", model.CategoryTop, "Casual")
	bottom := createTestItem(t, database, user.ID, "Jeans", model.CategoryBottom, "Casual")

	if err := IncrementWear(ctx, database, []int64{top.ID, bottom.ID}); err != nil {
		t.Fatalf("IncrementWear: %v", err)
	}
	if err := IncrementWear(ctx, database, []int64{top.ID}); err != nil {
		t.Fatalf("IncrementWear: %v", err)
	}

	got, _ := GetItem(ctx, database, top.ID)
	if got.TimesWorn != 2 {
		t.Errorf("expected top worn 2 times, got %d", got.TimesWorn)
	}
	got, _ = GetItem(ctx, database, bottom.ID)
	if got.TimesWorn != 1 {
		t.Errorf("expected bottom worn 1 time, got %d", got.TimesWorn)
	}

	total, err := TotalWears(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("TotalWears: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3 total wears, got %d", total)
	}
}

func TestIncrementWearEmptyList(t *testing.T) {
	database := db.NewTestDB(t)

	if err := IncrementWear(context.Background(), database, nil); err != nil {
		t.Errorf("IncrementWear with no ids should be a no-op, got %v", err)
	}
}

func TestUpdateAndDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "a@example.com")

	item := createTestItem(t, database, user.ID, "Tee", model.CategoryTop, "Casual")

	err := UpdateItem(ctx, database, item.ID, user.ID, "Vintage Tee", model.CategoryTop, "White", "Summer", "Formal")
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Name != "Vintage Tee" || got.Occasion != "Formal" {
		t.Errorf("update not applied: %+v", got)
	}

	if err := DeleteItem(ctx, database, item.ID, user.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	got, _ = GetItem(ctx, database, item.ID)
	if got != nil {
		t.Error("expected item to be gone after delete")
	}
}

func TestSetAndGetItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, database, "a@example.com")

	item := createTestItem(t, database, user.ID, "Tee", model.CategoryTop, "")

	if err := SetItemImage(ctx, database, item.ID, user.ID, []byte{1, 2, 3}, "image/jpeg"); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, mime, err := GetItemImage(ctx, database, item.ID, user.ID)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if len(data) != 3 || mime != "image/jpeg" {
		t.Errorf("unexpected image data %v mime %q", data, mime)
	}
}
