package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/kasir/internal/storage/memory"
	"github.com/mmynk/kasir/pkg/api"
)

func TestListMenu_Seeded(t *testing.T) {
	s := setupTestServer(t)

	resp, err := s.catalog.ListMenu(context.Background(), connect.NewRequest(&api.ListMenuRequest{}))
	if err != nil {
		t.Fatalf("ListMenu failed: %v", err)
	}
	if len(resp.Msg.Items) != len(DefaultMenu) {
		t.Fatalf("expected %d items, got %d", len(DefaultMenu), len(resp.Msg.Items))
	}
	for i, item := range resp.Msg.Items {
		if item.ID != DefaultMenu[i].ID || item.Name != DefaultMenu[i].Name || item.UnitPrice != DefaultMenu[i].UnitPrice {
			t.Errorf("item %d: got %+v, want %+v", i, item, DefaultMenu[i])
		}
	}
}

func TestAddMenuItem(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	resp, err := s.catalog.AddMenuItem(ctx, connect.NewRequest(&api.AddMenuItemRequest{
		Name:      "  Es Campur ",
		UnitPrice: 8000,
	}))
	if err != nil {
		t.Fatalf("AddMenuItem failed: %v", err)
	}
	if resp.Msg.Item.ID != 6 {
		t.Errorf("expected id 6, got %d", resp.Msg.Item.ID)
	}
	if resp.Msg.Item.Name != "Es Campur" {
		t.Errorf("expected trimmed name, got %q", resp.Msg.Item.Name)
	}

	_, err = s.catalog.AddMenuItem(ctx, connect.NewRequest(&api.AddMenuItemRequest{Name: "iced tea", UnitPrice: 4000}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = s.catalog.AddMenuItem(ctx, connect.NewRequest(&api.AddMenuItemRequest{ID: 1, Name: "Satay", UnitPrice: 4000}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = s.catalog.AddMenuItem(ctx, connect.NewRequest(&api.AddMenuItemRequest{Name: "", UnitPrice: 4000}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = s.catalog.AddMenuItem(ctx, connect.NewRequest(&api.AddMenuItemRequest{Name: "Free Water", UnitPrice: 0}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestDeleteMenuItem(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	if _, err := s.catalog.DeleteMenuItem(ctx, connect.NewRequest(&api.DeleteMenuItemRequest{ID: 2})); err != nil {
		t.Fatalf("DeleteMenuItem failed: %v", err)
	}

	_, err := s.catalog.DeleteMenuItem(ctx, connect.NewRequest(&api.DeleteMenuItemRequest{ID: 2}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = s.catalog.DeleteMenuItem(ctx, connect.NewRequest(&api.DeleteMenuItemRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	list, err := s.catalog.ListMenu(ctx, connect.NewRequest(&api.ListMenuRequest{}))
	if err != nil {
		t.Fatalf("ListMenu failed: %v", err)
	}
	if len(list.Msg.Items) != len(DefaultMenu)-1 {
		t.Errorf("expected %d items, got %d", len(DefaultMenu)-1, len(list.Msg.Items))
	}
}

func TestSeedMenu_SkipsNonEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	n, err := SeedMenu(ctx, store, DefaultMenu)
	if err != nil {
		t.Fatalf("SeedMenu failed: %v", err)
	}
	if n != len(DefaultMenu) {
		t.Errorf("expected %d seeded items, got %d", len(DefaultMenu), n)
	}

	n, err = SeedMenu(ctx, store, DefaultMenu)
	if err != nil {
		t.Fatalf("second SeedMenu failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no items on reseed, got %d", n)
	}
}
