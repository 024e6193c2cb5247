package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kasir/internal/models"
	"github.com/mmynk/kasir/internal/storage"
	"github.com/mmynk/kasir/pkg/api"
)

// DefaultMenu is loaded into an empty catalog at startup.
var DefaultMenu = []models.MenuItem{
	{ID: 1, Name: "Fried Rice", UnitPrice: 15000},
	{ID: 2, Name: "Fried Noodles", UnitPrice: 12000},
	{ID: 3, Name: "Fried Chicken", UnitPrice: 18000},
	{ID: 4, Name: "Iced Tea", UnitPrice: 5000},
	{ID: 5, Name: "Orange Juice", UnitPrice: 6000},
}

// SeedMenu stores items if the catalog is empty. It returns how many items
// were added.
func SeedMenu(ctx context.Context, catalog storage.Catalog, items []models.MenuItem) (int, error) {
	existing, err := catalog.ListMenuItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list menu: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, item := range items {
		if err := catalog.CreateMenuItem(ctx, &item); err != nil {
			return 0, fmt.Errorf("failed to seed %q: %w", item.Name, err)
		}
	}
	return len(items), nil
}

// CatalogService implements the Connect CatalogService
type CatalogService struct {
	catalog storage.Catalog
}

// NewCatalogService creates a new CatalogService with the given storage backend.
func NewCatalogService(catalog storage.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ListMenu returns every menu item in ID order.
func (s *CatalogService) ListMenu(ctx context.Context, req *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error) {
	items, err := s.catalog.ListMenuItems(ctx)
	if err != nil {
		slog.Error("ListMenu failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.MenuItem, len(items))
	for i, item := range items {
		out[i] = menuItemToAPI(item)
	}
	return connect.NewResponse(&api.ListMenuResponse{Items: out}), nil
}

// AddMenuItem creates a menu item. Names are unique case-insensitively.
func (s *CatalogService) AddMenuItem(ctx context.Context, req *connect.Request[api.AddMenuItemRequest]) (*connect.Response[api.AddMenuItemResponse], error) {
	slog.Info("AddMenuItem request received",
		"name", req.Msg.Name,
		"unit_price", req.Msg.UnitPrice,
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" || req.Msg.UnitPrice <= 0 {
		return nil, toConnectError(errInvalidMenuItem)
	}
	if req.Msg.ID < 0 {
		return nil, toConnectError(errInvalidID)
	}

	item := &models.MenuItem{
		ID:        req.Msg.ID,
		Name:      name,
		UnitPrice: req.Msg.UnitPrice,
	}
	if err := s.catalog.CreateMenuItem(ctx, item); err != nil {
		slog.Warn("AddMenuItem failed", "name", name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Menu item added", "item_id", item.ID, "name", item.Name)
	return connect.NewResponse(&api.AddMenuItemResponse{Item: menuItemToAPI(item)}), nil
}

// DeleteMenuItem removes a menu item. Carts that already hold it keep
// their copy of the name and price.
func (s *CatalogService) DeleteMenuItem(ctx context.Context, req *connect.Request[api.DeleteMenuItemRequest]) (*connect.Response[api.DeleteMenuItemResponse], error) {
	if req.Msg.ID <= 0 {
		return nil, toConnectError(errInvalidID)
	}
	if err := s.catalog.DeleteMenuItem(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Menu item deleted", "item_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteMenuItemResponse{}), nil
}
