package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kasir/pkg/api"
)

// CatalogServiceName is the fully-qualified name of the CatalogService service.
const CatalogServiceName = "kasir.v1.CatalogService"

// Procedure paths, for use in interceptors and routing.
const (
	CatalogServiceListMenuProcedure       = "/kasir.v1.CatalogService/ListMenu"
	CatalogServiceAddMenuItemProcedure    = "/kasir.v1.CatalogService/AddMenuItem"
	CatalogServiceDeleteMenuItemProcedure = "/kasir.v1.CatalogService/DeleteMenuItem"
)

// CatalogServiceHandler is the server side of kasir.v1.CatalogService,
// which manages the menu.
type CatalogServiceHandler interface {
	ListMenu(context.Context, *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error)
	AddMenuItem(context.Context, *connect.Request[api.AddMenuItemRequest]) (*connect.Response[api.AddMenuItemResponse], error)
	DeleteMenuItem(context.Context, *connect.Request[api.DeleteMenuItemRequest]) (*connect.Response[api.DeleteMenuItemResponse], error)
}

// NewCatalogServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewCatalogServiceHandler(svc CatalogServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(CatalogServiceListMenuProcedure, connect.NewUnaryHandler(CatalogServiceListMenuProcedure, svc.ListMenu, opts...))
	mux.Handle(CatalogServiceAddMenuItemProcedure, connect.NewUnaryHandler(CatalogServiceAddMenuItemProcedure, svc.AddMenuItem, opts...))
	mux.Handle(CatalogServiceDeleteMenuItemProcedure, connect.NewUnaryHandler(CatalogServiceDeleteMenuItemProcedure, svc.DeleteMenuItem, opts...))
	return "/" + CatalogServiceName + "/", mux
}

// CatalogServiceClient is a client for the kasir.v1.CatalogService service.
type CatalogServiceClient interface {
	ListMenu(context.Context, *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error)
	AddMenuItem(context.Context, *connect.Request[api.AddMenuItemRequest]) (*connect.Response[api.AddMenuItemResponse], error)
	DeleteMenuItem(context.Context, *connect.Request[api.DeleteMenuItemRequest]) (*connect.Response[api.DeleteMenuItemResponse], error)
}

// NewCatalogServiceClient constructs a client for the kasir.v1.CatalogService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewCatalogServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CatalogServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &catalogServiceClient{
		listMenu:       connect.NewClient[api.ListMenuRequest, api.ListMenuResponse](httpClient, baseURL+CatalogServiceListMenuProcedure, opts...),
		addMenuItem:    connect.NewClient[api.AddMenuItemRequest, api.AddMenuItemResponse](httpClient, baseURL+CatalogServiceAddMenuItemProcedure, opts...),
		deleteMenuItem: connect.NewClient[api.DeleteMenuItemRequest, api.DeleteMenuItemResponse](httpClient, baseURL+CatalogServiceDeleteMenuItemProcedure, opts...),
	}
}

type catalogServiceClient struct {
	listMenu       *connect.Client[api.ListMenuRequest, api.ListMenuResponse]
	addMenuItem    *connect.Client[api.AddMenuItemRequest, api.AddMenuItemResponse]
	deleteMenuItem *connect.Client[api.DeleteMenuItemRequest, api.DeleteMenuItemResponse]
}

func (c *catalogServiceClient) ListMenu(ctx context.Context, req *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error) {
	return c.listMenu.CallUnary(ctx, req)
}

func (c *catalogServiceClient) AddMenuItem(ctx context.Context, req *connect.Request[api.AddMenuItemRequest]) (*connect.Response[api.AddMenuItemResponse], error) {
	return c.addMenuItem.CallUnary(ctx, req)
}

func (c *catalogServiceClient) DeleteMenuItem(ctx context.Context, req *connect.Request[api.DeleteMenuItemRequest]) (*connect.Response[api.DeleteMenuItemResponse], error) {
	return c.deleteMenuItem.CallUnary(ctx, req)
}
