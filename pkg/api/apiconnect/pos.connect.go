package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/kasir/pkg/api"
)

// PosServiceName is the fully-qualified name of the PosService service.
const PosServiceName = "kasir.v1.PosService"

// Procedure paths, for use in interceptors and routing.
const (
	PosServiceComputeTotalProcedure          = "/kasir.v1.PosService/ComputeTotal"
	PosServiceSuggestPaymentOptionsProcedure = "/kasir.v1.PosService/SuggestPaymentOptions"
	PosServiceFinalizeTransactionProcedure   = "/kasir.v1.PosService/FinalizeTransaction"
	PosServiceGetSyncStatusProcedure         = "/kasir.v1.PosService/GetSyncStatus"
	PosServiceResyncTransactionProcedure     = "/kasir.v1.PosService/ResyncTransaction"
	PosServiceListTransactionsProcedure      = "/kasir.v1.PosService/ListTransactions"
	PosServiceGetTransactionProcedure        = "/kasir.v1.PosService/GetTransaction"
	PosServiceGetSalesSummaryProcedure       = "/kasir.v1.PosService/GetSalesSummary"
	PosServiceCheckSyncProcedure             = "/kasir.v1.PosService/CheckSync"
	PosServiceOpenSessionProcedure           = "/kasir.v1.PosService/OpenSession"
	PosServiceAddToCartProcedure             = "/kasir.v1.PosService/AddToCart"
	PosServiceRemoveFromCartProcedure        = "/kasir.v1.PosService/RemoveFromCart"
	PosServiceGetCartProcedure               = "/kasir.v1.PosService/GetCart"
	PosServiceClearCartProcedure             = "/kasir.v1.PosService/ClearCart"
	PosServiceCheckoutProcedure              = "/kasir.v1.PosService/Checkout"
	PosServiceCloseSessionProcedure          = "/kasir.v1.PosService/CloseSession"
)

// PosServiceHandler is the server side of kasir.v1.PosService, which
// computes totals and payment suggestions, manages cart sessions and
// records transactions.
type PosServiceHandler interface {
	ComputeTotal(context.Context, *connect.Request[api.ComputeTotalRequest]) (*connect.Response[api.ComputeTotalResponse], error)
	SuggestPaymentOptions(context.Context, *connect.Request[api.SuggestPaymentOptionsRequest]) (*connect.Response[api.SuggestPaymentOptionsResponse], error)
	FinalizeTransaction(context.Context, *connect.Request[api.FinalizeTransactionRequest]) (*connect.Response[api.FinalizeTransactionResponse], error)
	GetSyncStatus(context.Context, *connect.Request[api.GetSyncStatusRequest]) (*connect.Response[api.GetSyncStatusResponse], error)
	ResyncTransaction(context.Context, *connect.Request[api.ResyncTransactionRequest]) (*connect.Response[api.ResyncTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	GetTransaction(context.Context, *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error)
	GetSalesSummary(context.Context, *connect.Request[api.GetSalesSummaryRequest]) (*connect.Response[api.GetSalesSummaryResponse], error)
	CheckSync(context.Context, *connect.Request[api.CheckSyncRequest]) (*connect.Response[api.CheckSyncResponse], error)
	OpenSession(context.Context, *connect.Request[api.OpenSessionRequest]) (*connect.Response[api.OpenSessionResponse], error)
	AddToCart(context.Context, *connect.Request[api.AddToCartRequest]) (*connect.Response[api.AddToCartResponse], error)
	RemoveFromCart(context.Context, *connect.Request[api.RemoveFromCartRequest]) (*connect.Response[api.RemoveFromCartResponse], error)
	GetCart(context.Context, *connect.Request[api.GetCartRequest]) (*connect.Response[api.GetCartResponse], error)
	ClearCart(context.Context, *connect.Request[api.ClearCartRequest]) (*connect.Response[api.ClearCartResponse], error)
	Checkout(context.Context, *connect.Request[api.CheckoutRequest]) (*connect.Response[api.CheckoutResponse], error)
	CloseSession(context.Context, *connect.Request[api.CloseSessionRequest]) (*connect.Response[api.CloseSessionResponse], error)
}

// NewPosServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPosServiceHandler(svc PosServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(PosServiceComputeTotalProcedure, connect.NewUnaryHandler(PosServiceComputeTotalProcedure, svc.ComputeTotal, opts...))
	mux.Handle(PosServiceSuggestPaymentOptionsProcedure, connect.NewUnaryHandler(PosServiceSuggestPaymentOptionsProcedure, svc.SuggestPaymentOptions, opts...))
	mux.Handle(PosServiceFinalizeTransactionProcedure, connect.NewUnaryHandler(PosServiceFinalizeTransactionProcedure, svc.FinalizeTransaction, opts...))
	mux.Handle(PosServiceGetSyncStatusProcedure, connect.NewUnaryHandler(PosServiceGetSyncStatusProcedure, svc.GetSyncStatus, opts...))
	mux.Handle(PosServiceResyncTransactionProcedure, connect.NewUnaryHandler(PosServiceResyncTransactionProcedure, svc.ResyncTransaction, opts...))
	mux.Handle(PosServiceListTransactionsProcedure, connect.NewUnaryHandler(PosServiceListTransactionsProcedure, svc.ListTransactions, opts...))
	mux.Handle(PosServiceGetTransactionProcedure, connect.NewUnaryHandler(PosServiceGetTransactionProcedure, svc.GetTransaction, opts...))
	mux.Handle(PosServiceGetSalesSummaryProcedure, connect.NewUnaryHandler(PosServiceGetSalesSummaryProcedure, svc.GetSalesSummary, opts...))
	mux.Handle(PosServiceCheckSyncProcedure, connect.NewUnaryHandler(PosServiceCheckSyncProcedure, svc.CheckSync, opts...))
	mux.Handle(PosServiceOpenSessionProcedure, connect.NewUnaryHandler(PosServiceOpenSessionProcedure, svc.OpenSession, opts...))
	mux.Handle(PosServiceAddToCartProcedure, connect.NewUnaryHandler(PosServiceAddToCartProcedure, svc.AddToCart, opts...))
	mux.Handle(PosServiceRemoveFromCartProcedure, connect.NewUnaryHandler(PosServiceRemoveFromCartProcedure, svc.RemoveFromCart, opts...))
	mux.Handle(PosServiceGetCartProcedure, connect.NewUnaryHandler(PosServiceGetCartProcedure, svc.GetCart, opts...))
	mux.Handle(PosServiceClearCartProcedure, connect.NewUnaryHandler(PosServiceClearCartProcedure, svc.ClearCart, opts...))
	mux.Handle(PosServiceCheckoutProcedure, connect.NewUnaryHandler(PosServiceCheckoutProcedure, svc.Checkout, opts...))
	mux.Handle(PosServiceCloseSessionProcedure, connect.NewUnaryHandler(PosServiceCloseSessionProcedure, svc.CloseSession, opts...))
	return "/" + PosServiceName + "/", mux
}

// PosServiceClient is a client for the kasir.v1.PosService service.
type PosServiceClient interface {
	ComputeTotal(context.Context, *connect.Request[api.ComputeTotalRequest]) (*connect.Response[api.ComputeTotalResponse], error)
	SuggestPaymentOptions(context.Context, *connect.Request[api.SuggestPaymentOptionsRequest]) (*connect.Response[api.SuggestPaymentOptionsResponse], error)
	FinalizeTransaction(context.Context, *connect.Request[api.FinalizeTransactionRequest]) (*connect.Response[api.FinalizeTransactionResponse], error)
	GetSyncStatus(context.Context, *connect.Request[api.GetSyncStatusRequest]) (*connect.Response[api.GetSyncStatusResponse], error)
	ResyncTransaction(context.Context, *connect.Request[api.ResyncTransactionRequest]) (*connect.Response[api.ResyncTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	GetTransaction(context.Context, *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error)
	GetSalesSummary(context.Context, *connect.Request[api.GetSalesSummaryRequest]) (*connect.Response[api.GetSalesSummaryResponse], error)
	CheckSync(context.Context, *connect.Request[api.CheckSyncRequest]) (*connect.Response[api.CheckSyncResponse], error)
	OpenSession(context.Context, *connect.Request[api.OpenSessionRequest]) (*connect.Response[api.OpenSessionResponse], error)
	AddToCart(context.Context, *connect.Request[api.AddToCartRequest]) (*connect.Response[api.AddToCartResponse], error)
	RemoveFromCart(context.Context, *connect.Request[api.RemoveFromCartRequest]) (*connect.Response[api.RemoveFromCartResponse], error)
	GetCart(context.Context, *connect.Request[api.GetCartRequest]) (*connect.Response[api.GetCartResponse], error)
	ClearCart(context.Context, *connect.Request[api.ClearCartRequest]) (*connect.Response[api.ClearCartResponse], error)
	Checkout(context.Context, *connect.Request[api.CheckoutRequest]) (*connect.Response[api.CheckoutResponse], error)
	CloseSession(context.Context, *connect.Request[api.CloseSessionRequest]) (*connect.Response[api.CloseSessionResponse], error)
}

// NewPosServiceClient constructs a client for the kasir.v1.PosService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewPosServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PosServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &posServiceClient{
		computeTotal:          connect.NewClient[api.ComputeTotalRequest, api.ComputeTotalResponse](httpClient, baseURL+PosServiceComputeTotalProcedure, opts...),
		suggestPaymentOptions: connect.NewClient[api.SuggestPaymentOptionsRequest, api.SuggestPaymentOptionsResponse](httpClient, baseURL+PosServiceSuggestPaymentOptionsProcedure, opts...),
		finalizeTransaction:   connect.NewClient[api.FinalizeTransactionRequest, api.FinalizeTransactionResponse](httpClient, baseURL+PosServiceFinalizeTransactionProcedure, opts...),
		getSyncStatus:         connect.NewClient[api.GetSyncStatusRequest, api.GetSyncStatusResponse](httpClient, baseURL+PosServiceGetSyncStatusProcedure, opts...),
		resyncTransaction:     connect.NewClient[api.ResyncTransactionRequest, api.ResyncTransactionResponse](httpClient, baseURL+PosServiceResyncTransactionProcedure, opts...),
		listTransactions:      connect.NewClient[api.ListTransactionsRequest, api.ListTransactionsResponse](httpClient, baseURL+PosServiceListTransactionsProcedure, opts...),
		getTransaction:        connect.NewClient[api.GetTransactionRequest, api.GetTransactionResponse](httpClient, baseURL+PosServiceGetTransactionProcedure, opts...),
		getSalesSummary:       connect.NewClient[api.GetSalesSummaryRequest, api.GetSalesSummaryResponse](httpClient, baseURL+PosServiceGetSalesSummaryProcedure, opts...),
		checkSync:             connect.NewClient[api.CheckSyncRequest, api.CheckSyncResponse](httpClient, baseURL+PosServiceCheckSyncProcedure, opts...),
		openSession:           connect.NewClient[api.OpenSessionRequest, api.OpenSessionResponse](httpClient, baseURL+PosServiceOpenSessionProcedure, opts...),
		addToCart:             connect.NewClient[api.AddToCartRequest, api.AddToCartResponse](httpClient, baseURL+PosServiceAddToCartProcedure, opts...),
		removeFromCart:        connect.NewClient[api.RemoveFromCartRequest, api.RemoveFromCartResponse](httpClient, baseURL+PosServiceRemoveFromCartProcedure, opts...),
		getCart:               connect.NewClient[api.GetCartRequest, api.GetCartResponse](httpClient, baseURL+PosServiceGetCartProcedure, opts...),
		clearCart:             connect.NewClient[api.ClearCartRequest, api.ClearCartResponse](httpClient, baseURL+PosServiceClearCartProcedure, opts...),
		checkout:              connect.NewClient[api.CheckoutRequest, api.CheckoutResponse](httpClient, baseURL+PosServiceCheckoutProcedure, opts...),
		closeSession:          connect.NewClient[api.CloseSessionRequest, api.CloseSessionResponse](httpClient, baseURL+PosServiceCloseSessionProcedure, opts...),
	}
}

type posServiceClient struct {
	computeTotal          *connect.Client[api.ComputeTotalRequest, api.ComputeTotalResponse]
	suggestPaymentOptions *connect.Client[api.SuggestPaymentOptionsRequest, api.SuggestPaymentOptionsResponse]
	finalizeTransaction   *connect.Client[api.FinalizeTransactionRequest, api.FinalizeTransactionResponse]
	getSyncStatus         *connect.Client[api.GetSyncStatusRequest, api.GetSyncStatusResponse]
	resyncTransaction     *connect.Client[api.ResyncTransactionRequest, api.ResyncTransactionResponse]
	listTransactions      *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
	getTransaction        *connect.Client[api.GetTransactionRequest, api.GetTransactionResponse]
	getSalesSummary       *connect.Client[api.GetSalesSummaryRequest, api.GetSalesSummaryResponse]
	checkSync             *connect.Client[api.CheckSyncRequest, api.CheckSyncResponse]
	openSession           *connect.Client[api.OpenSessionRequest, api.OpenSessionResponse]
	addToCart             *connect.Client[api.AddToCartRequest, api.AddToCartResponse]
	removeFromCart        *connect.Client[api.RemoveFromCartRequest, api.RemoveFromCartResponse]
	getCart               *connect.Client[api.GetCartRequest, api.GetCartResponse]
	clearCart             *connect.Client[api.ClearCartRequest, api.ClearCartResponse]
	checkout              *connect.Client[api.CheckoutRequest, api.CheckoutResponse]
	closeSession          *connect.Client[api.CloseSessionRequest, api.CloseSessionResponse]
}

func (c *posServiceClient) ComputeTotal(ctx context.Context, req *connect.Request[api.ComputeTotalRequest]) (*connect.Response[api.ComputeTotalResponse], error) {
	return c.computeTotal.CallUnary(ctx, req)
}

func (c *posServiceClient) SuggestPaymentOptions(ctx context.Context, req *connect.Request[api.SuggestPaymentOptionsRequest]) (*connect.Response[api.SuggestPaymentOptionsResponse], error) {
	return c.suggestPaymentOptions.CallUnary(ctx, req)
}

func (c *posServiceClient) FinalizeTransaction(ctx context.Context, req *connect.Request[api.FinalizeTransactionRequest]) (*connect.Response[api.FinalizeTransactionResponse], error) {
	return c.finalizeTransaction.CallUnary(ctx, req)
}

func (c *posServiceClient) GetSyncStatus(ctx context.Context, req *connect.Request[api.GetSyncStatusRequest]) (*connect.Response[api.GetSyncStatusResponse], error) {
	return c.getSyncStatus.CallUnary(ctx, req)
}

func (c *posServiceClient) ResyncTransaction(ctx context.Context, req *connect.Request[api.ResyncTransactionRequest]) (*connect.Response[api.ResyncTransactionResponse], error) {
	return c.resyncTransaction.CallUnary(ctx, req)
}

func (c *posServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *posServiceClient) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	return c.getTransaction.CallUnary(ctx, req)
}

func (c *posServiceClient) GetSalesSummary(ctx context.Context, req *connect.Request[api.GetSalesSummaryRequest]) (*connect.Response[api.GetSalesSummaryResponse], error) {
	return c.getSalesSummary.CallUnary(ctx, req)
}

func (c *posServiceClient) CheckSync(ctx context.Context, req *connect.Request[api.CheckSyncRequest]) (*connect.Response[api.CheckSyncResponse], error) {
	return c.checkSync.CallUnary(ctx, req)
}

func (c *posServiceClient) OpenSession(ctx context.Context, req *connect.Request[api.OpenSessionRequest]) (*connect.Response[api.OpenSessionResponse], error) {
	return c.openSession.CallUnary(ctx, req)
}

func (c *posServiceClient) AddToCart(ctx context.Context, req *connect.Request[api.AddToCartRequest]) (*connect.Response[api.AddToCartResponse], error) {
	return c.addToCart.CallUnary(ctx, req)
}

func (c *posServiceClient) RemoveFromCart(ctx context.Context, req *connect.Request[api.RemoveFromCartRequest]) (*connect.Response[api.RemoveFromCartResponse], error) {
	return c.removeFromCart.CallUnary(ctx, req)
}

func (c *posServiceClient) GetCart(ctx context.Context, req *connect.Request[api.GetCartRequest]) (*connect.Response[api.GetCartResponse], error) {
	return c.getCart.CallUnary(ctx, req)
}

func (c *posServiceClient) ClearCart(ctx context.Context, req *connect.Request[api.ClearCartRequest]) (*connect.Response[api.ClearCartResponse], error) {
	return c.clearCart.CallUnary(ctx, req)
}

func (c *posServiceClient) Checkout(ctx context.Context, req *connect.Request[api.CheckoutRequest]) (*connect.Response[api.CheckoutResponse], error) {
	return c.checkout.CallUnary(ctx, req)
}

func (c *posServiceClient) CloseSession(ctx context.Context, req *connect.Request[api.CloseSessionRequest]) (*connect.Response[api.CloseSessionResponse], error) {
	return c.closeSession.CallUnary(ctx, req)
}
