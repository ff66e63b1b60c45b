package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BillServiceName is the fully-qualified name of the BillService.
const BillServiceName = "splitbill.v1.BillService"

const (
	BillServiceCalculateSummaryProcedure = "/splitbill.v1.BillService/CalculateSummary"
	BillServiceSaveBillsProcedure        = "/splitbill.v1.BillService/SaveBills"
	BillServiceGetBillProcedure          = "/splitbill.v1.BillService/GetBill"
	BillServiceListBillsProcedure        = "/splitbill.v1.BillService/ListBills"
	BillServiceDeleteBillProcedure       = "/splitbill.v1.BillService/DeleteBill"
	BillServiceScanReceiptProcedure      = "/splitbill.v1.BillService/ScanReceipt"
)

// BillServiceHandler is implemented by the server side of BillService.
type BillServiceHandler interface {
	CalculateSummary(context.Context, *connect.Request[CalculateSummaryRequest]) (*connect.Response[CalculateSummaryResponse], error)
	SaveBills(context.Context, *connect.Request[SaveBillsRequest]) (*connect.Response[SaveBillsResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error)
	ListBills(context.Context, *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error)
	DeleteBill(context.Context, *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error)
	ScanReceipt(context.Context, *connect.Request[ScanReceiptRequest]) (*connect.Response[ScanReceiptResponse], error)
}

// NewBillServiceHandler builds an HTTP handler for svc. The returned path is
// the prefix to mount it on.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BillServiceCalculateSummaryProcedure, connect.NewUnaryHandler(BillServiceCalculateSummaryProcedure, svc.CalculateSummary, opts...))
	mux.Handle(BillServiceSaveBillsProcedure, connect.NewUnaryHandler(BillServiceSaveBillsProcedure, svc.SaveBills, opts...))
	mux.Handle(BillServiceGetBillProcedure, connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...))
	mux.Handle(BillServiceListBillsProcedure, connect.NewUnaryHandler(BillServiceListBillsProcedure, svc.ListBills, opts...))
	mux.Handle(BillServiceDeleteBillProcedure, connect.NewUnaryHandler(BillServiceDeleteBillProcedure, svc.DeleteBill, opts...))
	mux.Handle(BillServiceScanReceiptProcedure, connect.NewUnaryHandler(BillServiceScanReceiptProcedure, svc.ScanReceipt, opts...))
	return "/" + BillServiceName + "/", mux
}

// BillServiceClient calls a remote BillService.
type BillServiceClient struct {
	calculateSummary *connect.Client[CalculateSummaryRequest, CalculateSummaryResponse]
	saveBills        *connect.Client[SaveBillsRequest, SaveBillsResponse]
	getBill          *connect.Client[GetBillRequest, GetBillResponse]
	listBills        *connect.Client[ListBillsRequest, ListBillsResponse]
	deleteBill       *connect.Client[DeleteBillRequest, DeleteBillResponse]
	scanReceipt      *connect.Client[ScanReceiptRequest, ScanReceiptResponse]
}

// NewBillServiceClient creates a client for the service at baseURL.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &BillServiceClient{
		calculateSummary: connect.NewClient[CalculateSummaryRequest, CalculateSummaryResponse](httpClient, baseURL+BillServiceCalculateSummaryProcedure, opts...),
		saveBills:        connect.NewClient[SaveBillsRequest, SaveBillsResponse](httpClient, baseURL+BillServiceSaveBillsProcedure, opts...),
		getBill:          connect.NewClient[GetBillRequest, GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		listBills:        connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+BillServiceListBillsProcedure, opts...),
		deleteBill:       connect.NewClient[DeleteBillRequest, DeleteBillResponse](httpClient, baseURL+BillServiceDeleteBillProcedure, opts...),
		scanReceipt:      connect.NewClient[ScanReceiptRequest, ScanReceiptResponse](httpClient, baseURL+BillServiceScanReceiptProcedure, opts...),
	}
}

func (c *BillServiceClient) CalculateSummary(ctx context.Context, req *connect.Request[CalculateSummaryRequest]) (*connect.Response[CalculateSummaryResponse], error) {
	return c.calculateSummary.CallUnary(ctx, req)
}

func (c *BillServiceClient) SaveBills(ctx context.Context, req *connect.Request[SaveBillsRequest]) (*connect.Response[SaveBillsResponse], error) {
	return c.saveBills.CallUnary(ctx, req)
}

func (c *BillServiceClient) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *BillServiceClient) DeleteBill(ctx context.Context, req *connect.Request[DeleteBillRequest]) (*connect.Response[DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) ScanReceipt(ctx context.Context, req *connect.Request[ScanReceiptRequest]) (*connect.Response[ScanReceiptResponse], error) {
	return c.scanReceipt.CallUnary(ctx, req)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{Codec()}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{Codec()}, opts...)
}
