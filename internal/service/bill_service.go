package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/metrics"
	"github.com/mmynk/splitbill/internal/middleware"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/receipt"
	"github.com/mmynk/splitbill/internal/rpc"
	"github.com/mmynk/splitbill/internal/storage"
)

var errDateRange = errors.New("startDate and endDate must be set together")

// BillService implements rpc.BillServiceHandler.
type BillService struct {
	store     storage.Store
	processor *receipt.Processor
	metrics   *metrics.SplitMetrics
}

var _ rpc.BillServiceHandler = (*BillService)(nil)

// NewBillService creates a BillService. processor and m may be nil; scans then
// fail with CodeUnavailable and nothing is recorded.
func NewBillService(store storage.Store, processor *receipt.Processor, m *metrics.SplitMetrics) *BillService {
	return &BillService{store: store, processor: processor, metrics: m}
}

// summarize runs the calculator and names people from the given list, or from
// the caller's saved people when the list is empty.
func (s *BillService) summarize(ctx context.Context, bill models.Bill, people []models.Person) calculator.Summary {
	summary := calculator.Summarize(bill)
	s.metrics.ObserveSummary(bill.Currency.Original, summary.AdjustmentsDistributed, summary.UnsplitCount)

	if len(people) == 0 {
		userID := bill.OwnerID
		if userID == "" {
			return summary
		}
		saved, err := s.store.ListPeople(ctx, userID)
		if err != nil {
			slog.Warn("Failed to load people for summary", "user_id", userID, "error", err)
			return summary
		}
		people = saved
	}
	return summary.WithNames(calculator.NewPeopleIndex(people))
}

// CalculateSummary splits a bill without storing it.
func (s *BillService) CalculateSummary(ctx context.Context, req *connect.Request[rpc.CalculateSummaryRequest]) (*connect.Response[rpc.CalculateSummaryResponse], error) {
	bill := req.Msg.Bill
	if err := bill.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if req.Msg.Recompute {
		bill.RecomputeTotals()
	}
	// Anonymous callers never see saved people.
	bill.OwnerID = middleware.GetUserID(ctx)

	slog.Debug("Calculating summary",
		"bill_id", bill.ID,
		"items", len(bill.Items),
		"adjustments", len(bill.Adjustments),
	)

	summary := s.summarize(ctx, bill, req.Msg.People)
	if !summary.Reconciled() {
		slog.Warn("Summary does not reconcile", "bill_id", bill.ID, "discrepancy", summary.Discrepancy.String())
	}

	return connect.NewResponse(&rpc.CalculateSummaryResponse{
		Summary:    summary,
		View:       formatterFor(ctx, req.Msg.Locale).Render(summary),
		Reconciled: summary.Reconciled(),
	}), nil
}

// SaveBills stores a batch of bills for the caller. Totals are recomputed on save.
func (s *BillService) SaveBills(ctx context.Context, req *connect.Request[rpc.SaveBillsRequest]) (*connect.Response[rpc.SaveBillsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	bills := make([]*models.Bill, len(req.Msg.Bills))
	for i := range req.Msg.Bills {
		bill := req.Msg.Bills[i].Clone()
		bill.OwnerID = userID
		if bill.CreatedAt == 0 {
			bill.CreatedAt = now
		}
		bill.UpdatedAt = now
		bill.RecomputeTotals()
		if err := bill.Validate(); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("bill %d: %w", i, err))
		}
		bills[i] = &bill
	}

	if err := s.store.SaveBills(ctx, bills); err != nil {
		slog.Error("Failed to save bills", "user_id", userID, "count", len(bills), "error", err)
		return nil, storageError("save bills", err)
	}

	slog.Info("Bills saved", "user_id", userID, "count", len(bills))
	return connect.NewResponse(&rpc.SaveBillsResponse{Bills: derefBills(bills)}), nil
}

// GetBill returns a stored bill with its summary.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[rpc.GetBillRequest]) (*connect.Response[rpc.GetBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	bill, err := s.store.GetBill(ctx, userID, req.Msg.BillID)
	if err != nil {
		return nil, storageError("get bill", err)
	}

	summary := s.summarize(ctx, *bill, nil)
	return connect.NewResponse(&rpc.GetBillResponse{
		Bill:    *bill,
		Summary: summary,
		View:    formatterFor(ctx, req.Msg.Locale).Render(summary),
	}), nil
}

// ListBills lists the caller's bills, newest first, optionally within a date range.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[rpc.ListBillsRequest]) (*connect.Response[rpc.ListBillsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	start, end := req.Msg.StartDate, req.Msg.EndDate
	var bills []*models.Bill
	switch {
	case start == "" && end == "":
		bills, err = s.store.ListBills(ctx, userID)
	case start != "" && end != "":
		bills, err = s.store.ListBillsByDateRange(ctx, userID, start, end)
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, errDateRange)
	}
	if err != nil {
		return nil, storageError("list bills", err)
	}

	return connect.NewResponse(&rpc.ListBillsResponse{Bills: derefBills(bills)}), nil
}

// DeleteBill deletes one bill, or all of the caller's bills.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[rpc.DeleteBillRequest]) (*connect.Response[rpc.DeleteBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if req.Msg.All {
		err = s.store.DeleteAllBills(ctx, userID)
	} else {
		err = s.store.DeleteBill(ctx, userID, req.Msg.BillID)
	}
	if err != nil {
		return nil, storageError("delete bill", err)
	}

	slog.Info("Bill deleted", "user_id", userID, "bill_id", req.Msg.BillID, "all", req.Msg.All)
	return connect.NewResponse(&rpc.DeleteBillResponse{}), nil
}

// ScanReceipt extracts a bill from a receipt image. Extraction failures are
// reported in the result, not as an RPC error.
func (s *BillService) ScanReceipt(ctx context.Context, req *connect.Request[rpc.ScanReceiptRequest]) (*connect.Response[rpc.ScanReceiptResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if !s.processor.Configured() {
		return nil, connect.NewError(connect.CodeUnavailable, receipt.ErrNotConfigured)
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	result := s.processor.Process(ctx, req.Msg.Image, req.Msg.MimeType)
	s.metrics.ObserveScan(result.Success, result.Cached)
	resp := &rpc.ScanReceiptResponse{Result: result}
	if !result.Success {
		return connect.NewResponse(resp), nil
	}

	bill := result.Data.ToBill(userID)
	if mismatch := result.Data.TotalsMismatch(bill); !mismatch.IsZero() {
		slog.Warn("Receipt totals do not match its lines",
			"bill_id", bill.ID,
			"printed", result.Data.Totals.GrandTotal.String(),
			"computed", bill.Totals.GrandTotal.String(),
		)
	}
	resp.Bill = bill

	if req.Msg.Save {
		if err := bill.Validate(); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		if err := s.store.SaveBills(ctx, []*models.Bill{bill}); err != nil {
			return nil, storageError("save scanned bill", err)
		}
		slog.Info("Scanned bill saved", "user_id", userID, "bill_id", bill.ID)
	}

	return connect.NewResponse(resp), nil
}

func derefBills(bills []*models.Bill) []models.Bill {
	out := make([]models.Bill, len(bills))
	for i, b := range bills {
		out[i] = *b
	}
	return out
}
