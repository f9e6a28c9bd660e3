package impl

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultDashboardDays = 30
	maxDashboardDays     = 365
	dashboardTopLimit    = 5
)

// reportService implements the ReportUsecase interface.
type reportService struct {
	reportRepo repository.ReportRepository
	vendorRepo repository.VendorRepository
	auditRepo  repository.AuditRepository
	now        func() time.Time
}

// ReportServiceParams holds dependencies for ReportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	ReportRepo repository.ReportRepository
	VendorRepo repository.VendorRepository
	AuditRepo  repository.AuditRepository
}

// NewReportService creates a new report service instance
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	return &reportService{
		reportRepo: params.ReportRepo,
		vendorRepo: params.VendorRepo,
		auditRepo:  params.AuditRepo,
		now:        time.Now,
	}
}

func normalizeDays(days int) int {
	if days <= 0 {
		return defaultDashboardDays
	}

	return min(days, maxDashboardDays)
}

// VendorDashboard summarises the caller's catalog and sales.
func (srv *reportService) VendorDashboard(ctx context.Context, identity entity.Identity, days int) (*usecase.VendorDashboard, error) {
	vendor, err := callerVendor(ctx, srv.vendorRepo, identity)
	if err != nil {
		return nil, err
	}

	days = normalizeDays(days)
	since := srv.now().AddDate(0, 0, -days)

	products, err := srv.reportRepo.CountProducts(ctx, &vendor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count vendor products")
	}

	orders, err := srv.reportRepo.CountVendorOrders(ctx, vendor.ID, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count vendor orders")
	}

	revenue, err := srv.reportRepo.VendorRevenueSince(ctx, vendor.ID, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum vendor revenue")
	}

	top, err := srv.reportRepo.TopProducts(ctx, vendor.ID, dashboardTopLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rank vendor products")
	}

	return &usecase.VendorDashboard{
		Vendor:        vendor,
		Days:          days,
		Products:      *products,
		Orders:        *orders,
		RecentRevenue: revenue,
		TopProducts:   top,
	}, nil
}

// AdminDashboard summarises the whole marketplace.
func (srv *reportService) AdminDashboard(ctx context.Context, identity entity.Identity, days int) (*usecase.AdminDashboard, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	days = normalizeDays(days)
	since := srv.now().AddDate(0, 0, -days)

	vendors, err := srv.reportRepo.CountVendors(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count vendors")
	}

	products, err := srv.reportRepo.CountProducts(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	orders, err := srv.reportRepo.CountOrders(ctx, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	revenue, err := srv.reportRepo.Revenue(ctx, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum revenue")
	}

	top, err := srv.reportRepo.TopVendors(ctx, dashboardTopLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rank vendors")
	}

	return &usecase.AdminDashboard{
		Days:       days,
		Vendors:    *vendors,
		Products:   *products,
		Orders:     *orders,
		Revenue:    *revenue,
		TopVendors: top,
	}, nil
}

// ListAuditRecords pages through the admin action log.
func (srv *reportService) ListAuditRecords(ctx context.Context, identity entity.Identity, opts repository.ListOptions) ([]*entity.AuditRecord, int64, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, 0, err
	}

	records, total, err := srv.auditRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list audit records")
	}

	return records, total, nil
}
