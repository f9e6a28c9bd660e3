package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/api/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// VendorHandlerParams holds dependencies for VendorHandler, injected by Fx.
type VendorHandlerParams struct {
	fx.In

	VendorUC usecase.VendorUsecase
	Logger   *slog.Logger
}

// VendorHandler serves vendor onboarding, profile and moderation endpoints.
type VendorHandler struct {
	vendorUC usecase.VendorUsecase
	logger   *slog.Logger
}

// NewVendorHandler is the constructor for VendorHandler
func NewVendorHandler(params VendorHandlerParams) *VendorHandler {
	return &VendorHandler{
		vendorUC: params.VendorUC,
		logger:   params.Logger,
	}
}

// RegisterVendorRequest represents the request body for opening a vendor account
type RegisterVendorRequest struct {
	BusinessName    string `json:"business_name" validate:"required,max=200"`
	BusinessEmail   string `json:"business_email" validate:"required,email"`
	BusinessPhone   string `json:"business_phone" validate:"max=20"`
	BusinessAddress string `json:"business_address" validate:"max=500"`
	BankName        string `json:"bank_name" validate:"max=100"`
	AccountNumber   string `json:"account_number" validate:"max=50"`
	AccountName     string `json:"account_name" validate:"max=200"`
}

// UpdateVendorProfileRequest represents the request body for editing a vendor profile
type UpdateVendorProfileRequest struct {
	BusinessName    *string `json:"business_name" validate:"omitempty,min=1,max=200"`
	BusinessEmail   *string `json:"business_email" validate:"omitempty,email"`
	BusinessPhone   *string `json:"business_phone" validate:"omitempty,max=20"`
	BusinessAddress *string `json:"business_address" validate:"omitempty,max=500"`
	BankName        *string `json:"bank_name" validate:"omitempty,max=100"`
	AccountNumber   *string `json:"account_number" validate:"omitempty,max=50"`
	AccountName     *string `json:"account_name" validate:"omitempty,max=200"`
}

// WithdrawalRequest represents the request body for a payout request
type WithdrawalRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

// ModerationRequest carries the admin's reason for a reject or suspend
type ModerationRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// CommissionRequest represents the request body for changing a vendor's rate
type CommissionRequest struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

// Register handles opening a vendor account for the caller
func (h *VendorHandler) Register(c echo.Context) error {
	var req RegisterVendorRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	vendor, err := h.vendorUC.Register(c.Request().Context(), callerIdentity(c), usecase.RegisterVendorInput{
		BusinessName:    req.BusinessName,
		BusinessEmail:   req.BusinessEmail,
		BusinessPhone:   req.BusinessPhone,
		BusinessAddress: req.BusinessAddress,
		BankName:        req.BankName,
		AccountNumber:   req.AccountNumber,
		AccountName:     req.AccountName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toVendorResponse(vendor))
}

// GetProfile handles retrieving the caller's vendor account
func (h *VendorHandler) GetProfile(c echo.Context) error {
	vendor, err := h.vendorUC.GetProfile(c.Request().Context(), callerIdentity(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toVendorResponse(vendor))
}

// UpdateProfile handles editing the caller's vendor account
func (h *VendorHandler) UpdateProfile(c echo.Context) error {
	var req UpdateVendorProfileRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	vendor, err := h.vendorUC.UpdateProfile(c.Request().Context(), callerIdentity(c), usecase.UpdateVendorProfileInput{
		BusinessName:    req.BusinessName,
		BusinessEmail:   req.BusinessEmail,
		BusinessPhone:   req.BusinessPhone,
		BusinessAddress: req.BusinessAddress,
		BankName:        req.BankName,
		AccountNumber:   req.AccountNumber,
		AccountName:     req.AccountName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toVendorResponse(vendor))
}

// RequestWithdrawal handles a vendor asking to be paid out
func (h *VendorHandler) RequestWithdrawal(c echo.Context) error {
	var req WithdrawalRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	withdrawal, err := h.vendorUC.RequestWithdrawal(c.Request().Context(), callerIdentity(c), req.Amount)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, toWithdrawalResponse(withdrawal))
}

// ListVendors handles an admin listing vendors, optionally by status
func (h *VendorHandler) ListVendors(c echo.Context) error {
	var status *entity.VendorStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := entity.VendorStatus(raw)
		if !s.IsValid() {
			return response.BadRequest(c, "INVALID_STATUS", "Unknown vendor status")
		}
		status = &s
	}

	page := pageFrom(c)
	vendors, total, err := h.vendorUC.ListVendors(c.Request().Context(), callerIdentity(c), status, listOptions(page))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Paginated(c, toVendorResponses(vendors), page.Meta(total))
}

// Approve handles an admin approving a pending vendor
func (h *VendorHandler) Approve(c echo.Context) error {
	vendorID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "vendor ID")
	}

	vendor, err := h.vendorUC.Approve(c.Request().Context(), callerIdentity(c), vendorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toVendorResponse(vendor))
}

// Reject handles an admin rejecting a pending vendor
func (h *VendorHandler) Reject(c echo.Context) error {
	vendorID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "vendor ID")
	}

	var req ModerationRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	vendor, err := h.vendorUC.Reject(c.Request().Context(), callerIdentity(c), vendorID, req.Reason)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toVendorResponse(vendor))
}

// Suspend handles an admin suspending a vendor and its products
func (h *VendorHandler) Suspend(c echo.Context) error {
	vendorID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "vendor ID")
	}

	var req ModerationRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	out, err := h.vendorUC.Suspend(c.Request().Context(), callerIdentity(c), vendorID, req.Reason)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &SuspendVendorResponse{
		Vendor:              toVendorResponse(out.Vendor),
		DeactivatedProducts: out.DeactivatedProducts,
	})
}

// SetCommission handles an admin changing a vendor's commission rate
func (h *VendorHandler) SetCommission(c echo.Context) error {
	vendorID, ok := parseIDParam(c, "id")
	if !ok {
		return invalidID(c, "vendor ID")
	}

	var req CommissionRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	vendor, err := h.vendorUC.SetCommissionRate(c.Request().Context(), callerIdentity(c), vendorID, req.CommissionRate)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toVendorResponse(vendor))
}
