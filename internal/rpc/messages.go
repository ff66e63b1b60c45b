package rpc

import (
	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/display"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/receipt"
)

// CalculateSummaryRequest asks for the split of a bill that need not be saved.
type CalculateSummaryRequest struct {
	Bill models.Bill `json:"bill"`

	// Locale formats the returned view. Defaults to the caller's locale.
	Locale string `json:"locale,omitempty"`

	// People, when given, supply current display names for person IDs.
	People []models.Person `json:"people,omitempty"`

	// Recompute refreshes the bill's cached totals before summarizing.
	Recompute bool `json:"recompute,omitempty"`
}

type CalculateSummaryResponse struct {
	Summary    calculator.Summary  `json:"summary"`
	View       display.SummaryView `json:"view"`
	Reconciled bool                `json:"reconciled"`
}

type SaveBillsRequest struct {
	Bills []models.Bill `json:"bills" validate:"required,min=1"`
}

type SaveBillsResponse struct {
	Bills []models.Bill `json:"bills"`
}

type GetBillRequest struct {
	BillID string `json:"billId" validate:"required"`
	Locale string `json:"locale,omitempty"`
}

type GetBillResponse struct {
	Bill    models.Bill         `json:"bill"`
	Summary calculator.Summary  `json:"summary"`
	View    display.SummaryView `json:"view"`
}

// ListBillsRequest lists all bills, or only those dated within the range when
// both dates are set.
type ListBillsRequest struct {
	StartDate string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ListBillsResponse struct {
	Bills []models.Bill `json:"bills"`
}

// DeleteBillRequest deletes one bill, or every bill of the caller when All is set.
type DeleteBillRequest struct {
	BillID string `json:"billId,omitempty" validate:"required_without=All"`
	All    bool   `json:"all,omitempty"`
}

type DeleteBillResponse struct{}

type ScanReceiptRequest struct {
	// Image is the raw image; JSON carries it base64 encoded.
	Image    []byte `json:"image" validate:"required"`
	MimeType string `json:"mimeType,omitempty"`

	// Save stores the resulting bill for the caller.
	Save bool `json:"save,omitempty"`
}

type ScanReceiptResponse struct {
	Result receipt.Result `json:"result"`

	// Bill is the editable bill built from the scan, nil when the scan failed.
	Bill *models.Bill `json:"bill,omitempty"`
}

type SavePeopleRequest struct {
	People []models.Person `json:"people" validate:"required,min=1"`
}

type SavePeopleResponse struct {
	People []models.Person `json:"people"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []models.Person `json:"people"`
}

type FindPeopleRequest struct {
	Name string `json:"name" validate:"required"`
}

type FindPeopleResponse struct {
	People []models.Person `json:"people"`
}

// DeletePersonRequest deletes one person, or all of them when All is set.
type DeletePersonRequest struct {
	PersonID string `json:"personId,omitempty" validate:"required_without=All"`
	All      bool   `json:"all,omitempty"`
}

type DeletePersonResponse struct{}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required"`
	DisplayName string `json:"displayName,omitempty"`
	Password    string `json:"password" validate:"required"`
	Locale      string `json:"locale,omitempty" validate:"omitempty,bcp47_language_tag"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User UserInfo `json:"user"`
}

// UserInfo is the public part of a user record.
type UserInfo struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	DisplayName     string `json:"displayName"`
	DefaultCurrency string `json:"defaultCurrency"`
	Locale          string `json:"locale"`
	CreatedAt       int64  `json:"createdAt"`
}

// NewUserInfo strips private fields from a user.
func NewUserInfo(u *models.User) UserInfo {
	return UserInfo{
		ID:              u.ID,
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		DefaultCurrency: u.DefaultCurrency,
		Locale:          u.Locale,
		CreatedAt:       u.CreatedAt,
	}
}
