package abokiapi

import (
	"encoding/json"
	"time"
)

// VerificationStatus is the server-assigned enum gating a business account's
// progress toward API access.
type VerificationStatus string

const (
	VerificationPending   VerificationStatus = "pending"
	VerificationApproved  VerificationStatus = "approved"
	VerificationRejected  VerificationStatus = "rejected"
	VerificationSuspended VerificationStatus = "suspended"
)

// UserRecord is the normalized user snapshot returned by the auth endpoints.
// It is read-mostly: refreshed wholesale from the API, never merged field by
// field.
type UserRecord struct {
	ID                 string             `json:"id,omitempty"`
	Email              string             `json:"email,omitempty"`
	FullName           string             `json:"fullName,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	IsEmailVerified    bool               `json:"isEmailVerified"`
	VerificationStatus VerificationStatus `json:"verificationStatus,omitempty"`
	HasAPIAccess       bool               `json:"hasApiAccess"`
	BusinessName       string             `json:"businessName,omitempty"`
	CreatedAt          time.Time          `json:"createdAt,omitempty"`
}

// userPayload mirrors the loose field spellings the remote API has used across
// versions (isVerified vs emailVerified, hasApiAccess vs apiAccess). Normalize
// folds them into a UserRecord.
type userPayload struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	FullName           string             `json:"fullName"`
	Phone              string             `json:"phone"`
	IsVerified         *bool              `json:"isVerified"`
	EmailVerified      *bool              `json:"emailVerified"`
	IsEmailVerified    *bool              `json:"isEmailVerified"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	HasAPIAccess       *bool              `json:"hasApiAccess"`
	APIAccess          *bool              `json:"apiAccess"`
	BusinessName       string             `json:"businessName"`
	CreatedAt          time.Time          `json:"createdAt"`
}

func (p userPayload) Normalize() UserRecord {
	return UserRecord{
		ID:                 p.ID,
		Email:              p.Email,
		FullName:           p.FullName,
		Phone:              p.Phone,
		IsEmailVerified:    firstTrue(p.IsVerified, p.EmailVerified, p.IsEmailVerified),
		VerificationStatus: p.VerificationStatus,
		HasAPIAccess:       firstTrue(p.HasAPIAccess, p.APIAccess),
		BusinessName:       p.BusinessName,
		CreatedAt:          p.CreatedAt,
	}
}

func firstTrue(flags ...*bool) bool {
	for _, f := range flags {
		if f != nil && *f {
			return true
		}
	}
	return false
}

// BusinessProfile is the body of a successful GET /api/v1/business/profile.
// The status fields are pointers because the resolver distinguishes "absent"
// from "false" when deciding field precedence.
type BusinessProfile struct {
	VerificationStatus *VerificationStatus `json:"verificationStatus,omitempty"`
	IsAPIEnabled       *bool               `json:"isApiEnabled,omitempty"`
	EmailVerified      *bool               `json:"emailVerified,omitempty"`
	Business           BusinessDetails     `json:"business"`
	APICredentials     APICredentials      `json:"apiCredentials"`
}

type BusinessDetails struct {
	BusinessName string `json:"businessName"`
	Logo         string `json:"logo,omitempty"`
}

type APICredentials struct {
	PublicKey string `json:"publicKey"`
	ClientKey string `json:"clientKey"`
}

// ErrorResponse is the body of a 403 on the business profile endpoint. It
// carries the same status fields as a successful profile so callers can treat
// both uniformly.
type ErrorResponse struct {
	Message            string              `json:"message"`
	VerificationStatus *VerificationStatus `json:"verificationStatus,omitempty"`
	IsAPIEnabled       *bool               `json:"isApiEnabled,omitempty"`
	EmailVerified      *bool               `json:"emailVerified,omitempty"`
}

// CreateBusinessRequest is the payload for POST /api/v1/business/create.
type CreateBusinessRequest struct {
	BusinessName       string          `json:"businessName"`
	BusinessType       string          `json:"businessType"`
	Description        string          `json:"description"`
	Industry           string          `json:"industry"`
	Country            string          `json:"country"`
	RegistrationNumber string          `json:"registrationNumber,omitempty"`
	TaxID              string          `json:"taxId,omitempty"`
	Website            string          `json:"website,omitempty"`
	PhoneNumber        string          `json:"phoneNumber,omitempty"`
	Address            BusinessAddress `json:"address"`
	Logo               string          `json:"logo,omitempty"`
}

type BusinessAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// TransactionType distinguishes crypto-to-fiat from fiat-to-crypto orders.
type TransactionType string

const (
	TransactionOnramp  TransactionType = "onramp"
	TransactionOfframp TransactionType = "offramp"
)

// Transaction is a single order row on the transactions page.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	Destination string          `json:"destination,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// AdminStats is the totals snapshot shown on the admin overview.
type AdminStats struct {
	TotalUsers     int `json:"totalUsers"`
	PendingUsers   int `json:"pendingUsers"`
	ApprovedUsers  int `json:"approvedUsers"`
	APIActiveUsers int `json:"apiActiveUsers"`
}

// VerifyAction is the admin decision on a pending user.
type VerifyAction string

const (
	VerifyApprove VerifyAction = "approve"
	VerifyReject  VerifyAction = "reject"
)

// VerifyUserRequest is the payload for POST /api/v1/admin/users/{id}/verify.
type VerifyUserRequest struct {
	Action          VerifyAction `json:"action"`
	EnableAPI       bool         `json:"enableApi"`
	Notes           string       `json:"notes,omitempty"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
}

// envelope is the standard {success, message, data} wrapper the remote API
// puts around most responses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}
