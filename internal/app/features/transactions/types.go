// internal/app/features/transactions/types.go
package transactions

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mwsociety/memberhub/internal/app/system/htmlsanitize"
	"github.com/mwsociety/memberhub/internal/app/system/inputval"
	"github.com/mwsociety/memberhub/internal/app/system/normalize"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

// submitRequest is the body of POST /transactions.
type submitRequest struct {
	Category   string  `json:"category"`
	Reference  string  `json:"reference"`
	PayerName  string  `json:"payer_name"`
	PayerEmail string  `json:"payer_email"`
	PayerPhone string  `json:"payer_phone"`
	Amount     float64 `json:"amount"`
	Purpose    string  `json:"purpose"`
	Method     string  `json:"method"`
	MemberID   string  `json:"member_id"`
	StudentID  string  `json:"student_id"`
}

// toModel validates and cleans the submission. All free-text fields are
// stripped of markup before they ever reach the database.
func (req submitRequest) toModel() (models.PaymentTransaction, error) {
	tx := models.PaymentTransaction{
		Category:   models.TransactionCategory(htmlsanitize.Strip(req.Category)),
		Reference:  htmlsanitize.Strip(req.Reference),
		PayerName:  normalize.Name(htmlsanitize.Strip(req.PayerName)),
		PayerEmail: normalize.Email(req.PayerEmail),
		PayerPhone: normalize.Phone(req.PayerPhone),
		Amount:     req.Amount,
		Purpose:    htmlsanitize.Strip(req.Purpose),
		Method:     htmlsanitize.Strip(req.Method),
	}

	if !models.ValidCategory(tx.Category) {
		return tx, apperr.Validation("unknown category %q", req.Category)
	}
	if tx.Reference == "" {
		return tx, apperr.Validation("reference is required")
	}
	if tx.PayerName == "" {
		return tx, apperr.Validation("payer_name is required")
	}
	if tx.Amount <= 0 {
		return tx, apperr.Validation("amount must be positive")
	}
	if tx.PayerEmail != "" && !inputval.IsValidEmail(tx.PayerEmail) {
		return tx, apperr.Validation("payer_email is not a valid email address")
	}
	if tx.Category == models.CategoryMembership && tx.PayerEmail == "" {
		return tx, apperr.Validation("payer_email is required for membership payments")
	}

	if req.MemberID != "" {
		id, err := primitive.ObjectIDFromHex(req.MemberID)
		if err != nil {
			return tx, apperr.Validation("member_id is not a valid id")
		}
		tx.MemberID = &id
	}
	if req.StudentID != "" {
		id, err := primitive.ObjectIDFromHex(req.StudentID)
		if err != nil {
			return tx, apperr.Validation("student_id is not a valid id")
		}
		tx.StudentID = &id
	}
	return tx, nil
}
