package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tablebooks/backend/internal/models"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// FieldError is one pre-submission validation failure, keyed by the
// offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: validator.New(),
	}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// ValidateDraft runs the required-field and amount checks for a single
// voucher leg, independent of any presentation layer. An empty result
// means the draft is submittable.
func (vh *ValidationHelper) ValidateDraft(draft models.TransactionDraft) []FieldError {
	var errs []FieldError

	if err := vh.validator.Struct(draft); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, FieldError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed on '%s' validation", fe.Tag()),
			})
		}
	}

	if draft.DebitAmount.IsNegative() {
		errs = append(errs, FieldError{Field: "DebitAmount", Message: "must not be negative"})
	}
	if draft.CreditAmount.IsNegative() {
		errs = append(errs, FieldError{Field: "CreditAmount", Message: "must not be negative"})
	}

	debit := draft.DebitAmount.IsPositive()
	credit := draft.CreditAmount.IsPositive()
	if debit == credit {
		// A leg is a pure debit or a pure credit, never both or neither.
		errs = append(errs, FieldError{Field: "DebitAmount", Message: "exactly one of debit_amount and credit_amount must be set"})
	}

	return errs
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	if validationErr != nil {
		errorResp.Details = make(map[string]string)
		if fieldErrs, ok := validationErr.(validator.ValidationErrors); ok {
			for _, err := range fieldErrs {
				errorResp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
			}
		} else {
			errorResp.Details["error"] = validationErr.Error()
		}
	}

	json.NewEncoder(w).Encode(errorResp)
}
