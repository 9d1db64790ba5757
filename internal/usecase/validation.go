package usecase

import (
	"regexp"
	"strings"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the address has a plausible mailbox@domain shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// addressFields lists required shipping address fields with their
// current values for validation reporting.
func validateAddress(prefix string, addr model.Address, ve *domainErrors.ValidationError) {
	fields := []struct {
		name  string
		value string
	}{
		{"firstName", addr.FirstName},
		{"lastName", addr.LastName},
		{"email", addr.Email},
		{"phone", addr.Phone},
		{"street", addr.Street},
		{"city", addr.City},
		{"state", addr.State},
		{"zipCode", addr.ZipCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			ve.Add(prefix+"."+f.name, "is required")
		}
	}
}

func validateOrderItemInputs(items []OrderItemInput, ve *domainErrors.ValidationError) {
	if len(items) == 0 {
		ve.Add("items", "must not be empty")
		return
	}
	for _, item := range items {
		if item.ProductID <= 0 {
			ve.Add("items.productId", "is required")
		}
		if item.Quantity <= 0 {
			ve.Add("items.quantity", "must be positive")
		}
		if strings.TrimSpace(item.Size) == "" {
			ve.Add("items.size", "is required")
		}
	}
}
