package usecase

import (
	"testing"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{" user@example.com ", true},
		{"first.last@sub.example.co", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"user@", false},
		{"user@nodot", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidateAddressReportsMissingFields(t *testing.T) {
	ve := &domainErrors.ValidationError{}
	validateAddress("shippingAddress", model.Address{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Street:    "1 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
	}, ve)

	if !ve.HasErrors() {
		t.Fatal("expected validation errors")
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "shippingAddress.phone" {
		t.Fatalf("expected missing phone only, got %+v", ve.Fields)
	}
}

func TestValidateAddressCountryOptional(t *testing.T) {
	ve := &domainErrors.ValidationError{}
	validateAddress("shippingAddress", validAddress(), ve)
	if ve.HasErrors() {
		t.Fatalf("expected no errors, got %+v", ve.Fields)
	}
}

func TestValidateOrderItemInputs(t *testing.T) {
	tests := []struct {
		name      string
		items     []OrderItemInput
		wantField string
	}{
		{"empty slice", nil, "items"},
		{"missing product", []OrderItemInput{{Quantity: 1, Size: "9"}}, "items.productId"},
		{"zero quantity", []OrderItemInput{{ProductID: 1, Size: "9"}}, "items.quantity"},
		{"negative quantity", []OrderItemInput{{ProductID: 1, Quantity: -2, Size: "9"}}, "items.quantity"},
		{"blank size", []OrderItemInput{{ProductID: 1, Quantity: 1, Size: "  "}}, "items.size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &domainErrors.ValidationError{}
			validateOrderItemInputs(tt.items, ve)
			if !ve.HasErrors() {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, fe := range ve.Fields {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error on %s, got %+v", tt.wantField, ve.Fields)
			}
		})
	}

	ve := &domainErrors.ValidationError{}
	validateOrderItemInputs([]OrderItemInput{{ProductID: 1, Quantity: 2, Size: "9", Color: "black"}}, ve)
	if ve.HasErrors() {
		t.Fatalf("expected clean input to pass, got %+v", ve.Fields)
	}
}
