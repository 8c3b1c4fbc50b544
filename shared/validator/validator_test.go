package validator_test

import (
	"concierge/shared/validator"
	"strings"
	"testing"
)

type guestContact struct {
	Name  string `validate:"required"       json:"name"`
	Phone string `validate:"required,phone" json:"phone"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *guestContact
		expectError bool
	}{
		{
			name:        "valid contact",
			data:        &guestContact{Name: "Asha Rao", Phone: "6281234567890"},
			expectError: false,
		},
		{
			name:        "missing name",
			data:        &guestContact{Phone: "6281234567890"},
			expectError: true,
		},
		{
			name:        "missing phone",
			data:        &guestContact{Name: "Asha Rao"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestPhoneValidation(t *testing.T) {
	tests := []struct {
		name        string
		phone       string
		expectError bool
	}{
		{
			name:        "bare international digits",
			phone:       "6281234567890",
			expectError: false,
		},
		{
			name:        "plus prefix is allowed",
			phone:       "+6281234567890",
			expectError: false,
		},
		{
			name:        "too short",
			phone:       "62812",
			expectError: true,
		},
		{
			name:        "too long",
			phone:       "6281234567890123456",
			expectError: true,
		},
		{
			name:        "letters rejected",
			phone:       "62812abc7890",
			expectError: true,
		},
		{
			name:        "spaces rejected",
			phone:       "62 812 345 678",
			expectError: true,
		},
		{
			name:        "plus in the middle rejected",
			phone:       "62+1234567890",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.phone, "phone")

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Asha Rao","phone":"6281234567890"}`,
			expectError: false,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"name":"Asha Rao","phone":"not-a-phone"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Asha Rao","phone":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data guestContact
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &guestContact{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
