package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type testPayload struct {
	Email      string `json:"email" validate:"required,email"`
	WeightGoal string `json:"weight_goal" validate:"required,oneof=lose gain maintain"`
	Limit      int    `json:"limit" validate:"gte=1"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := testPayload{
		Email:      "alice@example.com",
		WeightGoal: "maintain",
		Limit:      20,
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := testPayload{
		Email:      "invalid",
		WeightGoal: "bulk",
		Limit:      0,
	}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	if len(vErrs) != 3 {
		t.Fatalf("expected 3 validation errors, got %d", len(vErrs))
	}

	foundEmail := false
	for _, v := range vErrs {
		if v.Field == "email" {
			foundEmail = true
		}
	}

	if !foundEmail {
		t.Fatal("expected email field to be present in validation errors")
	}
}

func TestRegisterValidation(t *testing.T) {
	type clockPayload struct {
		ReminderAt string `json:"reminder_at" validate:"hhmm"`
	}

	err := RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return len(value) == 5 && value[2] == ':'
	})
	if err != nil {
		t.Fatalf("register validation: %v", err)
	}

	if err := ValidateStruct(clockPayload{ReminderAt: "08:00"}); err != nil {
		t.Fatalf("expected valid clock string, got %v", err)
	}
	if err := ValidateStruct(clockPayload{ReminderAt: "8am"}); err == nil {
		t.Fatal("expected validation error for malformed clock string")
	}
}
