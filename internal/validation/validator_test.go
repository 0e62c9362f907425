// Fundviz - Crowdfunding Marketplace Analytics and Network Visualization
// Copyright 2026 Fundviz Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fundviz/fundviz

package validation

import (
	"strings"
	"testing"
)

type loginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=8"`
}

func TestValidateStructPasses(t *testing.T) {
	req := loginRequest{Username: "admin", Password: "longenough"}
	if verr := ValidateStruct(&req); verr != nil {
		t.Errorf("expected valid struct, got %v", verr)
	}
}

func TestValidateStructCollectsFieldErrors(t *testing.T) {
	req := loginRequest{Password: "short"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation errors")
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(verr.Errors()), verr)
	}
	if !strings.Contains(verr.Error(), "Username is required") {
		t.Errorf("expected required message, got %q", verr.Error())
	}
	if !strings.Contains(verr.Error(), "Password must be at least 8") {
		t.Errorf("expected min message, got %q", verr.Error())
	}
}

func TestToAPIError(t *testing.T) {
	req := loginRequest{Username: "admin", Password: "short"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation errors")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR code, got %q", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 1 {
		t.Errorf("expected one field detail, got %v", apiErr.Details)
	}
}
