package core

import (
	"strings"
	"testing"
	"time"
)

func TestValidateIssueTitleBoundary(t *testing.T) {
	now := time.Now()
	ok := &Issue{Title: strings.Repeat("a", 500), CreatedAt: now, UpdatedAt: now}
	if err := ValidateIssue(ok); err != nil {
		t.Fatalf("500-char title should be valid: %v", err)
	}
	tooLong := &Issue{Title: strings.Repeat("a", 501), CreatedAt: now, UpdatedAt: now}
	if err := ValidateIssue(tooLong); err == nil {
		t.Fatal("501-char title should be invalid")
	}
}

func TestValidateIssuePriorityBoundary(t *testing.T) {
	now := time.Now()
	for _, p := range []Priority{-1, 0, 4, 5} {
		issue := &Issue{Title: "x", Priority: p, CreatedAt: now, UpdatedAt: now}
		err := ValidateIssue(issue)
		if p < 0 || p > 4 {
			if err == nil {
				t.Fatalf("priority %d should be invalid", p)
			}
		} else if err != nil {
			t.Fatalf("priority %d should be valid: %v", p, err)
		}
	}
}

func TestValidateIssueDescriptionBoundary(t *testing.T) {
	now := time.Now()
	ok := &Issue{Title: "x", Description: strings.Repeat("a", 102_400), CreatedAt: now, UpdatedAt: now}
	if err := ValidateIssue(ok); err != nil {
		t.Fatalf("102400 bytes should be valid: %v", err)
	}
	tooLong := &Issue{Title: "x", Description: strings.Repeat("a", 102_401), CreatedAt: now, UpdatedAt: now}
	if err := ValidateIssue(tooLong); err == nil {
		t.Fatal("102401 bytes should be invalid")
	}
}

func TestValidateIssueMultiErrorAggregation(t *testing.T) {
	now := time.Now()
	bad := &Issue{Title: "", Priority: 9, CreatedAt: now, UpdatedAt: now}
	err := ValidateIssue(bad)
	ve, ok := err.(*Error)
	if !ok || ve.Kind != KindValidationErrors {
		t.Fatalf("expected ValidationErrors for multiple violations, got %v", err)
	}
	if len(ve.Errors) < 2 {
		t.Fatalf("expected at least 2 field errors, got %d", len(ve.Errors))
	}
}

func TestValidateIssueSingleErrorSurfacesAsField(t *testing.T) {
	now := time.Now()
	bad := &Issue{Title: "", Priority: 2, CreatedAt: now, UpdatedAt: now}
	err := ValidateIssue(bad)
	ve, ok := err.(*Error)
	if !ok || ve.Kind != KindValidation {
		t.Fatalf("expected single Validation error, got %v", err)
	}
}

func TestValidateLabel(t *testing.T) {
	if err := ValidateLabel("good-label_1"); err != nil {
		t.Fatalf("expected valid label: %v", err)
	}
	if err := ValidateLabel("bad label!"); err == nil {
		t.Fatal("expected invalid label")
	}
	if err := ValidateLabel(""); err == nil {
		t.Fatal("expected empty label to be invalid")
	}
}

func TestValidateCommentRequiresNonEmptyFields(t *testing.T) {
	c := &Comment{IssueID: "bd-a1", Author: "  ", Text: "hi"}
	if err := ValidateComment(c); err == nil {
		t.Fatal("expected whitespace-only author to be invalid")
	}
}
