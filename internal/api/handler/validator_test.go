package handler

import (
	"strings"
	"testing"
	"time"
)

func TestIsAdult(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := map[string]bool{
		"2006-06-15": true,  // eighteenth birthday today
		"2006-06-16": false, // tomorrow
		"1980-01-01": true,
		"2010-01-01": false,
		"15/06/2000": false,
		"":           false,
	}
	for in, want := range cases {
		if got := isAdult(in, now); got != want {
			t.Errorf("isAdult(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Secret123": true,
		"secret123": false,
		"SECRETxyz": false,
		"Sh0rt":     false,
		"Ñandú2024": true,
	}
	for in, want := range cases {
		if got := isStrongPassword(in); got != want {
			t.Errorf("isStrongPassword(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidator_RegisterRequest(t *testing.T) {
	v := NewValidator()

	ok := registerRequest{
		Name: "Ana", Handle: "ana", Email: "a@b.com", BirthDate: "1990-01-01",
		Password: "Secret123", ConfirmPassword: "Secret123",
	}
	if err := v.Validate(&ok); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	bad := ok
	bad.Email = "nope"
	bad.BirthDate = time.Now().AddDate(-10, 0, 0).Format(BirthDateLayout)
	bad.ConfirmPassword = "Secret124"
	err := v.Validate(&bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"email must be a valid email", "fechaNacimiento must be", "confirmPassword does not match"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}
