package money

import (
	"errors"
	"testing"
)

func TestParse_DecimalComma(t *testing.T) {
	result, err := Parse("12,50 EUR")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "12.5" {
		t.Errorf("Expected '12.5', got '%s'", result.String())
	}
}

func TestParse_ThousandsDotDecimalComma(t *testing.T) {
	result, err := Parse("1.234,56")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", result.String())
	}
}

func TestParse_ThousandsCommaDecimalDot(t *testing.T) {
	result, err := Parse("1,234.56")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", result.String())
	}
}

func TestParse_CurrencySymbolPrefix(t *testing.T) {
	result, err := Parse("€9.99")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "9.99" {
		t.Errorf("Expected '9.99', got '%s'", result.String())
	}
}

func TestParse_NegativeSignDiscarded(t *testing.T) {
	// Issuers encode debits with either sign; magnitude is what matters.
	result, err := Parse("-10.99")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "10.99" {
		t.Errorf("Expected '10.99', got '%s'", result.String())
	}
}

func TestParse_NoDigits(t *testing.T) {
	_, err := Parse("ABC")
	if !errors.Is(err, ErrNoAmount) {
		t.Errorf("Expected ErrNoAmount, got %v", err)
	}
}

func TestExtract_PrefersCurrencyAdjacentToken(t *testing.T) {
	// The reference number must not win over the priced token.
	result, err := Extract("REF 10293847 NETFLIX.COM 12,99 EUR")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "12.99" {
		t.Errorf("Expected '12.99', got '%s'", result.String())
	}
}

func TestExtract_SymbolPrefix(t *testing.T) {
	result, err := Extract("Streaming €9.99 monthly")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "9.99" {
		t.Errorf("Expected '9.99', got '%s'", result.String())
	}
}

func TestExtract_MonetaryShapeFallback(t *testing.T) {
	result, err := Extract("RSG GROUP BERLIN 24,90")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "24.9" {
		t.Errorf("Expected '24.9', got '%s'", result.String())
	}
}

func TestExtract_IBANIsNotAnAmount(t *testing.T) {
	_, err := Extract("IBAN DE44 5001 0517 5407 3249 31")
	if !errors.Is(err, ErrNoAmount) {
		t.Errorf("Expected ErrNoAmount, got %v", err)
	}
}

func TestExtract_ThousandsGroups(t *testing.T) {
	result, err := Extract("ANNUAL PREMIUM 1.234,56 EUR")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", result.String())
	}
}
