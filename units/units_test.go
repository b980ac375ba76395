package units

import (
	"math"
	"testing"
)

func TestToBase_Converts(t *testing.T) {
	q := New(2, "km").ToBase()
	if q.Unit != "cm" {
		t.Errorf("expected cm, got %q", q.Unit)
	}
	if q.Value != 2e5 {
		t.Errorf("expected 2e5, got %g", q.Value)
	}
}

func TestToBase_Idempotent(t *testing.T) {
	q := New(5e12, "Msun").ToBase()
	again := q.ToBase()
	if again != q {
		t.Errorf("expected no-op on base quantity, got %v -> %v", q, again)
	}
}

func TestToBase_BaseUnchanged(t *testing.T) {
	q := New(3.5, "g")
	if got := q.ToBase(); got != q {
		t.Errorf("expected base unit untouched, got %v", got)
	}
}

func TestToBase_UnknownUnitPassesThrough(t *testing.T) {
	q := New(1.5, "furlongs")
	if got := q.ToBase(); got != q {
		t.Errorf("expected unknown unit untouched, got %v", got)
	}
}

func TestInBase(t *testing.T) {
	if New(1, "kpc").InBase() {
		t.Error("kpc is not a base unit")
	}
	if !New(1, "cm").InBase() {
		t.Error("cm is a base unit")
	}
	if !New(1, "").InBase() {
		t.Error("dimensionless counts as base")
	}
}

func TestNormalize(t *testing.T) {
	v := Normalize(New(1, "km/s"))
	q, ok := v.(Quantity)
	if !ok {
		t.Fatalf("expected Quantity, got %T", v)
	}
	if q.Unit != "cm/s" || q.Value != 1e5 {
		t.Errorf("expected 1e5 cm/s, got %v", q)
	}

	if got := Normalize(42); got != 42 {
		t.Errorf("expected plain value untouched, got %v", got)
	}
	if got := Normalize("label"); got != "label" {
		t.Errorf("expected string untouched, got %v", got)
	}
}

func TestRegister_Custom(t *testing.T) {
	Register("testunit", "g", 10)
	defer func() {
		mu.Lock()
		delete(table, "testunit")
		mu.Unlock()
	}()

	q := New(3, "testunit").ToBase()
	if q.Unit != "g" || q.Value != 30 {
		t.Errorf("expected 30 g, got %v", q)
	}
}

func TestDefaults_Msun(t *testing.T) {
	u, ok := Lookup("Msun")
	if !ok {
		t.Fatal("expected Msun registered by default")
	}
	if u.Base != "g" {
		t.Errorf("expected base g, got %q", u.Base)
	}
	if math.Abs(u.Scale-1.98841e33) > 1e28 {
		t.Errorf("unexpected Msun scale %g", u.Scale)
	}
}

func TestString(t *testing.T) {
	if s := New(2.5, "kpc").String(); s != "2.5 kpc" {
		t.Errorf("expected '2.5 kpc', got %q", s)
	}
	if s := New(2.5, "").String(); s != "2.5" {
		t.Errorf("expected '2.5', got %q", s)
	}
}
