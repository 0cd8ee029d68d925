package validation

import "testing"

func TestRequired(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"Dupont", false},
		{"", true},
		{"   ", true},
		{"\t\n", true},
	}
	for _, c := range cases {
		v := Violations{}
		Required("name", c.value, v)
		if got := !v.Empty(); got != c.want {
			t.Errorf("Required(%q): violation = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestFloatValidators(t *testing.T) {
	v := Violations{}
	PositiveFloat("quantity", 0, v)
	PositiveFloat("ok", 1.5, v)
	NonNegativeFloat("unit_price", -0.01, v)
	NonNegativeFloat("zero", 0, v)

	if len(v) != 2 {
		t.Fatalf("violations = %v, want 2 entries", v)
	}
	if v["quantity"] != "must_be_positive" {
		t.Errorf("quantity = %q", v["quantity"])
	}
	if v["unit_price"] != "must_not_be_negative" {
		t.Errorf("unit_price = %q", v["unit_price"])
	}
}

func TestOneOf(t *testing.T) {
	allowed := []string{"Pending", "Paid", "Cancelled"}

	v := Violations{}
	OneOf("status", "Paid", allowed, v)
	if !v.Empty() {
		t.Errorf("Paid rejected: %v", v)
	}

	OneOf("status", "Archived", allowed, v)
	if v["status"] != "not_allowed" {
		t.Errorf("status = %q, want not_allowed", v["status"])
	}
}
