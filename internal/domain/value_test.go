package domain

import (
	"encoding/json"
	"testing"
)

func TestValuePresence(t *testing.T) {
	if NewValue(nil).Present() {
		t.Fatalf("nil must be absent")
	}
	zero := NewValue(json.Number("0"))
	if !zero.Present() {
		t.Fatalf("zero must be present")
	}
	if f, ok := zero.Float64(); !ok || f != 0 {
		t.Fatalf("Float64 = %v, %v", f, ok)
	}
}

func TestValueAccessors(t *testing.T) {
	if _, ok := NewValue("0.0725").Float64(); ok {
		t.Fatalf("strings must not parse as numbers")
	}
	if s, ok := NewValue("CA").Text(); !ok || s != "CA" {
		t.Fatalf("Text = %q, %v", s, ok)
	}
	if b, ok := NewValue(true).Bool(); !ok || !b {
		t.Fatalf("Bool = %v, %v", b, ok)
	}
	if got := NewValue(json.Number("33.65253")).String(); got != "33.65253" {
		t.Fatalf("String = %q", got)
	}
	if got := NewValue(nil).String(); got != "" {
		t.Fatalf("absent String = %q", got)
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	in := AddressDetail{
		NormalizedAddress: NewValue("1 Main St"),
		GeoLat:            NewValue(json.Number("33.65253")),
	}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"normalizedAddress":"1 Main St","incorporated":null,"geoLat":33.65253,"geoLng":null}`
	if string(raw) != want {
		t.Fatalf("marshal = %s", raw)
	}

	var out AddressDetail
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.GeoLat.Raw() != json.Number("33.65253") {
		t.Fatalf("geoLat = %#v", out.GeoLat.Raw())
	}
	if out.Incorporated.Present() {
		t.Fatalf("null must decode as absent")
	}
}

func TestParseResponseCode(t *testing.T) {
	cases := []struct {
		in   Value
		want ResponseCode
		ok   bool
	}{
		{NewValue(json.Number("100")), CodeSuccess, true},
		{NewValue("104"), CodeInvalidPostalCode, true},
		{NewValue("abc"), 0, false},
		{NewValue(nil), 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseResponseCode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseResponseCode(%#v) = %v, %v", tc.in.Raw(), got, ok)
		}
	}
	if !CodeSuccess.OK() || CodeInvalidKey.OK() {
		t.Fatalf("OK() mismatch")
	}
	if ResponseCode(999).Description() != "unknown response code 999" {
		t.Fatalf("unknown description = %q", ResponseCode(999).Description())
	}
}

func TestDistrictsOrder(t *testing.T) {
	r := TaxResult{
		District1Code:     NewValue("A"),
		District3SalesTax: NewValue(json.Number("0.01")),
		District5UseTax:   NewValue(json.Number("0.02")),
	}
	d := r.Districts()
	if d[0].Code.String() != "A" || d[2].SalesTax.String() != "0.01" || d[4].UseTax.String() != "0.02" {
		t.Fatalf("districts out of order: %+v", d)
	}
	if d[1].Code.Present() {
		t.Fatalf("district 2 should be absent")
	}
}
