package report

import (
	"fmt"
	"io"

	"github.com/Adda-Baaj/salestax-lookup/internal/domain"
)

// Absent marks a field the API did not send (or sent as null).
const Absent = "n/a"

func display(v domain.Value) string {
	if !v.Present() {
		return Absent
	}
	return v.String()
}

// FormatPercent renders a fractional rate as a percentage with two decimals (0.0725 -> "7.25%").
func FormatPercent(v domain.Value) (string, bool) {
	f, ok := v.Float64()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%.2f%%", f*100), true
}

// Write prints the normalized address, its coordinates and, when the lookup
// matched at least one jurisdiction, the first row's sales tax rate.
func Write(w io.Writer, resp *domain.TaxQueryResponse) error {
	if resp == nil {
		return fmt.Errorf("no lookup response to report")
	}

	d := resp.AddressDetail
	if _, err := fmt.Fprintf(w, "Normalized Address: %s\n", display(d.NormalizedAddress)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Address Lat/Lng: %s, %s\n", display(d.GeoLat), display(d.GeoLng)); err != nil {
		return err
	}

	if len(resp.Results) == 0 {
		return nil
	}
	rate, ok := FormatPercent(resp.Results[0].TaxSales)
	if !ok {
		rate = "unavailable"
	}
	_, err := fmt.Fprintf(w, "Rate: %s\n", rate)
	return err
}
