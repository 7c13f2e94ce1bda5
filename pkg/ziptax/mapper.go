package ziptax

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/Adda-Baaj/salestax-lookup/internal/domain"
)

// Parse decodes a response body and maps it into a TaxQueryResponse.
func Parse(body []byte) (*domain.TaxQueryResponse, error) {
	data, err := Decode(body)
	if err != nil {
		return nil, err
	}
	return MapResponse(data)
}

// Decode reads body as a single JSON object. Numbers are kept as json.Number so
// rates survive exactly as the API wrote them.
func Decode(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, decodeError("failed to parse response: %w", err)
	}
	if data == nil {
		return nil, decodeError("response body is null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, decodeError("unexpected data after response object")
	}
	return data, nil
}

// MapResponse builds a TaxQueryResponse from a decoded JSON object using
// case-exact key lookups. Values are never coerced.
func MapResponse(data map[string]any) (*domain.TaxQueryResponse, error) {
	resp := &domain.TaxQueryResponse{
		Version: value(data, "version"),
		RCode:   value(data, "rCode"),
		Results: []domain.TaxResult{},
	}

	if raw := data["results"]; raw != nil {
		rows, ok := raw.([]any)
		if !ok {
			return nil, decodeError("results is %T, want array", raw)
		}
		resp.Results = make([]domain.TaxResult, 0, len(rows))
		for i, row := range rows {
			obj, ok := row.(map[string]any)
			if !ok {
				return nil, decodeError("results[%d] is %T, want object", i, row)
			}
			resp.Results = append(resp.Results, mapResult(obj))
		}
	}

	detail := map[string]any{}
	if raw := data["addressDetail"]; raw != nil {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, decodeError("addressDetail is %T, want object", raw)
		}
		detail = obj
	}
	resp.AddressDetail = mapAddressDetail(detail)

	return resp, nil
}

func mapResult(data map[string]any) domain.TaxResult {
	return domain.TaxResult{
		GeoPostalCode:     value(data, "geoPostalCode"),
		GeoCity:           value(data, "geoCity"),
		GeoCounty:         value(data, "geoCounty"),
		GeoState:          value(data, "geoState"),
		TaxSales:          value(data, "taxSales"),
		TaxUse:            value(data, "taxUse"),
		TxbService:        value(data, "txbService"),
		TxbFreight:        value(data, "txbFreight"),
		StateSalesTax:     value(data, "stateSalesTax"),
		StateUseTax:       value(data, "stateUseTax"),
		CitySalesTax:      value(data, "citySalesTax"),
		CityUseTax:        value(data, "cityUseTax"),
		CityTaxCode:       value(data, "cityTaxCode"),
		CountySalesTax:    value(data, "countySalesTax"),
		CountyUseTax:      value(data, "countyUseTax"),
		CountyTaxCode:     value(data, "countyTaxCode"),
		DistrictSalesTax:  value(data, "districtSalesTax"),
		DistrictUseTax:    value(data, "districtUseTax"),
		District1Code:     value(data, "district1Code"),
		District1SalesTax: value(data, "district1SalesTax"),
		District1UseTax:   value(data, "district1UseTax"),
		District2Code:     value(data, "district2Code"),
		District2SalesTax: value(data, "district2SalesTax"),
		District2UseTax:   value(data, "district2UseTax"),
		District3Code:     value(data, "district3Code"),
		District3SalesTax: value(data, "district3SalesTax"),
		District3UseTax:   value(data, "district3UseTax"),
		District4Code:     value(data, "district4Code"),
		District4SalesTax: value(data, "district4SalesTax"),
		District4UseTax:   value(data, "district4UseTax"),
		District5Code:     value(data, "district5Code"),
		District5SalesTax: value(data, "district5SalesTax"),
		District5UseTax:   value(data, "district5UseTax"),
		OriginDestination: value(data, "originDestination"),
	}
}

func mapAddressDetail(data map[string]any) domain.AddressDetail {
	return domain.AddressDetail{
		NormalizedAddress: value(data, "normalizedAddress"),
		Incorporated:      value(data, "incorporated"),
		GeoLat:            value(data, "geoLat"),
		GeoLng:            value(data, "geoLng"),
	}
}

// value looks up key; a missing key and an explicit null both map to absent.
func value(data map[string]any, key string) domain.Value {
	return domain.NewValue(data[key])
}
