package domain

// Domain contains the sales tax lookup models.

// TaxQueryResponse is the mapped result of one lookup call.
type TaxQueryResponse struct {
	Version       Value         `json:"version"`
	RCode         Value         `json:"rCode"`
	Results       []TaxResult   `json:"results"`
	AddressDetail AddressDetail `json:"addressDetail"`
}

// Code interprets rCode as a ResponseCode.
func (r *TaxQueryResponse) Code() (ResponseCode, bool) {
	if r == nil {
		return 0, false
	}
	return ParseResponseCode(r.RCode)
}

// TaxResult is one jurisdiction row.
type TaxResult struct {
	GeoPostalCode     Value `json:"geoPostalCode"`
	GeoCity           Value `json:"geoCity"`
	GeoCounty         Value `json:"geoCounty"`
	GeoState          Value `json:"geoState"`
	TaxSales          Value `json:"taxSales"`
	TaxUse            Value `json:"taxUse"`
	TxbService        Value `json:"txbService"`
	TxbFreight        Value `json:"txbFreight"`
	StateSalesTax     Value `json:"stateSalesTax"`
	StateUseTax       Value `json:"stateUseTax"`
	CitySalesTax      Value `json:"citySalesTax"`
	CityUseTax        Value `json:"cityUseTax"`
	CityTaxCode       Value `json:"cityTaxCode"`
	CountySalesTax    Value `json:"countySalesTax"`
	CountyUseTax      Value `json:"countyUseTax"`
	CountyTaxCode     Value `json:"countyTaxCode"`
	DistrictSalesTax  Value `json:"districtSalesTax"`
	DistrictUseTax    Value `json:"districtUseTax"`
	District1Code     Value `json:"district1Code"`
	District1SalesTax Value `json:"district1SalesTax"`
	District1UseTax   Value `json:"district1UseTax"`
	District2Code     Value `json:"district2Code"`
	District2SalesTax Value `json:"district2SalesTax"`
	District2UseTax   Value `json:"district2UseTax"`
	District3Code     Value `json:"district3Code"`
	District3SalesTax Value `json:"district3SalesTax"`
	District3UseTax   Value `json:"district3UseTax"`
	District4Code     Value `json:"district4Code"`
	District4SalesTax Value `json:"district4SalesTax"`
	District4UseTax   Value `json:"district4UseTax"`
	District5Code     Value `json:"district5Code"`
	District5SalesTax Value `json:"district5SalesTax"`
	District5UseTax   Value `json:"district5UseTax"`
	OriginDestination Value `json:"originDestination"`
}

// District is one numbered special taxing district of a TaxResult.
type District struct {
	Code     Value
	SalesTax Value
	UseTax   Value
}

// Districts returns the five numbered special districts in order.
func (r TaxResult) Districts() [5]District {
	return [5]District{
		{Code: r.District1Code, SalesTax: r.District1SalesTax, UseTax: r.District1UseTax},
		{Code: r.District2Code, SalesTax: r.District2SalesTax, UseTax: r.District2UseTax},
		{Code: r.District3Code, SalesTax: r.District3SalesTax, UseTax: r.District3UseTax},
		{Code: r.District4Code, SalesTax: r.District4SalesTax, UseTax: r.District4UseTax},
		{Code: r.District5Code, SalesTax: r.District5SalesTax, UseTax: r.District5UseTax},
	}
}

// AddressDetail describes the address as normalized by the API.
type AddressDetail struct {
	NormalizedAddress Value `json:"normalizedAddress"`
	Incorporated      Value `json:"incorporated"`
	GeoLat            Value `json:"geoLat"`
	GeoLng            Value `json:"geoLng"`
}
