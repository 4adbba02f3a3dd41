package addressing

// State is one state/province entry in the reference dataset.
type State struct {
	Name string
	Code string
}

// Country maps a display name to its ISO 3166-1 alpha-2 code, with the
// state/province codes the carrier expects for that country.
type Country struct {
	Name   string
	Code   string
	States []State
}

// FallbackCountryCode is used when a free-text country name has no match.
// Shipments must still be attempted, so an unknown country is not an error.
const FallbackCountryCode = "IN"

// Countries is the static reference dataset. Matching is case-insensitive
// exact match on the name.
var Countries = []Country{
	{
		Name: "India", Code: "IN",
		States: []State{
			{"Andhra Pradesh", "AP"}, {"Arunachal Pradesh", "AR"}, {"Assam", "AS"},
			{"Bihar", "BR"}, {"Chhattisgarh", "CG"}, {"Goa", "GA"}, {"Gujarat", "GJ"},
			{"Haryana", "HR"}, {"Himachal Pradesh", "HP"}, {"Jharkhand", "JH"},
			{"Karnataka", "KA"}, {"Kerala", "KL"}, {"Madhya Pradesh", "MP"},
			{"Maharashtra", "MH"}, {"Manipur", "MN"}, {"Meghalaya", "ML"},
			{"Mizoram", "MZ"}, {"Nagaland", "NL"}, {"Odisha", "OR"}, {"Punjab", "PB"},
			{"Rajasthan", "RJ"}, {"Sikkim", "SK"}, {"Tamil Nadu", "TN"},
			{"Telangana", "TS"}, {"Tripura", "TR"}, {"Uttar Pradesh", "UP"},
			{"Uttarakhand", "UK"}, {"West Bengal", "WB"},
			{"Andaman and Nicobar Islands", "AN"}, {"Chandigarh", "CH"},
			{"Dadra and Nagar Haveli and Daman and Diu", "DH"}, {"Delhi", "DL"},
			{"Jammu and Kashmir", "JK"}, {"Ladakh", "LA"}, {"Lakshadweep", "LD"},
			{"Puducherry", "PY"},
		},
	},
	{
		Name: "United States", Code: "US",
		States: []State{
			{"Alabama", "AL"}, {"Alaska", "AK"}, {"Arizona", "AZ"}, {"Arkansas", "AR"},
			{"California", "CA"}, {"Colorado", "CO"}, {"Connecticut", "CT"},
			{"Delaware", "DE"}, {"Florida", "FL"}, {"Georgia", "GA"}, {"Hawaii", "HI"},
			{"Idaho", "ID"}, {"Illinois", "IL"}, {"Indiana", "IN"}, {"Iowa", "IA"},
			{"Kansas", "KS"}, {"Kentucky", "KY"}, {"Louisiana", "LA"}, {"Maine", "ME"},
			{"Maryland", "MD"}, {"Massachusetts", "MA"}, {"Michigan", "MI"},
			{"Minnesota", "MN"}, {"Mississippi", "MS"}, {"Missouri", "MO"},
			{"Montana", "MT"}, {"Nebraska", "NE"}, {"Nevada", "NV"},
			{"New Hampshire", "NH"}, {"New Jersey", "NJ"}, {"New Mexico", "NM"},
			{"New York", "NY"}, {"North Carolina", "NC"}, {"North Dakota", "ND"},
			{"Ohio", "OH"}, {"Oklahoma", "OK"}, {"Oregon", "OR"},
			{"Pennsylvania", "PA"}, {"Rhode Island", "RI"}, {"South Carolina", "SC"},
			{"South Dakota", "SD"}, {"Tennessee", "TN"}, {"Texas", "TX"},
			{"Utah", "UT"}, {"Vermont", "VT"}, {"Virginia", "VA"},
			{"Washington", "WA"}, {"West Virginia", "WV"}, {"Wisconsin", "WI"},
			{"Wyoming", "WY"}, {"District of Columbia", "DC"},
		},
	},
	{
		Name: "Canada", Code: "CA",
		States: []State{
			{"Alberta", "AB"}, {"British Columbia", "BC"}, {"Manitoba", "MB"},
			{"New Brunswick", "NB"}, {"Newfoundland and Labrador", "NL"},
			{"Nova Scotia", "NS"}, {"Ontario", "ON"}, {"Prince Edward Island", "PE"},
			{"Quebec", "QC"}, {"Saskatchewan", "SK"}, {"Northwest Territories", "NT"},
			{"Nunavut", "NU"}, {"Yukon", "YT"},
		},
	},
	{
		Name: "Australia", Code: "AU",
		States: []State{
			{"Australian Capital Territory", "ACT"}, {"New South Wales", "NSW"},
			{"Northern Territory", "NT"}, {"Queensland", "QLD"},
			{"South Australia", "SA"}, {"Tasmania", "TAS"}, {"Victoria", "VIC"},
			{"Western Australia", "WA"},
		},
	},
	{Name: "United Kingdom", Code: "GB"},
	{Name: "United Arab Emirates", Code: "AE"},
	{Name: "Singapore", Code: "SG"},
	{Name: "Germany", Code: "DE"},
	{Name: "France", Code: "FR"},
	{Name: "Italy", Code: "IT"},
	{Name: "Spain", Code: "ES"},
	{Name: "Netherlands", Code: "NL"},
	{Name: "Switzerland", Code: "CH"},
	{Name: "Japan", Code: "JP"},
	{Name: "China", Code: "CN"},
	{Name: "Hong Kong", Code: "HK"},
	{Name: "Malaysia", Code: "MY"},
	{Name: "Thailand", Code: "TH"},
	{Name: "Sri Lanka", Code: "LK"},
	{Name: "Nepal", Code: "NP"},
	{Name: "Bangladesh", Code: "BD"},
	{Name: "New Zealand", Code: "NZ"},
	{Name: "Saudi Arabia", Code: "SA"},
	{Name: "Qatar", Code: "QA"},
	{Name: "Kuwait", Code: "KW"},
	{Name: "Oman", Code: "OM"},
	{Name: "Bahrain", Code: "BH"},
}
