package ingest

// USStates expands the two-letter abbreviations used by the US source
// format. Unknown abbreviations pass through unchanged.
var USStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

// ContinentOther buckets countries absent from the continent table.
const ContinentOther = "Other"

// CountryContinents infers a continent for sources configured as "auto".
var CountryContinents = map[string]string{
	"Canada": "North America", "Mexico": "North America",

	"Guatemala": "Central America", "Honduras": "Central America",
	"El Salvador": "Central America", "Nicaragua": "Central America",
	"Costa Rica": "Central America", "Panama": "Central America",
	"Belize": "Central America",

	"Dominican Republic": "Caribbean", "Cuba": "Caribbean",
	"Jamaica": "Caribbean", "Haiti": "Caribbean",
	"Trinidad and Tobago": "Caribbean", "Puerto Rico": "Caribbean",

	"Argentina": "South America", "Brazil": "South America",
	"Colombia": "South America", "Peru": "South America",
	"Chile": "South America", "Ecuador": "South America",
	"Bolivia": "South America", "Paraguay": "South America",
	"Uruguay": "South America", "Venezuela": "South America",
	"Guyana": "South America", "Suriname": "South America",

	"Australia": "Oceania", "New Zealand": "Oceania",
	"Fiji": "Oceania", "Papua New Guinea": "Oceania",
	"Samoa": "Oceania",
}
