package product

import "strings"

// knownBrands maps a lowercase marker found in product text to the brand's
// canonical capitalization. Scanned in order; first marker hit wins, so
// multi-word markers come before their substrings.
var knownBrands = []struct{ marker, name string }{
	{"black & decker", "Black+Decker"},
	{"black+decker", "Black+Decker"},
	{"black and decker", "Black+Decker"},
	{"de walt", "DeWalt"},
	{"dewalt", "DeWalt"},
	{"asian paints", "Asian Paints"},
	{"bosch", "Bosch"},
	{"makita", "Makita"},
	{"stanley", "Stanley"},
	{"taparia", "Taparia"},
	{"hikoki", "HiKOKI"},
	{"hitachi", "Hitachi"},
	{"karcher", "Karcher"},
	{"wd-40", "WD-40"},
	{"wd40", "WD-40"},
	{"fevicol", "Fevicol"},
	{"havells", "Havells"},
	{"polycab", "Polycab"},
	{"crompton", "Crompton"},
	{"bellota", "Bellota"},
	{"jk files", "JK Files"},
	{"3m", "3M"},
}

// ExtractBrand returns the canonical brand found in the product name, or ""
// when no known marker appears. Used by the brand backfill pass and to fill
// imports that arrive without a brand.
func ExtractBrand(name string) string {
	text := strings.ToLower(name)
	for _, b := range knownBrands {
		if strings.Contains(text, b.marker) {
			return b.name
		}
	}
	return ""
}
