package carrier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultCity            = "İSTANBUL"
	defaultDistrict        = "KADIKÖY"
	defaultOutsideDistrict = "MERKEZ"
)

var istanbulDistricts = map[string]struct{}{}

func init() {
	for _, d := range []string{
		"ADALAR", "ARNAVUTKÖY", "ATAŞEHİR", "AVCILAR", "BAĞCILAR", "BAHÇELİEVLER", "BAKIRKÖY",
		"BAŞAKŞEHİR", "BAYRAMPAŞA", "BEŞİKTAŞ", "BEYKOZ", "BEYLİKDÜZÜ", "BEYOĞLU", "BÜYÜKÇEKMECE",
		"ÇATALCA", "ÇEKMEKÖY", "ESENLER", "ESENYURT", "EYÜPSULTAN", "FATİH", "GAZİOSMANPAŞA",
		"GÜNGÖREN", "KADIKÖY", "KAĞITHANE", "KARTAL", "KÜÇÜKÇEKMECE", "MALTEPE", "PENDİK",
		"SANCAKTEPE", "SARIYER", "SİLİVRİ", "SULTANBEYLİ", "SULTANGAZİ", "ŞİLE", "ŞİŞLİ",
		"TUZLA", "ÜMRANİYE", "ÜSKÜDAR", "ZEYTİNBURNU",
	} {
		istanbulDistricts[d] = struct{}{}
	}
}

// FoldName normalizes a place name for comparison using Turkish casing rules
func FoldName(s string) string {
	// a Caser is stateful and must not be shared between goroutines
	return cases.Upper(language.Turkish).String(strings.TrimSpace(s))
}

// SameCity reports whether two city names denote the same city
func SameCity(a, b string) bool {
	fa, fb := FoldName(a), FoldName(b)
	return fa != "" && fa == fb
}

// NormalizeLocation returns a city/district pair the carrier accepts.
// Missing values and unknown Istanbul districts are replaced by known-valid defaults.
func NormalizeLocation(city, district string) (string, string) {
	city, district = FoldName(city), FoldName(district)
	if city == "" {
		city = defaultCity
	}

	if city == defaultCity {
		if _, ok := istanbulDistricts[district]; !ok {
			district = defaultDistrict
		}
		return city, district
	}

	if district == "" {
		district = defaultOutsideDistrict
	}

	return city, district
}
