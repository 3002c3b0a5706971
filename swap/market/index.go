package market

// ReferenceIndex enumerates supported floating benchmarks.
type ReferenceIndex string

const (
	ESTR       ReferenceIndex = "ESTR"
	EURIBOR3M  ReferenceIndex = "EURIBOR3M"
	EURIBOR6M  ReferenceIndex = "EURIBOR6M"
	TONAR      ReferenceIndex = "TONAR"
	TIBOR3M    ReferenceIndex = "TIBOR3M"
	TIBOR6M    ReferenceIndex = "TIBOR6M"
	SOFR       ReferenceIndex = "SOFR"
	TERMSOFR3M ReferenceIndex = "TERMSOFR3M"
	CD91D      ReferenceIndex = "CD91D"
)

// IsOvernight reports whether the reference rate is an overnight index.
func IsOvernight(r ReferenceIndex) bool {
	switch r {
	case ESTR, TONAR, SOFR:
		return true
	default:
		return false
	}
}

// Currency returns the ISO currency of the index.
func (r ReferenceIndex) Currency() string {
	switch r {
	case ESTR, EURIBOR3M, EURIBOR6M:
		return "EUR"
	case TONAR, TIBOR3M, TIBOR6M:
		return "JPY"
	case SOFR, TERMSOFR3M:
		return "USD"
	case CD91D:
		return "KRW"
	default:
		return ""
	}
}
