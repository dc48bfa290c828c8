package dashboard

// Indicator classes.
const (
	LoadingClass = "loading-indicator"
	ErrorClass   = "bg-gray-500"
	UnknownClass = "bg-gray-500"
)

// ColorClass maps an API color key to its indicator class.
// Keys are case-sensitive; anything unrecognised gets UnknownClass.
func ColorClass(key string) string {
	switch key {
	case "verde":
		return "bg-green-500"
	case "giallo":
		return "bg-yellow-400"
	case "arancio":
		return "bg-orange-500"
	case "rosso":
		return "bg-red-600"
	default:
		return UnknownClass
	}
}

// Probability text classes, lowest severity first.
const (
	ProbabilityLow      = "text-green-500"
	ProbabilityModerate = "text-yellow-400"
	ProbabilityHigh     = "text-orange-500"
	ProbabilitySevere   = "text-red-600"
)

// ProbabilityClass grades a percentage: <20, <40, <60, then the rest.
func ProbabilityClass(pct float64) string {
	switch {
	case pct < 20:
		return ProbabilityLow
	case pct < 40:
		return ProbabilityModerate
	case pct < 60:
		return ProbabilityHigh
	default:
		return ProbabilitySevere
	}
}
