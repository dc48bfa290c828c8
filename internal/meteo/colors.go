package meteo

// RainColor grades an average precipitation probability (percent).
func RainColor(pct float64) Color {
	switch {
	case pct <= 25:
		return ColorGreen
	case pct <= 50:
		return ColorYellow
	case pct <= 75:
		return ColorOrange
	default:
		return ColorRed
	}
}

// WindColor grades an average wind speed in m/s.
func WindColor(ms float64) Color {
	switch {
	case ms < 2.8:
		return ColorGreen
	case ms < 5.5:
		return ColorYellow
	case ms < 8.3:
		return ColorOrange
	default:
		return ColorRed
	}
}
