package market

// VolumeSeasonalFactor is the seasonal demand multiplier of the volume engine
func VolumeSeasonalFactor(bikeType *BikeType, month int) float64 {
	switch month {
	case 4, 5, 6, 7, 8:
		switch {
		case bikeType.NameContains("mountain", "racing"):
			return 1.4
		case bikeType.NameContains("city"):
			return 1.2
		default:
			return 1.1
		}
	case 3, 9, 10:
		if bikeType.NameContains("e-") {
			return 1.3
		}
		return 1.0
	case 11, 12, 1, 2:
		return 0.7
	}
	return 1.0
}

// SimplifiedSeasonalFactor is the seasonal multiplier of the deferred-decision demand model.
// Rules are checked in order and a category without a matching month falls through.
func SimplifiedSeasonalFactor(bikeType *BikeType, month int) float64 {
	if bikeType.NameContains("mountain", "mtb") {
		switch month {
		case 5, 6, 7, 8:
			return 1.3
		case 11, 12, 1, 2:
			return 0.7
		}
	}
	if bikeType.NameContains("road", "racing", "rennrad") {
		switch month {
		case 4, 5, 6, 7, 8:
			return 1.2
		case 11, 12, 1, 2:
			return 0.8
		}
	}
	if bikeType.NameContains("e-", "elektro") {
		switch month {
		case 9, 10:
			return 1.2
		case 12, 1, 2:
			return 0.9
		}
	}
	return 1.0
}
