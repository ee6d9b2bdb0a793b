package constant

// DefaultDistancePrices is used when an event has no price set for a distance.
var DefaultDistancePrices = map[int]int64{
	5:  150000,
	10: 200000,
	21: 350000,
	42: 500000,
}
