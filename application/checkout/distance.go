package checkout

import (
	"strconv"
	"strings"

	"github.com/muhammadheryan/runhub-checkout/constant"
	"github.com/muhammadheryan/runhub-checkout/model"
)

// resolveDistancePrice accepts "21km", "21K", "21 km" or "21". The event's own
// price wins when set; otherwise the default table applies.
func resolveDistancePrice(event *model.Event, distance string) (int64, int, bool) {
	d := strings.ToLower(strings.TrimSpace(distance))
	d = strings.TrimSuffix(d, "km")
	d = strings.TrimSuffix(d, "k")
	km, err := strconv.Atoi(strings.TrimSpace(d))
	if err != nil {
		return 0, 0, false
	}

	fallback, ok := constant.DefaultDistancePrices[km]
	if !ok {
		return 0, 0, false
	}

	var own *int64
	switch km {
	case 5:
		own = event.Price5km
	case 10:
		own = event.Price10km
	case 21:
		own = event.Price21km
	case 42:
		own = event.Price42km
	}
	if own != nil && *own > 0 {
		return *own, km, true
	}
	return fallback, km, true
}
