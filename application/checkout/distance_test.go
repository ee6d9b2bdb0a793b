package checkout

import (
	"testing"

	"github.com/muhammadheryan/runhub-checkout/model"
	"github.com/stretchr/testify/assert"
)

func TestResolveDistancePrice(t *testing.T) {
	own := int64(420000)
	zero := int64(0)
	event := &model.Event{ID: 3, Name: "Saigon Marathon", Price21km: &own, Price10km: &zero}

	tests := []struct {
		distance string
		want     int64
		wantKm   int
		wantOK   bool
	}{
		{distance: "5km", want: 150000, wantKm: 5, wantOK: true},
		{distance: "10K", want: 200000, wantKm: 10, wantOK: true},
		{distance: " 21 km ", want: 420000, wantKm: 21, wantOK: true},
		{distance: "42", want: 500000, wantKm: 42, wantOK: true},
		{distance: "3km", wantOK: false},
		{distance: "half", wantOK: false},
		{distance: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.distance, func(t *testing.T) {
			got, km, ok := resolveDistancePrice(event, tt.distance)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.wantKm, km)
			}
		})
	}
}
