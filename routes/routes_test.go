package routes

import (
	"testing"

	"cinebook/live"

	"github.com/julienschmidt/httprouter"
)

func TestBookingLifecycleRoutesAcceptPutAndPatch(t *testing.T) {
	router := httprouter.New()
	hub := live.NewHub()
	defer hub.Stop()
	AddBookingRoutes(router, hub)

	cases := []struct {
		method, path string
	}{
		{"PUT", "/api/bookings/b123/cancel"},
		{"PATCH", "/api/bookings/b123/cancel"},
		{"PUT", "/api/bookings/b123/status"},
		{"PATCH", "/api/bookings/b123/status"},
		{"POST", "/api/bookings"},
		{"POST", "/api/bookings/verify"},
		{"GET", "/api/me/bookings"},
	}
	for _, tc := range cases {
		if h, _, _ := router.Lookup(tc.method, tc.path); h == nil {
			t.Errorf("%s %s not registered", tc.method, tc.path)
		}
	}
}
