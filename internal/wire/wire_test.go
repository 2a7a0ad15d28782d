package wire

import (
	"net/http"
	"testing"

	"wheelshare/internal/data/repository"
	"wheelshare/pkg/mailer"
	"wheelshare/pkg/utils"
	"wheelshare/test/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// The route table is part of the public contract; a renamed path or swapped
// verb breaks every client.
func TestRouterExposesDocumentedSurface(t *testing.T) {
	log := zap.NewNop()
	app := Wiring(
		&mocks.FakeDB{},
		&repository.Repository{},
		new(mocks.MockGeocoder),
		mailer.NewMailer(utils.EmailConfig{}, log),
		&utils.Config{},
		log,
	)

	id := uuid.NewString()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/register"},
		{http.MethodPost, "/api/auth/login"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/rides/search"},
		{http.MethodPost, "/api/rides"},
		{http.MethodGet, "/api/rides/" + id},
		{http.MethodGet, "/api/rides/my-rides"},
		{http.MethodPut, "/api/rides/" + id + "/status"},
		{http.MethodGet, "/api/rides/" + id + "/bookings"},
		{http.MethodPost, "/api/bookings"},
		{http.MethodGet, "/api/bookings/my-bookings"},
		{http.MethodGet, "/api/bookings/" + id},
		{http.MethodPut, "/api/bookings/" + id + "/cancel"},
		{http.MethodPost, "/api/vehicles"},
		{http.MethodGet, "/api/vehicles/my-vehicles"},
		{http.MethodGet, "/api/vehicles/" + id},
		{http.MethodPut, "/api/vehicles/" + id},
		{http.MethodDelete, "/api/vehicles/" + id},
		{http.MethodGet, "/api/notifications"},
		{http.MethodGet, "/api/notifications/unread-count"},
		{http.MethodPut, "/api/notifications/" + id + "/read"},
		{http.MethodGet, "/api/admin/dashboard"},
		{http.MethodGet, "/api/admin/vehicles"},
		{http.MethodPut, "/api/admin/vehicles/" + id + "/verify"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/metrics"},
	}

	for _, route := range routes {
		rctx := chi.NewRouteContext()
		assert.True(t, app.Router.Match(rctx, route.method, route.path),
			"missing route %s %s", route.method, route.path)
	}
}
