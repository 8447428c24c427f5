package http

import (
	"fmt"
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registeredRoutes builds the server against a fresh echo instance and
// returns the route table keyed by "METHOD path". Route registration never
// dispatches, so zero-value handlers suffice.
func registeredRoutes(t *testing.T) map[string]struct{} {
	t.Helper()

	auth, err := NewAuthenticator("test-secret")
	require.NoError(t, err)

	server := NewServer(auth,
		commands.CreateParcelCommandHandler{},
		commands.UpdateParcelCommandHandler{},
		commands.CancelParcelCommandHandler{},
		commands.UpdateParcelStatusCommandHandler{},
		commands.ConfirmDeliveryCommandHandler{},
		commands.BlockParcelCommandHandler{},
		commands.AssignPersonnelCommandHandler{},
		commands.DeleteParcelCommandHandler{},
		queries.GetParcelQueryHandler{},
		queries.TrackParcelQueryHandler{},
		queries.ListParcelsQueryHandler{},
		queries.ListUsersQueryHandler{},
		queries.ParcelStatsQueryHandler{})

	e := echo.New()
	server.RegisterRoutes(e)

	routes := make(map[string]struct{})
	for _, route := range e.Routes() {
		routes[fmt.Sprintf("%s %s", route.Method, route.Path)] = struct{}{}
	}
	return routes
}

func TestRegisterRoutes(t *testing.T) {
	routes := registeredRoutes(t)

	t.Run("should expose public tracking under the parcels surface", func(t *testing.T) {
		assert.Contains(t, routes, "GET /api/v1/parcels/track/:trackingId")
		assert.NotContains(t, routes, "GET /api/v1/track/:trackingId")
	})

	t.Run("should expose the full parcel lifecycle surface", func(t *testing.T) {
		for _, route := range []string{
			"GET /health",
			"POST /api/v1/parcels",
			"GET /api/v1/parcels",
			"GET /api/v1/parcels/stats",
			"GET /api/v1/parcels/:id",
			"PATCH /api/v1/parcels/:id",
			"DELETE /api/v1/parcels/:id",
			"POST /api/v1/parcels/:id/cancel",
			"PATCH /api/v1/parcels/:id/status",
			"PATCH /api/v1/parcels/:id/block",
			"POST /api/v1/parcels/:id/assign",
			"POST /api/v1/parcels/:id/confirm-delivery",
			"GET /api/v1/users",
		} {
			assert.Contains(t, routes, route)
		}
	})
}
