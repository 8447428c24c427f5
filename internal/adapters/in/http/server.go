// Package http is the inbound REST adapter. It binds requests, resolves the
// authenticated principal, dispatches to the command and query handlers, and
// maps the error taxonomy onto status codes.
package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	auth *Authenticator

	// Command handlers
	createParcelHandler    commands.CreateParcelCommandHandler
	updateParcelHandler    commands.UpdateParcelCommandHandler
	cancelParcelHandler    commands.CancelParcelCommandHandler
	updateStatusHandler    commands.UpdateParcelStatusCommandHandler
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler
	blockParcelHandler     commands.BlockParcelCommandHandler
	assignPersonnelHandler commands.AssignPersonnelCommandHandler
	deleteParcelHandler    commands.DeleteParcelCommandHandler

	// Query handlers
	getParcelHandler   queries.GetParcelQueryHandler
	trackParcelHandler queries.TrackParcelQueryHandler
	listParcelsHandler queries.ListParcelsQueryHandler
	listUsersHandler   queries.ListUsersQueryHandler
	parcelStatsHandler queries.ParcelStatsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	auth *Authenticator,
	createParcelHandler commands.CreateParcelCommandHandler,
	updateParcelHandler commands.UpdateParcelCommandHandler,
	cancelParcelHandler commands.CancelParcelCommandHandler,
	updateStatusHandler commands.UpdateParcelStatusCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	blockParcelHandler commands.BlockParcelCommandHandler,
	assignPersonnelHandler commands.AssignPersonnelCommandHandler,
	deleteParcelHandler commands.DeleteParcelCommandHandler,
	getParcelHandler queries.GetParcelQueryHandler,
	trackParcelHandler queries.TrackParcelQueryHandler,
	listParcelsHandler queries.ListParcelsQueryHandler,
	listUsersHandler queries.ListUsersQueryHandler,
	parcelStatsHandler queries.ParcelStatsQueryHandler,
) *Server {
	return &Server{
		auth:                   auth,
		createParcelHandler:    createParcelHandler,
		updateParcelHandler:    updateParcelHandler,
		cancelParcelHandler:    cancelParcelHandler,
		updateStatusHandler:    updateStatusHandler,
		confirmDeliveryHandler: confirmDeliveryHandler,
		blockParcelHandler:     blockParcelHandler,
		assignPersonnelHandler: assignPersonnelHandler,
		deleteParcelHandler:    deleteParcelHandler,
		getParcelHandler:       getParcelHandler,
		trackParcelHandler:     trackParcelHandler,
		listParcelsHandler:     listParcelsHandler,
		listUsersHandler:       listUsersHandler,
		parcelStatsHandler:     parcelStatsHandler,
	}
}

// RegisterRoutes wires the API surface onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	// Tracking is public: a valid tracking id is the credential.
	api.GET("/parcels/track/:trackingId", s.TrackParcel)

	// Delivery confirmation allows receivers without an account.
	api.POST("/parcels/:id/confirm-delivery", s.ConfirmDelivery, s.auth.OptionalMiddleware())

	protected := api.Group("", s.auth.Middleware())
	protected.POST("/parcels", s.CreateParcel)
	protected.GET("/parcels", s.ListParcels)
	protected.GET("/parcels/stats", s.ParcelStats)
	protected.GET("/parcels/:id", s.GetParcel)
	protected.PATCH("/parcels/:id", s.UpdateParcel)
	protected.DELETE("/parcels/:id", s.DeleteParcel)
	protected.POST("/parcels/:id/cancel", s.CancelParcel)
	protected.PATCH("/parcels/:id/status", s.UpdateParcelStatus)
	protected.PATCH("/parcels/:id/block", s.BlockParcel)
	protected.POST("/parcels/:id/assign", s.AssignPersonnel)
	protected.GET("/users", s.ListUsers)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateParcel handles POST /api/v1/parcels - registers a new parcel request.
func (s *Server) CreateParcel(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request CreateParcelRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValidationFailedError("request body is not valid JSON"))
	}

	cmd, err := commands.NewCreateParcelCommand(principal, request.toPayload())
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, parcelView(created))
}

// GetParcel handles GET /api/v1/parcels/:id - retrieves one parcel with history.
func (s *Server) GetParcel(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetParcelQuery(principal, parcelID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.getParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// TrackParcel handles GET /api/v1/parcels/track/:trackingId - public tracking lookup.
func (s *Server) TrackParcel(ctx echo.Context) error {
	query, err := queries.NewTrackParcelQuery(ctx.Param("trackingId"))
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.trackParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListParcels handles GET /api/v1/parcels - role-scoped parcel listing.
func (s *Server) ListParcels(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListParcelsQuery(principal, queryParamMap(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.listParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateParcel handles PATCH /api/v1/parcels/:id - sender's pre-dispatch edit.
func (s *Server) UpdateParcel(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request UpdateParcelRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValidationFailedError("request body is not valid JSON"))
	}

	cmd, err := commands.NewUpdateParcelCommand(principal, parcelID, request.toPatch())
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelView(updated))
}

// CancelParcel handles POST /api/v1/parcels/:id/cancel.
func (s *Server) CancelParcel(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request CancelParcelRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValidationFailedError("request body is not valid JSON"))
	}

	cmd, err := commands.NewCancelParcelCommand(principal, parcelID, request.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.cancelParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelView(cancelled))
}

// UpdateParcelStatus handles PATCH /api/v1/parcels/:id/status - admin transition.
func (s *Server) UpdateParcelStatus(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request UpdateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValidationFailedError("request body is not valid JSON"))
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(
		principal, parcelID, request.Status, request.Location, request.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelView(updated))
}

// ConfirmDelivery handles POST /api/v1/parcels/:id/confirm-delivery.
// Authenticated receivers confirm with their token identity; receivers
// without an account supply the email the parcel was addressed to.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request ConfirmDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValidationFailedError("request body is not valid JSON"))
	}

	email := request.Email
	if principal, principalErr := principalFrom(ctx); principalErr == nil {
		email = principal.Email()
	}

	cmd, err := commands.NewConfirmDeliveryCommand(email, parcelID, request.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	confirmed, err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelView(confirmed))
}

// BlockParcel handles PATCH /api/v1/parcels/:id/block - admin freeze toggle.
func (s *Server) BlockParcel(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request BlockParcelRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValidationFailedError("request body is not valid JSON"))
	}

	cmd, err := commands.NewBlockParcelCommand(principal, parcelID, request.Blocked, request.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	blocked, err := s.blockParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelView(blocked))
}

// AssignPersonnel handles POST /api/v1/parcels/:id/assign.
func (s *Server) AssignPersonnel(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var request AssignPersonnelRequest
	if err = ctx.Bind(&request); err != nil {
		return writeError(ctx, errs.NewValidationFailedError("request body is not valid JSON"))
	}

	personnelID, err := kernel.UUIDFromBytes(request.PersonnelID[:])
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignPersonnelCommand(principal, parcelID, personnelID)
	if err != nil {
		return writeError(ctx, err)
	}

	assigned, err := s.assignPersonnelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelView(assigned))
}

// DeleteParcel handles DELETE /api/v1/parcels/:id - admin hard delete.
func (s *Server) DeleteParcel(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	parcelID, err := parcelIDParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDeleteParcelCommand(principal, parcelID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.deleteParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListUsers handles GET /api/v1/users - admin account listing.
func (s *Server) ListUsers(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewListUsersQuery(principal, queryParamMap(ctx))
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.listUsersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ParcelStats handles GET /api/v1/parcels/stats - admin dashboard numbers.
func (s *Server) ParcelStats(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewParcelStatsQuery(principal)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.parcelStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// parcelIDParam parses the :id path parameter.
func parcelIDParam(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

// queryParamMap flattens the query string for the listing pipeline, first
// value wins for repeated keys.
func queryParamMap(ctx echo.Context) map[string]string {
	params := make(map[string]string, len(ctx.QueryParams()))
	for key, values := range ctx.QueryParams() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}
