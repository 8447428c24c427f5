package cmd

import (
	httpadapter "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateUpdateParcelCommandHandler() commands.UpdateParcelCommandHandler {
	return commands.NewUpdateParcelCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	return commands.NewUpdateParcelStatusCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateBlockParcelCommandHandler() commands.BlockParcelCommandHandler {
	return commands.NewBlockParcelCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateAssignPersonnelCommandHandler() commands.AssignPersonnelCommandHandler {
	return commands.NewAssignPersonnelCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	return commands.NewDeleteParcelCommandHandler(c.lifecycleUoWFactory())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() (queries.GetParcelQueryHandler, error) {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() (queries.TrackParcelQueryHandler, error) {
	return queries.NewTrackParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() (queries.ListParcelsQueryHandler, error) {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() (queries.ListUsersQueryHandler, error) {
	return queries.NewListUsersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateParcelStatsQueryHandler() (queries.ParcelStatsQueryHandler, error) {
	return queries.NewParcelStatsQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST adapter with every handler wired in.
func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	auth, err := httpadapter.NewAuthenticator(c.config.JWTSecret)
	if err != nil {
		return nil, err
	}

	getParcel, err := c.CreateGetParcelQueryHandler()
	if err != nil {
		return nil, err
	}
	trackParcel, err := c.CreateTrackParcelQueryHandler()
	if err != nil {
		return nil, err
	}
	listParcels, err := c.CreateListParcelsQueryHandler()
	if err != nil {
		return nil, err
	}
	listUsers, err := c.CreateListUsersQueryHandler()
	if err != nil {
		return nil, err
	}
	parcelStats, err := c.CreateParcelStatsQueryHandler()
	if err != nil {
		return nil, err
	}

	return httpadapter.NewServer(
		auth,
		c.CreateCreateParcelCommandHandler(),
		c.CreateUpdateParcelCommandHandler(),
		c.CreateCancelParcelCommandHandler(),
		c.CreateUpdateParcelStatusCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateBlockParcelCommandHandler(),
		c.CreateAssignPersonnelCommandHandler(),
		c.CreateDeleteParcelCommandHandler(),
		getParcel,
		trackParcel,
		listParcels,
		listUsers,
		parcelStats,
	), nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
