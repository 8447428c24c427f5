package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracker dependency in tests that
// exercise the repository outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// ParcelRepositoryIntegrationTestSuite exercises the GORM parcel repository
// against a real PostgreSQL database.
type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *parcelrepo.GormParcelRepository
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{}, &parcelrepo.StatusHistoryDTO{})
	suite.Require().NoError(err)

	suite.repo = parcelrepo.NewGormParcelRepository(db, noopTracker{})
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, parcel_status_history").Error
	suite.Require().NoError(err)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestAddAndGet verifies the full aggregate survives the roundtrip, history
// and fee breakdown included.
func (suite *ParcelRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	aggregate := newTestParcel()

	err := suite.repo.Add(ctx, aggregate)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(aggregate.ID(), restored.ID())
	suite.Equal(aggregate.TrackingID().String(), restored.TrackingID().String())
	suite.Equal(aggregate.SenderID(), restored.SenderID())
	suite.Equal(aggregate.Receiver().Email(), restored.Receiver().Email())
	suite.Equal(aggregate.Details().WeightKg(), restored.Details().WeightKg())
	suite.Equal(aggregate.Pricing().TotalFee(), restored.Pricing().TotalFee())
	suite.Equal(parcel.StatusRequested, restored.Status())
	suite.Require().Len(restored.History(), 1)
	suite.Equal(parcel.StatusRequested, restored.History()[0].Status())
	suite.Equal("Parcel request created", restored.History()[0].Note())
}

// TestGetByTrackingID verifies lookup via the public identifier.
func (suite *ParcelRepositoryIntegrationTestSuite) TestGetByTrackingID() {
	ctx := context.Background()
	aggregate := newTestParcel()

	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	restored, err := suite.repo.GetByTrackingID(ctx, aggregate.TrackingID())
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), restored.ID())
}

// TestGetNotFound verifies a missing parcel maps to the NotFound taxonomy.
func (suite *ParcelRepositoryIntegrationTestSuite) TestGetNotFound() {
	ctx := context.Background()

	_, err := suite.repo.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestExistsByTrackingID verifies the collision probe used by the tracking id
// generation loop.
func (suite *ParcelRepositoryIntegrationTestSuite) TestExistsByTrackingID() {
	ctx := context.Background()
	aggregate := newTestParcel()

	exists, err := suite.repo.ExistsByTrackingID(ctx, aggregate.TrackingID())
	suite.Require().NoError(err)
	suite.False(exists)

	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	exists, err = suite.repo.ExistsByTrackingID(ctx, aggregate.TrackingID())
	suite.Require().NoError(err)
	suite.True(exists)
}

// TestUpdateAppendsHistory verifies a transition persists the status change
// and exactly the new history rows.
func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdateAppendsHistory() {
	ctx := context.Background()
	aggregate := newTestParcel()
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	actor, err := parcel.NewUserActorRef(kernel.NewUUID())
	suite.Require().NoError(err)

	statusAtRead := aggregate.Status()
	suite.Require().NoError(aggregate.ChangeStatus(parcel.StatusApproved, actor, "Sorting hub", "Approved for pickup"))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate, statusAtRead))

	restored, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusApproved, restored.Status())
	suite.Require().Len(restored.History(), 2)
	suite.Equal("Sorting hub", restored.History()[1].Location())
	suite.Equal("Approved for pickup", restored.History()[1].Note())
}

// TestUpdateStaleStatusConflicts verifies the conditional write rejects a
// writer whose view of the status is out of date.
func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdateStaleStatusConflicts() {
	ctx := context.Background()
	aggregate := newTestParcel()
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	actor, err := parcel.NewUserActorRef(kernel.NewUUID())
	suite.Require().NoError(err)

	suite.Require().NoError(aggregate.ChangeStatus(parcel.StatusApproved, actor, "", ""))

	// The caller claims the row still holds APPROVED, but it holds REQUESTED.
	err = suite.repo.Update(ctx, aggregate, parcel.StatusApproved)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

// TestDeleteCascadesHistory verifies a hard delete removes the audit rows too.
func (suite *ParcelRepositoryIntegrationTestSuite) TestDeleteCascadesHistory() {
	ctx := context.Background()
	aggregate := newTestParcel()
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	err := suite.repo.Delete(ctx, aggregate.ID())
	suite.Require().NoError(err)

	_, err = suite.repo.Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var historyCount int64
	err = suite.db.Table("parcel_status_history").
		Where("parcel_id = ?", aggregate.ID().Bytes()).
		Count(&historyCount).Error
	suite.Require().NoError(err)
	suite.Zero(historyCount)
}

// TestDeleteNotFound verifies deleting a missing parcel reports NotFound.
func (suite *ParcelRepositoryIntegrationTestSuite) TestDeleteNotFound() {
	ctx := context.Background()

	err := suite.repo.Delete(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// newTestParcel creates a valid parcel in REQUESTED status.
func newTestParcel() *parcel.Parcel {
	receiver, _ := parcel.NewReceiver("Jane Receiver", "jane@example.com", "+15550100", "1 Delivery Lane")
	details, _ := parcel.NewDetails(parcel.TypeFragile, 1.5, "20x20x20", "Glassware", 120)
	preferred := time.Now().UTC().Add(48 * time.Hour)
	delivery, _ := parcel.NewDeliveryInfo(&preferred, "Ring twice", parcel.UrgencyExpress)
	pricing, _ := parcel.ComputePricing(1.5, parcel.UrgencyExpress, 0, "")

	aggregate, _ := parcel.NewParcel(
		kernel.NewUUID(), parcel.GenerateTrackingID(), kernel.NewUUID(),
		receiver, details, delivery, pricing,
	)
	return aggregate
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
