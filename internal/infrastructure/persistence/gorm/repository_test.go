package gorm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/menu"
	"github.com/zaikabox/v1/internal/domain/order"
	"github.com/zaikabox/v1/internal/domain/user"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

type RepositoryTestSuite struct {
	suite.Suite
	db        *gormlib.DB
	users     outbound.UserRepository
	orders    outbound.OrderRepository
	ctx       context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&UserModel{}, &OrderModel{}, &CartModel{}))

	s.db = db
	s.users = NewUserRepository(db)
	s.orders = NewOrderRepository(db)
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) newUser(username string) *user.User {
	u, err := user.New(username, "secret123", health.Profile{
		HasIssues:   true,
		DiseaseName: "Diabetes",
		Stage:       health.StageBeginning,
		Age:         45,
	})
	s.Require().NoError(err)
	u.Address = user.Address{DoorNo: "12", District: "Chennai", State: "TN", Pincode: "600001"}
	return u
}

func (s *RepositoryTestSuite) newOrder(username string) *order.Order {
	items := []order.CartItem{
		{Item: menu.FoodItem{ID: "ITEM-1", Name: "Idli", Price: 60}, Quantity: 2},
	}
	agent := order.DeliveryAgent{Name: "Ramesh", Vehicle: order.VehicleBike, ETAMinutes: 25}
	o, err := order.New(username, items, agent, "12 Park Street", "ring the bell")
	s.Require().NoError(err)
	return o
}

func (s *RepositoryTestSuite) TestSaveAndFindUser() {
	u := s.newUser("asha")
	s.Require().NoError(s.users.Save(s.ctx, u))

	found, err := s.users.FindByUsername(s.ctx, "asha")
	s.Require().NoError(err)

	s.Equal(u.ID, found.ID)
	s.Equal("Diabetes", found.HealthProfile.DiseaseName)
	s.Equal("Chennai", found.Address.District)
	s.True(found.CheckPassword("secret123"))
}

func (s *RepositoryTestSuite) TestDuplicateUsernameRejected() {
	s.Require().NoError(s.users.Save(s.ctx, s.newUser("asha")))

	err := s.users.Save(s.ctx, s.newUser("asha"))
	s.Require().Error(err)
	s.True(apperrors.Is(err, apperrors.CodeUsernameExists))
}

func (s *RepositoryTestSuite) TestExistsByUsername() {
	exists, err := s.users.ExistsByUsername(s.ctx, "asha")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.users.Save(s.ctx, s.newUser("asha")))

	exists, err = s.users.ExistsByUsername(s.ctx, "asha")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *RepositoryTestSuite) TestFindMissingUser() {
	_, err := s.users.FindByUsername(s.ctx, "ghost")
	s.Require().Error(err)
	s.True(apperrors.Is(err, apperrors.CodeUserNotFound))
}

func (s *RepositoryTestSuite) TestUpdateUserProfile() {
	u := s.newUser("asha")
	s.Require().NoError(s.users.Save(s.ctx, u))

	s.Require().NoError(u.UpdateHealthProfile(health.Profile{
		HasIssues:   true,
		DiseaseName: "High Blood Pressure",
		Age:         46,
	}))
	s.Require().NoError(s.users.Update(s.ctx, u))

	found, err := s.users.FindByUsername(s.ctx, "asha")
	s.Require().NoError(err)
	s.Equal("High Blood Pressure", found.HealthProfile.DiseaseName)
}

func (s *RepositoryTestSuite) TestSaveAndFindOrder() {
	o := s.newOrder("asha")
	s.Require().NoError(s.orders.SaveOrder(s.ctx, o))

	found, err := s.orders.FindOrder(s.ctx, o.ID)
	s.Require().NoError(err)

	s.Equal(o.Total, found.Total)
	s.Equal(order.StatusPreparing, found.Status)
	s.Require().Len(found.Items, 1)
	s.Equal("Idli", found.Items[0].Item.Name)
	s.Equal("Ramesh", found.DeliveryAgent.Name)
}

func (s *RepositoryTestSuite) TestUpdateOrderStatus() {
	o := s.newOrder("asha")
	s.Require().NoError(s.orders.SaveOrder(s.ctx, o))

	s.Require().NoError(o.Advance())
	s.Require().NoError(s.orders.UpdateOrder(s.ctx, o))

	found, err := s.orders.FindOrder(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Equal(order.StatusOutForDelivery, found.Status)
}

func (s *RepositoryTestSuite) TestListOrdersByUsername() {
	s.Require().NoError(s.orders.SaveOrder(s.ctx, s.newOrder("asha")))
	s.Require().NoError(s.orders.SaveOrder(s.ctx, s.newOrder("asha")))
	s.Require().NoError(s.orders.SaveOrder(s.ctx, s.newOrder("ravi")))

	orders, err := s.orders.ListOrdersByUsername(s.ctx, "asha")
	s.Require().NoError(err)
	s.Len(orders, 2)
}

func (s *RepositoryTestSuite) TestFindMissingOrder() {
	o := s.newOrder("asha")

	_, err := s.orders.FindOrder(s.ctx, o.ID)
	s.Require().Error(err)
	s.True(apperrors.Is(err, apperrors.CodeOrderNotFound))
}

func (s *RepositoryTestSuite) TestCartRoundTrip() {
	items := []order.CartItem{
		{Item: menu.FoodItem{ID: "ITEM-1", Name: "Idli", Price: 60}, Quantity: 2},
		{Item: menu.FoodItem{ID: "ITEM-2", Name: "Dosa", Price: 80}, Quantity: 1},
	}

	s.Require().NoError(s.orders.SaveCart(s.ctx, "asha", items))

	loaded, err := s.orders.LoadCart(s.ctx, "asha")
	s.Require().NoError(err)
	s.Require().Len(loaded, 2)
	s.Equal(2, loaded[0].Quantity)
}

func (s *RepositoryTestSuite) TestCartUpsertReplaces() {
	first := []order.CartItem{{Item: menu.FoodItem{ID: "ITEM-1", Price: 60}, Quantity: 1}}
	second := []order.CartItem{{Item: menu.FoodItem{ID: "ITEM-2", Price: 80}, Quantity: 3}}

	s.Require().NoError(s.orders.SaveCart(s.ctx, "asha", first))
	s.Require().NoError(s.orders.SaveCart(s.ctx, "asha", second))

	loaded, err := s.orders.LoadCart(s.ctx, "asha")
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.Equal("ITEM-2", loaded[0].Item.ID)
}

func (s *RepositoryTestSuite) TestLoadMissingCartIsEmpty() {
	loaded, err := s.orders.LoadCart(s.ctx, "ghost")
	s.Require().NoError(err)
	s.Empty(loaded)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestJSONFieldScan(t *testing.T) {
	var f JSONField

	require.NoError(t, f.Scan([]byte(`{"a":1}`)))
	require.Equal(t, JSONField(`{"a":1}`), f)

	require.NoError(t, f.Scan("[1,2]"))
	require.Equal(t, JSONField("[1,2]"), f)

	require.NoError(t, f.Scan(nil))
	require.Nil(t, f)

	require.Error(t, f.Scan(42))
}
