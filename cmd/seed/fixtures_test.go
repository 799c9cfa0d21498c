package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adsmodel "adclad/internal/ads/domain/model"
	adstestutil "adclad/internal/ads/testutil"
	authmodel "adclad/internal/auth/domain/model"
	authtestutil "adclad/internal/auth/testutil"
)

func TestLoadFixtures_Bundled(t *testing.T) {
	f, err := LoadFixtures(bytes.NewReader(defaultFixtures))
	require.NoError(t, err)

	require.Len(t, f.Users, 2)
	assert.Equal(t, authmodel.RoleAdmin, f.Users[0].Role)
	require.Len(t, f.Accounts, 1)
	assert.Equal(t, 500.0, f.Accounts[0].Balance)
	assert.Len(t, f.Categories, 3)
	assert.Len(t, f.Sponsors, 2)
}

func TestLoadFixtures_Empty(t *testing.T) {
	f, err := LoadFixtures(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Users)
}

func TestLoadFixtures_UnknownKey(t *testing.T) {
	_, err := LoadFixtures(strings.NewReader("ads:\n  - url: x\n"))
	assert.Error(t, err)
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	users := &authtestutil.MockUserRepository{}
	stores := adstestutil.NewMockStores()

	existing := authtestutil.NewUserFixture().Admin("admin@adclad.local")
	users.On("GetActiveByEmail", ctx, "admin@adclad.local").Return(existing, nil)
	users.On("GetActiveByEmail", ctx, "vendor@adclad.local").Return(nil, nil)

	var created *authmodel.User
	users.On("Create", ctx, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*authmodel.User) }).
		Return(func(_ context.Context, u *authmodel.User) *authmodel.User { return u }, nil)

	var account *adsmodel.Account
	stores.Accounts.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { account = args.Get(1).(*adsmodel.Account) }).
		Return(nil, nil)

	stores.Categories.On("GetOne", ctx, mock.Anything, mock.Anything).Return(nil, nil).Once()
	stores.Categories.On("Create", ctx, mock.Anything).Return(nil, nil).Once()
	stores.Sponsors.On("Create", ctx, mock.Anything).Return(nil, nil).Once()

	f := &Fixtures{
		Users: []UserFixture{
			{Email: "Admin@adclad.local", Password: "secret123", Role: authmodel.RoleAdmin},
			{FirstName: "Demo", LastName: "Vendor", Email: "vendor@adclad.local", Password: "secret123"},
		},
		Accounts:   []AccountFixture{{Email: "vendor@adclad.local", Balance: 250}},
		Categories: []CategoryFixture{{Name: "Food", ImgURL: "https://x/food.png"}},
		Sponsors:   []SponsorFixture{{Name: "Acme", URL: "https://x/acme.png", SortOrder: 1}},
	}

	seeder := NewSeeder(users, stores.Stores(), bcrypt.MinCost, nil)
	require.NoError(t, seeder.Seed(ctx, f))

	require.NotNil(t, created)
	assert.Equal(t, authmodel.RoleVendor, created.Role)
	assert.False(t, created.ID.IsZero())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))

	require.NotNil(t, account)
	assert.Equal(t, created.ID, account.Owner.ID)
	assert.Equal(t, 250.0, *account.Balance)

	users.AssertExpectations(t)
	stores.AssertExpectations(t)
}

func TestSeeder_SkipsExistingCategory(t *testing.T) {
	ctx := context.Background()
	stores := adstestutil.NewMockStores()
	stores.Categories.On("GetOne", ctx, mock.Anything, mock.Anything).Return(&adsmodel.Category{Name: "Food"}, nil)

	seeder := NewSeeder(&authtestutil.MockUserRepository{}, stores.Stores(), bcrypt.MinCost, nil)
	require.NoError(t, seeder.Seed(ctx, &Fixtures{Categories: []CategoryFixture{{Name: "Food"}}}))

	stores.Categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeeder_AccountForUnknownUser(t *testing.T) {
	seeder := NewSeeder(&authtestutil.MockUserRepository{}, adstestutil.NewMockStores().Stores(), bcrypt.MinCost, nil)
	err := seeder.Seed(context.Background(), &Fixtures{Accounts: []AccountFixture{{Email: "ghost@adclad.local", Balance: 1}}})
	assert.ErrorContains(t, err, "unknown user")
}
