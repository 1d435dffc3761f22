package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/pricing"
)

func validSelection() domain.Selection {
	return domain.Selection{
		PackageID:     "intimate-gathering",
		ServiceTypeID: "mixed",
		FoodItemIDs:   []string{"appetizer-platter"},
		Services:      []domain.ServiceQuantity{{ServiceID: "chairs-standard", Quantity: 10}},
	}
}

func TestResolve_OK(t *testing.T) {
	r, err := pricing.Resolve(testCatalog(), validSelection())

	require.NoError(t, err)
	assert.Equal(t, "Intimate Gathering", r.Package.Name)
	assert.Equal(t, "mixed", r.ServiceType.ID)
	require.Len(t, r.FoodItems, 1)
	assert.Equal(t, domain.Dollars(150), r.FoodItems[0].Price)
	require.Len(t, r.Services, 1)
	assert.Equal(t, 10, r.Services[0].Quantity)
}

func TestResolve_UnknownIDs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Selection)
		want   domain.UnknownCatalogEntryError
	}{
		{
			name:   "package",
			mutate: func(s *domain.Selection) { s.PackageID = "nope" },
			want:   domain.UnknownCatalogEntryError{Kind: domain.KindPackage, ID: "nope"},
		},
		{
			name:   "inactive package",
			mutate: func(s *domain.Selection) { s.PackageID = "retired-package" },
			want:   domain.UnknownCatalogEntryError{Kind: domain.KindPackage, ID: "retired-package"},
		},
		{
			name:   "service type",
			mutate: func(s *domain.Selection) { s.ServiceTypeID = "catered-by-aliens" },
			want:   domain.UnknownCatalogEntryError{Kind: domain.KindServiceType, ID: "catered-by-aliens"},
		},
		{
			name:   "food",
			mutate: func(s *domain.Selection) { s.FoodItemIDs = []string{"unknown-id"} },
			want:   domain.UnknownCatalogEntryError{Kind: domain.KindFood, ID: "unknown-id"},
		},
		{
			name: "service",
			mutate: func(s *domain.Selection) {
				s.Services = []domain.ServiceQuantity{{ServiceID: "bouncy-castle", Quantity: 1}}
			},
			want: domain.UnknownCatalogEntryError{Kind: domain.KindService, ID: "bouncy-castle"},
		},
		{
			name: "service with zero quantity",
			mutate: func(s *domain.Selection) {
				s.Services = []domain.ServiceQuantity{{ServiceID: "bouncy-castle", Quantity: 0}}
			},
			want: domain.UnknownCatalogEntryError{Kind: domain.KindService, ID: "bouncy-castle"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := validSelection()
			tc.mutate(&sel)

			_, err := pricing.Resolve(testCatalog(), sel)

			var got domain.UnknownCatalogEntryError
			require.ErrorAs(t, err, &got)
			assert.Equal(t, tc.want, got)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestResolve_NegativeQuantity(t *testing.T) {
	sel := validSelection()
	sel.Services = []domain.ServiceQuantity{{ServiceID: "chairs-standard", Quantity: -2}}

	_, err := pricing.Resolve(testCatalog(), sel)

	var got domain.InvalidQuantityError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "chairs-standard", got.ServiceID)
	assert.Equal(t, -2, got.Quantity)
}

func TestResolve_DropsZeroQuantityLines(t *testing.T) {
	sel := validSelection()
	sel.Services = []domain.ServiceQuantity{
		{ServiceID: "chairs-standard", Quantity: 0},
		{ServiceID: "waiter", Quantity: 3},
	}

	r, err := pricing.Resolve(testCatalog(), sel)

	require.NoError(t, err)
	require.Len(t, r.Services, 1)
	assert.Equal(t, "waiter", r.Services[0].Service.ID)
}

func TestResolve_CollapsesDuplicateFood(t *testing.T) {
	sel := validSelection()
	sel.FoodItemIDs = []string{"dessert-table", "appetizer-platter", "dessert-table"}

	r, err := pricing.Resolve(testCatalog(), sel)

	require.NoError(t, err)
	require.Len(t, r.FoodItems, 2)
	assert.Equal(t, "dessert-table", r.FoodItems[0].ID)
	assert.Equal(t, "appetizer-platter", r.FoodItems[1].ID)
}

func TestResolve_QuantityBounds(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		wantErr  bool
	}{
		{"at cap", domain.MaxServiceQuantity, false},
		{"one over cap", domain.MaxServiceQuantity + 1, true},
		{"overflowing", 61489146912365, true},
		{"negative", -1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := validSelection()
			sel.Services = []domain.ServiceQuantity{{ServiceID: "waiter", Quantity: tc.quantity}}

			r, err := pricing.Resolve(testCatalog(), sel)

			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tc.quantity, r.Services[0].Quantity)
				return
			}
			var got domain.InvalidQuantityError
			require.ErrorAs(t, err, &got)
			assert.Equal(t, tc.quantity, got.Quantity)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
