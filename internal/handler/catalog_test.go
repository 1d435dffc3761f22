package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/handler"
)

func TestGetCatalog_200_OmitsInactivePackages(t *testing.T) {
	rate := domain.Dollars(25)
	minPax, maxPax := 50, 300
	cat := &mockCatalog{get: func(context.Context) (domain.Catalog, error) {
		return domain.Catalog{
			Packages: []domain.Package{
				{ID: "intimate-gathering", Name: "Intimate Gathering", BasePrice: domain.Dollars(1500), Active: true},
				{
					ID: "grand-celebration", Name: "Grand Celebration", BasePrice: domain.Dollars(3000),
					PricePerPax: &rate, MinPax: &minPax, MaxPax: &maxPax, Active: true,
				},
				{ID: "retired", Name: "Retired", Active: false},
			},
			ServiceTypes: []domain.ServiceType{{ID: "full-service", Name: "Full Service", PricePerGuest: domain.Dollars(15)}},
			FoodItems:    []domain.FoodItem{{ID: "appetizer-platter", Name: "Appetizer Platter", Price: domain.Dollars(150), Category: "appetizers"}},
			Services:     []domain.ServiceAddon{{ID: "waiter", Name: "Waiter", PricePerUnit: domain.Money(4550), UnitLabel: "hour"}},
		}, nil
	}}

	rec := do(t, newHTTPHandler(services{catalog: cat}), http.MethodGet, "/catalog", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.CatalogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp.Packages, 2)
	flat := resp.Packages[0]
	assert.Equal(t, "1500.00", flat.BasePrice)
	assert.Nil(t, flat.PricePerPax)
	assert.Equal(t, 1, flat.MinPax)
	assert.Nil(t, flat.MaxPax)
	assert.NotNil(t, flat.Features)

	grand := resp.Packages[1]
	require.NotNil(t, grand.PricePerPax)
	assert.Equal(t, "25.00", *grand.PricePerPax)
	assert.Equal(t, 50, grand.MinPax)
	require.NotNil(t, grand.MaxPax)
	assert.Equal(t, 300, *grand.MaxPax)

	assert.Equal(t, "15.00", resp.ServiceTypes[0].PricePerGuest)
	assert.Equal(t, "appetizers", resp.FoodItems[0].Category)
	assert.Equal(t, "45.50", resp.Services[0].PricePerUnit)
}

func TestGetCatalog_500(t *testing.T) {
	cat := &mockCatalog{get: func(context.Context) (domain.Catalog, error) {
		return domain.Catalog{}, errors.New("connection refused to 10.0.0.5")
	}}

	rec := do(t, newHTTPHandler(services{catalog: cat}), http.MethodGet, "/catalog", nil, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal_error", body.Code)
	assert.NotContains(t, body.Message, "10.0.0.5")
}

func TestRefreshCatalog_200_Manager(t *testing.T) {
	var got domain.Identity
	cat := &mockCatalog{refresh: func(_ context.Context, who domain.Identity) (domain.Catalog, error) {
		got = who
		return domain.Catalog{
			Packages: []domain.Package{{ID: "intimate-gathering", Name: "Intimate Gathering", BasePrice: domain.Dollars(1600), Active: true}},
		}, nil
	}}

	rec := do(t, newHTTPHandler(services{catalog: cat}), http.MethodPost, "/catalog/refresh", nil, &manager)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.CatalogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Packages, 1)
	assert.Equal(t, "1600.00", resp.Packages[0].BasePrice)
	assert.Equal(t, manager.UserID, got.UserID)
}

func TestRefreshCatalog_RequiresManager(t *testing.T) {
	h := newHTTPHandler(services{})

	anon := do(t, h, http.MethodPost, "/catalog/refresh", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	st := do(t, h, http.MethodPost, "/catalog/refresh", nil, &staff)
	assert.Equal(t, http.StatusForbidden, st.Code)
}
