package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/service"
)

// Money amounts are sent as decimal strings with two fraction digits
// ("1850.00") so clients never round through floats.

// ServiceQuantityRequest is one selected service add-on.
type ServiceQuantityRequest struct {
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
}

// BookingRequest is the body of POST /quotes and POST /bookings.
type BookingRequest struct {
	PackageID     string                   `json:"package_id"`
	ServiceTypeID string                   `json:"service_type_id"`
	FoodItemIDs   []string                 `json:"food_item_ids"`
	Services      []ServiceQuantityRequest `json:"services"`
	GuestCount    int                      `json:"guest_count"`
	EventDate     *openapi_types.Date      `json:"event_date"`
	EventTime     string                   `json:"event_time,omitempty"`
	Venue         string                   `json:"venue,omitempty"`
	ContactPhone  string                   `json:"contact_phone,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
}

func (r BookingRequest) toService() service.BookingRequest {
	sel := domain.Selection{
		PackageID:     r.PackageID,
		ServiceTypeID: r.ServiceTypeID,
		FoodItemIDs:   r.FoodItemIDs,
	}
	for _, s := range r.Services {
		sel.Services = append(sel.Services, domain.ServiceQuantity{ServiceID: s.ServiceID, Quantity: s.Quantity})
	}
	out := service.BookingRequest{
		Selection:    sel,
		GuestCount:   r.GuestCount,
		EventTime:    r.EventTime,
		Venue:        r.Venue,
		ContactPhone: r.ContactPhone,
		Notes:        r.Notes,
	}
	if r.EventDate != nil {
		out.EventDate = domain.DayOf(r.EventDate.Time)
	}
	return out
}

// PriceResponse is a PriceBreakdown.
type PriceResponse struct {
	BasePrice           string `json:"base_price"`
	ServicePrice        string `json:"service_price"`
	FoodAddonsPrice     string `json:"food_addons_price"`
	ServicesAddonsPrice string `json:"services_addons_price"`
	TotalPrice          string `json:"total_price"`
}

func priceToResponse(p domain.PriceBreakdown) PriceResponse {
	return PriceResponse{
		BasePrice:           p.BasePrice.String(),
		ServicePrice:        p.ServicePrice.String(),
		FoodAddonsPrice:     p.FoodAddonsPrice.String(),
		ServicesAddonsPrice: p.ServicesAddonsPrice.String(),
		TotalPrice:          p.TotalPrice.String(),
	}
}

// FoodLineResponse is a food add-on on a quote or booking.
type FoodLineResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

// ServiceLineResponse is a service add-on line on a quote or booking.
type ServiceLineResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	UnitLabel    string `json:"unit_label"`
	PricePerUnit string `json:"price_per_unit"`
	Quantity     int    `json:"quantity"`
	LineTotal    string `json:"line_total"`
}

func linesToResponse(food []domain.BookedFoodItem, services []domain.BookedService) ([]FoodLineResponse, []ServiceLineResponse) {
	f := make([]FoodLineResponse, len(food))
	for i, item := range food {
		f[i] = FoodLineResponse{ID: item.ID, Name: item.Name, Category: item.Category, Price: item.Price.String()}
	}
	s := make([]ServiceLineResponse, len(services))
	for i, line := range services {
		s[i] = ServiceLineResponse{
			ID:           line.ID,
			Name:         line.Name,
			UnitLabel:    line.UnitLabel,
			PricePerUnit: line.PricePerUnit.String(),
			Quantity:     line.Quantity,
			LineTotal:    line.LineTotal.String(),
		}
	}
	return f, s
}

// QuoteResponse is the body of POST /quotes.
type QuoteResponse struct {
	Price         PriceResponse         `json:"price"`
	FoodAddons    []FoodLineResponse    `json:"food_addons"`
	ServiceAddons []ServiceLineResponse `json:"service_addons"`
	Available     bool                  `json:"available"`
	ClosedReason  *string               `json:"closed_reason,omitempty"`
}

func quoteToResponse(q service.Quote) QuoteResponse {
	food, services := linesToResponse(q.FoodAddons, q.ServiceAddons)
	resp := QuoteResponse{
		Price:         priceToResponse(q.Price),
		FoodAddons:    food,
		ServiceAddons: services,
		Available:     q.Available,
	}
	if !q.Available {
		reason := q.ClosedReason
		resp.ClosedReason = &reason
	}
	return resp
}

// BookingResponse is a stored booking.
type BookingResponse struct {
	ID              uuid.UUID             `json:"id"`
	CustomerID      string                `json:"customer_id"`
	CustomerName    string                `json:"customer_name"`
	PackageID       string                `json:"package_id"`
	PackageName     string                `json:"package_name"`
	ServiceTypeID   string                `json:"service_type_id"`
	ServiceTypeName string                `json:"service_type_name"`
	EventDate       openapi_types.Date    `json:"event_date"`
	EventTime       string                `json:"event_time,omitempty"`
	Venue           string                `json:"venue,omitempty"`
	ContactPhone    string                `json:"contact_phone,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	GuestCount      int                   `json:"guest_count"`
	FoodAddons      []FoodLineResponse    `json:"food_addons"`
	ServiceAddons   []ServiceLineResponse `json:"service_addons"`
	Price           PriceResponse         `json:"price"`
	Status          domain.BookingStatus  `json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func bookingToResponse(b domain.Booking) BookingResponse {
	food, services := linesToResponse(b.FoodAddons, b.ServiceAddons)
	return BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		CustomerName:    b.CustomerName,
		PackageID:       b.PackageID,
		PackageName:     b.PackageName,
		ServiceTypeID:   b.ServiceTypeID,
		ServiceTypeName: b.ServiceTypeName,
		EventDate:       dayToDate(b.EventDate),
		EventTime:       b.EventTime,
		Venue:           b.Venue,
		ContactPhone:    b.ContactPhone,
		Notes:           b.Notes,
		GuestCount:      b.GuestCount,
		FoodAddons:      food,
		ServiceAddons:   services,
		Price:           priceToResponse(b.Price),
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// Pagination describes the page returned by a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// BookingListResponse is the body of GET /bookings.
type BookingListResponse struct {
	Data       []BookingResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// StatusRequest is the body of PATCH /bookings/{id}/status.
type StatusRequest struct {
	Status domain.BookingStatus `json:"status"`
}

// ClosedDayRequest is the body of POST /closed-days.
type ClosedDayRequest struct {
	Day    *openapi_types.Date `json:"day"`
	Reason string              `json:"reason"`
}

// ClosedDayResponse is a closed day.
type ClosedDayResponse struct {
	ID        uuid.UUID          `json:"id"`
	Day       openapi_types.Date `json:"day"`
	Reason    string             `json:"reason"`
	CreatedAt time.Time          `json:"created_at"`
}

func closedDayToResponse(cd domain.ClosedDay) ClosedDayResponse {
	return ClosedDayResponse{ID: cd.ID, Day: dayToDate(cd.Day), Reason: cd.Reason, CreatedAt: cd.CreatedAt}
}

// PackageResponse is a package offered in the catalog.
type PackageResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	BasePrice   string   `json:"base_price"`
	PricePerPax *string  `json:"price_per_pax,omitempty"`
	MinPax      int      `json:"min_pax"`
	MaxPax      *int     `json:"max_pax,omitempty"`
	Features    []string `json:"features"`
}

// ServiceTypeResponse is a service type in the catalog.
type ServiceTypeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	PricePerGuest string `json:"price_per_guest"`
}

// FoodItemResponse is a food item in the catalog.
type FoodItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

// ServiceAddonResponse is a service add-on in the catalog.
type ServiceAddonResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	UnitLabel    string `json:"unit_label"`
	PricePerUnit string `json:"price_per_unit"`
}

// CatalogResponse is the body of GET /catalog. Inactive packages are omitted.
type CatalogResponse struct {
	Packages     []PackageResponse      `json:"packages"`
	ServiceTypes []ServiceTypeResponse  `json:"service_types"`
	FoodItems    []FoodItemResponse     `json:"food_items"`
	Services     []ServiceAddonResponse `json:"services"`
}

func catalogToResponse(c domain.Catalog) CatalogResponse {
	active := c.ActivePackages()
	resp := CatalogResponse{
		Packages:     make([]PackageResponse, len(active)),
		ServiceTypes: make([]ServiceTypeResponse, len(c.ServiceTypes)),
		FoodItems:    make([]FoodItemResponse, len(c.FoodItems)),
		Services:     make([]ServiceAddonResponse, len(c.Services)),
	}
	for i, p := range active {
		bounds := p.GuestBounds()
		pr := PackageResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			BasePrice:   p.BasePrice.String(),
			MinPax:      bounds.Min,
			Features:    p.Features,
		}
		if pr.Features == nil {
			pr.Features = []string{}
		}
		if p.PricePerPax != nil {
			rate := p.PricePerPax.String()
			pr.PricePerPax = &rate
		}
		if bounds.Max > 0 {
			pr.MaxPax = &bounds.Max
		}
		resp.Packages[i] = pr
	}
	for i, st := range c.ServiceTypes {
		resp.ServiceTypes[i] = ServiceTypeResponse{ID: st.ID, Name: st.Name, Description: st.Description, PricePerGuest: st.PricePerGuest.String()}
	}
	for i, f := range c.FoodItems {
		resp.FoodItems[i] = FoodItemResponse{ID: f.ID, Name: f.Name, Category: f.Category, Price: f.Price.String()}
	}
	for i, s := range c.Services {
		resp.Services[i] = ServiceAddonResponse{ID: s.ID, Name: s.Name, UnitLabel: s.UnitLabel, PricePerUnit: s.PricePerUnit.String()}
	}
	return resp
}

func dayToDate(d domain.Day) openapi_types.Date {
	return openapi_types.Date{Time: d.Time(time.UTC)}
}
