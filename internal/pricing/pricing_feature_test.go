package pricing_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/pricing"
)

// TestFeatures runs the Gherkin scenarios under features/.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "pricing",
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("feature scenarios failed")
	}
}

// scenarioState is rebuilt for every scenario.
type scenarioState struct {
	catalog domain.Catalog
	sel     domain.Selection
	price   *domain.PriceBreakdown
	err     error
	closed  []domain.ClosedDay
	avail   pricing.Availability
}

func initializeScenario(ctx *godog.ScenarioContext) {
	s := &scenarioState{}

	ctx.Step(`^the default catalog$`, func() error {
		s.catalog = testCatalog()
		return nil
	})
	ctx.Step(`^I select package "([^"]*)" with service type "([^"]*)"$`, func(pkg, st string) error {
		s.sel.PackageID = pkg
		s.sel.ServiceTypeID = st
		return nil
	})
	ctx.Step(`^I add food item "([^"]*)"$`, func(id string) error {
		s.sel.FoodItemIDs = append(s.sel.FoodItemIDs, id)
		return nil
	})
	ctx.Step(`^I add (\d+) of service "([^"]*)"$`, func(qty int, id string) error {
		s.sel.Services = append(s.sel.Services, domain.ServiceQuantity{ServiceID: id, Quantity: qty})
		return nil
	})
	ctx.Step(`^I price the booking for (\d+) guests$`, func(guests int) error {
		r, err := pricing.Resolve(s.catalog, s.sel)
		if err != nil {
			s.err = err
			return nil
		}
		p, err := pricing.ComputePrice(r, guests)
		if err != nil {
			s.err = err
			return nil
		}
		s.price = &p
		return nil
	})

	priceIs := func(field func(domain.PriceBreakdown) domain.Money) func(string) error {
		return func(want string) error {
			if s.err != nil {
				return fmt.Errorf("unexpected error: %w", s.err)
			}
			if got := field(*s.price).String(); got != want {
				return fmt.Errorf("expected %s, got %s", want, got)
			}
			return nil
		}
	}
	ctx.Step(`^the base price is (\d+\.\d{2})$`, priceIs(func(p domain.PriceBreakdown) domain.Money { return p.BasePrice }))
	ctx.Step(`^the service price is (\d+\.\d{2})$`, priceIs(func(p domain.PriceBreakdown) domain.Money { return p.ServicePrice }))
	ctx.Step(`^the food add-ons price is (\d+\.\d{2})$`, priceIs(func(p domain.PriceBreakdown) domain.Money { return p.FoodAddonsPrice }))
	ctx.Step(`^the services add-ons price is (\d+\.\d{2})$`, priceIs(func(p domain.PriceBreakdown) domain.Money { return p.ServicesAddonsPrice }))
	ctx.Step(`^the total price is (\d+\.\d{2})$`, priceIs(func(p domain.PriceBreakdown) domain.Money { return p.TotalPrice }))

	ctx.Step(`^pricing fails with guest count out of range (\d+) to (\d+) for (\d+)$`, func(lo, hi, actual int) error {
		var got domain.GuestCountOutOfRangeError
		if !errors.As(s.err, &got) {
			return fmt.Errorf("expected GuestCountOutOfRangeError, got %v", s.err)
		}
		want := domain.GuestCountOutOfRangeError{Min: lo, Max: hi, Actual: actual}
		if got != want {
			return fmt.Errorf("expected %+v, got %+v", want, got)
		}
		return nil
	})
	ctx.Step(`^resolution fails with unknown "([^"]*)" entry "([^"]*)"$`, func(kind, id string) error {
		var got domain.UnknownCatalogEntryError
		if !errors.As(s.err, &got) {
			return fmt.Errorf("expected UnknownCatalogEntryError, got %v", s.err)
		}
		if got.Kind != domain.CatalogKind(kind) || got.ID != id {
			return fmt.Errorf("expected (%s, %s), got (%s, %s)", kind, id, got.Kind, got.ID)
		}
		return nil
	})
	ctx.Step(`^no price is returned$`, func() error {
		if s.price != nil {
			return fmt.Errorf("expected no price, got %+v", *s.price)
		}
		return nil
	})

	ctx.Step(`^no closed days$`, func() error {
		s.closed = nil
		return nil
	})
	ctx.Step(`^"([^"]*)" is closed for "([^"]*)"$`, func(day, reason string) error {
		d, err := domain.ParseDay(day)
		if err != nil {
			return err
		}
		s.closed = append(s.closed, domain.ClosedDay{Day: d, Reason: reason})
		return nil
	})
	ctx.Step(`^I check availability for "([^"]*)"$`, func(day string) error {
		d, err := domain.ParseDay(day)
		if err != nil {
			return err
		}
		s.avail = pricing.CheckAvailability(d, s.closed)
		return nil
	})
	ctx.Step(`^the day is available$`, func() error {
		if s.avail.Closed {
			return fmt.Errorf("expected available, closed for %q", s.avail.Reason)
		}
		return nil
	})
	ctx.Step(`^the day is closed with reason "([^"]*)"$`, func(reason string) error {
		if !s.avail.Closed || s.avail.Reason != reason {
			return fmt.Errorf("expected closed for %q, got %+v", reason, s.avail)
		}
		return nil
	})
}
