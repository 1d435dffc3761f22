package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/repo"
	"github.com/pkordes/catering-booking/testutil"
)

func TestBookingRepo_CreateAndGet(t *testing.T) {
	r := repo.NewBookingRepo(testutil.NewTx(t))
	ctx := context.Background()
	input := testutil.PendingBooking("cust-1", domain.Day{Year: 2031, Month: time.July, Day: 4})

	created, err := r.Create(ctx, input)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, input.EventDate, created.EventDate)
	assert.Equal(t, input.Price, created.Price)
	assert.Equal(t, input.FoodAddons, created.FoodAddons)
	assert.Equal(t, input.ServiceAddons, created.ServiceAddons)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Empty(t, created.IdempotencyKey)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Intimate Gathering", got.PackageName)
}

func TestBookingRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewBookingRepo(testutil.NewTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepo_Create_DuplicateIdempotencyKey(t *testing.T) {
	r := repo.NewBookingRepo(testutil.NewTx(t))
	ctx := context.Background()
	input := testutil.PendingBooking("cust-2", domain.Day{Year: 2031, Month: time.July, Day: 5})
	input.IdempotencyKey = "abc-123"

	first, err := r.Create(ctx, input)
	require.NoError(t, err)

	_, err = r.Create(ctx, input)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := r.GetByIdempotencyKey(ctx, "cust-2", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestBookingRepo_Create_EmptyKeysDoNotCollide(t *testing.T) {
	r := repo.NewBookingRepo(testutil.NewTx(t))
	ctx := context.Background()
	input := testutil.PendingBooking("cust-3", domain.Day{Year: 2031, Month: time.July, Day: 6})

	_, err := r.Create(ctx, input)
	require.NoError(t, err)
	_, err = r.Create(ctx, input)
	assert.NoError(t, err)
}

func TestBookingRepo_List_FilterAndPage(t *testing.T) {
	r := repo.NewBookingRepo(testutil.NewTx(t))
	ctx := context.Background()
	customer := "cust-list-" + uuid.NewString()
	base := domain.Day{Year: 2033, Month: time.January, Day: 10}

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, testutil.PendingBooking(customer, base.AddDays(i)))
		require.NoError(t, err)
	}
	_, err := r.Create(ctx, testutil.PendingBooking("someone-else", base))
	require.NoError(t, err)

	f := domain.BookingFilter{CustomerID: customer, SortBy: domain.SortByEventDate, Descending: true}
	got, total, err := r.List(ctx, f, domain.PaginationParams{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, got, 2)
	assert.Equal(t, base.AddDays(2), got[0].EventDate)
	assert.Equal(t, base.AddDays(1), got[1].EventDate)

	from := base.AddDays(1)
	f = domain.BookingFilter{CustomerID: customer, From: &from, Statuses: []domain.BookingStatus{domain.StatusPending}}
	_, total, err = r.List(ctx, f, domain.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestBookingRepo_UpdateStatus(t *testing.T) {
	r := repo.NewBookingRepo(testutil.NewTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, testutil.PendingBooking("cust-4", domain.Day{Year: 2031, Month: time.August, Day: 1}))
	require.NoError(t, err)

	updated, err := r.UpdateStatus(ctx, created.ID, domain.StatusPending, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)

	_, err = r.UpdateStatus(ctx, created.ID, domain.StatusPending, domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrConflict, "status already moved on")
}
