package subscription

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cod-analytics/backend/internal/models"
	"github.com/cod-analytics/backend/internal/storage"
	"github.com/cod-analytics/backend/internal/storage/memory"
)

func newTestService(start time.Time) (*Service, *memory.Storage, *time.Time) {
	current := start
	store := memory.New()
	svc := New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return current }
	return svc, store, &current
}

func TestService_NewTrial(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(start)

	sub := svc.NewTrial("a@x.com")

	assert.Equal(t, models.StatusTrial, sub.Status)
	assert.Equal(t, start.Add(7*24*time.Hour), sub.TrialEndsAt)
	assert.Equal(t, sub.TrialEndsAt, sub.CurrentPeriodEnd)
	assert.Equal(t, 7, svc.TrialDaysLeft(&sub))
}

func TestService_Current_LazyExpiry(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store, clock := newTestService(start)
	ctx := context.Background()

	sub := svc.NewTrial("a@x.com")
	require.NoError(t, store.UpsertSubscription(ctx, sub))

	// ровно в момент окончания пробный период ещё действует
	*clock = sub.TrialEndsAt
	got, err := svc.Current(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusTrial, got.Status)

	// строго после окончания статус переводится в expired и сохраняется
	*clock = sub.TrialEndsAt.Add(time.Second)
	got, err = svc.Current(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, got.Status)

	persisted, err := store.GetSubscription(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, persisted.Status)
}

func TestService_Current_EightDaysLater(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store, clock := newTestService(start)
	ctx := context.Background()

	require.NoError(t, store.UpsertSubscription(ctx, svc.NewTrial("a@x.com")))

	*clock = start.Add(8 * 24 * time.Hour)
	got, err := svc.Current(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, got.Status)
	assert.Equal(t, 0, svc.TrialDaysLeft(got))
}

func TestService_Current_MissingSubscription(t *testing.T) {
	svc, store, _ := newTestService(time.Now().UTC())
	ctx := context.Background()

	got, err := svc.Current(ctx, "missing@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, got.Status)

	// синтетическая запись не сохраняется
	_, err = store.GetSubscription(ctx, "missing@x.com")
	assert.ErrorIs(t, err, storage.ErrSubscriptionNotFound)
}

func TestService_Current_CancelledNotExpired(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store, clock := newTestService(start)
	ctx := context.Background()

	sub := svc.NewTrial("a@x.com")
	sub.Status = models.StatusCancelled
	require.NoError(t, store.UpsertSubscription(ctx, sub))

	// ленивое истечение применяется только к trial
	*clock = start.Add(30 * 24 * time.Hour)
	got, err := svc.Current(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
}

func TestService_TrialDaysLeft(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, clock := newTestService(start)

	sub := svc.NewTrial("a@x.com")

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "full trial", now: start, want: 7},
		{name: "partial day rounds up", now: start.Add(6*24*time.Hour + 12*time.Hour), want: 1},
		{name: "exactly at end", now: sub.TrialEndsAt, want: 0},
		{name: "past end never negative", now: sub.TrialEndsAt.Add(48 * time.Hour), want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			*clock = tc.now
			assert.Equal(t, tc.want, svc.TrialDaysLeft(&sub))
		})
	}

	active := sub
	active.Status = models.StatusActive
	*clock = start
	assert.Equal(t, 0, svc.TrialDaysLeft(&active))
}

func TestService_Activate(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store, clock := newTestService(start)
	ctx := context.Background()

	require.NoError(t, store.UpsertSubscription(ctx, svc.NewTrial("a@x.com")))

	got, err := svc.Activate(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, start.Add(30*24*time.Hour), got.CurrentPeriodEnd)
	assert.Equal(t, 0, svc.TrialDaysLeft(got))

	// активация после истечения пробного периода
	expired := svc.NewTrial("b@x.com")
	expired.Status = models.StatusExpired
	require.NoError(t, store.UpsertSubscription(ctx, expired))

	*clock = start.Add(10 * 24 * time.Hour)
	got, err = svc.Activate(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)
	assert.Equal(t, clock.Add(30*24*time.Hour), got.CurrentPeriodEnd)
}

func TestService_Activate_MissingRecord(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store, _ := newTestService(start)
	ctx := context.Background()

	got, err := svc.Activate(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)

	persisted, err := store.GetSubscription(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, persisted.Status)
}

func TestService_Cancel(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store, _ := newTestService(start)
	ctx := context.Background()

	_, err := svc.Activate(ctx, "a@x.com")
	require.NoError(t, err)

	got, err := svc.Cancel(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
	// доступ сохраняется до конца оплаченного периода
	assert.Equal(t, start.Add(30*24*time.Hour), got.CurrentPeriodEnd)

	// повторная отмена не является ошибкой
	again, err := svc.Cancel(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, again.Status)

	_, err = svc.Cancel(ctx, "missing@x.com")
	assert.ErrorIs(t, err, storage.ErrSubscriptionNotFound)

	// запись в хранилище не потеряна
	persisted, err := store.GetSubscription(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, persisted.Status)
}

func TestService_View(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(start)

	user := &models.User{Email: "a@x.com", Name: "Test", Company: "Acme", PasswordHash: "secret"}
	sub := svc.NewTrial("a@x.com")

	view := svc.View(user, &sub)
	assert.Equal(t, "a@x.com", view.Email)
	assert.Equal(t, models.StatusTrial, view.Subscription)
	assert.True(t, view.Trial)
	assert.Equal(t, 7, view.TrialDaysLeft)
}
