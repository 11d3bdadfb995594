package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestConnect_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected error when the server is down")
	}
}

func TestDenylist_RevokeExpires(t *testing.T) {
	mr, client := newTestClient(t)
	d := NewDenylist(client)
	ctx := context.Background()

	if err := d.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err := d.IsRevoked(ctx, "jti-1")
	if err != nil || !revoked {
		t.Fatalf("expected jti-1 revoked, got %v / %v", revoked, err)
	}
	if revoked, _ := d.IsRevoked(ctx, "jti-2"); revoked {
		t.Fatalf("jti-2 was never revoked")
	}

	mr.FastForward(2 * time.Minute)
	if revoked, _ := d.IsRevoked(ctx, "jti-1"); revoked {
		t.Fatalf("expected revocation to expire with the token")
	}
}

func TestDenylist_NonPositiveTTLIsNoop(t *testing.T) {
	_, client := newTestClient(t)
	d := NewDenylist(client)

	if err := d.Revoke(context.Background(), "jti-1", 0); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked, _ := d.IsRevoked(context.Background(), "jti-1"); revoked {
		t.Fatalf("expired tokens need no denylist entry")
	}
}

func TestFixedWindowLimiter_BlocksOverBudget(t *testing.T) {
	mr, client := newTestClient(t)
	l := NewFixedWindowLimiter(client, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "1.2.3.4:/api/auth/login")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !res.Allowed || res.Remaining != 3-i {
			t.Fatalf("hit #%d: unexpected result %+v", i, res)
		}
	}

	res, _ := l.Allow(ctx, "1.2.3.4:/api/auth/login")
	if res.Allowed || res.Remaining != 0 {
		t.Fatalf("expected fourth hit to be rejected, got %+v", res)
	}

	other, _ := l.Allow(ctx, "5.6.7.8:/api/auth/login")
	if !other.Allowed {
		t.Fatalf("keys must be counted independently")
	}

	mr.FastForward(61 * time.Second)
	res, _ = l.Allow(ctx, "1.2.3.4:/api/auth/login")
	if !res.Allowed {
		t.Fatalf("expected a new window after expiry, got %+v", res)
	}
}

func TestFixedWindowLimiter_StoreDownReportsError(t *testing.T) {
	mr, client := newTestClient(t)
	l := NewFixedWindowLimiter(client, 1, time.Minute)
	mr.Close()

	res, err := l.Allow(context.Background(), "k")
	if err == nil {
		t.Fatalf("expected error with the store down")
	}
	if !res.Allowed {
		t.Fatalf("expected the result to allow the request on error")
	}
}

func TestAnalyticsCache_RoundTripAndMiss(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewAnalyticsCache(client, time.Minute)
	ctx := context.Background()

	got, err := c.Get(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected miss, got %+v / %v", got, err)
	}

	want := &domain.Analytics{
		TotalExpenses:      150,
		CategoryWiseTotals: []domain.CategoryTotal{{Category: "Food", Total: 150, Count: 3}},
		MonthlySpendingTrends: []domain.MonthlyTotal{
			{Month: domain.MonthKey{Year: 2026, Month: 1}, Total: 150},
		},
		TopSpendingUsers: []domain.UserSpending{{Email: "a@x.com", Name: "Alice", TotalSpent: 150}},
	}
	if err := c.Set(ctx, want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = c.Get(ctx)
	if err != nil || got == nil {
		t.Fatalf("expected hit, got %+v / %v", got, err)
	}
	if got.TotalExpenses != 150 || got.MonthlySpendingTrends[0].Month.Month != 1 || got.TopSpendingUsers[0].Name != "Alice" {
		t.Fatalf("unexpected cached value: %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	if got, _ := c.Get(ctx); got != nil {
		t.Fatalf("expected entry to expire")
	}
}

func TestKey_JoinsNamespace(t *testing.T) {
	if got := key(nsRateLimit, "10.0.0.1", "/api/auth/login"); got != "ratelimit:10.0.0.1:/api/auth/login" {
		t.Fatalf("unexpected key %q", got)
	}
	if analyticsKey != "analytics:summary" {
		t.Fatalf("unexpected analytics key %q", analyticsKey)
	}
}
