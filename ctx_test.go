package bookstore_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-bookstore"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
)

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &bookstore.JWTClaims{
		UID:      "account-1",
		UserRole: bookstore.RoleAdmin,
	}

	ctx := bookstore.WithClaimsContext(context.Background(), claims)

	got, ok := bookstore.GetClaims(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, got)
}

func TestGetClaims_MissingClaims(t *testing.T) {
	got, ok := bookstore.GetClaims(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestGetRouterClaims(t *testing.T) {
	claims := &bookstore.JWTClaims{UID: "account-2", UserRole: bookstore.RoleUser}

	t.Run("reads claims from locals", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["identity"] = claims

		got, ok := bookstore.GetRouterClaims(ctx, "identity")
		assert.True(t, ok)
		assert.Equal(t, claims, got)
	})

	t.Run("defaults key when empty", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["identity"] = claims

		got, ok := bookstore.GetRouterClaims(ctx, "")
		assert.True(t, ok)
		assert.Equal(t, claims, got)
	})

	t.Run("missing claims", func(t *testing.T) {
		ctx := router.NewMockContext()

		got, ok := bookstore.GetRouterClaims(ctx, "identity")
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("wrong type under key", func(t *testing.T) {
		ctx := router.NewMockContext()
		ctx.LocalsMock["identity"] = "not-claims"

		got, ok := bookstore.GetRouterClaims(ctx, "identity")
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}
