package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/auth"
)

func TestService_AnonymousRoundTrip(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	sess, err := svc.Anonymous()
	require.NoError(t, err)
	assert.NotEmpty(t, sess.UserID)
	assert.NotEmpty(t, sess.Token)

	userID, err := svc.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, userID)
}

func TestService_AnonymousMintsDistinctUsers(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	a, err := svc.Anonymous()
	require.NoError(t, err)

	b, err := svc.Anonymous()
	require.NoError(t, err)

	assert.NotEqual(t, a.UserID, b.UserID)
}

func TestService_Verify_Errors(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewService("other-secret", time.Hour)

		sess, err := other.Anonymous()
		require.NoError(t, err)

		_, err = svc.Verify(sess.Token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := auth.NewService("test-secret", -time.Minute)

		sess, err := expired.Anonymous()
		require.NoError(t, err)

		_, err = svc.Verify(sess.Token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestUserIDContext(t *testing.T) {
	ctx := context.Background()

	_, ok := auth.UserID(ctx)
	assert.False(t, ok)

	ctx = auth.WithUserID(ctx, "user-1")

	id, ok := auth.UserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
}
