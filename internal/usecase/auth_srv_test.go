package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"classifieds-market/internal/data/entity"
	"classifieds-market/internal/data/session"
	"classifieds-market/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRequest(userID, email string) *request.SignupRequest {
	return &request.SignupRequest{
		UserID:   userID,
		Password: "secret123",
		Name:     "Kim",
		Email:    email,
		Phone:    "01012345678",
		IDNum:    "9001011234567",
	}
}

func TestCheckDuplicate(t *testing.T) {
	h := newHarness(t)
	h.addUser(t, "alice", false)
	ctx := context.Background()

	tests := []struct {
		name   string
		userID string
		email  string
		want   entity.Result
	}{
		{"taken id", "alice", "", entity.ResultConflict},
		{"free id", "bob", "", entity.ResultSuccess},
		{"taken email", "", "alice@example.com", entity.ResultConflict},
		{"free email", "", "bob@example.com", entity.ResultSuccess},
		{"both given", "bob", "bob@example.com", entity.ResultEntityError},
		{"neither given", "", "", entity.ResultEntityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.svc.Auth.CheckDuplicate(ctx, tt.userID, tt.email))
		})
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		h := newHarness(t)

		result := h.svc.Auth.Signup(ctx, signupRequest("alice", "alice@example.com"))
		require.Equal(t, entity.ResultSuccess, result)

		user, _ := h.users.FindByUserID(ctx, "alice")
		require.NotNil(t, user)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.False(t, user.IsBroker)
	})

	t.Run("existing user_id or email conflicts without a new row", func(t *testing.T) {
		h := newHarness(t)
		h.addUser(t, "alice", false)

		assert.Equal(t, entity.ResultConflict, h.svc.Auth.Signup(ctx, signupRequest("alice", "other@example.com")))
		assert.Equal(t, entity.ResultConflict, h.svc.Auth.Signup(ctx, signupRequest("bobby", "alice@example.com")))
		assert.Len(t, h.users.rows, 1)
	})

	t.Run("invalid body", func(t *testing.T) {
		h := newHarness(t)
		req := signupRequest("alice", "not-an-email")

		assert.Equal(t, entity.ResultEntityError, h.svc.Auth.Signup(ctx, req))
		assert.Empty(t, h.users.rows)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addUser(t, "alice", false)

	t.Run("wrong password", func(t *testing.T) {
		result := h.svc.Auth.Login(ctx, &request.LoginRequest{UserID: "alice", Password: "nope"})
		assert.Equal(t, entity.ResultFail, result)
		assert.Equal(t, 0, h.store.Len())
	})

	t.Run("unknown user", func(t *testing.T) {
		result := h.svc.Auth.Login(ctx, &request.LoginRequest{UserID: "ghost", Password: "secret123"})
		assert.Equal(t, entity.ResultFail, result)
	})

	t.Run("repeated login keeps one marker", func(t *testing.T) {
		req := &request.LoginRequest{UserID: "alice", Password: "secret123"}
		require.Equal(t, entity.ResultSuccess, h.svc.Auth.Login(ctx, req))
		require.Equal(t, entity.ResultSuccess, h.svc.Auth.Login(ctx, req))

		assert.Equal(t, 1, h.store.Len())
		ok, _ := h.store.Exists(ctx, session.LoginKey("alice"))
		assert.True(t, ok)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addUser(t, "alice", false)

	assert.Equal(t, entity.ResultFail, h.svc.Auth.Logout(ctx, "alice"))

	h.login(t, "alice")
	assert.Equal(t, entity.ResultSuccess, h.svc.Auth.Logout(ctx, "alice"))

	ok, _ := h.store.Exists(ctx, session.LoginKey("alice"))
	assert.False(t, ok)
	user, _ := h.users.FindByUserID(ctx, "alice")
	assert.NotNil(t, user.LastLogout)
}

func TestSignout(t *testing.T) {
	ctx := context.Background()
	req := &request.SignoutRequest{UserID: "alice", Password: "secret123"}

	t.Run("bad credentials", func(t *testing.T) {
		h := newHarness(t)
		h.addUser(t, "alice", false)
		h.login(t, "alice")

		bad := &request.SignoutRequest{UserID: "alice", Password: "wrong"}
		assert.Equal(t, entity.ResultFail, h.svc.Auth.Signout(ctx, bad))
		assert.Len(t, h.users.rows, 1)
	})

	t.Run("not logged in", func(t *testing.T) {
		h := newHarness(t)
		h.addUser(t, "alice", false)

		assert.Equal(t, entity.ResultTimeOut, h.svc.Auth.Signout(ctx, req))
		assert.Len(t, h.users.rows, 1)
	})

	t.Run("removes user, profile and marker", func(t *testing.T) {
		h := newHarness(t)
		h.addUser(t, "alice", false)
		h.login(t, "alice")
		require.Equal(t, entity.ResultSuccess, h.svc.User.UpdateProfileImage(ctx, "alice", pngBytes(t)))
		user, _ := h.users.FindByUserID(ctx, "alice")
		require.NotNil(t, user.Profile)

		assert.Equal(t, entity.ResultSuccess, h.svc.Auth.Signout(ctx, req))
		assert.Empty(t, h.users.rows)
		assert.Equal(t, 0, h.store.Len())

		_, result := h.svc.User.OpenProfileImage(ctx, *user.Profile)
		assert.Equal(t, entity.ResultNotFound, result)
	})
}

func TestEmailVerification(t *testing.T) {
	ctx := context.Background()
	email := "alice@example.com"

	sentCode := func(t *testing.T, h *harness) string {
		t.Helper()
		require.Equal(t, entity.ResultSuccess, h.svc.Auth.SendEmail(ctx, email))
		code, ok, _ := h.store.Get(ctx, session.EmailCodeKey(email))
		require.True(t, ok)
		require.Len(t, code, 6)
		return code
	}

	assertCleared := func(t *testing.T, h *harness) {
		t.Helper()
		for _, key := range []string{session.EmailCodeKey(email), session.EmailTimeKey(email)} {
			ok, _ := h.store.Exists(ctx, key)
			assert.False(t, ok, key)
		}
	}

	t.Run("matching code", func(t *testing.T) {
		h := newHarness(t)
		code := sentCode(t, h)
		require.Len(t, h.mail.sent, 1)
		assert.Contains(t, h.mail.sent[0].Body, code)
		assert.Equal(t, email, h.mail.sent[0].To)

		h.clock = h.clock.Add(299 * time.Second)
		assert.Equal(t, entity.ResultSuccess, h.svc.Auth.VerifyEmail(ctx, email, code))
		assertCleared(t, h)

		ok, _ := h.store.Exists(ctx, session.EmailVerifiedKey(email))
		assert.True(t, ok)
	})

	t.Run("expired code times out and clears both keys", func(t *testing.T) {
		h := newHarness(t)
		code := sentCode(t, h)

		h.clock = h.clock.Add(300 * time.Second)
		assert.Equal(t, entity.ResultTimeOut, h.svc.Auth.VerifyEmail(ctx, email, code))
		assertCleared(t, h)
	})

	t.Run("wrong code fails and clears", func(t *testing.T) {
		h := newHarness(t)
		code := sentCode(t, h)

		wrong := "000000"
		if code == wrong {
			wrong = "111111"
		}
		assert.Equal(t, entity.ResultFail, h.svc.Auth.VerifyEmail(ctx, email, wrong))
		assertCleared(t, h)
		assert.Equal(t, entity.ResultFail, h.svc.Auth.VerifyEmail(ctx, email, code))
	})

	t.Run("no code sent", func(t *testing.T) {
		h := newHarness(t)
		assert.Equal(t, entity.ResultFail, h.svc.Auth.VerifyEmail(ctx, email, "123456"))
	})

	t.Run("delivery failure", func(t *testing.T) {
		h := newHarness(t)
		h.mail.err = errors.New("smtp down")
		assert.Equal(t, entity.ResultFail, h.svc.Auth.SendEmail(ctx, email))
	})

	t.Run("invalid address", func(t *testing.T) {
		h := newHarness(t)
		assert.Equal(t, entity.ResultEntityError, h.svc.Auth.SendEmail(ctx, "nope"))
		assert.Empty(t, h.mail.sent)
	})
}

func TestForgotID(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addUser(t, "alice", false)

	id, result := h.svc.Auth.ForgotID(ctx, "alice@example.com")
	assert.Equal(t, entity.ResultSuccess, result)
	assert.Equal(t, "alice", id)

	id, result = h.svc.Auth.ForgotID(ctx, "ghost@example.com")
	assert.Equal(t, entity.ResultNotFound, result)
	assert.Empty(t, id)
}

func TestForgotPassword(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.addUser(t, "alice", false)
	req := &request.ForgotPasswordRequest{UserID: "alice", Password: "brandnew1"}

	assert.Equal(t, entity.ResultFail, h.svc.Auth.ForgotPassword(ctx, req))

	require.NoError(t, h.store.Set(ctx, session.EmailVerifiedKey("alice@example.com"), "1", time.Minute))
	assert.Equal(t, entity.ResultSuccess, h.svc.Auth.ForgotPassword(ctx, req))

	login := &request.LoginRequest{UserID: "alice", Password: "brandnew1"}
	assert.Equal(t, entity.ResultSuccess, h.svc.Auth.Login(ctx, login))

	// the marker is single use
	assert.Equal(t, entity.ResultFail, h.svc.Auth.ForgotPassword(ctx, req))
}
