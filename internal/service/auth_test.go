package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/auxesia/auxesia-server/internal/mocks"
	"github.com/auxesia/auxesia-server/internal/model"
	"github.com/auxesia/auxesia-server/internal/testutil"
)

func newAuthFixture() (*Auth, *mocks.UserStore, *mocks.PasswordHasher, *mocks.TokenManager, *mocks.MailDispatcher) {
	userStore := &mocks.UserStore{}
	hasher := &mocks.PasswordHasher{}
	tokens := &mocks.TokenManager{}
	mail := &mocks.MailDispatcher{}

	a := NewAuth(userStore, hasher, tokens, mail, testutil.MakeNoopLogger())
	return a, userStore, hasher, tokens, mail
}

func TestAuth_Signup_Success(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, tokens, mail := newAuthFixture()

	userStore.On("GetByEmail", mock.Anything, "a@b.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", "pass123").Return("$hashed$", nil)
	created := model.User{ID: uuid.New(), Email: "a@b.com", Username: "tester", PasswordHash: "$hashed$", Active: true}
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "a@b.com" && !u.Verified && u.Active && !u.Superuser && u.PasswordHash == "$hashed$"
	})).Return(created, nil)
	tokens.On("Issue", model.Claims{Email: "a@b.com"}).Return("signed-token", nil)
	mail.On("DispatchVerification", "a@b.com", "signed-token").Return()

	profile, err := a.Signup(ctx, "a@b.com", "tester", "pass123")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", profile.Email)
	assert.False(t, profile.Verified)
	assert.True(t, profile.Active)
	assert.False(t, profile.Superuser)

	mail.AssertCalled(t, "DispatchVerification", "a@b.com", "signed-token")
}

func TestAuth_Signup_EmailTaken(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _, _ := newAuthFixture()

	userStore.On("GetByEmail", mock.Anything, "taken@b.com").Return(model.User{ID: uuid.New(), Email: "taken@b.com"}, nil)

	_, err := a.Signup(ctx, "taken@b.com", "tester", "pass123")
	require.ErrorIs(t, err, model.ErrEmailTaken)
	userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Signup_RaceLostToUniqueIndex(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, _, _ := newAuthFixture()

	userStore.On("GetByEmail", mock.Anything, "race@b.com").Return(model.User{}, model.ErrNotFound)
	hasher.On("Hash", "pass123").Return("$hashed$", nil)
	userStore.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrEmailTaken)

	_, err := a.Signup(ctx, "race@b.com", "tester", "pass123")
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAuth_Signin_Success(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, tokens, _ := newAuthFixture()

	user := model.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: "$hashed$", Verified: true, Active: true}
	userStore.On("GetByEmail", mock.Anything, "a@b.com").Return(user, nil)
	hasher.On("Verify", "pass123", "$hashed$").Return(nil)
	tokens.On("Issue", model.Claims{Email: "a@b.com"}).Return("bearer-token", nil)

	token, err := a.Signin(ctx, "a@b.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", token)
}

func TestAuth_Signin_SuperuserClaimSnapshot(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, tokens, _ := newAuthFixture()

	user := model.User{ID: uuid.New(), Email: "admin@b.com", PasswordHash: "$hashed$", Verified: true, Active: true, Superuser: true}
	userStore.On("GetByEmail", mock.Anything, "admin@b.com").Return(user, nil)
	hasher.On("Verify", "pass123", "$hashed$").Return(nil)
	tokens.On("Issue", model.Claims{Email: "admin@b.com", Superuser: true}).Return("admin-token", nil)

	token, err := a.Signin(ctx, "admin@b.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, "admin-token", token)
}

func TestAuth_Signin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, _, _ := newAuthFixture()

	userStore.On("GetByEmail", mock.Anything, "missing@b.com").Return(model.User{}, model.ErrNotFound)

	_, err := a.Signin(ctx, "missing@b.com", "pass123")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestAuth_Signin_FailureOrdering(t *testing.T) {
	// a user that exists, has the wrong password, is unverified and
	// inactive must fail on the password check, not the state checks
	ctx := context.Background()
	a, userStore, hasher, _, _ := newAuthFixture()

	user := model.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: "$hashed$", Verified: false, Active: false}
	userStore.On("GetByEmail", mock.Anything, "a@b.com").Return(user, nil)
	hasher.On("Verify", "wrong", "$hashed$").Return(model.ErrIncorrectPassword)

	_, err := a.Signin(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, model.ErrIncorrectPassword)
	assert.NotErrorIs(t, err, model.ErrAccountNotVerified)
}

func TestAuth_Signin_AccountNotVerified(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, _, _ := newAuthFixture()

	user := model.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: "$hashed$", Verified: false, Active: true}
	userStore.On("GetByEmail", mock.Anything, "a@b.com").Return(user, nil)
	hasher.On("Verify", "pass123", "$hashed$").Return(nil)

	_, err := a.Signin(ctx, "a@b.com", "pass123")
	require.ErrorIs(t, err, model.ErrAccountNotVerified)
}

func TestAuth_Signin_AccountInactive(t *testing.T) {
	ctx := context.Background()
	a, userStore, hasher, _, _ := newAuthFixture()

	user := model.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: "$hashed$", Verified: true, Active: false}
	userStore.On("GetByEmail", mock.Anything, "a@b.com").Return(user, nil)
	hasher.On("Verify", "pass123", "$hashed$").Return(nil)

	_, err := a.Signin(ctx, "a@b.com", "pass123")
	require.ErrorIs(t, err, model.ErrAccountInactive)
}

func TestAuth_VerifyEmail_Success(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, tokens, _ := newAuthFixture()

	tokens.On("Decode", "good-token").Return(model.Claims{Email: "a@b.com"}, nil)
	userStore.On("SetVerified", mock.Anything, "a@b.com").Return(model.User{Email: "a@b.com", Verified: true}, nil)

	require.NoError(t, a.VerifyEmail(ctx, "good-token"))
}

func TestAuth_VerifyEmail_Idempotent(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, tokens, _ := newAuthFixture()

	tokens.On("Decode", "good-token").Return(model.Claims{Email: "a@b.com"}, nil)
	userStore.On("SetVerified", mock.Anything, "a@b.com").Return(model.User{Email: "a@b.com", Verified: true}, nil)

	require.NoError(t, a.VerifyEmail(ctx, "good-token"))
	require.NoError(t, a.VerifyEmail(ctx, "good-token"))
	userStore.AssertNumberOfCalls(t, "SetVerified", 2)
}

func TestAuth_VerifyEmail_InvalidToken(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, tokens, _ := newAuthFixture()

	tokens.On("Decode", "bad-token").Return(model.Claims{}, model.ErrInvalidToken)

	err := a.VerifyEmail(ctx, "bad-token")
	require.ErrorIs(t, err, model.ErrInvalidToken)
	userStore.AssertNotCalled(t, "SetVerified", mock.Anything, mock.Anything)
}

func TestAuth_VerifyEmail_UnknownUser(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, tokens, _ := newAuthFixture()

	tokens.On("Decode", "orphan-token").Return(model.Claims{Email: "gone@b.com"}, nil)
	userStore.On("SetVerified", mock.Anything, "gone@b.com").Return(model.User{}, model.ErrNotFound)

	err := a.VerifyEmail(ctx, "orphan-token")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestAuth_ResolveToken_Success(t *testing.T) {
	ctx := context.Background()
	a, userStore, _, tokens, _ := newAuthFixture()

	// the live record wins over the claim snapshot
	tokens.On("Decode", "bearer").Return(model.Claims{Email: "a@b.com", Superuser: true}, nil)
	userStore.On("GetByEmail", mock.Anything, "a@b.com").Return(model.User{ID: uuid.New(), Email: "a@b.com", Superuser: false}, nil)

	user, err := a.ResolveToken(ctx, "bearer")
	require.NoError(t, err)
	assert.False(t, user.Superuser)
}

func TestAuth_ResolveToken_UniformUnauthorized(t *testing.T) {
	ctx := context.Background()

	t.Run("decode failure", func(t *testing.T) {
		a, _, _, tokens, _ := newAuthFixture()
		tokens.On("Decode", "garbage").Return(model.Claims{}, model.ErrInvalidToken)

		_, err := a.ResolveToken(ctx, "garbage")
		require.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("user gone", func(t *testing.T) {
		a, userStore, _, tokens, _ := newAuthFixture()
		tokens.On("Decode", "stale").Return(model.Claims{Email: "gone@b.com"}, nil)
		userStore.On("GetByEmail", mock.Anything, "gone@b.com").Return(model.User{}, model.ErrNotFound)

		_, err := a.ResolveToken(ctx, "stale")
		require.ErrorIs(t, err, model.ErrUnauthorized)
	})
}
