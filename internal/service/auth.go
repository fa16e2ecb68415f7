package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
)

// Auth implements signup, signin, email verification and bearer-token
// resolution. State gating (verified, active) is enforced at signin,
// always as typed errors, in the canonical order: existence, password,
// verified, active.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	tokens    model.TokenManager
	mail      model.MailDispatcher
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokens model.TokenManager,
	mail model.MailDispatcher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokens,
		mail:      mail,
		logger:    logger,
	}
}

// Signup creates an unverified account and queues the verification mail.
// The mail task is fire-and-forget: its failure never fails the signup.
func (a *Auth) Signup(ctx context.Context, email, username, password string) (model.Profile, error) {
	a.logger.Debug("Auth service: starting signup",
		"email", email)

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: email already taken",
			"email", email)
		return model.Profile{}, model.ErrEmailTaken
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Verified:     false,
		Active:       true,
		Superuser:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// the unique index backstops the lookup above under races
		if errors.Is(err, model.ErrEmailTaken) {
			return model.Profile{}, model.ErrEmailTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to create user: %w", err)
	}

	// the verification token carries only the email claim; role is
	// meaningless before the account is verified
	verificationToken, err := a.tokens.Issue(model.Claims{Email: user.Email})
	if err != nil {
		a.logger.Error("Auth service: failed to issue verification token",
			"email", email,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to issue verification token: %w", err)
	}

	a.mail.DispatchVerification(user.Email, verificationToken)

	a.logger.Info("Auth service: signup completed",
		"email", email,
		"user_id", user.ID)

	return user.Profile(), nil
}

// Signin validates credentials and returns a signed bearer token. The
// failure ordering is fixed: unknown email, wrong password, unverified
// account, inactive account.
func (a *Auth) Signin(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("Auth service: starting signin",
		"email", email)

	user, err := a.verifyUser(ctx, email, password)
	if err != nil {
		a.logger.Info("Auth service: signin rejected",
			"email", email,
			"error", err.Error())
		return "", err
	}

	token, err := a.tokens.Issue(model.Claims{Email: user.Email, Superuser: user.Superuser})
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: signin completed",
		"email", email)

	return token, nil
}

func (a *Auth) verifyUser(ctx context.Context, email, password string) (model.User, error) {
	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.hasher.Verify(password, user.PasswordHash); err != nil {
		return model.User{}, model.ErrIncorrectPassword
	}

	if !user.Verified {
		return model.User{}, model.ErrAccountNotVerified
	}

	if !user.Active {
		return model.User{}, model.ErrAccountInactive
	}

	return user, nil
}

// VerifyEmail redeems a verification token. Redeeming the same token
// again re-sets the already-terminal verified state and succeeds.
func (a *Auth) VerifyEmail(ctx context.Context, tokenString string) error {
	claims, err := a.tokens.Decode(tokenString)
	if err != nil {
		a.logger.Info("Auth service: verification token rejected",
			"error", err.Error())
		return model.ErrInvalidToken
	}

	if _, err := a.userStore.SetVerified(ctx, claims.Email); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		a.logger.Error("Auth service: failed to set user verified",
			"email", claims.Email,
			"error", err.Error())
		return fmt.Errorf("failed to set user verified: %w", err)
	}

	a.logger.Info("Auth service: email verified",
		"email", claims.Email)

	return nil
}

// ResolveToken turns a bearer token into the live user record. The token
// is trusted only for its email claim; flags are re-read from the store
// on every call. Every failure mode collapses into ErrUnauthorized so the
// response does not leak which sub-check failed.
func (a *Auth) ResolveToken(ctx context.Context, tokenString string) (model.User, error) {
	claims, err := a.tokens.Decode(tokenString)
	if err != nil {
		return model.User{}, model.ErrUnauthorized
	}

	user, err := a.userStore.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrUnauthorized
		}
		a.logger.Error("Auth service: failed to resolve user",
			"email", claims.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	return user, nil
}
