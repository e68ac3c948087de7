package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/otp-signup/internal/logger"
	"github.com/dtroode/otp-signup/internal/model"
)

// Committer turns a verified pending registration into a durable user row and an auth token.
type Committer struct {
	identity model.TokenCodec[model.ConfirmedIdentity]
	users    model.UserStore
	guard    model.ConsumptionGuard
	authTTL  time.Duration
	logger   *logger.Logger
}

func NewCommitter(
	identity model.TokenCodec[model.ConfirmedIdentity],
	users model.UserStore,
	guard model.ConsumptionGuard,
	authTTL time.Duration,
	logger *logger.Logger,
) *Committer {
	return &Committer{
		identity: identity,
		users:    users,
		guard:    guard,
		authTTL:  authTTL,
		logger:   logger,
	}
}

// Commit writes exactly one row for envelope. When the write fails the consumption
// marker is released so the same token may be presented again.
func (c *Committer) Commit(ctx context.Context, envelope model.Envelope[model.PendingRegistration]) (model.Confirmation, error) {
	acquired, err := c.guard.Acquire(ctx, envelope.ID, envelope.ExpiresAt)
	if err != nil {
		c.logger.Error("Committer: failed to acquire consumption marker",
			"token_id", envelope.ID,
			"error", err.Error())
		return model.Confirmation{}, model.NewDependencyError(model.DependencyGuard, err)
	}
	if !acquired {
		c.logger.Info("Committer: token already consumed",
			"token_id", envelope.ID)
		return model.Confirmation{}, model.ErrConsumedToken
	}

	userID := uuid.New()
	authToken, err := c.identity.Encode(envelope.Payload.Identity(userID), c.authTTL)
	if err != nil {
		c.logger.Error("Committer: failed to encode auth token",
			"token_id", envelope.ID,
			"error", err.Error())
		c.release(ctx, envelope.ID)
		return model.Confirmation{}, model.NewDependencyError(model.DependencyCodec, err)
	}

	user := model.NewUser(userID, envelope.Payload, authToken)
	if _, err := c.users.Create(ctx, user); err != nil {
		c.logger.Error("Committer: failed to store user",
			"email", user.Email,
			"token_id", envelope.ID,
			"error", err.Error())
		c.release(ctx, envelope.ID)
		return model.Confirmation{}, model.NewDependencyError(model.DependencyStorage, err)
	}

	return model.Confirmation{
		UserID:    userID,
		AuthToken: authToken,
	}, nil
}

func (c *Committer) release(ctx context.Context, tokenID string) {
	if err := c.guard.Release(context.WithoutCancel(ctx), tokenID); err != nil {
		c.logger.Error("Committer: failed to release consumption marker",
			"token_id", tokenID,
			"error", err.Error())
	}
}
