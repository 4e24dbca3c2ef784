package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"linkveo/internal/lib/jwt"
	sl "linkveo/internal/lib/logger"
	"linkveo/internal/models"
	"linkveo/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already registered")
)

type Identity struct {
	log         *slog.Logger
	usrSaver    UserSaver
	usrProvider UserProvider
	tokenSecret string
	tokenTTL    time.Duration
}

type UserSaver interface {
	SaveUser(ctx context.Context, email string, username string, passHash []byte) (models.User, error)
}

type UserProvider interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
}

func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	tokenSecret string,
	tokenTTL time.Duration,
) *Identity {
	return &Identity{
		log:         log,
		usrSaver:    userSaver,
		usrProvider: userProvider,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
	}
}

// Register hashes the password and persists a new user. Email and username
// collisions are checked independently so that a taken username is reported
// even when the email collides too.
func (i *Identity) Register(
	ctx context.Context,
	email string,
	username string,
	pass string,
) (models.User, error) {
	const op = "identity.Register"

	log := i.log.With(slog.String("op", op))

	log.Info("registering new user")

	if _, err := i.usrProvider.UserByUsername(ctx, username); err == nil {
		log.Warn("username already taken")

		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		log.Error("failed to check username", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := i.usrSaver.SaveUser(ctx, email, username, passHash)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEmailTaken):
			log.Warn("email already taken")

			return models.User{}, ErrEmailTaken
		case errors.Is(err, storage.ErrUsernameTaken):
			log.Warn("username already taken")

			return models.User{}, ErrUsernameTaken
		}

		log.Error("failed to save user", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Int64("uid", user.ID))

	return user, nil
}

// Login resolves the identifier as an email first and falls back to a
// username lookup. A missing user and a wrong password are indistinguishable
// to the caller.
func (i *Identity) Login(
	ctx context.Context,
	identifier string,
	password string,
) (string, error) {
	const op = "identity.Login"

	log := i.log.With(slog.String("op", op))

	user, err := i.usrProvider.UserByEmail(ctx, identifier)
	if errors.Is(err, storage.ErrUserNotFound) {
		user, err = i.usrProvider.UserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")

			return "", ErrInvalidCredentials
		}

		log.Error("failed to get user", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", ErrInvalidCredentials
	}

	accessToken, err := jwt.NewToken(user.ID, i.tokenSecret, i.tokenTTL)
	if err != nil {
		log.Error("failed to generate access token", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully", slog.Int64("uid", user.ID))

	return accessToken, nil
}

// UserByID resolves a verified token subject to its stored profile. A row
// that no longer exists is reported as an authentication failure, not as a
// lookup miss.
func (i *Identity) UserByID(ctx context.Context, id int64) (models.User, error) {
	const op = "identity.UserByID"

	user, err := i.usrProvider.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}

		i.log.With(slog.String("op", op)).Error("failed to load user", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
