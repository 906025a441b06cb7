package auth

import (
	"context"
	"errors"

	"github.com/poketrainer/skillhub/internal/domain/user"
)

// Collaborators are injected as small interfaces so tests can fake them.

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, email, passwordHash, name string) (user.User, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type TokenIssuer interface {
	Generate(userID, email string) (string, error)
}

type Service struct {
	store  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewService(store UserStore, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

type SignUpInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type SignInInput struct {
	Email    string
	Password string
}

type SignInResult struct {
	Token string
	Name  string
	Email string
}

// SignUp registers a new account: Validate -> CheckUniqueness -> Hash ->
// Persist. Emails are used exactly as supplied, no trimming or lowercasing.
// Storage failures propagate unchanged; no retries.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) error {
	if in.Password != in.ConfirmPassword {
		return ErrPasswordsDoNotMatch
	}

	_, err := s.store.GetByEmail(ctx, in.Email)

	if err == nil {
		return ErrEmailTaken
	}

	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(in.Password)

	if err != nil {
		return err
	}

	_, err = s.store.Create(ctx, in.Email, hash, in.Name)

	if err != nil {
		// Lost the race against a concurrent signup with the same email.
		if errors.Is(err, user.ErrEmailExists) {
			return ErrEmailTaken
		}

		return err
	}

	return nil
}

// SignIn authenticates an account: Lookup -> VerifyPassword -> IssueToken.
// Unknown email and wrong password both come back as ErrInvalidCredentials so
// a caller cannot probe which emails are registered.
func (s *Service) SignIn(ctx context.Context, in SignInInput) (SignInResult, error) {
	u, err := s.store.GetByEmail(ctx, in.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return SignInResult{}, ErrInvalidCredentials
		}

		return SignInResult{}, err
	}

	err = s.hasher.Compare(u.PasswordHash, in.Password)

	if err != nil {
		return SignInResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Email)

	if err != nil {
		return SignInResult{}, err
	}

	return SignInResult{
		Token: token,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}
