package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poketrainer/skillhub/internal/auth"
	"github.com/poketrainer/skillhub/internal/domain/user"
	"github.com/poketrainer/skillhub/internal/security"
)

// fake store in the spirit of the handler test fakes: behavior per test via
// fn fields, call counters for the "never touched" assertions.

type fakeStore struct {
	getFn    func(ctx context.Context, email string) (user.User, error)
	createFn func(ctx context.Context, email, passwordHash, name string) (user.User, error)

	getCalls    int
	createCalls int

	lastCreatedHash string
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	f.getCalls++
	if f.getFn != nil {
		return f.getFn(ctx, email)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeStore) Create(ctx context.Context, email, passwordHash, name string) (user.User, error) {
	f.createCalls++
	f.lastCreatedHash = passwordHash
	if f.createFn != nil {
		return f.createFn(ctx, email, passwordHash, name)
	}
	return user.User{ID: "new-id", Email: email, PasswordHash: passwordHash, Name: name}, nil
}

type countingHasher struct {
	inner     auth.PasswordHasher
	hashCalls int
}

func (c *countingHasher) Hash(plain string) (string, error) {
	c.hashCalls++
	return c.inner.Hash(plain)
}

func (c *countingHasher) Compare(hash, plain string) error {
	return c.inner.Compare(hash, plain)
}

func newService(store *fakeStore, hasher auth.PasswordHasher) *auth.Service {
	return auth.NewService(store, hasher, auth.NewManager("test-secret", auth.TokenTTL))
}

var baseInput = auth.SignUpInput{
	Name:            "Rafael",
	Email:           "rafael@example.com",
	Password:        "123456",
	ConfirmPassword: "123456",
}

func TestSignUpSuccessStoresRealHash(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store, security.Bcrypt{})

	err := svc.SignUp(context.Background(), baseInput)
	require.NoError(t, err)

	require.Equal(t, 1, store.createCalls)
	require.NotEqual(t, baseInput.Password, store.lastCreatedHash)
	require.NoError(t, security.CheckPassword(store.lastCreatedHash, baseInput.Password))
}

func TestSignUpPasswordMismatchNeverTouchesStore(t *testing.T) {
	store := &fakeStore{}
	hasher := &countingHasher{inner: security.Bcrypt{}}
	svc := newService(store, hasher)

	in := baseInput
	in.ConfirmPassword = "different"

	err := svc.SignUp(context.Background(), in)
	require.ErrorIs(t, err, auth.ErrPasswordsDoNotMatch)

	require.Zero(t, store.getCalls)
	require.Zero(t, store.createCalls)
	require.Zero(t, hasher.hashCalls)
}

func TestSignUpExistingEmailSkipsHashAndWrite(t *testing.T) {
	store := &fakeStore{
		getFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{ID: "u1", Email: email, PasswordHash: "hash"}, nil
		},
	}
	hasher := &countingHasher{inner: security.Bcrypt{}}
	svc := newService(store, hasher)

	err := svc.SignUp(context.Background(), baseInput)
	require.ErrorIs(t, err, auth.ErrEmailTaken)

	require.Zero(t, hasher.hashCalls)
	require.Zero(t, store.createCalls)
}

func TestSignUpConcurrentDuplicateSurfacesAsTaken(t *testing.T) {
	// uniqueness check passes but the insert loses the race
	store := &fakeStore{
		createFn: func(ctx context.Context, email, passwordHash, name string) (user.User, error) {
			return user.User{}, user.ErrEmailExists
		},
	}
	svc := newService(store, security.Bcrypt{})

	err := svc.SignUp(context.Background(), baseInput)
	require.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestSignUpStorageErrorPropagatesUnchanged(t *testing.T) {
	dbErr := errors.New("db down")

	store := &fakeStore{
		getFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{}, dbErr
		},
	}
	svc := newService(store, security.Bcrypt{})

	err := svc.SignUp(context.Background(), baseInput)
	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, auth.ErrEmailTaken)
}

func TestSignInUnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	hash, err := security.HashPassword("123456")
	require.NoError(t, err)

	stored := user.User{ID: "u1", Name: "Rafael", Email: "rafael@example.com", PasswordHash: hash}

	store := &fakeStore{
		getFn: func(ctx context.Context, email string) (user.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return user.User{}, user.ErrNotFound
		},
	}
	svc := newService(store, security.Bcrypt{})

	_, errMissing := svc.SignIn(context.Background(), auth.SignInInput{Email: "no@user.com", Password: "123456"})
	_, errWrongPw := svc.SignIn(context.Background(), auth.SignInInput{Email: stored.Email, Password: "wrong"})

	require.ErrorIs(t, errMissing, auth.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, auth.ErrInvalidCredentials)
	require.Equal(t, errMissing.Error(), errWrongPw.Error())
}

func TestSignInSuccessIssuesVerifiableToken(t *testing.T) {
	hash, err := security.HashPassword("123456")
	require.NoError(t, err)

	stored := user.User{ID: "u1", Name: "Rafael", Email: "rafael@example.com", PasswordHash: hash}

	store := &fakeStore{
		getFn: func(ctx context.Context, email string) (user.User, error) {
			return stored, nil
		},
	}

	manager := auth.NewManager("test-secret", auth.TokenTTL)
	svc := auth.NewService(store, security.Bcrypt{}, manager)

	result, err := svc.SignIn(context.Background(), auth.SignInInput{Email: stored.Email, Password: "123456"})
	require.NoError(t, err)
	require.Equal(t, stored.Name, result.Name)
	require.Equal(t, stored.Email, result.Email)

	// round-trip: the issued token verifies and carries the same identity
	claims, err := manager.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, stored.ID, claims.UserID())
	require.Equal(t, stored.Email, claims.Email)
}

func TestSignInStorageErrorPropagatesUnchanged(t *testing.T) {
	dbErr := errors.New("db down")

	store := &fakeStore{
		getFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{}, dbErr
		},
	}
	svc := newService(store, security.Bcrypt{})

	_, err := svc.SignIn(context.Background(), auth.SignInInput{Email: "a@b.c", Password: "x"})
	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSignInIssuerErrorPropagatesUnchanged(t *testing.T) {
	hash, err := security.HashPassword("123456")
	require.NoError(t, err)

	store := &fakeStore{
		getFn: func(ctx context.Context, email string) (user.User, error) {
			return user.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}

	issueErr := errors.New("jwt fail")
	svc := auth.NewService(store, security.Bcrypt{}, failingIssuer{err: issueErr})

	_, err = svc.SignIn(context.Background(), auth.SignInInput{Email: "a@b.c", Password: "123456"})
	require.ErrorIs(t, err, issueErr)
	require.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

type failingIssuer struct {
	err error
}

func (f failingIssuer) Generate(userID, email string) (string, error) {
	return "", f.err
}
