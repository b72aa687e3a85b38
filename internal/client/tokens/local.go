package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/alphastock/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/alphastock/internal/common"
	"github.com/dmitrijs2005/alphastock/internal/cryptox"
	"github.com/dmitrijs2005/alphastock/internal/dbx"
)

const saltKey = "alpha_store_salt"

// ErrUnreadable is returned when a sealed token cannot be opened, usually
// because the passphrase changed since it was written.
var ErrUnreadable = errors.New("stored token unreadable")

// LocalStore keeps the pair in the local SQLite database. With a passphrase
// the values are sealed at rest (see package cryptox).
type LocalStore struct {
	db         *sql.DB
	passphrase []byte

	mu  sync.Mutex
	key []byte
}

type LocalStoreOption func(*LocalStore)

// WithPassphrase enables at-rest sealing. An empty passphrase is ignored.
func WithPassphrase(passphrase string) LocalStoreOption {
	return func(s *LocalStore) {
		if passphrase != "" {
			s.passphrase = []byte(passphrase)
		}
	}
}

func NewLocalStore(db *sql.DB, opts ...LocalStoreOption) *LocalStore {
	s := &LocalStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LocalStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, AccessTokenKey)
}

func (s *LocalStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, RefreshTokenKey)
}

// SetTokens writes both tokens in one transaction.
func (s *LocalStore) SetTokens(ctx context.Context, access, refresh string) error {
	key, err := s.sealKey(ctx)
	if err != nil {
		return err
	}

	accessValue, err := seal(key, access)
	if err != nil {
		return err
	}
	refreshValue, err := seal(key, refresh)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstorage.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, AccessTokenKey, accessValue); err != nil {
			return err
		}
		return repo.Set(ctx, RefreshTokenKey, refreshValue)
	})
}

// Clear removes both tokens. The sealing salt is kept.
func (s *LocalStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localstorage.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, AccessTokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, RefreshTokenKey)
	})
}

func (s *LocalStore) get(ctx context.Context, name string) (string, error) {
	value, err := localstorage.NewSQLiteRepository(s.db).Get(ctx, name)
	if err != nil {
		return "", err
	}
	if len(value) == 0 {
		return "", nil
	}

	key, err := s.sealKey(ctx)
	if err != nil {
		return "", err
	}
	if key == nil {
		return string(value), nil
	}

	plain, err := cryptox.Open(key, value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, name, err)
	}
	return string(plain), nil
}

// sealKey returns nil when sealing is disabled. The salt is created on
// first use and stored next to the tokens.
func (s *LocalStore) sealKey(ctx context.Context) ([]byte, error) {
	if s.passphrase == nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return s.key, nil
	}

	repo := localstorage.NewSQLiteRepository(s.db)
	salt, err := repo.Get(ctx, saltKey)
	if err != nil {
		return nil, err
	}
	if len(salt) == 0 {
		salt = common.GenerateRandByteArray(cryptox.SaltSize)
		if err := repo.Set(ctx, saltKey, salt); err != nil {
			return nil, err
		}
	}

	s.key = cryptox.DeriveKey(s.passphrase, salt)
	return s.key, nil
}

func seal(key []byte, value string) ([]byte, error) {
	if value == "" || key == nil {
		return []byte(value), nil
	}
	return cryptox.Seal(key, []byte(value))
}
