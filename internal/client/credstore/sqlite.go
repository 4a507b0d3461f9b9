package credstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/legacyvault/internal/common"
	"github.com/dmitrijs2005/legacyvault/internal/cryptox"
	"github.com/dmitrijs2005/legacyvault/internal/dbx"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

const saltStorageKey = "device_salt"

// SQLiteStore keeps credentials in the metadata table of the device database.
// When a device secret is configured the token is sealed with a key derived
// from it; the per-device salt lives next to it and survives ClearAuth.
type SQLiteStore struct {
	db     *sql.DB
	secret []byte
	logger logging.Logger
}

func NewSQLiteStore(db *sql.DB, deviceSecret string, logger logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, secret: []byte(deviceSecret), logger: logger.With("component", "credstore")}
}

func (s *SQLiteStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// key returns the sealing key, creating the device salt on first use.
// A nil key means tokens are stored as-is.
func (s *SQLiteStore) key(ctx context.Context, repo metadata.Repository) ([]byte, error) {
	if len(s.secret) == 0 {
		return nil, nil
	}
	salt, err := repo.Get(ctx, saltStorageKey)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		salt = common.GenerateRandByteArray(16)
		if err := repo.Set(ctx, saltStorageKey, salt); err != nil {
			return nil, err
		}
	}
	return cryptox.DeriveKey(s.secret, salt), nil
}

func (s *SQLiteStore) writeToken(ctx context.Context, repo metadata.Repository, token string) error {
	key, err := s.key(ctx, repo)
	if err != nil {
		return err
	}
	value := []byte(token)
	if key != nil {
		if value, err = cryptox.Seal(value, key); err != nil {
			return err
		}
	}
	return repo.Set(ctx, common.TokenStorageKey, value)
}

func writeUser(ctx context.Context, repo metadata.Repository, user *models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return repo.Set(ctx, common.UserDataStorageKey, b)
}

func (s *SQLiteStore) SetToken(ctx context.Context, token string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.writeToken(ctx, s.repo(tx), token)
	})
	if err != nil {
		s.logger.Error(ctx, "failed to store token", "error", err)
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetToken(ctx context.Context) string {
	repo := s.repo(s.db)

	value, err := repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.logger.Error(ctx, "failed to read token", "error", err)
		return ""
	}
	if value == nil {
		return ""
	}

	key, err := s.key(ctx, repo)
	if err != nil {
		s.logger.Error(ctx, "failed to derive token key", "error", err)
		return ""
	}
	if key != nil {
		if value, err = cryptox.Open(value, key); err != nil {
			s.logger.Warn(ctx, "stored token cannot be opened, treating as absent", "error", err)
			return ""
		}
	}
	return string(value)
}

func (s *SQLiteStore) SetUserData(ctx context.Context, user *models.User) error {
	if err := writeUser(ctx, s.repo(s.db), user); err != nil {
		s.logger.Error(ctx, "failed to store user data", "error", err)
		return fmt.Errorf("store user data: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetUserData(ctx context.Context) *models.User {
	value, err := s.repo(s.db).Get(ctx, common.UserDataStorageKey)
	if err != nil {
		s.logger.Error(ctx, "failed to read user data", "error", err)
		return nil
	}
	if value == nil {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(value, &u); err != nil {
		s.logger.Warn(ctx, "stored user data is corrupt, treating as absent", "error", err)
		return nil
	}
	return &u
}

func (s *SQLiteStore) SetSession(ctx context.Context, user *models.User, token string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := s.writeToken(ctx, repo, token); err != nil {
			return err
		}
		return writeUser(ctx, repo, user)
	})
	if err != nil {
		s.logger.Error(ctx, "failed to store session", "error", err)
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ClearAuth(ctx context.Context) error {
	if err := s.repo(s.db).DeleteKeys(ctx, common.TokenStorageKey, common.UserDataStorageKey); err != nil {
		s.logger.Error(ctx, "failed to clear auth data", "error", err)
		return fmt.Errorf("clear auth: %w", err)
	}
	return nil
}

func (s *SQLiteStore) IsAuthenticated(ctx context.Context) bool {
	return s.GetToken(ctx) != ""
}
