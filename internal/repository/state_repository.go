package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

// StateRepository provides key/value access to the app_state table.
// Each key holds one serialized document that is always replaced as a whole.
//
// When an encryption key is configured, values are stored as Fernet tokens.
// Values written before encryption was enabled are still readable.
type StateRepository struct {
	db   *sql.DB
	keys []*fernet.Key
}

// NewStateRepository creates a new StateRepository with the provided database connection.
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// WithEncryptionKey returns a copy of the repository that encrypts values with the
// given base64 Fernet key. An empty key returns the repository unchanged.
func (r *StateRepository) WithEncryptionKey(key string) (*StateRepository, error) {
	if key == "" {
		return r, nil
	}
	keys, err := fernet.DecodeKeys(key)
	if err != nil {
		return nil, fmt.Errorf("invalid state encryption key: %w", err)
	}
	return &StateRepository{db: r.db, keys: keys}, nil
}

// Encrypted reports whether values are written encrypted.
func (r *StateRepository) Encrypted() bool {
	return len(r.keys) > 0
}

// Get returns the value stored under key and when it was last written.
// Returns apperrors.ErrStateNotFound if the key has never been written.
func (r *StateRepository) Get(ctx context.Context, key string) (string, time.Time, error) {
	query := `
		SELECT value, updated_at
		FROM app_state
		WHERE key = ?
	`

	var raw string
	var updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, key).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, apperrors.ErrStateNotFound
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to query app_state: %w", err)
	}

	value, err := r.decode(raw)
	if err != nil {
		return "", time.Time{}, err
	}
	return value, updatedAt, nil
}

// Put stores value under key, replacing any previous value.
func (r *StateRepository) Put(ctx context.Context, key, value string) error {
	encoded, err := r.encode(value)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query, key, encoded, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write app_state %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *StateRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete app_state %q: %w", key, err)
	}
	return nil
}

func (r *StateRepository) encode(value string) (string, error) {
	if !r.Encrypted() {
		return value, nil
	}
	tok, err := fernet.EncryptAndSign([]byte(value), r.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt state: %w", err)
	}
	return string(tok), nil
}

// decode accepts plain JSON documents as-is so that enabling encryption
// does not orphan existing state.
func (r *StateRepository) decode(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return raw, nil
	}
	if !r.Encrypted() {
		return "", fmt.Errorf("%w: no key is configured", apperrors.ErrStateLocked)
	}
	// Negative TTL: stored tokens never expire.
	msg := fernet.VerifyAndDecrypt([]byte(trimmed), -1, r.keys)
	if msg == nil {
		return "", fmt.Errorf("%w: key does not match", apperrors.ErrStateLocked)
	}
	return string(msg), nil
}
