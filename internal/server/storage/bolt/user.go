package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"stockroom/internal/models"
	"stockroom/internal/server/storage"
)

// userRecord is the on-disk form of a user. models.User hides the password
// hash from JSON, so the record type carries it explicitly.
type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserRecord(u *models.User) *userRecord {
	return &userRecord{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (r *userRecord) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// CreateUser creates a new user.
// The email uniqueness check and the insert run inside one Update
// transaction; bbolt serializes writers, so concurrent duplicate signups
// cannot both pass the check.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		emails := tx.Bucket(bucketUserEmails)
		users := tx.Bucket(bucketUsers)
		if emails == nil || users == nil {
			return fmt.Errorf("user buckets not found")
		}

		if emails.Get([]byte(user.Email)) != nil {
			return storage.ErrUserAlreadyExists
		}

		data, err := json.Marshal(toUserRecord(user))
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}

		if err := users.Put([]byte(user.ID), data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		if err := emails.Put([]byte(user.Email), []byte(user.ID)); err != nil {
			return fmt.Errorf("failed to save email index: %w", err)
		}

		return nil
	})
}

// GetUserByEmail retrieves user by email via the index bucket
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		emails := tx.Bucket(bucketUserEmails)
		users := tx.Bucket(bucketUsers)
		if emails == nil || users == nil {
			return fmt.Errorf("user buckets not found")
		}

		userID := emails.Get([]byte(email))
		if userID == nil {
			return storage.ErrUserNotFound
		}

		data := users.Get(userID)
		if data == nil {
			return storage.ErrUserNotFound
		}

		record := &userRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		user = record.toModel()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		users := tx.Bucket(bucketUsers)
		if users == nil {
			return fmt.Errorf("users bucket not found")
		}

		data := users.Get([]byte(userID))
		if data == nil {
			return storage.ErrUserNotFound
		}

		record := &userRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		user = record.toModel()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
