package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

// ErrEmailTaken is returned when registering an email that already exists.
var ErrEmailTaken = errors.New("email is already registered")

// UserRepository handles user accounts, profiles and predictions.
type UserRepository struct{}

// NewUserRepository creates a new user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// CreateAccount inserts a user account and returns its id. A duplicate email
// maps to ErrEmailTaken.
func (r *UserRepository) CreateAccount(ctx context.Context, q store.Querier, email, passwordHash string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO core_user_account (email, password_hash)
		VALUES (?, ?)
		RETURNING user_id
	`, email, passwordHash).Scan(&id)
	if err != nil {
		// The driver surfaces constraint violations as plain errors.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("creating account: %w", err)
	}
	return id, nil
}

// CreateProfile inserts the one-to-one profile row for an account.
func (r *UserRepository) CreateProfile(ctx context.Context, q store.Querier, userID int64, displayName string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO core_user_profile (user_id, display_name)
		VALUES (?, ?)
	`, userID, displayName)
	if err != nil {
		return fmt.Errorf("creating profile for user %d: %w", userID, err)
	}
	return nil
}

// GetAccountByEmail finds an account by email. Returns (nil, nil) when the
// email is unknown.
func (r *UserRepository) GetAccountByEmail(ctx context.Context, q store.Querier, email string) (*store.UserAccount, error) {
	account := &store.UserAccount{}
	err := q.QueryRowContext(ctx, `
		SELECT user_id, email, password_hash, created_at
		FROM core_user_account
		WHERE email = ?
	`, email).Scan(&account.UserID, &account.Email, &account.PasswordHash, &account.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying account: %w", err)
	}
	return account, nil
}

// InsertPrediction stores a user's prediction about a player and returns its id.
func (r *UserRepository) InsertPrediction(ctx context.Context, q store.Querier, p *store.UserPrediction) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO mart_user_predictions (user_id, player_id, prediction_type, prediction_value, prediction_date)
		VALUES (?, ?, ?, ?, date('now'))
		RETURNING prediction_id
	`, p.UserID, p.PlayerID, p.PredictionType, p.PredictionValue).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting prediction: %w", err)
	}

	p.PredictionID = id
	return id, nil
}

// PredictionsByUser returns a user's predictions, newest first.
func (r *UserRepository) PredictionsByUser(ctx context.Context, q store.Querier, userID int64) ([]*store.UserPrediction, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT prediction_id, user_id, player_id, prediction_type, prediction_value, prediction_date
		FROM mart_user_predictions
		WHERE user_id = ?
		ORDER BY prediction_id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying predictions: %w", err)
	}
	defer rows.Close()

	var preds []*store.UserPrediction
	for rows.Next() {
		p := &store.UserPrediction{}
		if err := rows.Scan(&p.PredictionID, &p.UserID, &p.PlayerID, &p.PredictionType, &p.PredictionValue, &p.PredictionDate); err != nil {
			return nil, fmt.Errorf("scanning prediction: %w", err)
		}
		preds = append(preds, p)
	}

	return preds, rows.Err()
}
