package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store/repository"
)

var (
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotLoggedIn is returned when a session token is unknown or expired.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrPlayerNotFound is returned when a prediction names an unknown player.
	ErrPlayerNotFound = errors.New("player not found")
)

// UserService handles registration, login sessions and predictions. Sessions
// are process-local: one logged-in user per token, held in memory.
type UserService struct {
	db      *store.Database
	users   *repository.UserRepository
	players *repository.PlayerRepository

	mu       sync.Mutex
	sessions map[string]int64 // token -> user_id
}

// NewUserService creates a new user service.
func NewUserService(db *store.Database) *UserService {
	return &UserService{
		db:       db,
		users:    repository.NewUserRepository(),
		players:  repository.NewPlayerRepository(),
		sessions: make(map[string]int64),
	}
}

// Register creates an account and its profile in one transaction. The
// display name defaults to the local part of the email.
func (s *UserService) Register(ctx context.Context, email, password string) (int64, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return 0, errors.New("email and password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	displayName, _, _ := strings.Cut(email, "@")

	var userID int64
	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		id, err := s.users.CreateAccount(ctx, tx, email, string(hash))
		if err != nil {
			return err
		}
		if err := s.users.CreateProfile(ctx, tx, id, displayName); err != nil {
			return err
		}
		userID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}

// Login verifies credentials and returns a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.users.GetAccountByEmail(ctx, s.db.DB(), strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = account.UserID
	s.mu.Unlock()

	return token, nil
}

// Logout drops a session token.
func (s *UserService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CurrentUser returns the user id behind a session token.
func (s *UserService) CurrentUser(token string) (int64, error) {
	s.mu.Lock()
	userID, ok := s.sessions[token]
	s.mu.Unlock()

	if !ok {
		return 0, ErrNotLoggedIn
	}
	return userID, nil
}

// SubmitPrediction stores a logged-in user's prediction about a player,
// located by (partial) name.
func (s *UserService) SubmitPrediction(ctx context.Context, token, playerName, predType, predValue string) (*store.UserPrediction, error) {
	userID, err := s.CurrentUser(token)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(playerName) == "" || strings.TrimSpace(predType) == "" {
		return nil, errors.New("player name and prediction type cannot be empty")
	}

	playerID, found, err := s.players.FindIDByName(ctx, s.db.DB(), playerName)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrPlayerNotFound
	}

	prediction := &store.UserPrediction{
		UserID:         userID,
		PlayerID:       playerID,
		PredictionType: strings.TrimSpace(predType),
	}
	if predValue != "" {
		prediction.PredictionValue = sql.NullString{String: predValue, Valid: true}
	}

	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := s.users.InsertPrediction(ctx, tx, prediction)
		return err
	})
	if err != nil {
		return nil, err
	}

	return prediction, nil
}

// Predictions returns the logged-in user's predictions.
func (s *UserService) Predictions(ctx context.Context, token string) ([]*store.UserPrediction, error) {
	userID, err := s.CurrentUser(token)
	if err != nil {
		return nil, err
	}

	preds, err := s.users.PredictionsByUser(ctx, s.db.DB(), userID)
	if err != nil {
		return nil, err
	}
	if preds == nil {
		preds = []*store.UserPrediction{}
	}
	return preds, nil
}
