package service

import (
	"fmt"
	"time"

	"folio-be/internal/entities"
	"folio-be/internal/repository"
)

// stubUserRepo is a test-only in-memory implementation of
// repository.UserRepository.
type stubUserRepo struct {
	usersByEmail map[string]*entities.User
	usersByID    map[string]*entities.User
	nextID       int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		usersByEmail: make(map[string]*entities.User),
		usersByID:    make(map[string]*entities.User),
	}
}

func (s *stubUserRepo) Create(email, passwordHash, fullName string, balance float64) (*entities.User, error) {
	s.nextID++
	user := &entities.User{
		ID:           fmt.Sprintf("user-%d", s.nextID),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Balance:      balance,
		CreatedAt:    time.Now(),
	}
	s.usersByEmail[email] = user
	s.usersByID[user.ID] = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(email string) (*entities.User, error) {
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *stubUserRepo) FindByID(id string) (*entities.User, error) {
	user, ok := s.usersByID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *stubUserRepo) UpdateBalance(id string, balance float64) error {
	if user, ok := s.usersByID[id]; ok {
		user.Balance = balance
	}
	return nil
}

// stubPortfolioRepo is a test-only in-memory implementation of
// repository.PortfolioRepository. A non-nil failWith makes ReplaceForUser
// fail without touching stored state, mirroring a rolled-back transaction.
type stubPortfolioRepo struct {
	holdingsByUser map[string][]*entities.Holding
	failWith       error
	nextID         int
}

func newStubPortfolioRepo() *stubPortfolioRepo {
	return &stubPortfolioRepo{
		holdingsByUser: make(map[string][]*entities.Holding),
	}
}

func (s *stubPortfolioRepo) FindByUserID(userID string) ([]*entities.Holding, error) {
	return s.holdingsByUser[userID], nil
}

func (s *stubPortfolioRepo) ReplaceForUser(userID string, holdings []*entities.Holding) error {
	if s.failWith != nil {
		return s.failWith
	}
	stored := make([]*entities.Holding, len(holdings))
	for i, h := range holdings {
		s.nextID++
		copied := *h
		copied.ID = fmt.Sprintf("holding-%d", s.nextID)
		copied.UserID = userID
		copied.CreatedAt = time.Now()
		copied.UpdatedAt = time.Now()
		stored[i] = &copied
	}
	s.holdingsByUser[userID] = stored
	return nil
}
