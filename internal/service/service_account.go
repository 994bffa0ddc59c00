package service

import (
	"context"
	"fmt"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/models"
)

// accountService serves the signed-in player's dashboard reads.
type accountService struct {
	userRepository        store.UserRepository
	characterRepository   store.CharacterRepository
	transactionRepository store.TransactionRepository

	logger *logger.Logger
}

func NewAccountService(users store.UserRepository, characters store.CharacterRepository, transactions store.TransactionRepository, logger *logger.Logger) AccountService {
	return &accountService{
		userRepository:        users,
		characterRepository:   characters,
		transactionRepository: transactions,
		logger:                logger,
	}
}

func (a *accountService) Profile(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}
	return user, nil
}

func (a *accountService) Characters(ctx context.Context, userID int64) ([]models.Character, error) {
	characters, err := a.characterRepository.FindCharactersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("character lookup failed: %w", err)
	}
	return characters, nil
}

func (a *accountService) Transactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	transactions, err := a.transactionRepository.FindTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("transaction lookup failed: %w", err)
	}
	return transactions, nil
}
