package store

import "github.com/lorencia/portal/internal/logger"

// Storages bundles every repository behind its interface for injection into
// the service layer.
type Storages struct {
	UserRepository        UserRepository
	SessionRepository     SessionRepository
	CharacterRepository   CharacterRepository
	TransactionRepository TransactionRepository
	NewsRepository        NewsRepository
	AdminRepository       AdminRepository
	RankingRepository     RankingRepository
}

// NewStorages wires all repositories to the shared database handle.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:        NewUserRepository(db, logger),
		SessionRepository:     NewSessionRepository(db, logger),
		CharacterRepository:   NewCharacterRepository(db, logger),
		TransactionRepository: NewTransactionRepository(db, logger),
		NewsRepository:        NewNewsRepository(db, logger),
		AdminRepository:       NewAdminRepository(db, logger),
		RankingRepository:     NewRankingRepository(db, logger),
	}
}
