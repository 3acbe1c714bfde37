package port

import (
	"context"

	"bloodgroup-bot/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий
type SessionRepository interface {
	// Get возвращает сессию по ID, создаёт новую если не найдена
	Get(ctx context.Context, userID, chatID int64) (*entity.Session, error)

	// Save сохраняет сессию
	Save(ctx context.Context, session *entity.Session) error

	// Reset заменяет сессию новой в начальном состоянии
	Reset(ctx context.Context, userID, chatID int64) (*entity.Session, error)
}
