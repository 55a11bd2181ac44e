package capability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/roomkeeper/internal/models"
)

//go:generate go tool moq -out sharestore_mock.go . ShareStore

// ShareStore определяет доступ к живому состоянию share-конфигураций.
// Реализации возвращают ошибку, оборачивающую ErrShareNotFound,
// если конфигурация отсутствует или была удалена владельцем.
type ShareStore interface {
	// GetShare возвращает share-конфигурацию по id
	GetShare(ctx context.Context, shareID string) (*models.ShareConfig, error)
}

// Service проверяет capability токены против живого состояния
// Share Configuration Registry. Подпись гарантирует целостность payload,
// но решение о доступе всегда принимается по текущему ShareConfig:
// так владелец отзывает или меняет уровень уже розданных ссылок,
// не перевыпуская токены.
type Service struct {
	codec  *Codec
	shares ShareStore
	logger *slog.Logger
}

// NewService creates a new capability verification service
func NewService(codec *Codec, shares ShareStore, logger *slog.Logger) *Service {
	return &Service{
		codec:  codec,
		shares: shares,
		logger: logger,
	}
}

// Issue создает подписанный токен для существующей share-конфигурации.
// Permission в payload — только заявка; действующее значение при проверке
// всегда берется из живого ShareConfig.
func (s *Service) Issue(roomID string, permission models.Permission, shareID, pageID, userID string) (string, error) {
	token, err := s.codec.Issue(roomID, permission, shareID, pageID, userID)
	if err != nil {
		return "", fmt.Errorf("failed to issue capability token: %w", err)
	}

	s.logger.Info("Capability token issued",
		"room_id", roomID,
		"share_id", shareID,
		"permission", permission)

	return token, nil
}

// Verify выполняет полную проверку токена:
//  1. подпись и форма payload (Codec.Decode)
//  2. наличие share reference
//  3. живое состояние ShareConfig (наличие + isActive)
//  4. подмена permission на действующее значение из ShareConfig
func (s *Service) Verify(ctx context.Context, token string) (*Token, error) {
	tok, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	share, err := s.shares.GetShare(ctx, tok.ShareID)
	if err != nil {
		if errors.Is(err, ErrShareNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to fetch share config: %w", err)
	}

	if !share.IsActive {
		return nil, ErrShareRevoked
	}

	// Действующий permission — из живой конфигурации, не из payload
	tok.Permission = share.Permission
	if share.PageID != "" {
		tok.PageID = share.PageID
	}

	return tok, nil
}

// VerifySignatureOnly проверяет только подпись и форму токена, без похода
// в Share Configuration Registry. Допустимо исключительно для грубой
// предфильтрации (например, роутинга) — это НЕ решение об авторизации.
func (s *Service) VerifySignatureOnly(token string) (*Token, error) {
	return s.codec.Decode(token)
}
