package capability

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/roomkeeper/internal/models"
)

// payload минимальное wire-представление токена.
// Ключи однобуквенные, permission — один символ: токен ходит
// в query-параметрах, размер имеет значение.
type payload struct {
	RoomID     string `json:"r"`
	Permission string `json:"p"`
	ShareID    string `json:"s"`
	PageID     string `json:"g,omitempty"`
	UserID     string `json:"u,omitempty"`
	IssuedAt   int64  `json:"t"`
}

// Codec кодирует и проверяет подпись capability токенов.
// Wire-формат: base64url(payload) + "." + base64url(HMAC-SHA256(payload)).
// Поля expiry нет: токены бессрочны, ограничение по времени достигается
// только отзывом ShareConfig.
type Codec struct {
	key []byte
}

// NewCodec создает codec с заданным ключом подписи.
// Ключ получают через DeriveSigningKey.
func NewCodec(key []byte) *Codec {
	return &Codec{key: key}
}

// Issue создает подписанный токен.
// shareID обязателен: токен без ссылки на ShareConfig неотзываем,
// такие токены система не выпускает.
func (c *Codec) Issue(roomID string, permission models.Permission, shareID, pageID, userID string) (string, error) {
	if shareID == "" {
		return "", ErrMissingShareReference
	}
	if !permission.Valid() {
		return "", fmt.Errorf("unknown permission %q", permission)
	}

	p := payload{
		RoomID:     roomID,
		Permission: permission.Char(),
		ShareID:    shareID,
		PageID:     pageID,
		UserID:     userID,
		IssuedAt:   time.Now().Unix(),
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token payload: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data) + "." + c.sign(data), nil
}

// Decode проверяет подпись и разбирает payload. Состояние ShareConfig
// НЕ проверяется — это делает Service.Verify. Результат Decode сам по себе
// никогда не является решением об авторизации.
func (c *Codec) Decode(token string) (*Token, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, ErrMalformedToken
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrMalformedToken
	}

	// Подпись сверяется до разбора payload
	if !hmac.Equal([]byte(parts[1]), []byte(c.sign(data))) {
		return nil, ErrSignatureInvalid
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, ErrMalformedToken
	}

	if p.ShareID == "" {
		return nil, ErrMissingShareReference
	}

	perm, ok := models.PermissionFromChar(p.Permission)
	if !ok {
		return nil, ErrMalformedToken
	}

	return &Token{
		RoomID:     p.RoomID,
		Permission: perm,
		ShareID:    p.ShareID,
		PageID:     p.PageID,
		UserID:     p.UserID,
		IssuedAt:   p.IssuedAt,
	}, nil
}

// sign создает HMAC-SHA256 подпись над байтами payload
func (c *Codec) sign(data []byte) string {
	h := hmac.New(sha256.New, c.key)
	h.Write(data)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
