package capability

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/iudanet/roomkeeper/internal/models"
)

// Параметры деривации ключа подписи.
const (
	signingKeySize = 32 // 256 бит для HMAC-SHA256

	// keyInfo доменная метка деривации: один master secret может
	// обслуживать несколько подсистем, ключи не должны совпадать.
	keyInfo = "roomkeeper/capability-token/v1"
)

// DeriveSigningKey деривирует ключ подписи capability токенов из master
// secret через HKDF-SHA256. Ключ детерминирован: один и тот же secret
// всегда дает один и тот же ключ, поэтому токены переживают рестарт сервера.
func DeriveSigningKey(masterSecret []byte) ([]byte, error) {
	if len(masterSecret) == 0 {
		return nil, fmt.Errorf("master secret is empty")
	}

	r := hkdf.New(sha256.New, masterSecret, nil, []byte(keyInfo))

	key := make([]byte, signingKeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}

	return key, nil
}

// Token представляет разобранный capability токен.
// Permission после Service.Verify — живое значение из ShareConfig;
// после Codec.Decode — только заявленное в payload (advisory).
type Token struct {
	RoomID     string
	Permission models.Permission
	ShareID    string
	PageID     string
	UserID     string
	IssuedAt   int64 // unix seconds
}
