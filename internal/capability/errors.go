package capability

import "errors"

// Verification errors.
//
// Все ошибки verify терминальны для запроса: доступ запрещается,
// никакого fallback на permission по умолчанию. На HTTP-границе
// все они схлопываются в общий "access denied", чтобы не раскрывать,
// на каком шаге проверка упала.
var (
	// ErrMalformedToken indicates that token does not match the
	// "base64payload.signature" wire shape
	ErrMalformedToken = errors.New("malformed token")

	// ErrSignatureInvalid indicates that HMAC signature does not match payload
	ErrSignatureInvalid = errors.New("invalid token signature")

	// ErrMissingShareReference indicates that token payload carries no share id
	ErrMissingShareReference = errors.New("token has no share reference")

	// ErrShareNotFound indicates that referenced share config does not exist
	// (or was permanently deleted by the owner)
	ErrShareNotFound = errors.New("share config not found")

	// ErrShareRevoked indicates that referenced share config is inactive
	ErrShareRevoked = errors.New("share config revoked")
)
