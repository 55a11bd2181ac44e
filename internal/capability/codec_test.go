package capability

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/roomkeeper/internal/models"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	key, err := DeriveSigningKey([]byte("test-master-secret"))
	require.NoError(t, err)
	return NewCodec(key)
}

func TestCodec_IssueDecode(t *testing.T) {
	codec := testCodec(t)

	token, err := codec.Issue("room-1", models.PermissionViewer, "share-1", "page-1", "user-1")
	require.NoError(t, err)

	// Wire-формат: две непустые base64url-части через точку
	parts := strings.Split(token, ".")
	require.Len(t, parts, 2)
	assert.NotEmpty(t, parts[0])
	assert.NotEmpty(t, parts[1])

	tok, err := codec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "room-1", tok.RoomID)
	assert.Equal(t, models.PermissionViewer, tok.Permission)
	assert.Equal(t, "share-1", tok.ShareID)
	assert.Equal(t, "page-1", tok.PageID)
	assert.Equal(t, "user-1", tok.UserID)
	assert.NotZero(t, tok.IssuedAt)
}

func TestCodec_Issue_RequiresShareID(t *testing.T) {
	codec := testCodec(t)

	_, err := codec.Issue("room-1", models.PermissionViewer, "", "", "")
	assert.ErrorIs(t, err, ErrMissingShareReference)
}

func TestCodec_Issue_RejectsUnknownPermission(t *testing.T) {
	codec := testCodec(t)

	_, err := codec.Issue("room-1", models.Permission("admin"), "share-1", "", "")
	assert.Error(t, err)
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec := testCodec(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no separator", "abcdef"},
		{"empty payload", ".signature"},
		{"empty signature", "payload."},
		{"three parts", "a.b.c"},
		{"payload not base64", "не-base64!.c2ln"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestCodec_Decode_TamperedPayload(t *testing.T) {
	codec := testCodec(t)

	token, err := codec.Issue("room-1", models.PermissionViewer, "share-1", "", "")
	require.NoError(t, err)

	// Подменяем payload, оставляя подпись: попытка поднять permission
	parts := strings.Split(token, ".")
	forged := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"r":"room-1","p":"e","s":"share-1","t":1}`))

	_, err = codec.Decode(forged + "." + parts[1])
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestCodec_Decode_WrongKey(t *testing.T) {
	codec := testCodec(t)

	otherKey, err := DeriveSigningKey([]byte("other-secret"))
	require.NoError(t, err)
	otherCodec := NewCodec(otherKey)

	token, err := otherCodec.Issue("room-1", models.PermissionViewer, "share-1", "", "")
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestCodec_Decode_MissingShareReference(t *testing.T) {
	codec := testCodec(t)

	// Корректно подписанный payload без share reference
	data := []byte(`{"r":"room-1","p":"v","s":"","t":1}`)
	token := base64.RawURLEncoding.EncodeToString(data) + "." + codec.sign(data)

	_, err := codec.Decode(token)
	assert.ErrorIs(t, err, ErrMissingShareReference)
}

func TestCodec_Decode_UnknownPermissionChar(t *testing.T) {
	codec := testCodec(t)

	data := []byte(`{"r":"room-1","p":"x","s":"share-1","t":1}`)
	token := base64.RawURLEncoding.EncodeToString(data) + "." + codec.sign(data)

	_, err := codec.Decode(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
