package token_test

import (
	"testing"
	"time"

	"app/internal/token"

	"github.com/stretchr/testify/assert"
)

func TestCodec_IssueVerify_Roundtrip(t *testing.T) {
	c := token.NewCodec("test_secret", time.Hour)
	issuedAt := time.Now()

	raw, err := c.Issue(42, issuedAt)
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	claims, err := c.Verify(raw)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
}

func TestCodec_Verify_Expired(t *testing.T) {
	c := token.NewCodec("test_secret", time.Hour)

	//期限切れになるよう過去のissuedAtで発行
	raw, err := c.Issue(42, time.Now().Add(-2*time.Hour))
	assert.NoError(t, err)

	_, err = c.Verify(raw)
	assert.ErrorIs(t, err, token.ErrExpired)
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	issuer := token.NewCodec("secret_a", time.Hour)
	verifier := token.NewCodec("secret_b", time.Hour)

	raw, err := issuer.Issue(42, time.Now())
	assert.NoError(t, err)

	_, err = verifier.Verify(raw)
	assert.ErrorIs(t, err, token.ErrSignatureInvalid)
}

func TestCodec_Verify_Malformed(t *testing.T) {
	c := token.NewCodec("test_secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := c.Verify(raw)
		assert.ErrorIs(t, err, token.ErrMalformed, "raw=%q", raw)
	}
}

func TestCodec_Verify_TamperedPayload(t *testing.T) {
	c := token.NewCodec("test_secret", time.Hour)

	raw, err := c.Issue(42, time.Now())
	assert.NoError(t, err)

	//payloadの1文字を差し替えると署名が合わなくなる
	tampered := []byte(raw)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	_, err = c.Verify(string(tampered))
	assert.Error(t, err)
}
