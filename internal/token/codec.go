package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	//パースできない
	ErrMalformed = errors.New("token malformed")
	//署名が一致しない
	ErrSignatureInvalid = errors.New("token signature invalid")
	//期限切れ
	ErrExpired = errors.New("token expired")
)

// 検証済みトークンの中身。
type Claims struct {
	UserID   int64
	IssuedAt time.Time
}

// セッショントークンの発行・検証。サーバー側に状態は持たない。
// HMACの照合はjwtライブラリ内でconstant-time比較される。
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue はuserIDとissuedAtを埋めた署名付きトークンを返す。
func (c *Codec) Issue(userID int64, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(c.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Verify はトークンを検証してClaimsを返す。
// 失敗はErrMalformed / ErrSignatureInvalid / ErrExpiredのどれか。
func (c *Codec) Verify(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrSignatureInvalid):
			return Claims{}, ErrSignatureInvalid
		default:
			return Claims{}, ErrMalformed
		}
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrMalformed
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	userID, err := parseUserID(mc["sub"])
	if err != nil || userID <= 0 {
		return Claims{}, ErrMalformed
	}

	iat, ok := mc["iat"].(float64)
	if !ok || iat <= 0 {
		return Claims{}, ErrMalformed
	}

	return Claims{
		UserID:   userID,
		IssuedAt: time.Unix(int64(iat), 0),
	}, nil
}

// subをint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case string:
		return strconv.ParseInt(t, 10, 64)
	case float64:
		return int64(t), nil
	default:
		return 0, errors.New("invalid sub")
	}
}
