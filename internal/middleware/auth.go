package middleware

import (
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/token"

	"github.com/labstack/echo/v4"
)

// contextに入れる解決済みユーザーのキー（*model.User）
const CtxUserKey = "current_user"

// セッショントークンのcookie名
const SessionCookieName = "jwt"

// Protect はトークンを検証してユーザーを解決するミドルウェア。
// cookie優先、無ければAuthorization: Bearerを見る。
// 解決できなければ401。ロール制限はRestrictToを重ねる。
func Protect(codec *token.Codec, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return reject(c, "Please log in to access this resource")
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrExpired):
					return reject(c, "Your session has expired. Please log in again")
				default:
					return reject(c, "Invalid token. Please log in again")
				}
			}

			//トークンが有効でもユーザーが消えていれば拒否
			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("Server Error"))
			}
			if user == nil {
				return reject(c, "The user belonging to this token no longer exists")
			}

			//発行後にパスワード変更されたトークンは拒否
			if user.ChangedPasswordAfter(claims.IssuedAt) {
				return reject(c, "User recently changed password. Please log in again")
			}

			c.Set(CtxUserKey, user)
			return next(c)
		}
	}
}

// OptionalAuth はProtectと同じ解決を試みるが、失敗しても素通しする。
// 匿名と判定されたらユーザーを載せないだけ。
func OptionalAuth(codec *token.Codec, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return next(c)
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				return next(c)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil || user == nil {
				return next(c)
			}
			if user.ChangedPasswordAfter(claims.IssuedAt) {
				return next(c)
			}

			c.Set(CtxUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser はProtect/OptionalAuthが解決したユーザーを取り出す。
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(CtxUserKey).(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// cookie優先でトークンを取り出す
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return ""
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Success: false, Message: msg}
}

func reject(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorJSON(msg))
}
