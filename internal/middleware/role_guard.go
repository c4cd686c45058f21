package middleware

import (
	"net/http"

	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// RestrictTo はProtectの後段で、解決済みユーザーのロールを確認する。
// 許可リストに無ければ403。
func RestrictTo(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return reject(c, "Please log in to access this resource")
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("You do not have permission to perform this action"))
		}
	}
}
