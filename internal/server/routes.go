package server

import (
	"app/internal/handler"
	"app/internal/repository"
	"app/internal/token"

	"github.com/labstack/echo/v4"
)

// Handlersはルーティング対象のハンドラ一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Menu     *handler.MenuHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Contact  *handler.ContactHandler
	AuditLog *handler.AuditLogHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, codec *token.Codec, userRepo repository.UserRepository) {
	h.Auth.RegisterRoutes(e, codec, userRepo)
	h.Menu.RegisterRoutes(e, codec, userRepo)
	h.Cart.RegisterRoutes(e, codec, userRepo)
	h.Order.RegisterRoutes(e, codec, userRepo)
	h.Contact.RegisterRoutes(e, codec, userRepo)
	h.AuditLog.RegisterRoutes(e, codec, userRepo)
}
