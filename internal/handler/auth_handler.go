package handler

import (
	"net/http"
	"time"

	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/token"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/auth と /api/me のHTTP
type AuthHandler struct {
	uc           *usecase.AuthUsecase
	cookieTTL    time.Duration
	cookieSecure bool
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, cookieTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, codec *token.Codec, userRepo repository.UserRepository) {
	g := e.Group("/api/auth")
	g.POST("/signup", h.signup)
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)

	//解決済みの自分自身を返す
	e.GET("/api/me", h.me, middleware.Protect(codec, userRepo))
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	user, tok, err := h.uc.Signup(c.Request().Context(), usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	h.setSessionCookie(c, tok)

	//非ブラウザクライアント向けにtokenはbodyにも載せる
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"token":   tok,
		"data":    echo.Map{"user": user},
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input")
	}

	user, tok, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	h.setSessionCookie(c, tok)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   tok,
		"data":    echo.Map{"user": user},
	})
}

// ログアウトは番兵値のcookieを短命で上書きするだけ（サーバー側に状態は無い）
func (h *AuthHandler) logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "loggedout",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Please log in to access this resource")
	}

	return respondData(c, http.StatusOK, echo.Map{"user": usecase.ToUserDTO(user)})
}

// セッショントークンをhttpOnly cookieにセット。
func (h *AuthHandler) setSessionCookie(c echo.Context, tok string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
