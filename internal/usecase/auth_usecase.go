package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")

	// emailが既に使用済み
	ErrEmailAlreadyUsed = errors.New("email already used")
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateSignup(ctx context.Context, name string, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// API返却用。credential hashは構造体ごと持たない。
type UserDTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type AuthUsecase struct {
	users     repository.UserRepository
	codec     *token.Codec
	validator AuthValidator
}

func NewAuthUsecase(
	users repository.UserRepository,
	codec *token.Codec,
	v AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		codec:     codec,
		validator: v,
	}
}

// Signup はユーザーを作ってセッショントークンを発行する。
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (UserDTO, string, error) {
	if err := u.validator.ValidateSignup(ctx, in.Name, in.Email, in.Password); err != nil {
		if errors.Is(err, ErrEmailAlreadyUsed) {
			return UserDTO{}, "", NewHTTPError(http.StatusConflict, "Email already registered")
		}
		return UserDTO{}, "", NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, "", NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(pwHash),
		Role:         model.RoleCustomer,
	}

	if err := u.users.Create(ctx, user); err != nil {
		//validatorの重複チェックと同時登録で競合した場合もここで拾う
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return UserDTO{}, "", NewHTTPError(http.StatusConflict, "Email already registered")
		}
		return UserDTO{}, "", NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	tok, err := u.codec.Issue(user.ID, time.Now())
	if err != nil {
		return UserDTO{}, "", NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return ToUserDTO(user), tok, nil
}

// Login は資格情報を照合してセッショントークンを発行する。
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (UserDTO, string, error) {
	if err := u.validator.ValidateLogin(ctx, email, password); err != nil {
		return UserDTO{}, "", NewHTTPError(http.StatusBadRequest, "Invalid input")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return UserDTO{}, "", NewHTTPError(http.StatusInternalServerError, "Server Error")
	}
	if user == nil {
		//ユーザー不在とパスワード不一致はメッセージを分けない
		return UserDTO{}, "", NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}

	//bcrypt照合（constant-time）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return UserDTO{}, "", NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}

	tok, err := u.codec.Issue(user.ID, time.Now())
	if err != nil {
		return UserDTO{}, "", NewHTTPError(http.StatusInternalServerError, "Server Error")
	}

	return ToUserDTO(user), tok, nil
}

// model.UserをAPI返却用DTOに変換。
func ToUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
