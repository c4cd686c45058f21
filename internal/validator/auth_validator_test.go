package validator_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ValidatorUserRepoMock struct{ mock.Mock }

func (m *ValidatorUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in validator tests")
}

func (m *ValidatorUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	panic("not used in validator tests")
}

func (m *ValidatorUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func TestValidateSignup_OK(t *testing.T) {
	users := new(ValidatorUserRepoMock)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return((*model.User)(nil), nil)

	v := validator.NewAuthValidator(users)

	err := v.ValidateSignup(context.Background(), "Taro", "taro@example.com", "password123")
	assert.NoError(t, err)
}

func TestValidateSignup_InvalidInputs(t *testing.T) {
	v := validator.NewAuthValidator(new(ValidatorUserRepoMock))

	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"empty name", "", "taro@example.com", "password123"},
		{"empty email", "Taro", "", "password123"},
		{"empty password", "Taro", "taro@example.com", ""},
		{"bad email format", "Taro", "not-an-email", "password123"},
		{"email with spaces", "Taro", "ta ro@example.com", "password123"},
		{"short password", "Taro", "taro@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateSignup(context.Background(), tc.userName, tc.email, tc.password)
			assert.ErrorIs(t, err, usecase.ErrInvalidInput)
		})
	}
}

func TestValidateSignup_DuplicateEmail(t *testing.T) {
	users := new(ValidatorUserRepoMock)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(&model.User{ID: 1, Email: "taro@example.com"}, nil)

	v := validator.NewAuthValidator(users)

	err := v.ValidateSignup(context.Background(), "Taro", "taro@example.com", "password123")
	assert.ErrorIs(t, err, usecase.ErrEmailAlreadyUsed)
}

func TestValidateLogin_OK(t *testing.T) {
	v := validator.NewAuthValidator(new(ValidatorUserRepoMock))

	assert.NoError(t, v.ValidateLogin(context.Background(), "taro@example.com", "password123"))
}

func TestValidateLogin_InvalidInputs(t *testing.T) {
	v := validator.NewAuthValidator(new(ValidatorUserRepoMock))

	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "", "password123"), usecase.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "taro@example.com", ""), usecase.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "not-an-email", "password123"), usecase.ErrInvalidInput)
}
