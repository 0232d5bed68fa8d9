package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"spacy/config"
	"spacy/infras/jwt"
	jwtMocks "spacy/infras/jwt/mocks"
	"spacy/infras/otel/mocks"
	"spacy/internal/domains/auth/model/dto"
	"spacy/internal/domains/auth/service"
	userMocks "spacy/internal/domains/user/mocks"
	userModel "spacy/internal/domains/user/model"
	"spacy/permissions"
	"spacy/shared/failure"
	gModel "spacy/shared/model"
	"spacy/shared/timezone"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// bcrypt hash of "password"
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func newUser() userModel.User {
	return userModel.User{
		ID:       "user-1",
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: passwordHash,
		Role:     permissions.RoleConsumer,
		Active:   true,
		Metadata: gModel.Metadata{CreatedAt: timezone.Now(), ModifiedAt: timezone.Now()},
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		wantRole  permissions.Role
	}{
		{
			name: "registers consumer by default",
			req:  dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.NotEqual(t, "password", user.Password)

						return nil
					})
			},
			wantRole: permissions.RoleConsumer,
		},
		{
			name: "registers brand owner",
			req:  dto.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "password", Role: permissions.RoleBrandOwner},
			setupMock: func() {
				mockUserRepo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantRole: permissions.RoleBrandOwner,
		},
		{
			name: "duplicate email",
			req:  dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "password over bcrypt limit",
			req:  dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: strings.Repeat("p", 80)},
			setupMock: func() {
				mockUserRepo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "insert error",
			req:  dto.RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().EmailTaken(gomock.Any(), gomock.Any()).Return(false, nil)
				mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Register(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantRole, res.Role)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	validUser := newUser()

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "Asha@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().GetByEmail(gomock.Any(), "Asha@example.com").Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), jwt.Subject{UserID: validUser.ID, Email: validUser.Email, Role: "consumer"}).
					Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}, nil)
				mockUserRepo.EXPECT().RecordLogin(gomock.Any(), validUser.ID, gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "asha@example.com", Password: "wrong-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantErr: true,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "asha@example.com", Password: "password"},
			setupMock: func() {
				inactive := validUser
				inactive.Active = false

				mockUserRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr: true,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "asha@example.com", Password: "password"},
			setupMock: func() {
				mockUserRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("signing error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, validUser.ID, res.User.ID)
			assert.NotNil(t, res.User.LastLogin)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(userMocks.NewMockUser(ctrl), &config.Config{}, mocks.NewOtel(), mockJWT)

	mockJWT.EXPECT().RefreshTokens(gomock.Any(), "good").Return(&jwt.TokenPair{AccessToken: "new"}, nil)
	mockJWT.EXPECT().RefreshTokens(gomock.Any(), "bad").Return(nil, jwt.ErrInvalidToken)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})
	assert.NoError(t, err)
	assert.Equal(t, "new", res.AccessToken)

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
	assert.Equal(t, 401, failure.GetCode(err))
}

func TestAuthService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.Me(context.Background())
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("profile", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByID(gomock.Any(), "user-1").Return(newUser(), nil)

		ctx := permissions.WithActor(context.Background(), permissions.Actor{UserID: "user-1", Role: permissions.RoleConsumer})
		res, err := svc.Me(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "asha@example.com", res.Email)
	})

	t.Run("deleted user", func(t *testing.T) {
		mockUserRepo.EXPECT().GetByID(gomock.Any(), "user-9").Return(userModel.User{}, nil)

		ctx := permissions.WithActor(context.Background(), permissions.Actor{UserID: "user-9", Role: permissions.RoleConsumer})
		_, err := svc.Me(ctx)

		assert.Equal(t, 404, failure.GetCode(err))
	})
}
