package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"delish/models"
	"delish/services"
)

const testSecret = "test-secret"

func TestForgot_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	service := services.NewAuthService(userRepo, mailer, testSecret)

	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, mongo.ErrNoDocuments).Once()

	err := service.Forgot(context.Background(), "ghost@example.com", "http://example.com")

	assert.ErrorIs(t, err, services.ErrUnknownEmail)
	userRepo.AssertNotCalled(t, "SetResetToken")
	mailer.AssertNotCalled(t, "Send")
}

func TestForgot_SetsTokenAndSendsMail(t *testing.T) {
	userRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	service := services.NewAuthService(userRepo, mailer, testSecret)

	user := &models.User{ID: testObjectID(1), Name: "Wes", Email: "wes@example.com"}
	userRepo.On("FindByEmail", mock.Anything, "wes@example.com").Return(user, nil).Once()

	var savedToken string
	userRepo.On("SetResetToken", mock.Anything, user.ID,
		mock.MatchedBy(func(token string) bool {
			savedToken = token
			// 20 random bytes hex-encoded
			return len(token) == 40
		}),
		mock.MatchedBy(func(expires time.Time) bool {
			return time.Until(expires) > 59*time.Minute && time.Until(expires) <= time.Hour
		})).Return(nil).Once()

	mailer.On("Send", user, "Password reset", "password-reset",
		mock.MatchedBy(func(vars map[string]string) bool {
			url := vars["resetURL"]
			return url == "http://example.com/account/reset/"+savedToken
		})).Return(nil).Once()

	err := service.Forgot(context.Background(), "wes@example.com", "http://example.com")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestForgot_MailFailurePropagates(t *testing.T) {
	userRepo := new(MockUserRepository)
	mailer := new(MockMailer)
	service := services.NewAuthService(userRepo, mailer, testSecret)

	user := &models.User{ID: testObjectID(1), Email: "wes@example.com"}
	userRepo.On("FindByEmail", mock.Anything, "wes@example.com").Return(user, nil).Once()
	userRepo.On("SetResetToken", mock.Anything, user.ID, mock.Anything, mock.Anything).Return(nil).Once()
	mailer.On("Send", user, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError).Once()

	err := service.Forgot(context.Background(), "wes@example.com", "http://example.com")

	assert.Error(t, err)
}

func TestResetPassword_ConfirmationMismatch(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, new(MockMailer), testSecret)

	_, _, err := service.ResetPassword(context.Background(), "sometoken", "password1", "password2")

	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "confirm", verr.Field)
	userRepo.AssertNotCalled(t, "ConsumeResetToken")
}

func TestResetPassword_ValidToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, new(MockMailer), testSecret)

	user := &models.User{ID: testObjectID(1), Email: "wes@example.com"}
	userRepo.On("ConsumeResetToken", mock.Anything, "goodtoken", mock.Anything,
		mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword")) == nil
		})).Return(user, nil).Once()

	got, session, err := service.ResetPassword(context.Background(), "goodtoken", "newpassword", "newpassword")

	assert.NoError(t, err)
	assert.Equal(t, user, got)
	assert.NotEmpty(t, session)
	userRepo.AssertExpectations(t)
}

func TestResetPassword_ExpiredOrUnknownToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, new(MockMailer), testSecret)

	userRepo.On("ConsumeResetToken", mock.Anything, "staletoken", mock.Anything, mock.Anything).
		Return(nil, mongo.ErrNoDocuments).Once()

	_, _, err := service.ResetPassword(context.Background(), "staletoken", "newpassword", "newpassword")

	assert.ErrorIs(t, err, services.ErrInvalidResetToken)
}

func TestValidateResetToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, new(MockMailer), testSecret)

	userRepo.On("FindByResetToken", mock.Anything, "goodtoken", mock.Anything).
		Return(&models.User{ID: testObjectID(1)}, nil).Once()
	userRepo.On("FindByResetToken", mock.Anything, "badtoken", mock.Anything).
		Return(nil, mongo.ErrNoDocuments).Once()

	assert.NoError(t, service.ValidateResetToken(context.Background(), "goodtoken"))
	assert.ErrorIs(t, service.ValidateResetToken(context.Background(), "badtoken"), services.ErrInvalidResetToken)
}

func TestRegister_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, new(MockMailer), testSecret)

	userRepo.On("FindByEmail", mock.Anything, "wes@example.com").
		Return(&models.User{ID: testObjectID(1)}, nil).Once()

	_, _, err := service.Register(context.Background(), "Wes", "wes@example.com", "password")

	assert.ErrorIs(t, err, services.ErrEmailTaken)
	userRepo.AssertNotCalled(t, "Create")
}

func TestRegisterAndLogin(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAuthService(userRepo, new(MockMailer), testSecret)

	var created *models.User
	userRepo.On("FindByEmail", mock.Anything, "wes@example.com").
		Return(nil, mongo.ErrNoDocuments).Once()
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		created = u
		// hashed, never the plaintext
		return u.PasswordHash != "password" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password")) == nil
	})).Return(nil).Once()

	user, token, err := service.Register(context.Background(), "Wes", "wes@example.com", "password")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "wes@example.com", user.Email)

	userRepo.On("FindByEmail", mock.Anything, "wes@example.com").Return(created, nil).Once()
	_, token, err = service.Login(context.Background(), "wes@example.com", "password")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userRepo.On("FindByEmail", mock.Anything, "wes@example.com").Return(created, nil).Once()
	_, _, err = service.Login(context.Background(), "wes@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	userRepo.AssertExpectations(t)
}
