package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/pantrychef/v1/internal/application/auth"
	apperrors "github.com/pantrychef/v1/pkg/errors"
	"github.com/pantrychef/v1/test/testutils"
)

// AuthServiceTestSuite provides a test suite for the auth service
type AuthServiceTestSuite struct {
	suite.Suite
	users    *testutils.FakeUserRepository
	sessions *testutils.FakeSessionStore
	service  *auth.Service
	factory  *testutils.UserFactory
	ctx      context.Context
}

// SetupTest resets state before each test
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.users = testutils.NewFakeUserRepository()
	suite.sessions = testutils.NewFakeSessionStore()
	suite.service = auth.NewService(suite.users, suite.sessions, 4, zap.NewNop())
	suite.factory = testutils.NewUserFactory(testutils.DefaultSeed())
	suite.ctx = context.Background()
}

// TestSignup tests account creation scenarios
func (suite *AuthServiceTestSuite) TestSignup() {
	suite.Run("ValidCredentials_ShouldCreateSessionAndUser", func() {
		email := suite.factory.Email()

		token, err := suite.service.Signup(suite.ctx, email, "password123")

		require.NoError(suite.T(), err)
		assert.NotEmpty(suite.T(), token)

		// The new session resolves to the new user
		info := suite.service.CheckSession(suite.ctx, token)
		assert.True(suite.T(), info.LoggedIn)
		assert.Equal(suite.T(), email, info.Email)
	})

	suite.Run("InvalidEmail_ShouldFailWithoutSideEffects", func() {
		token, err := suite.service.Signup(suite.ctx, "no-at-sign", "password123")

		assert.Empty(suite.T(), token)
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
		assert.Equal(suite.T(), 0, suite.sessions.Len())
	})

	suite.Run("ShortPassword_ShouldFailValidation", func() {
		token, err := suite.service.Signup(suite.ctx, suite.factory.Email(), "short")

		assert.Empty(suite.T(), token)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})

	suite.Run("DuplicateEmail_ShouldConflict", func() {
		email := suite.factory.Email()

		_, err := suite.service.Signup(suite.ctx, email, "password123")
		require.NoError(suite.T(), err)

		before := suite.sessions.Len()
		token, err := suite.service.Signup(suite.ctx, email, "different-password")

		assert.Empty(suite.T(), token)
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeConflict, apperrors.GetCode(err))
		assert.Equal(suite.T(), "User already exists", err.(*apperrors.AppError).Message)
		// No session was minted for the failed attempt
		assert.Equal(suite.T(), before, suite.sessions.Len())

		// The original account is untouched: its password still works
		_, err = suite.service.Login(suite.ctx, email, "password123")
		assert.NoError(suite.T(), err)
	})

	suite.Run("SessionStoreFailure_ShouldReturnInternal", func() {
		suite.sessions.CreateErr = errors.New("redis down")
		defer func() { suite.sessions.CreateErr = nil }()

		token, err := suite.service.Signup(suite.ctx, suite.factory.Email(), "password123")

		assert.Empty(suite.T(), token)
		assert.Equal(suite.T(), apperrors.CodeInternal, apperrors.GetCode(err))
	})
}

// TestLogin tests authentication scenarios
func (suite *AuthServiceTestSuite) TestLogin() {
	suite.Run("CorrectPassword_ShouldCreateSession", func() {
		email := suite.factory.Email()
		_, err := suite.service.Signup(suite.ctx, email, "password123")
		require.NoError(suite.T(), err)

		token, err := suite.service.Login(suite.ctx, email, "password123")

		require.NoError(suite.T(), err)
		assert.NotEmpty(suite.T(), token)
	})

	suite.Run("UnknownEmail_ShouldReturnNotFound", func() {
		token, err := suite.service.Login(suite.ctx, "nobody@example.com", "password123")

		assert.Empty(suite.T(), token)
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeNotFound, apperrors.GetCode(err))
		assert.Equal(suite.T(), "User not found", err.(*apperrors.AppError).Message)
	})

	suite.Run("WrongPassword_ShouldReturnUnauthorized", func() {
		email := suite.factory.Email()
		_, err := suite.service.Signup(suite.ctx, email, "password123")
		require.NoError(suite.T(), err)

		token, err := suite.service.Login(suite.ctx, email, "wrong-password")

		assert.Empty(suite.T(), token)
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), apperrors.CodeUnauthorized, apperrors.GetCode(err))
		assert.Equal(suite.T(), "Incorrect password", err.(*apperrors.AppError).Message)
	})

	suite.Run("CaseSensitiveEmail_ShouldNotMatchDifferentCase", func() {
		_, err := suite.service.Signup(suite.ctx, "Person@Example.com", "password123")
		require.NoError(suite.T(), err)

		_, err = suite.service.Login(suite.ctx, "person@example.com", "password123")

		assert.Equal(suite.T(), apperrors.CodeNotFound, apperrors.GetCode(err))
	})

	suite.Run("InvalidEmail_ShouldFailValidationBeforeLookup", func() {
		_, err := suite.service.Login(suite.ctx, "no-at-sign", "password123")

		assert.Equal(suite.T(), apperrors.CodeValidationFailed, apperrors.GetCode(err))
	})
}

// TestSessionLifecycle tests logout and session checks
func (suite *AuthServiceTestSuite) TestSessionLifecycle() {
	suite.Run("LogoutThenCheck_ShouldReportLoggedOut", func() {
		token, err := suite.service.Signup(suite.ctx, suite.factory.Email(), "password123")
		require.NoError(suite.T(), err)

		require.NoError(suite.T(), suite.service.Logout(suite.ctx, token))

		info := suite.service.CheckSession(suite.ctx, token)
		assert.False(suite.T(), info.LoggedIn)
		assert.Empty(suite.T(), info.Email)
	})

	suite.Run("LogoutUnknownToken_ShouldBeNoOp", func() {
		assert.NoError(suite.T(), suite.service.Logout(suite.ctx, "never-issued"))
	})

	suite.Run("LogoutEmptyToken_ShouldBeNoOp", func() {
		assert.NoError(suite.T(), suite.service.Logout(suite.ctx, ""))
	})

	suite.Run("CheckEmptyToken_ShouldReportLoggedOut", func() {
		info := suite.service.CheckSession(suite.ctx, "")
		assert.False(suite.T(), info.LoggedIn)
	})

	suite.Run("CheckUnknownToken_ShouldReportLoggedOut", func() {
		info := suite.service.CheckSession(suite.ctx, "never-issued")
		assert.False(suite.T(), info.LoggedIn)
	})

	suite.Run("CheckAfterSessionStoreGet_ShouldNotError", func() {
		// CheckSession degrades to logged-out rather than failing
		token, err := suite.service.Signup(suite.ctx, suite.factory.Email(), "password123")
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), suite.sessions.Delete(suite.ctx, token))

		info := suite.service.CheckSession(suite.ctx, token)
		assert.False(suite.T(), info.LoggedIn)
	})
}

// TestAuthServiceTestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
