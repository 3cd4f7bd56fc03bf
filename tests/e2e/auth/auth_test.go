//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"realty-api/internal/handler/dto/request"
	"realty-api/internal/handler/dto/response"
	"realty-api/tests/common/authtest"
	"realty-api/tests/common/dbtest"
	"realty-api/tests/common/httptest"
	"realty-api/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL       = "/api/v1/auth/register"
	verifyOTPURL      = "/api/v1/auth/verify-otp"
	loginURL          = "/api/v1/auth/login"
	meURL             = "/api/v1/auth/me"
	forgotPasswordURL = "/api/v1/auth/forgot-password"
	resetPasswordURL  = "/api/v1/auth/reset-password"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

// =============================================================================
// TestRegistrationFlow - Register, verify and login
// =============================================================================

func (s *AuthSuite) TestRegistrationFlow() {
	s.Run("Normal case: register, verify the emailed code, then log in", func() {
		t := s.T()

		reqBody := request.RegisterRequest{
			Email:    "newbuyer@example.com",
			Password: "password123",
			FullName: "New Buyer",
			Role:     "buyer",
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		var accepted response.RegisterResponse
		httptest.AssertSuccessResponse(t, w, http.StatusAccepted, &accepted)
		require.NotEmpty(t, accepted.Message)

		// コード入力まではユーザ行が存在しないのでログインできない
		lw := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "newbuyer@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusUnauthorized, lw.Code)

		code := s.Fakes.Mailer.LastCode("newbuyer@example.com")
		require.NotEmpty(t, code, "Verification code should have been emailed")

		vw := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyOTPURL,
			request.VerifyOTPRequest{Email: "newbuyer@example.com", Code: code}, "")
		var session response.LoginResponse
		httptest.AssertSuccessResponse(t, vw, http.StatusOK, &session)
		require.NotEmpty(t, session.AccessToken)
		require.Equal(t, "newbuyer@example.com", session.User.Email)

		token := authtest.LoginUser(t, s.Router, "newbuyer@example.com", "password123")

		mw := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		var me response.AuthorizedUser
		httptest.AssertSuccessResponse(t, mw, http.StatusOK, &me)
		require.Equal(t, "newbuyer@example.com", me.Email)
	})

	s.Run("Error case: wrong verification code is rejected", func() {
		t := s.T()

		reqBody := request.RegisterRequest{
			Email:    "wrongcode@example.com",
			Password: "password123",
			FullName: "Wrong Code",
			Role:     "buyer",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusAccepted, w.Code)

		code := s.Fakes.Mailer.LastCode("wrongcode@example.com")
		wrong := "0000"
		if code == wrong {
			wrong = "0001"
		}

		vw := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyOTPURL,
			request.VerifyOTPRequest{Email: "wrongcode@example.com", Code: wrong}, "")
		require.Equal(t, http.StatusBadRequest, vw.Code)
	})

	s.Run("Error case: duplicate email only surfaces at verification", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "taken@example.com", "buyer")

		reqBody := request.RegisterRequest{
			Email:    "taken@example.com",
			Password: "password123",
			FullName: "Late Comer",
			Role:     "buyer",
		}
		// 登録時点では既存アドレスかどうかを漏らさない
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusAccepted, w.Code)

		code := s.Fakes.Mailer.LastCode("taken@example.com")
		require.NotEmpty(t, code)

		vw := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyOTPURL,
			request.VerifyOTPRequest{Email: "taken@example.com", Code: code}, "")
		require.Equal(t, http.StatusConflict, vw.Code)
	})
}

// =============================================================================
// TestPasswordReset - Forgot and reset password flow
// =============================================================================

func (s *AuthSuite) TestPasswordReset() {
	s.Run("Normal case: reset the password with the emailed code", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "resetme@example.com", "buyer")

		fw := httptest.PerformRequest(t, s.Router, http.MethodPost, forgotPasswordURL,
			request.ForgotPasswordRequest{Email: "resetme@example.com"}, "")
		require.Equal(t, http.StatusNoContent, fw.Code)

		code := s.Fakes.Mailer.LastCode("resetme@example.com")
		require.NotEmpty(t, code)

		// コード確認が通ると reset-password が解放される
		vw := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyOTPURL,
			request.VerifyOTPRequest{Email: "resetme@example.com", Code: code}, "")
		require.Equal(t, http.StatusNoContent, vw.Code, vw.Body.String())

		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, resetPasswordURL,
			request.ResetPasswordRequest{
				Email:       "resetme@example.com",
				NewPassword: "newpassword456",
			}, "")
		require.Equal(t, http.StatusNoContent, rw.Code, rw.Body.String())

		// 旧パスワードは拒否され、新パスワードで入れる
		old := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "resetme@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusUnauthorized, old.Code)

		authtest.LoginUser(t, s.Router, "resetme@example.com", "newpassword456")
	})

	s.Run("Normal case: unknown address gets the same silent response", func() {
		t := s.T()

		fw := httptest.PerformRequest(t, s.Router, http.MethodPost, forgotPasswordURL,
			request.ForgotPasswordRequest{Email: "nobody@example.com"}, "")
		require.Equal(t, http.StatusNoContent, fw.Code, "Must not reveal whether the address is registered")
		require.Empty(t, s.Fakes.Mailer.LastCode("nobody@example.com"))
	})
}
