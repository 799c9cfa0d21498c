package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authhttp "adclad/internal/auth/adapter/http"
	"adclad/internal/auth/domain/model"
	"adclad/internal/auth/usecase"
	apperrors "adclad/internal/shared/errors"
	sharedrepo "adclad/internal/shared/repository"
)

type AuthHTTPTestSuite struct {
	suite.Suite
	app         *fiber.App
	mockUsecase *mockAuthUsecase
	admin       *model.Principal
	vendor      *model.Principal
}

func (suite *AuthHTTPTestSuite) SetupTest() {
	suite.mockUsecase = &mockAuthUsecase{}
	suite.app = fiber.New()
	suite.admin = &model.Principal{ID: primitive.NewObjectID(), Email: "root@example.com", Role: model.RoleAdmin}
	suite.vendor = &model.Principal{ID: primitive.NewObjectID(), Email: "vendor@example.com", Role: model.RoleVendor}

	handler := authhttp.NewAuthHTTPHandler(suite.mockUsecase, nil)
	middleware := authhttp.NewAuthMiddleware(suite.mockUsecase, "adclad")
	suite.app.Use(middleware.Credentials())
	handler.SetupAuthRoutesWithMiddleware(suite.app.Group("/api"), middleware)
}

func (suite *AuthHTTPTestSuite) TearDownTest() {
	suite.mockUsecase.AssertExpectations(suite.T())
}

func (suite *AuthHTTPTestSuite) as(p *model.Principal) string {
	suite.mockUsecase.On("Authenticate", mock.Anything, p.Email, "secret123").Return(p, nil)
	return usecase.BasicAuthHeader(p.Email, "secret123")
}

func (suite *AuthHTTPTestSuite) do(method, path, auth string, body interface{}) (*http.Response, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(suite.T(), err)
	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(suite.T(), json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (suite *AuthHTTPTestSuite) TestSignup_Success() {
	req := usecase.SignupRequest{FirstName: "alice", LastName: "smith", Email: "alice@example.com", Password: "secret123"}
	suite.mockUsecase.On("Signup", mock.Anything, req).Return(&usecase.AuthResponse{
		User:       model.Summary{ID: primitive.NewObjectID(), Email: "alice@example.com", Role: model.RoleVendor},
		AuthHeader: usecase.BasicAuthHeader("alice@example.com", "secret123"),
	}, nil)

	resp, body := suite.do("POST", "/api/signup", "", req)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), usecase.BasicAuthHeader("alice@example.com", "secret123"), data["authHeader"])
	assert.Equal(suite.T(), "vendor", data["user"].(map[string]interface{})["role"])
}

func (suite *AuthHTTPTestSuite) TestSignup_Conflict() {
	suite.mockUsecase.On("Signup", mock.Anything, mock.Anything).Return(nil, apperrors.NewConflictError("Email already in use."))

	resp, body := suite.do("POST", "/api/signup", "", map[string]string{"email": "alice@example.com"})
	assert.Equal(suite.T(), http.StatusConflict, resp.StatusCode)
	assert.Equal(suite.T(), "Email already in use.", body["error"])
}

func (suite *AuthHTTPTestSuite) TestSignup_InvalidBody() {
	req := httptest.NewRequest("POST", "/api/signup", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *AuthHTTPTestSuite) TestCheckEmail() {
	suite.mockUsecase.On("CheckEmail", mock.Anything, "free@example.com").Return(nil)

	resp, _ := suite.do("POST", "/api/checkemail", "", map[string]string{"email": "free@example.com"})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *AuthHTTPTestSuite) TestLogin_Unauthorized() {
	suite.mockUsecase.On("Login", mock.Anything, usecase.LoginRequest{Email: "bob@example.com", Password: "nope-nope"}).
		Return(nil, apperrors.NewAuthenticationError("Incorrect email or password"))

	resp, body := suite.do("POST", "/api/login", "", map[string]string{"email": "bob@example.com", "password": "nope-nope"})
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(suite.T(), "Incorrect email or password", body["error"])
}

func (suite *AuthHTTPTestSuite) TestForgotPassword_NotFound() {
	suite.mockUsecase.On("ForgotPassword", mock.Anything, "ghost@example.com").Return(apperrors.NewNotFoundError("User"))

	resp, _ := suite.do("POST", "/api/login/forgot", "", map[string]string{"email": "ghost@example.com"})
	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
}

func (suite *AuthHTTPTestSuite) TestForgotPassword_MailFailureIs500() {
	suite.mockUsecase.On("ForgotPassword", mock.Anything, "bob@example.com").Return(errors.New("smtp down"))

	resp, body := suite.do("POST", "/api/login/forgot", "", map[string]string{"email": "bob@example.com"})
	assert.Equal(suite.T(), http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(suite.T(), "Internal Server Error", body["error"])
}

func (suite *AuthHTTPTestSuite) TestChangePassword() {
	auth := suite.as(suite.vendor)
	suite.mockUsecase.On("ChangePassword", mock.Anything, suite.vendor, "newsecret").
		Return(usecase.BasicAuthHeader(suite.vendor.Email, "newsecret"), nil)

	resp, body := suite.do("PATCH", "/api/login/changepassword", auth, map[string]string{"password": "newsecret"})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), usecase.BasicAuthHeader(suite.vendor.Email, "newsecret"),
		body["data"].(map[string]interface{})["authHeader"])
}

func (suite *AuthHTTPTestSuite) TestChangePassword_RequiresAuth() {
	resp, _ := suite.do("PATCH", "/api/login/changepassword", "", map[string]string{"password": "newsecret"})
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (suite *AuthHTTPTestSuite) TestUpdateProfile() {
	auth := suite.as(suite.vendor)
	suite.mockUsecase.On("UpdateProfile", mock.Anything, suite.vendor, usecase.ProfileRequest{FirstName: "Robert", LastName: "Jones"}).
		Return(nil)

	resp, body := suite.do("PUT", "/api/profile", auth, map[string]string{"firstName": "Robert", "lastName": "Jones"})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), "Profile updated", body["message"])
}

func (suite *AuthHTTPTestSuite) TestListVendors_AdminOnly() {
	auth := suite.as(suite.vendor)

	resp, _ := suite.do("POST", "/api/user", auth, map[string]interface{}{})
	assert.Equal(suite.T(), http.StatusForbidden, resp.StatusCode)
	suite.mockUsecase.AssertNotCalled(suite.T(), "ListVendors", mock.Anything, mock.Anything)
}

func (suite *AuthHTTPTestSuite) TestListVendors() {
	auth := suite.as(suite.admin)
	page := &sharedrepo.Page[model.User]{Limit: 5, TotalCount: 1, ItemCount: 1, Items: []model.User{{Email: "v@example.com"}}}
	suite.mockUsecase.On("ListVendors", mock.Anything, mock.MatchedBy(func(r usecase.ListUsersRequest) bool {
		return r.SearchText == "v@" && r.Limit != nil && *r.Limit == 5
	})).Return(page, nil)

	resp, body := suite.do("POST", "/api/user", auth, map[string]interface{}{"limit": 5, "searchText": "v@"})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), data["total_count"])
	assert.Equal(suite.T(), false, data["hasNext"])
}

func (suite *AuthHTTPTestSuite) TestDeleteUser() {
	auth := suite.as(suite.admin)
	suite.mockUsecase.On("DeleteUser", mock.Anything, "65f0c0ffee0000000000beef").Return(nil)

	resp, body := suite.do("DELETE", "/api/user", auth, map[string]string{"_id": "65f0c0ffee0000000000beef"})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), "Success", body["message"])
}

func TestAuthHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHTTPTestSuite))
}
