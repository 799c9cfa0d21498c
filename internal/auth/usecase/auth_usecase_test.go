package usecase_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"adclad/internal/auth/domain/model"
	"adclad/internal/auth/domain/repository"
	"adclad/internal/auth/testutil"
	"adclad/internal/auth/usecase"
	apperrors "adclad/internal/shared/errors"
	sharedrepo "adclad/internal/shared/repository"
)

type AuthUsecaseTestSuite struct {
	suite.Suite
	repo     *testutil.MockUserRepository
	mailer   *testutil.RecordingMailer
	usecase  *usecase.AuthUsecase
	fixtures *testutil.UserFixture
}

func (s *AuthUsecaseTestSuite) SetupTest() {
	s.repo = &testutil.MockUserRepository{}
	s.mailer = &testutil.RecordingMailer{Done: make(chan struct{}, 4)}
	s.usecase = usecase.NewAuthUsecase(s.repo, s.mailer, testutil.Config(), nil)
	s.fixtures = testutil.NewUserFixture()
}

func (s *AuthUsecaseTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func (s *AuthUsecaseTestSuite) waitForMail() {
	select {
	case <-s.mailer.Done:
	case <-time.After(time.Second):
		s.T().Fatal("timeout waiting for mail")
	}
}

func validSignup() usecase.SignupRequest {
	return usecase.SignupRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "Alice@Example.com",
		Password:  "secret123",
	}
}

func (s *AuthUsecaseTestSuite) TestSignup_Success() {
	s.repo.On("EmailInUse", mock.Anything, "Alice@Example.com").Return(false, nil)
	s.repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "alice@example.com" && u.FirstName == "alice" && u.Role == model.RoleVendor &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")) == nil
	})).Return(func(_ context.Context, u *model.User) *model.User { return u }, nil)

	resp, err := s.usecase.Signup(context.Background(), validSignup())
	s.Require().NoError(err)
	s.Equal("alice@example.com", resp.User.Email)
	s.Equal(model.RoleVendor, resp.User.Role)
	s.Equal(usecase.BasicAuthHeader("alice@example.com", "secret123"), resp.AuthHeader)

	s.waitForMail()
	msgs := s.mailer.Messages()
	s.Require().Len(msgs, 1)
	s.Equal(repository.TemplateWelcome, msgs[0].Template)
	s.Equal("alice@example.com", msgs[0].Options.To.Address)
}

func (s *AuthUsecaseTestSuite) TestSignup_WelcomeMailFailureIsNotFatal() {
	s.mailer.Err = errors.New("smtp down")
	s.repo.On("EmailInUse", mock.Anything, mock.Anything).Return(false, nil)
	s.repo.On("Create", mock.Anything, mock.Anything).
		Return(func(_ context.Context, u *model.User) *model.User { return u }, nil)

	resp, err := s.usecase.Signup(context.Background(), validSignup())
	s.Require().NoError(err)
	s.NotEmpty(resp.AuthHeader)
	s.waitForMail()
}

func (s *AuthUsecaseTestSuite) TestSignup_EmailTaken() {
	s.repo.On("EmailInUse", mock.Anything, mock.Anything).Return(true, nil)

	_, err := s.usecase.Signup(context.Background(), validSignup())
	s.True(apperrors.IsConflict(err))
	s.Equal("Email already in use.", err.Error())
}

func (s *AuthUsecaseTestSuite) TestSignup_Validation() {
	req := validSignup()
	req.FirstName = "Al"
	req.Password = "123"
	req.Email = "not-an-email"

	_, err := s.usecase.Signup(context.Background(), req)
	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))

	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Len(appErr.Details["validation_errors"], 3)
}

func (s *AuthUsecaseTestSuite) TestLogin_Success() {
	user := s.fixtures.Vendor("bob@example.com")
	s.repo.On("GetActiveByEmail", mock.Anything, "bob@example.com").Return(user, nil)
	s.repo.On("Update", mock.Anything, user.ID.Hex(), bson.M{"deviceId": "device-9"}).Return(user, nil)

	resp, err := s.usecase.Login(context.Background(), usecase.LoginRequest{
		Email: "bob@example.com", Password: testutil.DefaultPassword, DeviceID: "device-9",
	})
	s.Require().NoError(err)
	s.Equal(user.ID, resp.User.ID)

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(resp.AuthHeader, "Basic "))
	s.Require().NoError(err)
	s.Equal("bob@example.com:"+testutil.DefaultPassword, string(raw))
}

func (s *AuthUsecaseTestSuite) TestLogin_WrongPassword() {
	user := s.fixtures.Vendor("bob@example.com")
	s.repo.On("GetActiveByEmail", mock.Anything, "bob@example.com").Return(user, nil)

	_, err := s.usecase.Login(context.Background(), usecase.LoginRequest{Email: "bob@example.com", Password: "wrong-pass"})
	s.True(apperrors.IsAuthentication(err))
	s.Equal(401, apperrors.HTTPStatus(err))
}

func (s *AuthUsecaseTestSuite) TestLogin_UnknownUser() {
	s.repo.On("GetActiveByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, err := s.usecase.Login(context.Background(), usecase.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	s.True(apperrors.IsAuthentication(err))
}

func (s *AuthUsecaseTestSuite) TestAuthenticate() {
	admin := s.fixtures.Admin("root@example.com")
	s.repo.On("GetActiveByEmail", mock.Anything, "root@example.com").Return(admin, nil)

	p, err := s.usecase.Authenticate(context.Background(), "root@example.com", testutil.DefaultPassword)
	s.Require().NoError(err)
	s.True(p.IsAdmin())
	s.Equal(admin.ID, p.ID)
}

func (s *AuthUsecaseTestSuite) TestForgotPassword_Success() {
	user := s.fixtures.Vendor("bob@example.com")
	var stored string
	s.repo.On("GetActiveByEmail", mock.Anything, "bob@example.com").Return(user, nil)
	s.repo.On("Update", mock.Anything, user.ID.Hex(), mock.MatchedBy(func(u bson.M) bool {
		stored, _ = u["password"].(string)
		return stored != ""
	})).Return(user, nil)

	s.Require().NoError(s.usecase.ForgotPassword(context.Background(), "bob@example.com"))

	msgs := s.mailer.Messages()
	s.Require().Len(msgs, 1)
	s.Equal(repository.TemplateForgot, msgs[0].Template)
	password := msgs[0].Data.(map[string]string)["Password"]
	s.Len(password, 7)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)))
}

func (s *AuthUsecaseTestSuite) TestForgotPassword_NotRegistered() {
	s.repo.On("GetActiveByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	err := s.usecase.ForgotPassword(context.Background(), "ghost@example.com")
	s.True(apperrors.IsNotFound(err))
	s.Empty(s.mailer.Messages())
}

func (s *AuthUsecaseTestSuite) TestForgotPassword_MailFailureSurfaces() {
	s.mailer.Err = errors.New("smtp down")
	user := s.fixtures.Vendor("bob@example.com")
	s.repo.On("GetActiveByEmail", mock.Anything, "bob@example.com").Return(user, nil)
	s.repo.On("Update", mock.Anything, user.ID.Hex(), mock.Anything).Return(user, nil)

	err := s.usecase.ForgotPassword(context.Background(), "bob@example.com")
	s.Require().Error(err)
	s.Contains(err.Error(), "smtp down")
}

func (s *AuthUsecaseTestSuite) TestChangePassword() {
	user := s.fixtures.Vendor("bob@example.com")
	s.repo.On("Update", mock.Anything, user.ID.Hex(), mock.Anything).Return(user, nil)

	header, err := s.usecase.ChangePassword(context.Background(), user.Principal(), "newsecret")
	s.Require().NoError(err)
	s.Equal(usecase.BasicAuthHeader("bob@example.com", "newsecret"), header)

	_, err = s.usecase.ChangePassword(context.Background(), user.Principal(), "123")
	s.True(apperrors.IsValidation(err))
}

func (s *AuthUsecaseTestSuite) TestUpdateProfile() {
	user := s.fixtures.Vendor("bob@example.com")
	s.repo.On("Update", mock.Anything, user.ID.Hex(), bson.M{"firstName": "Robert", "lastName": "Jones"}).Return(user, nil)

	err := s.usecase.UpdateProfile(context.Background(), user.Principal(), usecase.ProfileRequest{FirstName: "Robert", LastName: "Jones"})
	s.NoError(err)
}

func (s *AuthUsecaseTestSuite) TestListVendors_Defaults() {
	page := &sharedrepo.Page[model.User]{Items: []model.User{}}
	s.repo.On("ListVendors", mock.Anything, "", mock.MatchedBy(func(o sharedrepo.QueryOptions) bool {
		return o.Sort == "updatedAt" && *o.Order == -1 && *o.Limit == 20 && o.Skip == nil
	})).Return(page, nil)

	got, err := s.usecase.ListVendors(context.Background(), usecase.ListUsersRequest{})
	s.Require().NoError(err)
	s.Same(page, got)
}

func (s *AuthUsecaseTestSuite) TestDeleteUser_IsSoft() {
	s.repo.On("Update", mock.Anything, "65f0c0ffee0000000000beef", bson.M{"isDeleted": true}).Return(&model.User{}, nil)
	s.NoError(s.usecase.DeleteUser(context.Background(), "65f0c0ffee0000000000beef"))
}

func TestAuthUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(AuthUsecaseTestSuite))
}

func TestBasicAuthHeader(t *testing.T) {
	header := usecase.BasicAuthHeader("a@b.io", "pw")
	require.True(t, strings.HasPrefix(header, "Basic "))
	assert.Equal(t, "Basic YUBiLmlvOnB3", header)
}
