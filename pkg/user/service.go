package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gosimple/slug"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/email"
	"github.com/eventforge/eventforge/pkg/message"
	"github.com/eventforge/eventforge/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(
	logger *slog.Logger,
	repository userRepository,
	verificationService verificationService,
	tokenService tokenService,
	publisher publisher,
) *Service {
	return &Service{
		logger:              logger,
		repository:          repository,
		verificationService: verificationService,
		tokenService:        tokenService,
		publisher:           publisher,
		encoder:             argon2Encoder{},
	}
}

type userRepository interface {
	save(ctx context.Context, user *model.User) error
	create(ctx context.Context, user *model.User) error
	existsByEmail(ctx context.Context, email string) (bool, error)
	existsOrganisationByName(ctx context.Context, name string) (bool, error)
	findAll(ctx context.Context) ([]*model.User, error)
	findByEmail(ctx context.Context, email string) (*model.User, error)
	findById(ctx context.Context, id uint) (*model.User, error)
	findOrCreate(ctx context.Context, user *model.User) (*model.User, error)
	delete(ctx context.Context, id uint) error
}

type verificationService interface {
	Save(ctx context.Context, user *model.User, value string, tokenType string) (*model.VerificationToken, error)
	FindValid(ctx context.Context, value string, tokenType string, invalidMessage string) (*model.VerificationToken, error)
	Delete(ctx context.Context, token *model.VerificationToken) error
}

type tokenService interface {
	ExtractTokenValueFromHeader(header string) (string, error)
	ExtractUsernameFromToken(token string) (string, error)
}

type publisher interface {
	Publish(ctx context.Context, event email.Event) error
}

type passwordEncoder interface {
	Encode(password string) (string, error)
	Matches(password string, encoded string) (bool, error)
	Generate() (string, error)
}

type Service struct {
	logger              *slog.Logger
	repository          userRepository
	verificationService verificationService
	tokenService        tokenService
	publisher           publisher
	encoder             passwordEncoder
}

// RegisterOrganisationRequest holds the account and organisation details submitted on registration.
type RegisterOrganisationRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword  string `json:"confirmPassword" binding:"required"`
	FullName         string `json:"fullName" binding:"required"`
	PhoneNumber      string `json:"phoneNumber"`
	OrganisationName string `json:"organisationName" binding:"required"`
	Bulstat          string `json:"bulstat"`
	Address          string `json:"address"`
	Website          string `json:"website"`
	Facebook         string `json:"facebook"`
	CharityOption    string `json:"charityOption"`
	Purpose          string `json:"purpose"`
}

// ChangePasswordRequest holds the current password and the new one typed twice.
type ChangePasswordRequest struct {
	OldPassword        string `json:"oldPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=8,max=128"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

func (s Service) Save(ctx context.Context, user *model.User) error {
	return s.repository.save(ctx, user)
}

func (s Service) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repository.findByEmail(ctx, email)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repository.findAll(ctx)
}

// GetLoggedUserByToken resolves the user identified by the access token of an Authorization header.
func (s Service) GetLoggedUserByToken(ctx context.Context, authorizationHeader string) (*model.User, error) {
	t, err := s.tokenService.ExtractTokenValueFromHeader(authorizationHeader)
	if err != nil {
		return nil, err
	}

	username, err := s.tokenService.ExtractUsernameFromToken(t)
	if err != nil {
		return nil, err
	}

	return s.repository.findByEmail(ctx, username)
}

// ConfirmEmail enables the account of the verification token and consumes the token.
func (s Service) ConfirmEmail(ctx context.Context, value string) (string, error) {
	verificationToken, err := s.verificationService.FindValid(ctx, value, model.VerificationTokenTypeEmail, message.Get("user.invalidConfirmationLink"))
	if err != nil {
		return "", err
	}

	user := verificationToken.User
	if user == nil {
		user, err = s.repository.findById(ctx, verificationToken.UserID)
		if err != nil {
			return "", err
		}
	}

	user.IsEnabled = true
	if err := s.repository.save(ctx, user); err != nil {
		return "", err
	}

	if err := s.verificationService.Delete(ctx, verificationToken); err != nil {
		return "", err
	}

	return message.Get("user.emailConfirmed"), nil
}

func (s Service) SaveUserVerificationToken(ctx context.Context, user *model.User, value string, tokenType string) error {
	_, err := s.verificationService.Save(ctx, user, value, tokenType)
	return err
}

func (s Service) ChangeAccountPassword(ctx context.Context, authorizationHeader string, request ChangePasswordRequest) (string, error) {
	user, err := s.GetLoggedUserByToken(ctx, authorizationHeader)
	if err != nil {
		if errdef.IsNotFound(err) {
			return "", errdef.NewUnauthorized("user of token not found")
		}
		return "", err
	}

	matches, err := s.encoder.Matches(request.OldPassword, user.Password)
	if err != nil {
		return "", err
	}
	if !matches {
		return "", errdef.NewInvalidPassword("%s", message.Get("user.oldPasswordMismatch"))
	}

	if request.NewPassword != request.ConfirmNewPassword {
		return "", errdef.NewInvalidPassword("%s", message.Get("user.newPasswordsMismatch"))
	}

	hashedPassword, err := s.encoder.Encode(request.NewPassword)
	if err != nil {
		return "", fmt.Errorf("password hashing failed: %v", err)
	}

	user.Password = hashedPassword
	if err := s.repository.save(ctx, user); err != nil {
		return "", err
	}

	return message.Get("user.passwordChanged"), nil
}

// GenerateNewRandomPassword replaces the users password with a random one and consumes the token. The plain
// password is returned so it can be sent to the user.
func (s Service) GenerateNewRandomPassword(ctx context.Context, verificationToken *model.VerificationToken, user *model.User) (string, error) {
	password, hashedPassword, err := s.NewRandomPassword()
	if err != nil {
		return "", err
	}

	if err := s.applyPassword(ctx, verificationToken, user, hashedPassword); err != nil {
		return "", err
	}

	return password, nil
}

// NewRandomPassword returns a generated password and its hash without storing either.
func (s Service) NewRandomPassword() (string, string, error) {
	password, err := s.encoder.Generate()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate password: %v", err)
	}

	hashedPassword, err := s.encoder.Encode(password)
	if err != nil {
		return "", "", fmt.Errorf("password hashing failed: %v", err)
	}

	return password, hashedPassword, nil
}

// ApplyPassword stores hashedPassword for the owner of a password token and consumes the token.
func (s Service) ApplyPassword(ctx context.Context, verificationToken *model.VerificationToken, hashedPassword string) error {
	user := verificationToken.User
	if user == nil {
		var err error
		user, err = s.repository.findById(ctx, verificationToken.UserID)
		if err != nil {
			return err
		}
	}

	return s.applyPassword(ctx, verificationToken, user, hashedPassword)
}

func (s Service) applyPassword(ctx context.Context, verificationToken *model.VerificationToken, user *model.User, hashedPassword string) error {
	user.Password = hashedPassword
	if err := s.repository.save(ctx, user); err != nil {
		return err
	}

	return s.verificationService.Delete(ctx, verificationToken)
}

// RequestPasswordReset mails a reset link to the owner of email. Unknown addresses are accepted silently so the
// endpoint does not reveal which accounts exist.
func (s Service) RequestPasswordReset(ctx context.Context, emailAddress string, applicationURL string) (string, error) {
	user, err := s.repository.findByEmail(ctx, emailAddress)
	if err != nil {
		if errdef.IsNotFound(err) {
			s.logger.InfoContext(ctx, "Password reset requested for unknown email")
			return message.Get("user.passwordResetRequested"), nil
		}
		return "", err
	}

	event := email.PasswordResetEvent{User: user, Email: user.Email, ApplicationURL: applicationURL}
	if err := s.publisher.Publish(ctx, event); err != nil {
		return "", fmt.Errorf("failed to publish password reset event: %v", err)
	}

	return message.Get("user.passwordResetRequested"), nil
}

// ResetPassword checks a password reset token and requests a new password for its owner. The email listener
// generates, mails and stores the password and consumes the token.
func (s Service) ResetPassword(ctx context.Context, value string) (string, error) {
	verificationToken, err := s.verificationService.FindValid(ctx, value, model.VerificationTokenTypePassword, message.Get("user.invalidResetLink"))
	if err != nil {
		return "", err
	}

	event := email.NewPasswordEvent{UserID: verificationToken.UserID, Token: verificationToken.Token}
	if err := s.publisher.Publish(ctx, event); err != nil {
		return "", fmt.Errorf("failed to publish new password event: %v", err)
	}

	return message.Get("user.passwordReset"), nil
}

func (s Service) SetApproveByAdminToTrue(ctx context.Context, id uint) (string, error) {
	return s.updateById(ctx, id, "user.approved", func(user *model.User) {
		user.IsApprovedByAdmin = true
	})
}

func (s Service) LockAccountById(ctx context.Context, id uint) (string, error) {
	return s.updateById(ctx, id, "user.lockedByAdmin", func(user *model.User) {
		user.IsNonLocked = false
	})
}

func (s Service) UnlockAccountById(ctx context.Context, id uint) (string, error) {
	return s.updateById(ctx, id, "user.unlockedByAdmin", func(user *model.User) {
		user.IsNonLocked = true
	})
}

func (s Service) updateById(ctx context.Context, id uint, messageKey string, update func(user *model.User)) (string, error) {
	user, err := s.repository.findById(ctx, id)
	if err != nil {
		if errdef.IsNotFound(err) {
			return "", errdef.NewNotFound("%s", message.Get("user.notFound", id))
		}
		return "", err
	}

	update(user)
	if err := s.repository.save(ctx, user); err != nil {
		return "", err
	}

	return message.Get(messageKey, user.Email), nil
}

// RegisterOrganisation creates an organisation account which has to confirm its email and be approved by an
// administrator before it can sign in.
func (s Service) RegisterOrganisation(ctx context.Context, request RegisterOrganisationRequest, applicationURL string) (*model.User, error) {
	exists, err := s.repository.existsByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errdef.NewDuplicated("%s", message.Get("user.emailTaken", request.Email))
	}

	exists, err = s.repository.existsOrganisationByName(ctx, request.OrganisationName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errdef.NewDuplicated("%s", message.Get("user.organisationNameTaken", request.OrganisationName))
	}

	if request.Password != request.ConfirmPassword {
		return nil, errdef.NewInvalidPassword("%s", message.Get("user.passwordsMismatch"))
	}

	hashedPassword, err := s.encoder.Encode(request.Password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %v", err)
	}

	user := &model.User{
		Email:             request.Email,
		Password:          hashedPassword,
		FullName:          request.FullName,
		PhoneNumber:       request.PhoneNumber,
		Role:              model.RoleOrganisation,
		IsEnabled:         false,
		IsNonLocked:       true,
		IsApprovedByAdmin: false,
		Organisation: &model.Organisation{
			Name:          request.OrganisationName,
			Slug:          slug.Make(request.OrganisationName),
			Bulstat:       request.Bulstat,
			Address:       request.Address,
			Website:       request.Website,
			Facebook:      request.Facebook,
			CharityOption: request.CharityOption,
			Purpose:       request.Purpose,
		},
	}

	if err := s.repository.create(ctx, user); err != nil {
		return nil, err
	}

	event := email.RegistrationCompleteEvent{User: user, Email: user.Email, ApplicationURL: applicationURL}
	if err := s.publisher.Publish(ctx, event); err != nil {
		if deleteErr := s.repository.delete(ctx, user.ID); deleteErr != nil {
			s.logger.ErrorContext(ctx, "Failed to remove unconfirmable user", "userId", user.ID, "error", deleteErr)
		}
		return nil, fmt.Errorf("failed to publish registration event: %v", err)
	}

	return user, nil
}

// SignIn checks the credentials and the account state.
func (s Service) SignIn(ctx context.Context, email string, password string) (*model.User, error) {
	invalidCredentials := message.Get("user.invalidCredentials")

	user, err := s.repository.findByEmail(ctx, email)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewUnauthorized("%s", invalidCredentials)
		}
		return nil, err
	}

	matches, err := s.encoder.Matches(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !matches {
		return nil, errdef.NewUnauthorized("%s", invalidCredentials)
	}

	if !user.IsEnabled {
		return nil, errdef.NewForbidden("%s", message.Get("user.notEnabled"))
	}

	if !user.IsNonLocked {
		return nil, errdef.NewForbidden("%s", message.Get("user.locked"))
	}

	if user.IsOrganisation() && !user.IsApprovedByAdmin {
		return nil, errdef.NewForbidden("%s", message.Get("user.notApproved"))
	}

	return user, nil
}

// FindOrCreate returns the user with given email creating an enabled and approved account with given role if it
// doesn't exist.
func (s Service) FindOrCreate(ctx context.Context, email string, password string, role string) (*model.User, error) {
	hashedPassword, err := s.encoder.Encode(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %v", err)
	}

	user := &model.User{
		Email:             email,
		Password:          hashedPassword,
		Role:              role,
		IsEnabled:         true,
		IsNonLocked:       true,
		IsApprovedByAdmin: true,
	}

	return s.repository.findOrCreate(ctx, user)
}
