package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lorencia/portal/internal/config"
	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/internal/utils"
	"github.com/lorencia/portal/models"
)

var (
	usernameRe      = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe         = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	passwordLowerRe = regexp.MustCompile(`[a-z]`)
	passwordUpperRe = regexp.MustCompile(`[A-Z]`)
	passwordDigitRe = regexp.MustCompile(`\d`)
)

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
}

// LoginResult is everything the handler needs to establish a signed-in
// browser session: the account itself, the JWT for the auth-token cookie
// and the server-side session record for the session-id cookie.
type LoginResult struct {
	User    models.User
	Token   models.Token
	Session models.Session
}

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification and the
// dual cookie session model (signed JWT plus a revocable server-side
// session row).
type authService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository

	site  *siteconfig.Store
	email EmailSender
	uuid  *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// sessionDuration controls both the JWT lifetime and the session row
	// expiry. The two always move together.
	sessionDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, sessions store.SessionRepository, site *siteconfig.Store, email EmailSender, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    users,
		sessionRepository: sessions,
		site:              site,
		email:             email,
		uuid:              utils.NewUUIDGenerator(),
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		sessionDuration:   cfg.SessionDuration,
		logger:            logger,
	}
}

// Register creates a new game account.
//
// It validates every form field, hashes the password with bcrypt and
// delegates persistence to the UserRepository. A welcome email is sent
// on success, best effort.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrRegistrationDisabled when the site has registration turned off.
//   - A *ValidationError (unwrapping to ErrInvalidDataProvided) listing
//     every malformed field.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameAlreadyExists).
func (a *authService) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if !a.site.Snapshot().General.AllowRegistration {
		return models.User{}, ErrRegistrationDisabled
	}

	if err := validateRegisterRequest(req); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("invalid registration data")
		return models.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Username:         req.Username,
		Email:            req.Email,
		PasswordHash:     string(hashed),
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		Role:             models.RoleUser,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.email.SendWelcome(ctx, registeredUser.Email, registeredUser.Username)

	return registeredUser, nil
}

func validateRegisterRequest(req RegisterRequest) error {
	fields := map[string]string{}

	if len(req.Username) < 4 {
		fields["username"] = "username must be at least 4 characters"
	} else if !usernameRe.MatchString(req.Username) {
		fields["username"] = "username can only contain letters, numbers, and underscores"
	}

	if !emailRe.MatchString(req.Email) {
		fields["email"] = "invalid email address"
	}

	switch {
	case len(req.Password) < 8:
		fields["password"] = "password must be at least 8 characters"
	case !passwordLowerRe.MatchString(req.Password),
		!passwordUpperRe.MatchString(req.Password),
		!passwordDigitRe.MatchString(req.Password):
		fields["password"] = "password must include uppercase, lowercase, and numbers"
	}

	if req.SecurityQuestion == "" {
		fields["securityQuestion"] = "security question is required"
	}
	if req.SecurityAnswer == "" {
		fields["securityAnswer"] = "security answer is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Login authenticates an existing account and opens a session.
//
// Lookup failures and password mismatches both collapse into
// ErrInvalidCredentials so the response never reveals whether the
// username exists.
func (a *authService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Error().Int64("id", user.ID).Str("username", user.Username).Msg("wrong password")
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := a.userRepository.TouchLastLogin(ctx, user.ID); err != nil {
		log.Err(err).Int64("id", user.ID).Msg("last login update failed")
	}

	session, err := a.sessionRepository.CreateSession(ctx, a.uuid.Generate(), user.ID, time.Now().Add(a.sessionDuration))
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("session creation failed")
		return LoginResult{}, fmt.Errorf("session creation failed: %w", err)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.sessionDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("token generation failed")
		return LoginResult{}, fmt.Errorf("token generation failed: %w", err)
	}

	return LoginResult{User: user, Token: token, Session: session}, nil
}

// Logout revokes the server-side session. A missing session is not an
// error: the cookies are cleared either way.
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return a.sessionRepository.DeleteSession(ctx, sessionID)
}

// Authenticate verifies both halves of the session cookie pair: the JWT
// must parse and carry a valid issuer, and the session row must exist,
// belong to the token's subject and not be expired. Any failure collapses
// into ErrTokenIsExpiredOrInvalid.
func (a *authService) Authenticate(ctx context.Context, tokenString, sessionID string) (models.User, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" || sessionID == "" {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Err(err).Msg("token validation failed")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	userID, err := token.GetUserID()
	if err != nil {
		log.Err(err).Msg("token subject extraction failed")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	if _, err := a.sessionRepository.FindLiveSession(ctx, sessionID, userID); err != nil {
		log.Err(err).Int64("userID", userID).Msg("live session lookup failed")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("user lookup failed")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	return user, nil
}
