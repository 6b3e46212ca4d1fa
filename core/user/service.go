package user

import (
	"context"
	"net/mail"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/Axelresells/AxelScale-Formacion/core"
)

var (
	// errors
	ErrNotFound         = errors.New("user not found")
	ErrEmailExists      = errors.New("a user with this email already exists")
	ErrInvalidLoginLink = errors.New("invalid or expired login link")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		// QueryUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of User.Name or User.Email.
		QueryUsers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]User, error)
		GetUser(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (User, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		repo      Repository
		mailSvc   core.EmailService
		conf      *core.Config
		tokenizer tokenGenerator
	}

	// LoginLinkData feeds the "login_link" email templates.
	LoginLinkData struct {
		Name         string
		Email        string
		URL          string
		ValidMinutes int
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
		tokenizer: tokenGenerator{
			secretKey: []byte(conf.SecretKey),
			timeout:   conf.LoginLinkTimeoutDelta,
		},
	}
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if _, err := svc.repo.GetUser(ctx, GetFilter{Email: nu.Email}); err == nil {
		return User{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if errors.Cause(err) != ErrNotFound {
		return User{}, errors.Wrap(err, "checking email uniqueness")
	}

	now := time.Now().UTC()
	usr := User{
		Email:     nu.Email,
		Name:      nu.Name,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if usr.Role == "" {
		usr.Role = RoleUser
	}
	return svc.repo.CreateUser(ctx, usr)
}

// Upsert creates the user with the given email or updates their role. It reports whether the user was created.
func (svc *Service) Upsert(ctx context.Context, email, role string) (User, bool, error) {
	email = core.CleanString(email, true /* lower */)
	if !core.ContainsString(AllRoles, role) {
		return User{}, false, core.NewValidationError(nil, core.FieldError{Field: "role", Error: "invalid role"})
	}

	usr, err := svc.repo.GetUser(ctx, GetFilter{Email: email})
	switch errors.Cause(err) {
	case nil:
		if usr.Role == role {
			return usr, false, nil
		}
		usr.Role = role
		usr.UpdatedAt = time.Now().UTC()
		usr, err = svc.repo.UpdateUser(ctx, usr)
		return usr, false, errors.Wrap(err, "updating user role")
	case ErrNotFound:
		now := time.Now().UTC()
		usr, err = svc.repo.CreateUser(ctx, User{Email: email, Role: role, CreatedAt: now, UpdatedAt: now})
		if err != nil {
			return User{}, false, errors.Wrap(err, "creating user")
		}
		return usr, true, nil
	default:
		return User{}, false, errors.Wrap(err, "finding user by email")
	}
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]User, error) {
	if filter != nil {
		filter.Clean()
	}
	return svc.repo.QueryUsers(ctx, filter, CleanOrdering(ordering))
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

func (svc *Service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC().Truncate(time.Microsecond)
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) (int, error) {
	return svc.repo.DeleteUsersByID(ctx, ids)
}

// LoginURL builds the one-time login link of the given user.
func (svc *Service) LoginURL(usr User) string {
	q := make(url.Values)
	q.Set("uid", EncodeUID(usr))
	q.Set("token", svc.tokenizer.makeToken(usr))
	return svc.conf.FrontendBaseURL + "/login/verify?" + q.Encode()
}

// RequestLoginLink emails a one-time login link to the user with the given email.
func (svc *Service) RequestLoginLink(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Tu enlace de acceso",
		TemplateName: "login_link",
		TemplateData: LoginLinkData{
			Name:         usr.Name,
			Email:        usr.Email,
			URL:          svc.LoginURL(usr),
			ValidMinutes: int(svc.conf.LoginLinkTimeoutDelta / time.Minute),
		},
	}
	svc.mailSvc.SendMessages(msg)
	return nil
}

// VerifyLogin checks a login link and records the login, which invalidates the link.
func (svc *Service) VerifyLogin(ctx context.Context, uid, token string) (User, error) {
	id, err := decodeUID(uid)
	if err != nil {
		return User{}, ErrInvalidLoginLink
	}

	usr, err := svc.GetByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidLoginLink
		}
		return User{}, errors.Wrap(err, "finding user by ID")
	}

	if err = svc.tokenizer.verifyToken(usr, token); err != nil {
		return User{}, ErrInvalidLoginLink
	}

	usr, err = svc.SetLastLogin(ctx, usr)
	return usr, errors.Wrap(err, "setting lastLogin")
}
