package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Axelresells/AxelScale-Formacion/core"
)

// Roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var (
	AllRoles = []string{RoleUser, RoleAdmin}

	Roles = []Role{
		{Name: "Alumno", Value: RoleUser},
		{Name: "Admin", Value: RoleAdmin},
	}

	// OrderingFields are the fields users can be sorted by.
	OrderingFields = []string{"email", "name", "role", "created_at", "updated_at", "last_login"}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
	LastLogin time.Time `json:"last_login"` // UTC
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName is the user's name, or their email when no name was set.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email string `json:"email" form:"email" validate:"required,email,max=254"`
	Name  string `json:"name" form:"name" validate:"max=150"`
	Role  string `json:"role" form:"role" validate:"omitempty,oneof=USER ADMIN"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	nu.Role = core.CleanString(nu.Role)
	if nu.Role == "" {
		nu.Role = RoleUser
	}
	return validate.Struct(nu)
}

// LoginRequest is the payload of the login form.
type LoginRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

type GetFilter struct {
	ID    string
	Email string
}

type QueryFilter struct {
	Search string `query:"search"`
	Role   string `query:"role"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = core.CleanString(qf.Role)
	if qf.Role != "" && !core.ContainsString(AllRoles, qf.Role) {
		qf.Role = ""
	}
}

// CleanOrdering drops orderings on fields users cannot be sorted by.
// Users are listed newest first when nothing valid is left.
func CleanOrdering(ordering []core.DBOrdering) []core.DBOrdering {
	cleaned := make([]core.DBOrdering, 0, len(ordering))
	for _, ord := range ordering {
		if core.ContainsString(OrderingFields, ord.Field) {
			cleaned = append(cleaned, ord)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, core.DBOrdering{Field: "created_at"})
	}
	return cleaned
}
