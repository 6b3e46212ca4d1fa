package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

const userColumns = `id, email, name, role, created_at, updated_at, last_login`

type userRow struct {
	ID        string      `db:"id"`
	Email     string      `db:"email"`
	Name      null.String `db:"name"`
	Role      string      `db:"role"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
	LastLogin null.Time   `db:"last_login"`
}

func toUserRow(usr user.User) userRow {
	return userRow{
		ID:        usr.ID,
		Email:     usr.Email,
		Name:      null.NewString(usr.Name, usr.Name != ""),
		Role:      usr.Role,
		CreatedAt: usr.CreatedAt.UTC(),
		UpdatedAt: usr.UpdatedAt.UTC(),
		LastLogin: null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (r userRow) user() user.User {
	usr := user.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name.String,
		Role:      r.Role,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	if r.LastLogin.Valid {
		usr.LastLogin = r.LastLogin.Time.UTC()
	}
	return usr
}

type userRepository struct {
	base
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(exec core.DBExecutor) user.Repository {
	return &userRepository{base{exec: exec}}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.New().String()
	row := toUserRow(usr)
	_, err := repo.namedExec(ctx, repo.getExec(exec),
		`INSERT INTO "user" (`+userColumns+`)
		VALUES (:id, :email, :name, :role, :created_at, :updated_at, :last_login)`, row)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return row.user(), nil
}

// userQuery builds the SELECT matching filter, with "?" placeholders.
func userQuery(filter *user.QueryFilter, ordering []core.DBOrdering) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if filter != nil {
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			where = append(where, "(name ILIKE ? OR email ILIKE ?)")
			args = append(args, val, val)
		}
		if filter.Role != "" {
			where = append(where, "role = ?")
			args = append(args, filter.Role)
		}
	}

	q := `SELECT ` + userColumns + ` FROM "user"`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += orderBy(ordering, user.OrderingFields, "created_at DESC")
	return q, args
}

func (repo userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]user.User, error) {
	q, args := userQuery(filter, ordering)

	var rows []userRow
	if err := repo.selectRows(ctx, repo.getExec(exec), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.user())
	}
	return users, nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	q := `SELECT ` + userColumns + ` FROM "user" WHERE `
	var arg string
	switch {
	case filter.ID != "":
		if _, err := uuid.Parse(filter.ID); err != nil {
			return user.User{}, user.ErrNotFound
		}
		q += "id = ?"
		arg = filter.ID
	case filter.Email != "":
		q += "email = ?"
		arg = filter.Email
	default:
		return user.User{}, user.ErrNotFound
	}

	var rows []userRow
	if err := repo.selectRows(ctx, repo.getExec(exec), &rows, q+" LIMIT 1", arg); err != nil {
		return user.User{}, errors.Wrap(err, "finding user")
	}
	if len(rows) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return rows[0].user(), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	row := toUserRow(usr)
	n, err := repo.namedExec(ctx, repo.getExec(exec),
		`UPDATE "user"
		SET email = :email, name = :name, role = :role, updated_at = :updated_at, last_login = :last_login
		WHERE id = :id`, row)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return row.user(), nil
}

// DeleteUsersByID relies on ON DELETE CASCADE to drop the users' subscriptions.
func (repo userRepository) DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}

	q, args, err := sqlx.In(`DELETE FROM "user" WHERE id IN (?)`, valid)
	if err != nil {
		return 0, errors.Wrap(err, "binding ids")
	}
	res, err := repo.getExec(exec).ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, q), args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting users")
	}
	n, err := res.RowsAffected()
	return int(n), errors.Wrap(err, "counting deleted users")
}
