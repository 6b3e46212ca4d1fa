package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

// addUserAction creates a user or updates their role.
func (cl *commandLine) addUserAction(c *cli.Context) error {
	email := c.String("email")
	if err := cl.validate.Var(email, "email"); err != nil {
		return errors.Errorf("invalid email %q", email)
	}
	role := user.RoleUser
	if c.Bool("admin") {
		role = user.RoleAdmin
	}

	usr, created, err := cl.usrSvc.Upsert(c.Context, email, role)
	if err != nil {
		return err
	}
	if created {
		cl.printf("user %s created (%s)\n", usr.Email, usr.Role)
	} else {
		cl.printf("user %s updated (%s)\n", usr.Email, usr.Role)
	}
	return nil
}
