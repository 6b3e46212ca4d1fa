package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// grantAction gives a plan to an existing user, extending any subscription that still grants access.
func (cl *commandLine) grantAction(c *cli.Context) error {
	usr, err := cl.usrSvc.GetByEmail(c.Context, c.String("email"))
	if err != nil {
		return err
	}
	sub, err := cl.subSvc.Grant(c.Context, usr.ID, c.String("plan"))
	if err != nil {
		return errors.Wrapf(err, "granting %q", c.String("plan"))
	}
	cl.printf("%s: %s %s until %s\n", usr.Email, sub.Plan, sub.Status, formatDateTime(sub.CurrentPeriodEnd))
	return nil
}
