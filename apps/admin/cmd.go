package main

import (
	"database/sql"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf     *core.Config
	db       *sql.DB // nil with the inmem engine
	usrSvc   *user.Service
	subSvc   *subscription.Service
	validate *validator.Validate
	out      io.Writer
}

func (cl *commandLine) newApp() *cli.App {
	return &cli.App{
		Name:      "admin",
		Usage:     "AxelScale administration tasks",
		Version:   cl.conf.Build,
		Writer:    cl.out,
		ErrWriter: cl.out,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "create or promote the admin user and give them a yearly subscription",
				Action: cl.seedAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "email",
						Usage: "admin email",
						Value: cl.conf.AdminEmail,
					},
				},
			},
			{
				Name:      "migrate",
				Usage:     "run a goose command against the database",
				ArgsUsage: "up | up-by-one | up-to VERSION | down | down-to VERSION | redo | reset | status | version",
				Action:    cl.migrateAction,
			},
			{
				Name:   "grant",
				Usage:  "grant or extend a user's subscription",
				Action: cl.grantAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "user email", Required: true},
					&cli.StringFlag{Name: "plan", Usage: "1month | 3months | 12months", Required: true},
				},
			},
			{
				Name:   "adduser",
				Usage:  "create a user or update their role",
				Action: cl.addUserAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "user email", Required: true},
					&cli.BoolFlag{Name: "admin", Usage: "give the user the ADMIN role"},
				},
			},
		},
	}
}

func (cl *commandLine) run(args []string) error {
	return cl.newApp().Run(args)
}
