package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Axelresells/AxelScale-Formacion/storage/database"
)

var (
	gooseRunFunc = database.Run // mockable

	errNoDatabase = errors.New("migrate needs the postgres engine")
)

func (cl *commandLine) migrateAction(c *cli.Context) error {
	if c.NArg() == 0 {
		_ = cli.ShowCommandHelp(c, "migrate")
		return errHelp
	}
	if cl.db == nil {
		return errNoDatabase
	}
	args := c.Args().Slice()
	return gooseRunFunc(cl.db, args[0], args[1:]...)
}
