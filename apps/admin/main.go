package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
	emailsvc "github.com/Axelresells/AxelScale-Formacion/services/email"
	logsvc "github.com/Axelresells/AxelScale-Formacion/services/logger"
	"github.com/Axelresells/AxelScale-Formacion/storage/database"
	inmemdb "github.com/Axelresells/AxelScale-Formacion/storage/database/inmem"
	sqlxrepos "github.com/Axelresells/AxelScale-Formacion/storage/database/sqlx"
)

func main() {
	os.Exit(start())
}

func start() int {
	conf := core.NewConfig()

	zapLogger, err := logsvc.NewZapLogger(conf, "ADMIN")
	if err != nil {
		log.Printf("building zap logger: %v", err)
		return 1
	}
	logger := logsvc.NewRollbarLogger(zapLogger, conf)
	logger.Enable(false)
	defer logger.Sync()

	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	cl := &commandLine{
		conf:     conf,
		validate: validate,
		out:      os.Stdout,
	}
	mailSvc := emailsvc.NewConsoleService(conf, logger)

	// set up DB
	if conf.Database.Engine == "inmem" {
		db := inmemdb.NewDB()
		cl.usrSvc = user.NewService(inmemdb.NewUserRepository(db), mailSvc, conf)
		cl.subSvc = subscription.NewService(inmemdb.NewSubscriptionRepository(db))
	} else {
		db, err := openDB(conf)
		if err != nil {
			logger.Error(fmt.Sprintf("opening database: %v", err), err)
			return 1
		}
		defer db.Close()

		cl.db = db
		cl.usrSvc = user.NewService(sqlxrepos.NewUserRepository(db), mailSvc, conf)
		cl.subSvc = subscription.NewService(sqlxrepos.NewSubscriptionRepository(db))
	}

	// start CLI
	if err := cl.run(os.Args); err != nil {
		if err != errHelp && err != errSeedFailed {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		return 1
	}
	return 0
}

func openDB(conf *core.Config) (*sql.DB, error) {
	ctx := context.Background()
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, err
	}
	db, err := database.Open(ctx, conf)
	if err != nil {
		return nil, err
	}
	return db.DB, nil
}
