package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoweb "github.com/Axelresells/AxelScale-Formacion/apps/web/echo"
	"github.com/Axelresells/AxelScale-Formacion/core"
	"github.com/Axelresells/AxelScale-Formacion/core/course"
	"github.com/Axelresells/AxelScale-Formacion/core/subscription"
	"github.com/Axelresells/AxelScale-Formacion/core/user"
	appfs "github.com/Axelresells/AxelScale-Formacion/fs"
	emailsvc "github.com/Axelresells/AxelScale-Formacion/services/email"
	logsvc "github.com/Axelresells/AxelScale-Formacion/services/logger"
	"github.com/Axelresells/AxelScale-Formacion/storage/database"
	inmemdb "github.com/Axelresells/AxelScale-Formacion/storage/database/inmem"
	sqlxrepos "github.com/Axelresells/AxelScale-Formacion/storage/database/sqlx"
)

type repositories struct {
	usrRepo user.Repository
	subRepo subscription.Repository
	close   func() error
}

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zapLogger, err := logsvc.NewZapLogger(conf, "WEB")
	if err != nil {
		log.Fatalf("building zap logger: %v", err)
	}
	logger := logsvc.NewRollbarLogger(zapLogger, conf)
	logger.Enable(!conf.Debug)
	defer logger.Sync()

	dbLogger := logsvc.NewRollbarLogger(zapLogger.Named("DB"), conf)

	// set up DB
	repos, err := setUpRepositories(context.Background(), conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = repos.close(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(repos.usrRepo, mailSvc, conf)
	subSvc := subscription.NewService(repos.subRepo)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	core.ParseEmailTemplates(logger, !conf.Debug)

	catalog, err := course.LoadCatalog(appfs.FS, course.CatalogPath)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading course catalog: %v", err), err)
	}
	logger.Info("course catalog loaded", map[string]interface{}{
		"modules": len(catalog.Modules()), "lessons": catalog.LessonCount(),
	})

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("db_engine").Set(conf.Database.Engine)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start Web Service

	server, err := echoweb.NewServer(
		echoweb.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			SubSvc:     subSvc,
			Catalog:    catalog,
			Validate:   validate,
			Translator: translator,
		},
	)
	if err != nil {
		logger.Fatal(fmt.Sprintf("building server: %v", err), err)
	}

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig), map[string]interface{}{"signal": sig.String()})

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpRepositories picks the storage engine. "inmem" keeps everything in process memory
// and is meant for local demos only.
func setUpRepositories(ctx context.Context, conf *core.Config) (repositories, error) {
	if conf.Database.Engine == "inmem" {
		db := inmemdb.NewDB()
		return repositories{
			usrRepo: inmemdb.NewUserRepository(db),
			subRepo: inmemdb.NewSubscriptionRepository(db),
			close:   func() error { return nil },
		}, nil
	}

	db, err := setUpDB(ctx, conf)
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		usrRepo: sqlxrepos.NewUserRepository(db),
		subRepo: sqlxrepos.NewSubscriptionRepository(db),
		close:   db.Close,
	}, nil
}

func setUpDB(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
