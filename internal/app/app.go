package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/schoolist/schoolist/internal/pkg/clock"
	"github.com/schoolist/schoolist/internal/pkg/config"
	"github.com/schoolist/schoolist/internal/pkg/goroutine"
	"github.com/schoolist/schoolist/internal/pkg/hash"
	"github.com/schoolist/schoolist/internal/pkg/instrument"
	"github.com/schoolist/schoolist/internal/pkg/mail"
	"github.com/schoolist/schoolist/internal/pkg/messaging"
	"github.com/schoolist/schoolist/internal/pkg/otp"
	"github.com/schoolist/schoolist/internal/pkg/router"
	"github.com/schoolist/schoolist/internal/pkg/storage"
	"github.com/schoolist/schoolist/internal/pkg/uid"
	"github.com/schoolist/schoolist/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	oid       uid.StringID
	otp       otp.Generator

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
