package app

import (
	"log/slog"
	"os"

	"github.com/schoolist/schoolist/internal/auth"
	"github.com/schoolist/schoolist/internal/school"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			Mail:       a.mail,
			Bcrypt:     a.bcrypt,
			OTP:        a.otp,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.school.enabled") {
		if err := school.New(school.Dependency{
			DBConn:     a.dbConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Messaging:  a.messaging,
			Storage:    a.storage,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module school", "error", err)
			os.Exit(1)
		}
	}
}
