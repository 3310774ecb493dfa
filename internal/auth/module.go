package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/schoolist/schoolist/internal/auth/inbound"
	"github.com/schoolist/schoolist/internal/auth/outbound/db"
	"github.com/schoolist/schoolist/internal/auth/outbound/mq"
	"github.com/schoolist/schoolist/internal/auth/usecase"
	"github.com/schoolist/schoolist/internal/pkg/clock"
	"github.com/schoolist/schoolist/internal/pkg/config"
	"github.com/schoolist/schoolist/internal/pkg/goroutine"
	"github.com/schoolist/schoolist/internal/pkg/hash"
	"github.com/schoolist/schoolist/internal/pkg/instrument"
	"github.com/schoolist/schoolist/internal/pkg/mail"
	"github.com/schoolist/schoolist/internal/pkg/messaging"
	"github.com/schoolist/schoolist/internal/pkg/otp"
	"github.com/schoolist/schoolist/internal/pkg/ratelimit"
	"github.com/schoolist/schoolist/internal/pkg/router"
	"github.com/schoolist/schoolist/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	issueLimiter := ratelimit.NewFixedWindow(
		dep.CacheConn,
		"otp:issue",
		dep.Config.GetInt64("modules.auth.issue_limit_max"),
		dep.Config.GetMinute("modules.auth.issue_limit_window_minutes"),
	)
	verifyLimiter := ratelimit.NewFixedWindow(
		dep.CacheConn,
		"otp:verify",
		dep.Config.GetInt64("modules.auth.verify_limit_max"),
		dep.Config.GetMinute("modules.auth.verify_limit_window_minutes"),
	)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Mail:          dep.Mail,
		Bcrypt:        dep.Bcrypt,
		OTP:           dep.OTP,
		Clock:         dep.Clock,
		IssueLimiter:  issueLimiter,
		VerifyLimiter: verifyLimiter,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
