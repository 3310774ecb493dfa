package usecase

import (
	"context"
	"log/slog"

	"github.com/schoolist/schoolist/internal/pkg/config"
	"github.com/schoolist/schoolist/internal/pkg/goroutine"
	"github.com/schoolist/schoolist/internal/pkg/instrument"
	"github.com/schoolist/schoolist/internal/pkg/storage"
	"github.com/schoolist/schoolist/internal/pkg/uid"
	"github.com/schoolist/schoolist/internal/pkg/validator"
	"github.com/schoolist/schoolist/internal/school/entity"
	"go.opentelemetry.io/otel/trace"
)

// SchoolEvent is an audit record published after a directory mutation.
type SchoolEvent struct {
	SchoolID int64
	Name     string
	Action   string
}

type repoMessaging interface {
	PublishSchoolEvent(ctx context.Context, msg SchoolEvent) error
}

type repoDB interface {
	ListSchools(ctx context.Context) ([]entity.School, error)
	// SeedSchools inserts the starter set, skipping rows that already exist.
	SeedSchools(ctx context.Context, schools []entity.School) error
	CreateSchool(ctx context.Context, school entity.School) error
	// DeleteSchool returns goerror.ErrNotFound when no row matches id.
	DeleteSchool(ctx context.Context, id int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	uid           uid.NumberID
	uuid          uid.StringID
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	UID           uid.NumberID
	UUID          uid.StringID
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		uid:           dep.UID,
		uuid:          dep.UUID,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("school.usecase").Start(ctx, name)
}

// publishSchoolEvent is fire-and-forget: failures are logged, never surfaced.
func (s *Usecase) publishSchoolEvent(ctx context.Context, id int64, name, action string) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		err := s.repoMessaging.PublishSchoolEvent(ctx, SchoolEvent{
			SchoolID: id,
			Name:     name,
			Action:   action,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to publish school event", "school_id", id, "action", action, "error", err)
		}
		return nil
	})
}
