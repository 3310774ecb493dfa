package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/schoolist/schoolist/internal/pkg/goerror"
)

type SchoolDeleteInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) SchoolDelete(ctx context.Context, in SchoolDeleteInput) error {
	ctx, span := s.startSpan(ctx, "SchoolDelete")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.DeleteSchool(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("School not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete school", "school_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.publishSchoolEvent(ctx, in.ID, "", "deleted")

	return nil
}
