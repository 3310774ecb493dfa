package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/school/entity"
)

type SchoolAddInput struct {
	Name    string `validate:"required,min=2,max=150"`
	Address string `validate:"required,min=2,max=250"`
	City    string `validate:"required,min=2,max=100,alphaspace"`
	State   string `validate:"required,min=2,max=100,alphaspace"`
	Contact string `validate:"required,len=10,numeric"`
	Image   string `validate:"omitempty,max=250"`
	EmailID string `validate:"required,email"`
}

type SchoolAddOutput struct {
	ID int64
}

func (s *Usecase) SchoolAdd(ctx context.Context, in SchoolAddInput) (*SchoolAddOutput, error) {
	ctx, span := s.startSpan(ctx, "SchoolAdd")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Contact = strings.TrimSpace(in.Contact)
	in.EmailID = strings.TrimSpace(strings.ToLower(in.EmailID))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	school := entity.School{
		ID:      s.uid.Generate(),
		Name:    in.Name,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Contact: in.Contact,
		Image:   in.Image,
		EmailID: in.EmailID,
	}

	if err := s.repoDB.CreateSchool(ctx, school); err != nil {
		slog.ErrorContext(ctx, "failed to repo create school", "name", school.Name, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.publishSchoolEvent(ctx, school.ID, school.Name, "added")

	return &SchoolAddOutput{ID: school.ID}, nil
}
