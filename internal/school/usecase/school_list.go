package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/school/entity"
)

type SchoolListItem struct {
	ID       int64
	Name     string
	Address  string
	City     string
	State    string
	Contact  string
	Image    string
	ImageURL string
	EmailID  string
}

type SchoolListOutput struct {
	Schools []SchoolListItem
}

// starterSchools is inserted the first time the directory is read while
// empty. Fixed IDs make a concurrent double-seed harmless.
//
//nolint:gochecknoglobals // static seed data
var starterSchools = []entity.School{
	{ID: 1, Name: "Green Valley High School", Address: "12 Hillcrest Road", City: "Pune", State: "Maharashtra", Contact: "9876543210", EmailID: "contact@greenvalley.edu"},
	{ID: 2, Name: "Sunrise Public School", Address: "48 Lakeview Street", City: "Jaipur", State: "Rajasthan", Contact: "9812345678", EmailID: "office@sunrisepublic.edu"},
	{ID: 3, Name: "Riverside Academy", Address: "7 Riverside Avenue", City: "Kochi", State: "Kerala", Contact: "9898989898", EmailID: "hello@riversideacademy.edu"},
}

// SchoolList returns every school; an empty table is seeded with the starter
// set first. Image keys are resolved to presigned URLs when a bucket is
// configured.
func (s *Usecase) SchoolList(ctx context.Context) (*SchoolListOutput, error) {
	ctx, span := s.startSpan(ctx, "SchoolList")
	defer span.End()

	schools, err := s.repoDB.ListSchools(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list schools", "error", err)
		return nil, goerror.NewServer(err)
	}

	if len(schools) == 0 {
		if err := s.repoDB.SeedSchools(ctx, starterSchools); err != nil {
			slog.ErrorContext(ctx, "failed to repo seed schools", "error", err)
			return nil, goerror.NewServer(err)
		}

		schools, err = s.repoDB.ListSchools(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo list schools", "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.school.image_bucket"))
	expiry := s.cfg.GetMinute("modules.school.image_url_ttl_minutes")
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	items := lo.Map(schools, func(sc entity.School, _ int) SchoolListItem {
		item := SchoolListItem{
			ID:      sc.ID,
			Name:    sc.Name,
			Address: sc.Address,
			City:    sc.City,
			State:   sc.State,
			Contact: sc.Contact,
			Image:   sc.Image,
			EmailID: sc.EmailID,
		}

		if bucket != "" && sc.Image != "" {
			url, err := s.storage.PresignGet(ctx, bucket, sc.Image, expiry)
			if err != nil {
				slog.WarnContext(ctx, "failed to presign school image", "school_id", sc.ID, "error", err)
			} else {
				item.ImageURL = url
			}
		}

		return item
	})

	return &SchoolListOutput{Schools: items}, nil
}
