package inbound

import (
	"context"

	"github.com/schoolist/schoolist/internal/pkg/router"
	"github.com/schoolist/schoolist/internal/school/usecase"
)

type uc interface {
	SchoolList(ctx context.Context) (*usecase.SchoolListOutput, error)
	SchoolAdd(ctx context.Context, in usecase.SchoolAddInput) (*usecase.SchoolAddOutput, error)
	SchoolDelete(ctx context.Context, in usecase.SchoolDeleteInput) error
	SchoolImage(ctx context.Context, in usecase.SchoolImageInput) (*usecase.SchoolImageOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/schools", end.List)
	r.POST("/api/schools", end.Add)
	r.DELETE("/api/schools", end.Delete)
	r.POST("/api/schools/image", end.Image)
}
