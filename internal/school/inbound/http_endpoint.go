package inbound

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/samber/lo"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/pkg/router"
	"github.com/schoolist/schoolist/internal/school/usecase"
)

// HTTPEndpoint exposes HTTP handlers for the school directory.
type HTTPEndpoint struct {
	uc uc
}

// List returns every school, seeding the starter set on first read.
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	resp, err := h.uc.SchoolList(r.Context())
	if err != nil {
		return nil, err
	}

	return SchoolListResponse{
		Schools: lo.Map(resp.Schools, func(sc usecase.SchoolListItem, _ int) SchoolData {
			return SchoolData{
				ID:       sc.ID,
				Name:     sc.Name,
				Address:  sc.Address,
				City:     sc.City,
				State:    sc.State,
				Contact:  sc.Contact,
				Image:    sc.Image,
				ImageURL: sc.ImageURL,
				EmailID:  sc.EmailID,
			}
		}),
	}, nil
}

// Add registers a new school.
func (h *HTTPEndpoint) Add(r *router.Request) (any, error) {
	var req AddSchoolRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SchoolAdd(r.Context(), usecase.SchoolAddInput{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Contact: req.Contact,
		Image:   req.Image,
		EmailID: req.EmailID,
	})
	if err != nil {
		return nil, err
	}

	return AddSchoolResponse{ID: resp.ID}, nil
}

// Delete removes a school by id.
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	var req DeleteSchoolRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.SchoolDelete(r.Context(), usecase.SchoolDeleteInput{ID: req.ID}); err != nil {
		return nil, err
	}

	return DeleteSchoolResponse{}, nil
}

// Image stores an uploaded school image and returns its object key.
func (h *HTTPEndpoint) Image(r *router.Request) (any, error) {
	ctx := r.Context()

	file, err := r.StreamSingleFile("image")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, goerror.NewInvalidFormat()
	}

	resp, err := h.uc.SchoolImage(ctx, usecase.SchoolImageInput{
		File:        io.MultiReader(bytes.NewReader(head[:n]), file),
		ContentType: http.DetectContentType(head[:n]),
	})
	if err != nil {
		return nil, err
	}

	return SchoolImageResponse{Image: resp.Key}, nil
}
