package usecase

import (
	"context"
	"testing"

	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolDelete(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.SchoolAdd(context.Background(), validAddInput(1))
	require.NoError(t, err)

	err = fx.uc.SchoolDelete(context.Background(), SchoolDeleteInput{ID: out.ID})
	require.NoError(t, err)

	schools, err := fx.repo.ListSchools(context.Background())
	require.NoError(t, err)
	assert.Empty(t, schools)

	ev := fx.waitForEvent(t, "deleted")
	assert.Equal(t, out.ID, ev.SchoolID)
}

func TestSchoolDeleteUnknownID(t *testing.T) {
	fx := newFixture(t)

	err := fx.uc.SchoolDelete(context.Background(), SchoolDeleteInput{ID: 9999})
	ge := asGoError(t, err)
	assert.Equal(t, goerror.CodeNotFound, ge.Code())
	assert.Equal(t, "School not found", ge.Msg())
}

func TestSchoolDeleteTwice(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.uc.SchoolAdd(context.Background(), validAddInput(1))
	require.NoError(t, err)

	require.NoError(t, fx.uc.SchoolDelete(context.Background(), SchoolDeleteInput{ID: out.ID}))

	err = fx.uc.SchoolDelete(context.Background(), SchoolDeleteInput{ID: out.ID})
	ge := asGoError(t, err)
	assert.Equal(t, goerror.CodeNotFound, ge.Code())
}

func TestSchoolDeleteInvalidID(t *testing.T) {
	fx := newFixture(t)

	for _, id := range []int64{0, -1} {
		err := fx.uc.SchoolDelete(context.Background(), SchoolDeleteInput{ID: id})
		ge := asGoError(t, err)
		assert.Equal(t, goerror.CodeInvalidInput, ge.Code())
	}
}
