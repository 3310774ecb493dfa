package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/schoolist/schoolist/internal/pkg/config"
	"github.com/schoolist/schoolist/internal/pkg/goerror"
	"github.com/schoolist/schoolist/internal/pkg/goroutine"
	"github.com/schoolist/schoolist/internal/pkg/instrument"
	"github.com/schoolist/schoolist/internal/pkg/storage"
	"github.com/schoolist/schoolist/internal/pkg/validator"
	"github.com/schoolist/schoolist/internal/school/entity"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	schools map[int64]entity.School

	listErr   error
	seedErr   error
	createErr error
	seedCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{schools: make(map[int64]entity.School)}
}

func (r *fakeRepo) ListSchools(context.Context) ([]entity.School, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	out := make([]entity.School, 0, len(r.schools))
	for _, sc := range r.schools {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *fakeRepo) SeedSchools(_ context.Context, schools []entity.School) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seedCalls++
	if r.seedErr != nil {
		return r.seedErr
	}

	for _, sc := range schools {
		if _, ok := r.schools[sc.ID]; ok {
			continue
		}
		r.schools[sc.ID] = sc
	}

	return nil
}

func (r *fakeRepo) CreateSchool(_ context.Context, school entity.School) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	if _, ok := r.schools[school.ID]; ok {
		return goerror.ErrConflict
	}
	r.schools[school.ID] = school

	return nil
}

func (r *fakeRepo) DeleteSchool(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schools[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(r.schools, id)

	return nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []SchoolEvent
}

func (m *fakeMessaging) PublishSchoolEvent(_ context.Context, msg SchoolEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, msg)

	return nil
}

func (m *fakeMessaging) published() []SchoolEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SchoolEvent, len(m.events))
	copy(out, m.events)

	return out
}

type storedObject struct {
	data        []byte
	contentType string
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]storedObject

	putErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]storedObject)}
}

func (s *fakeStorage) Close() error { return nil }

func (s *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	if s.putErr != nil {
		return storage.ObjectInfo{}, s.putErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[bucket+"/"+key] = storedObject{data: data, contentType: opts.ContentType}

	return storage.ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        int64(len(data)),
		ContentType: opts.ContentType,
	}, nil
}

func (s *fakeStorage) GetObject(context.Context, string, string, storage.GetOptions) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, goerror.ErrNotFound
}

func (s *fakeStorage) StatObject(context.Context, string, string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, goerror.ErrNotFound
}

func (s *fakeStorage) DeleteObject(context.Context, string, string) error { return nil }

func (s *fakeStorage) ListObjects(context.Context, string, string, storage.ListOptions) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (s *fakeStorage) PresignGet(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + bucket + "/" + key + "?signed=1", nil
}

func (s *fakeStorage) PresignPut(context.Context, string, string, storage.PutOptions, time.Duration) (string, error) {
	return "", goerror.ErrNotFound
}

func (s *fakeStorage) object(bucket, key string) (storedObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[bucket+"/"+key]

	return obj, ok
}

type seqID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++

	return 100 + s.next
}

type fixedUUID struct {
	value string
}

func (u *fixedUUID) Generate() string { return u.value }

const testConfigYAML = `
modules:
  school:
    image_bucket: schoolist-images
    image_url_ttl_minutes: 15
    image_max_size_bytes: 64
`

type fixture struct {
	uc      *Usecase
	repo    *fakeRepo
	mq      *fakeMessaging
	storage *fakeStorage
	uuid    *fixedUUID
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithConfig(t, testConfigYAML)
}

func newFixtureWithConfig(t *testing.T, yaml string) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	fx := &fixture{
		repo:    newFakeRepo(),
		mq:      &fakeMessaging{},
		storage: newFakeStorage(),
		uuid:    &fixedUUID{value: "7b0e6f68-3f64-4f4e-9a8e-26a0d32f4f1e"},
	}

	fx.uc = New(Dependency{
		RepoDB:        fx.repo,
		RepoMessaging: fx.mq,
		Validator:     v,
		Config:        cfg,
		Storage:       fx.storage,
		UID:           &seqID{},
		UUID:          fx.uuid,
		Instrument:    instrument.NewNoop(),
		Goroutine:     goroutine.NewManager(8),
	})

	return fx
}

func (fx *fixture) waitForEvent(t *testing.T, action string) SchoolEvent {
	t.Helper()

	var got SchoolEvent
	require.Eventually(t, func() bool {
		for _, ev := range fx.mq.published() {
			if ev.Action == action {
				got = ev
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	return got
}

func asGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)

	return ge
}

func validAddInput(i int) SchoolAddInput {
	return SchoolAddInput{
		Name:    fmt.Sprintf("Test School %d", i),
		Address: fmt.Sprintf("%d Test Lane", i),
		City:    "Pune",
		State:   "Maharashtra",
		Contact: "9876543210",
		EmailID: fmt.Sprintf("school%d@test.edu", i),
	}
}
