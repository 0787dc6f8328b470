package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/dekont"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/dto"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/validation"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/config"
)

type fakeApplicationStore struct {
	byID    map[uuid.UUID]*models.Application
	deleted []uuid.UUID
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{byID: make(map[uuid.UUID]*models.Application)}
}

func (f *fakeApplicationStore) Create(_ context.Context, app *models.Application) error {
	f.byID[app.ID] = app
	return nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	app, ok := f.byID[id]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeApplicationStore) List(context.Context, int, int) ([]*models.Application, error) {
	var out []*models.Application
	for _, app := range f.byID {
		out = append(out, app)
	}
	return out, nil
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	app, ok := f.byID[id]
	if !ok {
		return ErrApplicationNotFound
	}
	app.Status = status
	return nil
}

func (f *fakeApplicationStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestApplicationService(t *testing.T, store *fakeApplicationStore) *ApplicationService {
	t.Helper()
	logger := zap.NewNop()
	analyzer := dekont.NewAnalyzer(&stubExtractor{}, dekont.NewAIExtractor(nil, time.Second, logger), logger)
	dekonts := NewDekontService(analyzer, newFakeDekontStore(), logger)
	uploadCfg := config.UploadConfig{Dir: t.TempDir(), MaxFileSize: 1 << 20}
	return NewApplicationService(store, dekonts, uploadCfg, logger)
}

func validSubmitRequest() *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		FirstName:   "Ahmet",
		LastName:    "Yılmaz",
		Phone:       "0532 123 45 67",
		Email:       "ahmet@example.com",
		BirthDate:   "1995-03-20",
		Gender:      "erkek",
		Address:     "İstanbul",
		CourseLevel: "B1",
	}
}

func TestApplicationService_Submit(t *testing.T) {
	store := newFakeApplicationStore()
	svc := newTestApplicationService(t, store)

	resp, err := svc.Submit(context.Background(), validSubmitRequest(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Ahmet", resp.FirstName)
	assert.Equal(t, string(models.ApplicationPending), resp.Status)
	assert.Equal(t, "1995-03-20", resp.BirthDate)
	assert.Len(t, store.byID, 1)
}

func TestApplicationService_Submit_ValidationFailures(t *testing.T) {
	svc := newTestApplicationService(t, newFakeApplicationStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *dto.SubmitApplicationRequest)
		wantErr error
	}{
		{
			name:    "bad first name",
			mutate:  func(r *dto.SubmitApplicationRequest) { r.FirstName = "X9" },
			wantErr: validation.ErrInvalidName,
		},
		{
			name:    "bad phone",
			mutate:  func(r *dto.SubmitApplicationRequest) { r.Phone = "12345" },
			wantErr: validation.ErrInvalidPhone,
		},
		{
			name:    "bad email",
			mutate:  func(r *dto.SubmitApplicationRequest) { r.Email = "eposta" },
			wantErr: validation.ErrInvalidEmail,
		},
		{
			name:    "bad birth date",
			mutate:  func(r *dto.SubmitApplicationRequest) { r.BirthDate = "20/03/1995" },
			wantErr: validation.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmitRequest()
			tt.mutate(req)
			_, err := svc.Submit(ctx, req, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplicationService_Delete(t *testing.T) {
	store := newFakeApplicationStore()
	svc := newTestApplicationService(t, store)
	ctx := context.Background()

	resp, err := svc.Submit(ctx, validSubmitRequest(), nil)
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, svc.Delete(ctx, id))
	assert.Empty(t, store.byID)

	assert.ErrorIs(t, svc.Delete(ctx, id), ErrApplicationNotFound)
}
