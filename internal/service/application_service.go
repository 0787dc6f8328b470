package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/dto"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/repository"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/validation"
	"github.com/MahmudHudayiTaner/kafka-proje/pkg/config"
)

var ErrApplicationNotFound = errors.New("application not found")

// analysisTimeout bounds the background pipeline run for one upload.
const analysisTimeout = 2 * time.Minute

type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context, limit, offset int) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ ApplicationStore = (*repository.ApplicationRepository)(nil)

// ApplicationService handles the public intake flow: validate the
// form, store the optional receipt upload, create the row, and kick
// off analysis in the background so the applicant never waits on it.
type ApplicationService struct {
	store     ApplicationStore
	dekonts   *DekontService
	uploadCfg config.UploadConfig
	logger    *zap.Logger
}

func NewApplicationService(store ApplicationStore, dekonts *DekontService, uploadCfg config.UploadConfig, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		store:     store,
		dekonts:   dekonts,
		uploadCfg: uploadCfg,
		logger:    logger,
	}
}

func (s *ApplicationService) Submit(ctx context.Context, req *dto.SubmitApplicationRequest, file *multipart.FileHeader) (*dto.ApplicationResponse, error) {
	if err := validation.Name("ad", req.FirstName); err != nil {
		return nil, err
	}
	if err := validation.Name("soyad", req.LastName); err != nil {
		return nil, err
	}
	if err := validation.Phone(req.Phone); err != nil {
		return nil, err
	}
	if err := validation.Email(req.Email); err != nil {
		return nil, err
	}
	birthDate, err := validation.Date(req.BirthDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	app := &models.Application{
		ID:          uuid.New(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		Email:       req.Email,
		BirthDate:   birthDate,
		Gender:      req.Gender,
		Address:     req.Address,
		CourseLevel: req.CourseLevel,
		Status:      models.ApplicationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if file != nil {
		if err := validation.PDFFile(file, s.uploadCfg.MaxFileSize); err != nil {
			return nil, err
		}
		path, err := s.saveUpload(file)
		if err != nil {
			return nil, err
		}
		app.DekontPath = &path
	}

	if err := s.store.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("application created",
		zap.String("id", app.ID.String()),
		zap.Bool("has_dekont", app.DekontPath != nil))

	if app.DekontPath != nil {
		go s.analyzeInBackground(app.ID, *app.DekontPath)
	}

	return applicationToResponse(app), nil
}

// analyzeInBackground runs the pipeline detached from the request
// context. Failures are logged only; the application itself already
// exists and an admin reviews the receipt either way.
func (s *ApplicationService) analyzeInBackground(applicationID uuid.UUID, pdfPath string) {
	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	if _, err := s.dekonts.AnalyzeAndStore(ctx, models.SourceWeb, &applicationID, pdfPath); err != nil {
		s.logger.Warn("background dekont analysis failed",
			zap.String("application_id", applicationID.String()),
			zap.Error(err))
	}
}

func (s *ApplicationService) saveUpload(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.uploadCfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(file.Filename)
	path := filepath.Join(s.uploadCfg.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return path, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ApplicationDetailResponse, error) {
	app, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, ErrApplicationNotFound
	}

	analyses, err := s.dekonts.ListByApplicationID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.ApplicationDetailResponse{
		Application: *applicationToResponse(app),
	}
	for _, a := range analyses {
		detail.Analyses = append(detail.Analyses, *AnalysisToResponse(a))
	}

	return detail, nil
}

func (s *ApplicationService) List(ctx context.Context, limit, offset int) ([]*dto.ApplicationResponse, error) {
	apps, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, applicationToResponse(app))
	}
	return responses, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return ErrApplicationNotFound
	}
	return s.store.UpdateStatus(ctx, id, status)
}

func (s *ApplicationService) Delete(ctx context.Context, id uuid.UUID) error {
	app, err := s.store.GetByID(ctx, id)
	if err != nil {
		return ErrApplicationNotFound
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if app.DekontPath != nil {
		if err := os.Remove(*app.DekontPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove dekont file",
				zap.String("path", *app.DekontPath),
				zap.Error(err))
		}
	}

	return nil
}

func applicationToResponse(app *models.Application) *dto.ApplicationResponse {
	resp := &dto.ApplicationResponse{
		ID:          app.ID.String(),
		FirstName:   app.FirstName,
		LastName:    app.LastName,
		Phone:       app.Phone,
		Email:       app.Email,
		Gender:      app.Gender,
		Address:     app.Address,
		CourseLevel: app.CourseLevel,
		Status:      string(app.Status),
		CreatedAt:   app.CreatedAt.Format(time.RFC3339),
	}
	if app.BirthDate != nil {
		resp.BirthDate = app.BirthDate.Format("2006-01-02")
	}
	if app.DekontPath != nil {
		resp.DekontPath = *app.DekontPath
	}
	return resp
}

// AnalysisToResponse converts a stored analysis row to its API shape.
func AnalysisToResponse(a *models.DekontAnalysis) *dto.DekontAnalysisResponse {
	resp := &dto.DekontAnalysisResponse{
		ID:              a.ID.String(),
		Source:          string(a.Source),
		Amount:          a.Amount,
		AIUsed:          a.AIUsed,
		ConfidenceScore: a.ConfidenceScore,
		ExtractionDate:  a.ExtractionDate.Format(time.RFC3339),
	}
	if a.ApplicationID != nil {
		resp.ApplicationID = a.ApplicationID.String()
	}
	if a.SenderName != nil {
		resp.SenderName = *a.SenderName
	}
	if a.BankName != nil {
		resp.BankName = *a.BankName
	}
	if a.TransactionDate != nil {
		resp.TransactionDate = a.TransactionDate.Format("2006-01-02")
	}
	if a.TransactionTime != nil {
		resp.TransactionTime = *a.TransactionTime
	}
	return resp
}
