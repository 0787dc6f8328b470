package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/dto"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/repository"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidAmount   = errors.New("payment amount must be positive")
)

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	List(ctx context.Context, limit, offset int) ([]*models.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error
}

var _ PaymentStore = (*repository.PaymentRepository)(nil)

type PaymentService struct {
	store        PaymentStore
	applications ApplicationStore
	logger       *zap.Logger
}

func NewPaymentService(store PaymentStore, applications ApplicationStore, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		store:        store,
		applications: applications,
		logger:       logger,
	}
}

func (s *PaymentService) Create(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	applicationID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return nil, ErrApplicationNotFound
	}
	if _, err := s.applications.GetByID(ctx, applicationID); err != nil {
		return nil, ErrApplicationNotFound
	}

	var paymentDate *time.Time
	if req.PaymentDate != "" {
		t, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return nil, err
		}
		paymentDate = &t
	}

	now := time.Now()
	payment := &models.Payment{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		Amount:        req.Amount,
		PaymentType:   req.PaymentType,
		PaymentDate:   paymentDate,
		Description:   req.Description,
		Status:        models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("id", payment.ID.String()),
		zap.String("application_id", applicationID.String()),
		zap.Float64("amount", payment.Amount))

	return paymentToResponse(payment), nil
}

// Approve marks the payment approved and moves its application along.
func (s *PaymentService) Approve(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	payment, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	if err := s.store.UpdateStatus(ctx, id, models.PaymentApproved); err != nil {
		return nil, err
	}
	if err := s.applications.UpdateStatus(ctx, payment.ApplicationID, models.ApplicationApproved); err != nil {
		return nil, err
	}

	payment.Status = models.PaymentApproved
	return paymentToResponse(payment), nil
}

func (s *PaymentService) List(ctx context.Context, limit, offset int) ([]*dto.PaymentResponse, error) {
	payments, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, paymentToResponse(p))
	}
	return responses, nil
}

func paymentToResponse(p *models.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:            p.ID.String(),
		ApplicationID: p.ApplicationID.String(),
		Amount:        p.Amount,
		PaymentType:   p.PaymentType,
		Description:   p.Description,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	if p.PaymentDate != nil {
		resp.PaymentDate = p.PaymentDate.Format("2006-01-02")
	}
	return resp
}
