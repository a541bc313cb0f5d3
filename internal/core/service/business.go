package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"map2map-portal/internal/core/domain/business"
	"map2map-portal/internal/core/ports"
)

type BusinessService struct {
	repo ports.BusinessRepository
}

func NewBusinessService(repo ports.BusinessRepository) *BusinessService {
	return &BusinessService{repo: repo}
}

func (s *BusinessService) ForUser(ctx context.Context, userID string) (*business.Business, error) {
	ctx, span := tracer.Start(ctx, "BusinessService.ForUser", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	b, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	return &b, nil
}
