package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/alphastock/internal/client/client"
	"github.com/dmitrijs2005/alphastock/internal/client/models"
)

// ProductionService reads the production suggestions computed by the server.
type ProductionService interface {
	Suggest(ctx context.Context) (*models.ProductionPlan, error)
}

type productionService struct {
	client client.Client
}

func NewProductionService(c client.Client) ProductionService {
	return &productionService{client: c}
}

func (s *productionService) Suggest(ctx context.Context) (*models.ProductionPlan, error) {
	var raw json.RawMessage
	if err := s.client.Do(ctx, http.MethodGet, "/production/suggestions", nil, &raw); err != nil {
		return nil, err
	}
	plan, err := models.NormalizeProductionPlan(raw)
	if err != nil {
		return nil, &client.APIError{Message: client.ErrInvalidResponse.Error(), Status: http.StatusOK, Err: fmt.Errorf("%w: %v", client.ErrInvalidResponse, err)}
	}
	return plan, nil
}
