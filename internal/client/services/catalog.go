package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/alphastock/internal/client/client"
	"github.com/dmitrijs2005/alphastock/internal/client/models"
)

func itemPath(collection string, id models.ID, sub ...string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: id is required", models.ErrValidation)
	}
	p := collection + "/" + url.PathEscape(string(id))
	for _, s := range sub {
		p += "/" + s
	}
	return p, nil
}

// ProductService manages the product catalog and bills of materials.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id models.ID) (*models.Product, error)
	Create(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	Update(ctx context.Context, id models.ID, req models.ProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id models.ID) error
	Materials(ctx context.Context, id models.ID) ([]models.BOMItem, error)
	UpdateMaterials(ctx context.Context, id models.ID, bom []models.BOMItem) ([]models.BOMItem, error)
}

type productService struct {
	client client.Client
}

func NewProductService(c client.Client) ProductService {
	return &productService{client: c}
}

const productsPath = "/products"

func (s *productService) List(ctx context.Context) ([]models.Product, error) {
	out := []models.Product{}
	if err := s.client.Do(ctx, http.MethodGet, productsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *productService) Get(ctx context.Context, id models.ID) (*models.Product, error) {
	p, err := itemPath(productsPath, id)
	if err != nil {
		return nil, err
	}
	var out models.Product
	if err := s.client.Do(ctx, http.MethodGet, p, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *productService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.Product
	if err := s.client.Do(ctx, http.MethodPost, productsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *productService) Update(ctx context.Context, id models.ID, req models.ProductRequest) (*models.Product, error) {
	p, err := itemPath(productsPath, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.Product
	if err := s.client.Do(ctx, http.MethodPut, p, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *productService) Delete(ctx context.Context, id models.ID) error {
	p, err := itemPath(productsPath, id)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodDelete, p, nil, nil)
}

func (s *productService) Materials(ctx context.Context, id models.ID) ([]models.BOMItem, error) {
	p, err := itemPath(productsPath, id, "materials")
	if err != nil {
		return nil, err
	}
	out := []models.BOMItem{}
	if err := s.client.Do(ctx, http.MethodGet, p, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMaterials replaces the whole BOM of a product.
func (s *productService) UpdateMaterials(ctx context.Context, id models.ID, bom []models.BOMItem) ([]models.BOMItem, error) {
	p, err := itemPath(productsPath, id, "materials")
	if err != nil {
		return nil, err
	}
	reqs, err := models.Requirements(bom)
	if err != nil {
		return nil, err
	}
	out := []models.BOMItem{}
	if err := s.client.Do(ctx, http.MethodPut, p, reqs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RawMaterialService manages raw materials and their stock.
type RawMaterialService interface {
	List(ctx context.Context) ([]models.RawMaterial, error)
	Create(ctx context.Context, req models.RawMaterialRequest) (*models.RawMaterial, error)
	Update(ctx context.Context, id models.ID, req models.RawMaterialRequest) (*models.RawMaterial, error)
	Delete(ctx context.Context, id models.ID) error
}

type rawMaterialService struct {
	client client.Client
}

func NewRawMaterialService(c client.Client) RawMaterialService {
	return &rawMaterialService{client: c}
}

const rawMaterialsPath = "/raw-materials"

func (s *rawMaterialService) List(ctx context.Context) ([]models.RawMaterial, error) {
	out := []models.RawMaterial{}
	if err := s.client.Do(ctx, http.MethodGet, rawMaterialsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *rawMaterialService) Create(ctx context.Context, req models.RawMaterialRequest) (*models.RawMaterial, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.RawMaterial
	if err := s.client.Do(ctx, http.MethodPost, rawMaterialsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *rawMaterialService) Update(ctx context.Context, id models.ID, req models.RawMaterialRequest) (*models.RawMaterial, error) {
	p, err := itemPath(rawMaterialsPath, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.RawMaterial
	if err := s.client.Do(ctx, http.MethodPut, p, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *rawMaterialService) Delete(ctx context.Context, id models.ID) error {
	p, err := itemPath(rawMaterialsPath, id)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodDelete, p, nil, nil)
}

// UnitService manages the unit-of-measure reference data.
type UnitService interface {
	List(ctx context.Context) ([]models.UnitOfMeasure, error)
	Get(ctx context.Context, id models.ID) (*models.UnitOfMeasure, error)
	Create(ctx context.Context, req models.UnitRequest) (*models.UnitOfMeasure, error)
	Update(ctx context.Context, id models.ID, req models.UnitRequest) (*models.UnitOfMeasure, error)
	Delete(ctx context.Context, id models.ID) error
}

type unitService struct {
	client client.Client
}

func NewUnitService(c client.Client) UnitService {
	return &unitService{client: c}
}

const unitsPath = "/units-of-measure"

func (s *unitService) List(ctx context.Context) ([]models.UnitOfMeasure, error) {
	out := []models.UnitOfMeasure{}
	if err := s.client.Do(ctx, http.MethodGet, unitsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *unitService) Get(ctx context.Context, id models.ID) (*models.UnitOfMeasure, error) {
	p, err := itemPath(unitsPath, id)
	if err != nil {
		return nil, err
	}
	var out models.UnitOfMeasure
	if err := s.client.Do(ctx, http.MethodGet, p, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *unitService) Create(ctx context.Context, req models.UnitRequest) (*models.UnitOfMeasure, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.UnitOfMeasure
	if err := s.client.Do(ctx, http.MethodPost, unitsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *unitService) Update(ctx context.Context, id models.ID, req models.UnitRequest) (*models.UnitOfMeasure, error) {
	p, err := itemPath(unitsPath, id)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out models.UnitOfMeasure
	if err := s.client.Do(ctx, http.MethodPut, p, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *unitService) Delete(ctx context.Context, id models.ID) error {
	p, err := itemPath(unitsPath, id)
	if err != nil {
		return err
	}
	return s.client.Do(ctx, http.MethodDelete, p, nil, nil)
}
