package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAssets(ctx context.Context) ([]Asset, error) {
	return s.repo.ListAssets(ctx)
}

func (s *Service) GetAsset(ctx context.Context, id int64) (*Asset, error) {
	return s.repo.GetAsset(ctx, id)
}

func (s *Service) CreateAsset(ctx context.Context, input AssetInput) (*Asset, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	asset := Asset{}
	applyInput(&asset, input)
	if err := s.repo.CreateAsset(ctx, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *Service) UpdateAsset(ctx context.Context, id int64, input AssetInput) (*Asset, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	asset, err := s.repo.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInput(asset, input)
	if err := s.repo.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Service) DeleteAsset(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteAsset(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAssetNotFound
	}
	return nil
}

// ParseDetails decodes the stored details document. Invalid or empty text
// yields nil.
func ParseDetails(details *string) any {
	if details == nil || strings.TrimSpace(*details) == "" {
		return nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(*details), &parsed); err != nil {
		return nil
	}
	return parsed
}

func validateInput(input *AssetInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Identifier = strings.TrimSpace(input.Identifier)
	switch input.Type {
	case TypeRealEstate, TypeVehicle:
	default:
		return fmt.Errorf("%w: type must be RealEstate or Vehicle", ErrInvalidAsset)
	}
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidAsset)
	}
	if input.Identifier == "" {
		return fmt.Errorf("%w: identifier is required", ErrInvalidAsset)
	}
	if input.Details != nil && *input.Details != "" && !json.Valid([]byte(*input.Details)) {
		return fmt.Errorf("%w: details must be valid JSON", ErrInvalidAsset)
	}
	return nil
}

func applyInput(asset *Asset, input AssetInput) {
	asset.Type = input.Type
	asset.Name = input.Name
	asset.Identifier = input.Identifier
	asset.OwnerID = input.OwnerID
	asset.Details = input.Details
}
