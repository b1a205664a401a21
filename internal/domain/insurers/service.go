package insurers

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListInsurers(ctx context.Context) ([]Insurer, error) {
	return s.repo.ListInsurers(ctx)
}

func (s *Service) GetInsurer(ctx context.Context, id int64) (*Insurer, error) {
	return s.repo.GetInsurer(ctx, id)
}

func (s *Service) CreateInsurer(ctx context.Context, input InsurerInput) (*Insurer, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInsurer)
	}
	if err := s.ensureNameFree(ctx, input.Name, 0); err != nil {
		return nil, err
	}

	insurer := Insurer{Name: input.Name, Phone: input.Phone, Website: input.Website}
	if err := s.repo.CreateInsurer(ctx, &insurer); err != nil {
		return nil, err
	}
	return &insurer, nil
}

func (s *Service) UpdateInsurer(ctx context.Context, id int64, input InsurerInput) (*Insurer, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInsurer)
	}

	insurer, err := s.repo.GetInsurer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, input.Name, id); err != nil {
		return nil, err
	}

	insurer.Name = input.Name
	insurer.Phone = input.Phone
	insurer.Website = input.Website
	if err := s.repo.UpdateInsurer(ctx, insurer); err != nil {
		return nil, err
	}
	return insurer, nil
}

func (s *Service) DeleteInsurer(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteInsurer(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInsurerNotFound
	}
	return nil
}

func (s *Service) ensureNameFree(ctx context.Context, name string, excludeID int64) error {
	count, err := s.repo.CountInsurersByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInsurerNameTaken
	}
	return nil
}
