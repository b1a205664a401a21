package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListSettings(ctx context.Context) ([]Setting, error) {
	return s.repo.ListSettings(ctx)
}

func (s *Service) GetSetting(ctx context.Context, key string) (*Setting, error) {
	return s.repo.GetSetting(ctx, strings.TrimSpace(key))
}

// Lookup returns the value stored under key and whether it exists.
func (s *Service) Lookup(ctx context.Context, key string) (string, bool, error) {
	setting, err := s.repo.GetSetting(ctx, key)
	if errors.Is(err, ErrSettingNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

func (s *Service) SetSetting(ctx context.Context, key, value string) (*Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: key is required", ErrInvalidSetting)
	}

	setting := Setting{Key: key, Value: value}
	if err := s.repo.UpsertSetting(ctx, &setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *Service) DeleteSetting(ctx context.Context, key string) error {
	deleted, err := s.repo.DeleteSetting(ctx, strings.TrimSpace(key))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSettingNotFound
	}
	return nil
}
