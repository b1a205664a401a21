package members

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListMembers(ctx context.Context) ([]Member, error) {
	return s.repo.ListMembers(ctx)
}

func (s *Service) GetMember(ctx context.Context, id int64) (*Member, error) {
	return s.repo.GetMember(ctx, id)
}

func (s *Service) CreateMember(ctx context.Context, input MemberInput) (*Member, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	member := Member{}
	applyInput(&member, input)
	if err := s.repo.CreateMember(ctx, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Service) UpdateMember(ctx context.Context, id int64, input MemberInput) (*Member, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	member, err := s.repo.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInput(member, input)
	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteMember(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}

func validateInput(input *MemberInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMember)
	}
	switch input.Relation {
	case RelationSelf, RelationSpouse, RelationChild, RelationParent:
	default:
		return fmt.Errorf("%w: relation must be one of Self, Spouse, Child, Parent", ErrInvalidMember)
	}
	if input.Gender != nil && *input.Gender != GenderMale && *input.Gender != GenderFemale {
		return fmt.Errorf("%w: gender must be M or F", ErrInvalidMember)
	}
	for field, value := range map[string]*string{"birthDate": input.BirthDate, "idExpiry": input.IDExpiry} {
		if value == nil || *value == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, *value); err != nil {
			return fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidMember, field)
		}
	}
	return nil
}

func applyInput(member *Member, input MemberInput) {
	member.Name = input.Name
	member.Relation = input.Relation
	member.Gender = input.Gender
	member.BirthDate = input.BirthDate
	member.IDCard = input.IDCard
	member.IDType = input.IDType
	member.IDExpiry = input.IDExpiry
	member.Phone = input.Phone
	member.HasSocialInsurance = input.HasSocialInsurance
}
