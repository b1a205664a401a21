package insurers

import (
	"context"
	"errors"
	"testing"
)

type fakeInsurerRepo struct {
	insurers map[int64]*Insurer
	nextID   int64
}

func newFakeInsurerRepo() *fakeInsurerRepo {
	return &fakeInsurerRepo{insurers: make(map[int64]*Insurer), nextID: 1}
}

func (r *fakeInsurerRepo) ListInsurers(ctx context.Context) ([]Insurer, error) {
	result := make([]Insurer, 0, len(r.insurers))
	for _, insurer := range r.insurers {
		result = append(result, *insurer)
	}
	return result, nil
}

func (r *fakeInsurerRepo) GetInsurer(ctx context.Context, id int64) (*Insurer, error) {
	insurer, ok := r.insurers[id]
	if !ok {
		return nil, ErrInsurerNotFound
	}
	copied := *insurer
	return &copied, nil
}

func (r *fakeInsurerRepo) CountInsurersByName(ctx context.Context, name string, excludeID int64) (int64, error) {
	var count int64
	for id, insurer := range r.insurers {
		if id != excludeID && insurer.Name == name {
			count++
		}
	}
	return count, nil
}

func (r *fakeInsurerRepo) CreateInsurer(ctx context.Context, insurer *Insurer) error {
	insurer.ID = r.nextID
	r.nextID++
	copied := *insurer
	r.insurers[insurer.ID] = &copied
	return nil
}

func (r *fakeInsurerRepo) UpdateInsurer(ctx context.Context, insurer *Insurer) error {
	copied := *insurer
	r.insurers[insurer.ID] = &copied
	return nil
}

func (r *fakeInsurerRepo) DeleteInsurer(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.insurers[id]; !ok {
		return false, nil
	}
	delete(r.insurers, id)
	return true, nil
}

func TestCreateInsurerRejectsDuplicateName(t *testing.T) {
	service := NewService(newFakeInsurerRepo())
	ctx := context.Background()

	if _, err := service.CreateInsurer(ctx, InsurerInput{Name: "Acme Life"}); err != nil {
		t.Fatalf("create insurer: %v", err)
	}
	_, err := service.CreateInsurer(ctx, InsurerInput{Name: " Acme Life "})
	if !errors.Is(err, ErrInsurerNameTaken) {
		t.Fatalf("expected ErrInsurerNameTaken, got %v", err)
	}
}

func TestCreateInsurerRequiresName(t *testing.T) {
	service := NewService(newFakeInsurerRepo())

	_, err := service.CreateInsurer(context.Background(), InsurerInput{Name: "   "})
	if !errors.Is(err, ErrInvalidInsurer) {
		t.Fatalf("expected ErrInvalidInsurer, got %v", err)
	}
}

func TestUpdateInsurerKeepsOwnName(t *testing.T) {
	service := NewService(newFakeInsurerRepo())
	ctx := context.Background()

	created, err := service.CreateInsurer(ctx, InsurerInput{Name: "Acme Life"})
	if err != nil {
		t.Fatalf("create insurer: %v", err)
	}
	website := "https://acme.example"
	updated, err := service.UpdateInsurer(ctx, created.ID, InsurerInput{Name: "Acme Life", Website: &website})
	if err != nil {
		t.Fatalf("update insurer: %v", err)
	}
	if updated.Website == nil || *updated.Website != website {
		t.Fatalf("unexpected insurer: %+v", updated)
	}
}

func TestUpdateInsurerRejectsOtherName(t *testing.T) {
	service := NewService(newFakeInsurerRepo())
	ctx := context.Background()

	if _, err := service.CreateInsurer(ctx, InsurerInput{Name: "Acme Life"}); err != nil {
		t.Fatalf("create insurer: %v", err)
	}
	second, err := service.CreateInsurer(ctx, InsurerInput{Name: "Beta Mutual"})
	if err != nil {
		t.Fatalf("create insurer: %v", err)
	}
	if _, err := service.UpdateInsurer(ctx, second.ID, InsurerInput{Name: "Acme Life"}); !errors.Is(err, ErrInsurerNameTaken) {
		t.Fatalf("expected ErrInsurerNameTaken, got %v", err)
	}
}

func TestDeleteInsurerNotFound(t *testing.T) {
	service := NewService(newFakeInsurerRepo())

	if err := service.DeleteInsurer(context.Background(), 9); !errors.Is(err, ErrInsurerNotFound) {
		t.Fatalf("expected ErrInsurerNotFound, got %v", err)
	}
}
