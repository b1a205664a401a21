package insurers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"surety/internal/db/dbtest"
	insurersdomain "surety/internal/domain/insurers"
)

func TestInsurerUniqueName(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLite(dbtest.Open(t))

	first := &insurersdomain.Insurer{Name: "Ping An"}
	require.NoError(t, repo.CreateInsurer(ctx, first))

	err := repo.CreateInsurer(ctx, &insurersdomain.Insurer{Name: "Ping An"})
	assert.ErrorIs(t, err, insurersdomain.ErrInsurerNameTaken)

	count, err := repo.CountInsurersByName(ctx, "Ping An", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = repo.CountInsurersByName(ctx, "Ping An", first.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInsurerListOrderedByName(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLite(dbtest.Open(t))

	for _, name := range []string{"Taikang", "AIA", "China Life"} {
		require.NoError(t, repo.CreateInsurer(ctx, &insurersdomain.Insurer{Name: name}))
	}

	list, err := repo.ListInsurers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "AIA", list[0].Name)
	assert.Equal(t, "China Life", list[1].Name)
	assert.Equal(t, "Taikang", list[2].Name)

	_, err = repo.GetInsurer(ctx, 999)
	assert.ErrorIs(t, err, insurersdomain.ErrInsurerNotFound)
}
