package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"surety/internal/db/dbtest"
	assetsdomain "surety/internal/domain/assets"
)

func TestAssetLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLite(dbtest.Open(t))

	details := `{"brand":"BYD","year":2022}`
	asset := &assetsdomain.Asset{Type: assetsdomain.TypeVehicle, Name: "Family car", Identifier: "A12345", Details: &details}
	require.NoError(t, repo.CreateAsset(ctx, asset))

	got, err := repo.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Details)
	assert.JSONEq(t, details, *got.Details)
	assert.Nil(t, got.OwnerID)

	deleted, err := repo.DeleteAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetAsset(ctx, asset.ID)
	assert.ErrorIs(t, err, assetsdomain.ErrAssetNotFound)
}
