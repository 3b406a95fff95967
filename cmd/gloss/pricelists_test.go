package main

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/model"
)

type fakeLoader struct {
	byID   map[int64]*model.Pricelist
	latest *model.Pricelist
}

func (f *fakeLoader) GetPricelist(_ context.Context, id int64) (*model.Pricelist, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeLoader) GetLatestPricelist(_ context.Context) (*model.Pricelist, error) {
	if f.latest == nil {
		return nil, common.ErrNotFound
	}
	return f.latest, nil
}

func TestResolvePricelist(t *testing.T) {
	byID := &model.Pricelist{ID: 7, SalonName: "Salon Piękna"}
	latest := &model.Pricelist{ID: 9, SalonName: "Studio Bella"}
	loader := &fakeLoader{
		byID:   map[int64]*model.Pricelist{7: byID},
		latest: latest,
	}
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	got, err := resolvePricelist(cmd, []string{"7"}, loader)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)

	got, err = resolvePricelist(cmd, nil, loader)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)

	_, err = resolvePricelist(cmd, []string{"42"}, loader)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = resolvePricelist(cmd, []string{"not-a-number"}, loader)
	assert.Error(t, err)
}
