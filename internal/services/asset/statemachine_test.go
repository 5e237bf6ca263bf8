package asset

import (
	"errors"
	"testing"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/3Eeeecho/go-mediavault/internal/pkg/xerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionGrid(t *testing.T) {
	allowed := map[[2]models.FileStatus]bool{
		{models.StatusUploading, models.StatusProcessing}:        true,
		{models.StatusUploading, models.StatusReady}:             true,
		{models.StatusUploading, models.StatusDeleted}:           true,
		{models.StatusProcessing, models.StatusReady}:            true,
		{models.StatusProcessing, models.StatusProcessingFailed}: true,
		{models.StatusProcessing, models.StatusDeleted}:          true,
		{models.StatusReady, models.StatusProcessing}:            true,
		{models.StatusReady, models.StatusDeleted}:               true,
		{models.StatusProcessingFailed, models.StatusProcessing}: true,
		{models.StatusProcessingFailed, models.StatusDeleted}:    true,
	}

	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			want := allowed[[2]models.FileStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransition(models.StatusReady, models.StatusUploading))
	assert.False(t, CanTransition(models.StatusDeleted, models.StatusReady))
}

func TestApplyReturnsCopy(t *testing.T) {
	original := models.File{ID: "f1", Status: models.StatusUploading}

	updated, err := Apply(original, models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)
	assert.Equal(t, models.StatusUploading, original.Status)
}

func TestApplyRejectsWithTypedError(t *testing.T) {
	_, err := Apply(models.File{Status: models.StatusDeleted}, models.StatusReady)
	require.Error(t, err)
	assert.ErrorIs(t, err, xerr.ErrInvalidTransition)

	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, models.StatusDeleted, te.From)
	assert.Equal(t, models.StatusReady, te.To)
}
