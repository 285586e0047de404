package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCertificatePDF(t *testing.T) {
	data, err := RenderCertificatePDF("Ada Lovelace", "Intro to Go", "cert-001", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]), "output must be a PDF document")
}
