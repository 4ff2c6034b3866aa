package ingestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDemoLoaderLoad(t *testing.T) {
	records, err := NewDemoLoader().Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, records)
	for _, r := range records {
		require.NotEmpty(t, r.Names)
		require.NotEmpty(t, r.Country)
	}
}

func TestDemoLoaderRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDemoLoader().Load(ctx)
	require.Error(t, err)
}
