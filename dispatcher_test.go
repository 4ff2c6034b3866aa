package climatch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func testDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	return NewDispatcher(testEngine(t))
}

func TestHandleJSONSearchCity(t *testing.T) {
	d := testDispatcher(t)
	out, err := d.HandleJSON(context.Background(), []byte(`{"command":"searchCity","query":"Tokyo"}`))
	require.NoError(t, err)

	var resp citySearchResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.Equal(t, commandSearchCity, resp.Command)
	require.NotEmpty(t, resp.Items)
}

func TestHandleJSONSearchClimate(t *testing.T) {
	d := testDispatcher(t)
	out, err := d.HandleJSON(context.Background(), []byte(`{"command":"searchClimate","cityId":3}`))
	require.NoError(t, err)

	var resp climateSearchResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.Equal(t, commandSearchClimate, resp.Command)
}

func TestHandleJSONRejectsShorthand(t *testing.T) {
	d := testDispatcher(t)
	_, err := d.HandleJSON(context.Background(), []byte("3"))
	require.Error(t, err)
}

func TestHandleJSONRejectsMalformed(t *testing.T) {
	d := testDispatcher(t)
	_, err := d.HandleJSON(context.Background(), []byte(`{not json`))
	require.Error(t, err)
}

func TestHandleLineAcceptsBareIDAsClimateSearch(t *testing.T) {
	d := testDispatcher(t)
	out, err := d.HandleLine(context.Background(), "3")
	require.NoError(t, err)

	var resp climateSearchResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.Equal(t, commandSearchClimate, resp.Command)
}

func TestHandleLineAcceptsBareQueryAsNameSearch(t *testing.T) {
	d := testDispatcher(t)
	out, err := d.HandleLine(context.Background(), "Tokyo")
	require.NoError(t, err)

	var resp citySearchResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.Equal(t, commandSearchCity, resp.Command)
	require.NotEmpty(t, resp.Items)
}

func TestHandleLineStillAcceptsJSON(t *testing.T) {
	d := testDispatcher(t)
	out, err := d.HandleLine(context.Background(), `{"command":"searchCity","query":"Paris"}`)
	require.NoError(t, err)

	var resp citySearchResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	require.NotEmpty(t, resp.Items)
}
