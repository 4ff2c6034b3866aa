package climatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CityRequest is the tagged request protocol accepted by Dispatcher:
// either `{"command":"searchCity", ...}` or
// `{"command":"searchClimate", ...}`.
type CityRequest struct {
	Command    string `json:"command"`
	Query      string `json:"query,omitempty"`
	CityID     *int   `json:"cityId,omitempty"`
	StartIndex *int   `json:"startIndex,omitempty"`
	MaxItems   *int   `json:"maxItems,omitempty"`
}

const (
	commandSearchCity    = "searchCity"
	commandSearchClimate = "searchClimate"
)

// Dispatcher parses CityRequest JSON and serves it against an Engine,
// answering with a JSON search response.
type Dispatcher struct {
	engine *Engine
}

// NewDispatcher wraps engine for request handling.
func NewDispatcher(engine *Engine) *Dispatcher {
	return &Dispatcher{engine: engine}
}

// HandleJSON parses body as a CityRequest and serves it. Shorthand
// (bare city id, or a bare query string) is never accepted here: this
// is the path used by the HTTP transport, where every request must be
// well-formed JSON.
func (d *Dispatcher) HandleJSON(ctx context.Context, body []byte) ([]byte, error) {
	req, err := parseRequest(body, false)
	if err != nil {
		return nil, err
	}
	return d.dispatch(ctx, req)
}

// HandleLine parses line as either a CityRequest or, if it contains
// neither `{` nor `}`, one of the interactive shorthands: a bare
// integer is a climate search by city id, anything else is a name
// search. This shorthand only makes sense for a human typing at a
// prompt, so it is intentionally not exposed over HandleJSON/HTTP.
func (d *Dispatcher) HandleLine(ctx context.Context, line string) ([]byte, error) {
	req, err := parseRequest([]byte(line), true)
	if err != nil {
		return nil, err
	}
	return d.dispatch(ctx, req)
}

func parseRequest(body []byte, simpleAllowed bool) (CityRequest, error) {
	var req CityRequest
	if err := json.Unmarshal(body, &req); err == nil && req.Command != "" {
		return req, nil
	}

	trimmed := strings.TrimSpace(string(body))
	if !simpleAllowed || strings.ContainsAny(trimmed, "{}") {
		return CityRequest{}, fmt.Errorf("climatch: invalid request: %s", trimmed)
	}

	if id, err := strconv.Atoi(trimmed); err == nil {
		return CityRequest{Command: commandSearchClimate, CityID: &id}, nil
	}
	return CityRequest{Command: commandSearchCity, Query: trimmed}, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, req CityRequest) ([]byte, error) {
	switch req.Command {
	case commandSearchCity:
		startIndex := valueOr(req.StartIndex, SearchDefaultStartIndex)
		maxItems := valueOr(req.MaxItems, SearchDefaultMaxItems)
		result, err := d.engine.SearchCities(ctx, req.Query, startIndex, maxItems)
		if err != nil {
			return nil, err
		}
		return json.Marshal(citySearchResponse{Command: commandSearchCity, CitySearchResult: result})

	case commandSearchClimate:
		if req.CityID == nil {
			return nil, fmt.Errorf("climatch: searchClimate request missing cityId")
		}
		startIndex := valueOr(req.StartIndex, ClimateDefaultStartIndex)
		maxItems := valueOr(req.MaxItems, ClimateDefaultMaxItems)
		result := d.engine.SearchClimate(*req.CityID, startIndex, maxItems)
		return json.Marshal(climateSearchResponse{Command: commandSearchClimate, ClimateSearchResult: result})

	default:
		return nil, fmt.Errorf("climatch: unknown command %q", req.Command)
	}
}

func valueOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// citySearchResponse flattens CitySearchResult's fields alongside
// command, matching the original's internally-tagged response enum
// (command sits next to items/elapsedMs, never nested under a key).
type citySearchResponse struct {
	Command string `json:"command"`
	CitySearchResult
}

type climateSearchResponse struct {
	Command string `json:"command"`
	ClimateSearchResult
}
