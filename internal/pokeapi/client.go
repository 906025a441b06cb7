// Package pokeapi is a thin client for the public PokeAPI, the upstream
// collaborator behind the skills endpoint.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/poketrainer/skillhub/internal/observability"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

// ErrFetchFailed covers every upstream problem (network, non-2xx, bad JSON).
// The handler answers a fixed message either way, so callers only need one
// value to branch on.
var ErrFetchFailed = errors.New("failed to fetch pokemon")

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type AbilityEntry struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type pokemonResponse struct {
	Abilities []AbilityEntry `json:"abilities"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	prom       *observability.Prom
}

func New(baseURL string, prom *observability.Prom) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		prom: prom,
	}
}

// AbilitiesByName fetches the ability list for a pokemon. The name is used as
// given; PokeAPI itself is case-sensitive about it.
func (c *Client) AbilitiesByName(ctx context.Context, name string) ([]AbilityEntry, error) {
	var entries []AbilityEntry

	fetch := func() error {
		reqURL := fmt.Sprintf("%s/pokemon/%s", c.baseURL, url.PathEscape(name))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)

		if err != nil {
			return err
		}

		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)

		if err != nil {
			return err
		}

		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("pokeapi status %d", resp.StatusCode)
		}

		var decoded pokemonResponse

		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return err
		}

		entries = decoded.Abilities

		return nil
	}

	var err error

	if c.prom != nil {
		err = c.prom.ObserveUpstream("pokemon.abilities", fetch)
	} else {
		err = fetch()
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return entries, nil
}
