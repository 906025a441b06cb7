package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/poketrainer/skillhub/internal/cache"
	"github.com/poketrainer/skillhub/internal/pokeapi"
)

type SkillsFetcher interface {
	AbilitiesByName(ctx context.Context, name string) ([]pokeapi.AbilityEntry, error)
}

type PokemonHandler struct {
	fetcher SkillsFetcher
	cache   cache.Cache
}

// NewPokemonHandler takes the upstream client and an optional cache; pass nil
// to always hit the upstream.
func NewPokemonHandler(fetcher SkillsFetcher, c cache.Cache) *PokemonHandler {
	return &PokemonHandler{
		fetcher: fetcher,
		cache:   c,
	}
}

type SkillsResponse struct {
	Pokemon   string   `json:"pokemon"`
	Abilities []string `json:"abilities"`
}

// FetchSkillsByName answers the ability names of a pokemon, sorted
// ascending. The name is taken verbatim from the path.
func (h *PokemonHandler) FetchSkillsByName(ctx *gin.Context) {
	name := ctx.Param("name")

	rctx := ctx.Request.Context()
	key := "pokemon:abilities:" + name

	if h.cache != nil {
		if raw, ok := h.cache.Get(rctx, key); ok {
			var cached SkillsResponse

			if err := json.Unmarshal(raw, &cached); err == nil {
				ctx.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	entries, err := h.fetcher.AbilitiesByName(rctx, name)

	if err != nil {
		// Upstream detail stays out of the response.
		RespondError(ctx, http.StatusBadRequest, "upstream_fetch_failed", "Failed to fetch Pokémon", nil)
		return
	}

	abilities := make([]string, 0, len(entries))

	for _, entry := range entries {
		abilities = append(abilities, entry.Ability.Name)
	}

	sort.Strings(abilities)

	resp := SkillsResponse{
		Pokemon:   name,
		Abilities: abilities,
	}

	if h.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			h.cache.Set(rctx, key, raw)
		}
	}

	ctx.JSON(http.StatusOK, resp)
}
