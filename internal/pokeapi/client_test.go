package pokeapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poketrainer/skillhub/internal/pokeapi"
)

func TestAbilitiesByName(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"abilities": [
				{"ability": {"name": "static", "url": "https://pokeapi.co/api/v2/ability/9/"}, "is_hidden": false, "slot": 1},
				{"ability": {"name": "lightning-rod", "url": "https://pokeapi.co/api/v2/ability/31/"}, "is_hidden": true, "slot": 3}
			]
		}`))
	}))
	defer srv.Close()

	client := pokeapi.New(srv.URL, nil)

	entries, err := client.AbilitiesByName(context.Background(), "pikachu")
	require.NoError(t, err)
	require.Equal(t, "/pokemon/pikachu", gotPath)
	require.Len(t, entries, 2)
	require.Equal(t, "static", entries[0].Ability.Name)
	require.Equal(t, "lightning-rod", entries[1].Ability.Name)
	require.True(t, entries[1].IsHidden)
}

func TestAbilitiesByNameEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"abilities": []}`))
	}))
	defer srv.Close()

	client := pokeapi.New(srv.URL, nil)

	entries, err := client.AbilitiesByName(context.Background(), "missingno")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestAbilitiesByNameUpstreamError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not_found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "Not Found", http.StatusNotFound)
			},
		},
		{
			name: "server_error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "bad_json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"abilities": [`))
			},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := pokeapi.New(srv.URL, nil)

			_, err := client.AbilitiesByName(context.Background(), "charmander")
			require.ErrorIs(t, err, pokeapi.ErrFetchFailed)
		})
	}
}

func TestAbilitiesByNameEscapesPath(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"abilities": []}`))
	}))
	defer srv.Close()

	client := pokeapi.New(srv.URL, nil)

	_, err := client.AbilitiesByName(context.Background(), "odd/name")
	require.NoError(t, err)
	require.Equal(t, "/pokemon/odd%2Fname", gotPath)
}
