package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesAreStable(t *testing.T) {
	r := New()
	assert.Equal(t, []string{"founders", "pitch_deck", "tokenomics", "website", "whitepaper"}, r.Roles())
}

func TestLookup(t *testing.T) {
	r := New()

	spec, ok := r.Lookup("tokenomics")
	require.True(t, ok)
	assert.Equal(t, "tokenomics", spec.SourceKind)

	_, ok = r.Lookup("search_engine")
	assert.False(t, ok)
}

func TestValidateParams(t *testing.T) {
	r := New()

	tests := []struct {
		name    string
		role    string
		params  map[string]interface{}
		wantErr bool
	}{
		{
			name: "valid website params",
			role: "website",
			params: map[string]interface{}{
				"website_urls": []interface{}{"https://example.com"},
				"max_pages":    5,
			},
		},
		{
			name:   "empty bag is valid",
			role:   "whitepaper",
			params: map[string]interface{}{},
		},
		{
			name:   "nil bag is valid",
			role:   "pitch_deck",
			params: nil,
		},
		{
			name: "wrong type rejected",
			role: "website",
			params: map[string]interface{}{
				"max_pages": "ten",
			},
			wantErr: true,
		},
		{
			name: "unknown key rejected",
			role: "tokenomics",
			params: map[string]interface{}{
				"token_adresses": []interface{}{"0xabc"},
			},
			wantErr: true,
		},
		{
			name: "zero max_pages rejected",
			role: "website",
			params: map[string]interface{}{
				"max_pages": 0,
			},
			wantErr: true,
		},
		{
			name:    "unknown role",
			role:    "search_engine",
			params:  map[string]interface{}{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateParams(tt.role, tt.params)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilterParams(t *testing.T) {
	r := New()

	shared := map[string]interface{}{
		"website_urls":    []interface{}{"https://example.com"},
		"max_pages":       5,
		"token_addresses": []interface{}{"0xabc"},
		"founder_names":   []interface{}{"Ada"},
	}

	website := r.FilterParams("website", shared)
	assert.Equal(t, map[string]interface{}{
		"website_urls": []interface{}{"https://example.com"},
		"max_pages":    5,
	}, website)

	founders := r.FilterParams("founders", shared)
	assert.Equal(t, map[string]interface{}{
		"founder_names": []interface{}{"Ada"},
		"website_urls":  []interface{}{"https://example.com"},
	}, founders)

	assert.Empty(t, r.FilterParams("search_engine", shared))
}
