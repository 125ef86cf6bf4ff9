package service

import (
	"slices"

	"github.com/aussiebroadwan/directory/internal/directory/engine"
)

// MergeGrant adds whatever the consent prompt reports as missing to g.
// Existing entries are kept, duplicates are dropped and nil inputs are
// treated as empty.
func MergeGrant(g engine.Grant, details engine.PromptDetails) engine.Grant {
	g.OIDCScopes = mergeUnique(g.OIDCScopes, details.MissingOIDCScope)
	g.OIDCClaims = mergeUnique(g.OIDCClaims, details.MissingOIDCClaims)

	if len(details.MissingResourceScopes) > 0 {
		resources := make(map[string][]string, len(g.ResourceScopes)+len(details.MissingResourceScopes))
		for indicator, scopes := range g.ResourceScopes {
			resources[indicator] = mergeUnique(nil, scopes)
		}
		for indicator, scopes := range details.MissingResourceScopes {
			resources[indicator] = mergeUnique(resources[indicator], scopes)
		}
		g.ResourceScopes = resources
	}

	return g
}

func mergeUnique(base, add []string) []string {
	out := make([]string, 0, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, v := range list {
			if v != "" && !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}
