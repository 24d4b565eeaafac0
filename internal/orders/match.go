package orders

import (
	"strings"

	"github.com/calebhawthorne/regenmarket-backend/pkg/config"
	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
)

// MatchStage identifies which step of the resolution cascade produced a match.
type MatchStage string

const (
	MatchStageIdentifier MatchStage = "identifier"
	MatchStageExact      MatchStage = "exact"
	MatchStageSubstring  MatchStage = "substring"
	MatchStageReverse    MatchStage = "reverse_substring"
	MatchStageToken      MatchStage = "token_overlap"
	MatchStageFallback   MatchStage = "fallback"
)

// lineMatch pairs a cart line with the catalog product it resolved to.
type lineMatch struct {
	line    CartLineInput
	product *models.Product
	stage   MatchStage
}

// matcher resolves client cart lines against a catalog snapshot fetched once
// per request. The cart is client-maintained and survives page reloads, so
// product ids may be stale and names are the fallback key.
type matcher struct {
	catalog  []models.Product
	byID     map[string]*models.Product
	fallback string
}

func newMatcher(catalog []models.Product, fallbackPolicy string) *matcher {
	byID := make(map[string]*models.Product, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID.String()] = &catalog[i]
	}
	return &matcher{catalog: catalog, byID: byID, fallback: fallbackPolicy}
}

// Resolve runs the cascade for one cart line. A nil product means the line
// is unmatched.
func (m *matcher) Resolve(line CartLineInput) (*models.Product, MatchStage) {
	if line.ProductID != nil {
		if product, ok := m.byID[line.ProductID.String()]; ok {
			return product, MatchStageIdentifier
		}
	}

	name := normalizeName(line.Name)
	if name == "" || len(m.catalog) == 0 {
		return nil, ""
	}

	for i := range m.catalog {
		if normalizeName(m.catalog[i].Name) == name {
			return &m.catalog[i], MatchStageExact
		}
	}

	for i := range m.catalog {
		if strings.Contains(normalizeName(m.catalog[i].Name), name) {
			return &m.catalog[i], MatchStageSubstring
		}
	}

	for i := range m.catalog {
		if strings.Contains(name, normalizeName(m.catalog[i].Name)) {
			return &m.catalog[i], MatchStageReverse
		}
	}

	for i := range m.catalog {
		catalogName := normalizeName(m.catalog[i].Name)
		for _, token := range strings.Fields(name) {
			if strings.Contains(catalogName, token) {
				return &m.catalog[i], MatchStageToken
			}
		}
	}

	if m.fallback == config.MatchFallbackFirstProduct {
		return &m.catalog[0], MatchStageFallback
	}
	return nil, ""
}

func normalizeName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
