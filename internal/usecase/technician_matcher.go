package usecase

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"servisku/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

// ITechnicianMatcher picks the technician for a new service request.
//
// Select returns ok=false when no active technician serves the category.

type ITechnicianMatcher interface {
	Select(ctx context.Context, categorySlug string) (technicianID string, ok bool, err error)
}

// TechnicianMatcher picks uniformly at random among the active technicians
// of a category. Candidates are sorted before the pick so a seeded source
// gives reproducible choices.
type TechnicianMatcher struct {
	repo interfaces.ITechnicianServiceRepository

	mu  sync.Mutex
	rng *rand.Rand
}

var _ ITechnicianMatcher = (*TechnicianMatcher)(nil)

// NewTechnicianMatcher uses rng for the pick; nil seeds one from the clock.
func NewTechnicianMatcher(repo interfaces.ITechnicianServiceRepository, rng *rand.Rand) *TechnicianMatcher {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &TechnicianMatcher{repo: repo, rng: rng}
}

func (m *TechnicianMatcher) Select(ctx context.Context, categorySlug string) (string, bool, error) {
	categorySlug = strings.TrimSpace(categorySlug)
	rows, err := m.repo.ListActiveByCategory(ctx, categorySlug)
	if err != nil {
		return "", false, err
	}

	seen := make(map[string]struct{}, len(rows))
	candidates := make([]string, 0, len(rows))
	for _, row := range rows {
		if !row.Active || row.CategorySlug != categorySlug || row.TechnicianID == "" {
			continue
		}
		if _, dup := seen[row.TechnicianID]; dup {
			continue
		}
		seen[row.TechnicianID] = struct{}{}
		candidates = append(candidates, row.TechnicianID)
	}
	if len(candidates) == 0 {
		log.Ctx(ctx).Info().Str("category", categorySlug).Msg("[matching][usecase] no active technician")
		return "", false, nil
	}
	sort.Strings(candidates)

	m.mu.Lock()
	picked := candidates[m.rng.IntN(len(candidates))]
	m.mu.Unlock()

	log.Ctx(ctx).Info().Str("category", categorySlug).Int("candidates", len(candidates)).Str("technician_id", picked).Msg("[matching][usecase] technician selected")
	return picked, true, nil
}

