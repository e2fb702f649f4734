package picker

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/julianstephens/softstreaks/internal/constants"
	"github.com/julianstephens/softstreaks/internal/models"
)

var (
	pool      = []PackID{PackDopamine, PackFood, PackDo}
	bonusPool = []PackID{PackDopamine, PackDopamine, PackFood, PackDo}
)

// Picker draws a random suggestion from the catalog. When the day's habits
// are all done, the dopamine pack is twice as likely and the pick is marked
// as a bonus.
type Picker struct {
	catalog Catalog
	rng     *rand.Rand
}

// New creates a picker. A nil rng gets a time-seeded source.
func New(catalog Catalog, rng *rand.Rand) *Picker {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Picker{catalog: catalog, rng: rng}
}

// Default returns a picker over the built-in catalog
func Default() *Picker {
	return New(DefaultCatalog(), nil)
}

// Catalog returns the catalog the picker draws from
func (p *Picker) Catalog() Catalog {
	return p.catalog
}

// Pick returns one suggestion for the given state without modifying it.
// The result is "" only when the catalog is empty.
func (p *Picker) Pick(state models.AppState) string {
	allDone := state.AllDone()
	candidates := pool
	if allDone {
		candidates = bonusPool
	}

	pack, ok := p.catalog[candidates[p.rng.IntN(len(candidates))]]
	if !ok || len(pack.Buckets) == 0 {
		return ""
	}
	bucket := pack.Buckets[p.rng.IntN(len(pack.Buckets))]
	if len(bucket.Items) == 0 {
		return ""
	}
	item := bucket.Items[p.rng.IntN(len(bucket.Items))]

	if allDone {
		return constants.BonusPrefix + item
	}
	return item
}

// IsBonus reports whether a pick carries the bonus marker
func IsBonus(pick string) bool {
	return strings.HasPrefix(pick, constants.BonusPrefix)
}

// StripBonus removes the bonus marker from a pick
func StripBonus(pick string) string {
	return strings.TrimPrefix(pick, constants.BonusPrefix)
}
