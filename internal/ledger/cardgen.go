package ledger

import (
	"math/rand"
	"time"

	"cardbank/pkg"
)

// maxDrawAttempts bounds the collision-retry loop so generation fails with
// CapacityExhausted instead of spinning when the card space is nearly full.
const maxDrawAttempts = 10_000

// cardGenerator draws uniformly random card numbers in [lo, hi]. It holds no
// state of its own besides the RNG; uniqueness is enforced against the live
// registry map under the registry lock. Non-crypto randomness is fine here:
// a card number is an identifier, not a secret.
type cardGenerator struct {
	rng *rand.Rand
	lo  CardNumber
	hi  CardNumber
}

func newCardGenerator() *cardGenerator {
	return &cardGenerator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		lo:  CardNumberMin,
		hi:  CardNumberMax,
	}
}

// generate returns a card number not present in existing. The caller must
// hold the registry write lock.
func (g *cardGenerator) generate(existing map[CardNumber]*Account) (CardNumber, error) {
	space := int64(g.hi-g.lo) + 1
	if int64(len(existing)) >= space {
		return 0, pkg.NewAppError(pkg.ErrCapacityExhaustedCode, "card number space exhausted", pkg.ErrCapacityExhausted)
	}
	for i := 0; i < maxDrawAttempts; i++ {
		card := g.lo + CardNumber(g.rng.Int63n(space))
		if _, taken := existing[card]; !taken {
			return card, nil
		}
	}
	return 0, pkg.NewAppError(pkg.ErrCapacityExhaustedCode, "card number space exhausted", pkg.ErrCapacityExhausted)
}
