package engine

// DefaultInitialCount is the per-symbol supply at game start.
const DefaultInitialCount = 5

// RandSource is the randomness the allocator needs. *math/rand.Rand
// satisfies it.
type RandSource interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

// SupplyAllocator owns the pool of X and O marks still to be placed and
// hands them out by weighted random draw.
type SupplyAllocator struct {
	rng        RandSource
	initial    int
	remainingX int
	remainingO int
}

// NewSupplyAllocator creates an allocator with initialCount marks per side.
// Counts below 1 fall back to DefaultInitialCount.
func NewSupplyAllocator(rng RandSource, initialCount int) *SupplyAllocator {
	a := &SupplyAllocator{rng: rng}
	a.Reset(initialCount)
	return a
}

// Reset refills both sides to initialCount.
func (a *SupplyAllocator) Reset(initialCount int) {
	if initialCount < 1 {
		initialCount = DefaultInitialCount
	}
	a.initial = initialCount
	a.remainingX = initialCount
	a.remainingO = initialCount
}

// SetRand swaps the random source. Used when the platform reseeds a game.
func (a *SupplyAllocator) SetRand(rng RandSource) {
	a.rng = rng
}

// InitialCount returns the per-side count the pool was last reset to.
func (a *SupplyAllocator) InitialCount() int {
	return a.initial
}

// Draw picks X with probability remainingX/(remainingX+remainingO),
// decrements the chosen side and returns it.
func (a *SupplyAllocator) Draw() (Mark, error) {
	total := a.remainingX + a.remainingO
	if total <= 0 {
		return Empty, ErrExhaustedSupply
	}

	if a.rng.Intn(total) < a.remainingX {
		a.remainingX--
		return X, nil
	}
	a.remainingO--
	return O, nil
}

// Remaining returns the marks left for each side.
func (a *SupplyAllocator) Remaining() (x, o int) {
	return a.remainingX, a.remainingO
}

// Probability returns the odds of the next draw being X and O.
// Both are 0 once the pool is empty.
func (a *SupplyAllocator) Probability() (px, po float64) {
	total := a.remainingX + a.remainingO
	if total == 0 {
		return 0, 0
	}
	return float64(a.remainingX) / float64(total), float64(a.remainingO) / float64(total)
}
