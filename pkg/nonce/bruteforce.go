package nonce

import (
	"context"
	"fmt"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/mahdiidarabi/cryptonita/internal/logx"
	"github.com/mahdiidarabi/cryptonita/pkg/candidate"
)

// Strategy searches the nonce relation of a set of signatures.
type Strategy struct {
	Scheme        Scheme
	RangeConfig   RangeConfig
	PatternConfig PatternConfig
}

// NewStrategy creates a strategy for scheme with default settings.
func NewStrategy(scheme Scheme) *Strategy {
	return &Strategy{
		Scheme:        scheme,
		RangeConfig:   DefaultRangeConfig(),
		PatternConfig: DefaultPatternConfig(),
	}
}

// WithRangeConfig sets the range configuration for the strategy.
func (s *Strategy) WithRangeConfig(config RangeConfig) *Strategy {
	s.RangeConfig = config
	return s
}

// WithPatternConfig sets the pattern configuration for the strategy.
func (s *Strategy) WithPatternConfig(config PatternConfig) *Strategy {
	s.PatternConfig = config
	return s
}

// Search runs the phases in order and returns the first key found, nil if
// none is. When publicKey is empty the keys are checked against the public
// keys carried by the signatures, if any, and otherwise accepted unverified.
func (s *Strategy) Search(ctx context.Context, signatures []*Signature, publicKey []byte) *Result {
	if len(signatures) < 2 {
		return nil
	}
	log := logx.L().With("scheme", s.Scheme.Name())
	signatures, err := s.prepare(signatures, publicKey)
	if err != nil {
		log.Warn("unusable signatures", "err", err)
		return nil
	}
	log.Info("starting key recovery", "signatures", len(signatures))

	log.Debug("checking for same nonce reuse")
	if result := s.checkSameNonceReuse(signatures, publicKey); result != nil {
		log.Info("found same nonce reuse", "pair", result.Pair)
		return result
	}

	if s.PatternConfig.IncludeCommonPatterns {
		log.Debug("trying common patterns")
		if result := s.tryPatterns(ctx, signatures, publicKey, CommonPatterns()); result != nil {
			log.Info("found common pattern", "pattern", result.Pattern, "pair", result.Pair)
			return result
		}
	}

	if len(s.PatternConfig.CustomPatterns) > 0 {
		log.Debug("trying custom patterns", "count", len(s.PatternConfig.CustomPatterns))
		if result := s.tryPatterns(ctx, signatures, publicKey, s.PatternConfig.CustomPatterns); result != nil {
			log.Info("found custom pattern", "pattern", result.Pattern, "pair", result.Pair)
			return result
		}
	}

	return s.adaptiveRangeSearch(ctx, signatures, publicKey)
}

// Candidates tries every pattern on every pair and returns all the keys
// found, hex encoded. A key weighs the prior of the best pattern that
// produced it, halved if it could not be verified. With a public key at
// hand, keys that don't match it are dropped.
func (s *Strategy) Candidates(ctx context.Context, signatures []*Signature, publicKey []byte) (*candidate.Set[string], error) {
	signatures, err := s.prepare(signatures, publicKey)
	if err != nil {
		return nil, err
	}

	var patterns []Pattern
	if s.PatternConfig.IncludeCommonPatterns {
		patterns = CommonPatterns()
	}
	patterns = sortedPatterns(append(patterns, s.PatternConfig.CustomPatterns...))

	best := make(map[string]float64)
	for _, p := range patterns {
		if ctx.Err() != nil {
			break
		}
		s.forEachPair(signatures, func(i, j int) bool {
			priv, verified, ok := s.try(signatures, i, j, p.A, p.B, publicKey)
			if !ok {
				return true
			}
			w := prior(p.Priority)
			if !verified {
				w /= 2
			}
			k := priv.Text(16)
			best[k] = max(best[k], w)
			return true
		})
	}
	return candidate.FromMap(best)
}

// prepare returns copies of the signatures completed by the scheme. A
// signature without a public key gets publicKey.
func (s *Strategy) prepare(signatures []*Signature, publicKey []byte) ([]*Signature, error) {
	out := make([]*Signature, len(signatures))
	for i, sig := range signatures {
		c := *sig
		if len(c.PublicKey) == 0 {
			c.PublicKey = publicKey
		}
		if err := s.Scheme.Prepare(&c); err != nil {
			return nil, fmt.Errorf("signature %d: %w", i, err)
		}
		out[i] = &c
	}
	return out, nil
}

func (s *Strategy) forEachPair(signatures []*Signature, f func(i, j int) bool) {
	for i := 0; i < len(signatures); i++ {
		for j := i + 1; j < len(signatures); j++ {
			if !f(i, j) {
				return
			}
		}
	}
}

// try recovers the key of the pair (i, j) under the relation (a, b). The key
// is rejected when it is out of range or doesn't match the public key.
func (s *Strategy) try(signatures []*Signature, i, j int, a, b *big.Int, publicKey []byte) (priv *big.Int, verified, ok bool) {
	priv, err := s.Scheme.Recover(signatures[i], signatures[j], a, b)
	if err != nil {
		return nil, false, false
	}
	if priv.Sign() <= 0 || priv.Cmp(s.Scheme.Order()) >= 0 {
		return nil, false, false
	}

	pub := publicKey
	if len(pub) == 0 {
		pub = signatures[i].PublicKey
	}
	if len(pub) == 0 {
		return priv, false, true
	}
	verified, _ = s.Scheme.Verify(priv, pub)
	if !verified {
		return nil, false, false
	}
	return priv, true, true
}

// checkSameNonceReuse looks for signatures sharing the same r.
func (s *Strategy) checkSameNonceReuse(signatures []*Signature, publicKey []byte) *Result {
	one, zero := big.NewInt(1), big.NewInt(0)
	var result *Result
	s.forEachPair(signatures, func(i, j int) bool {
		if signatures[i].R.Cmp(signatures[j].R) != 0 {
			return true
		}
		priv, verified, ok := s.try(signatures, i, j, one, zero, publicKey)
		if !ok {
			return true
		}
		result = &Result{
			PrivateKey: priv,
			Relation:   Relation{A: one, B: zero},
			Pair:       [2]int{i, j},
			Verified:   verified,
			Pattern:    "same_nonce_reuse",
		}
		return false
	})
	return result
}

func (s *Strategy) tryPatterns(ctx context.Context, signatures []*Signature, publicKey []byte, patterns []Pattern) *Result {
	for _, p := range sortedPatterns(patterns) {
		if ctx.Err() != nil {
			return nil
		}
		if result := s.tryPattern(signatures, publicKey, p); result != nil {
			return result
		}
	}
	return nil
}

func (s *Strategy) tryPattern(signatures []*Signature, publicKey []byte, p Pattern) *Result {
	var result *Result
	s.forEachPair(signatures, func(i, j int) bool {
		priv, verified, ok := s.try(signatures, i, j, p.A, p.B, publicKey)
		if !ok {
			return true
		}
		result = &Result{
			PrivateKey: priv,
			Relation:   Relation{A: p.A, B: p.B},
			Pair:       [2]int{i, j},
			Verified:   verified,
			Pattern:    p.Name,
		}
		return false
	})
	return result
}

// adaptiveRangeSearch sweeps the configured ranges in order.
func (s *Strategy) adaptiveRangeSearch(ctx context.Context, signatures []*Signature, publicKey []byte) *Result {
	log := logx.L().With("scheme", s.Scheme.Name())
	for _, r := range s.RangeConfig.Ranges {
		if ctx.Err() != nil {
			return nil
		}

		log.Info("sweeping range", "range", r.Name, "a", r.A, "b", r.B, "combinations", s.combinations(r))
		if result := s.rangeSearch(ctx, signatures, publicKey, r); result != nil {
			log.Info("found key", "range", r.Name, "pattern", result.Pattern)
			return result
		}
	}
	log.Info("all phases completed, key not found")
	return nil
}

// combinations is the number of relations of r times the pairs tested.
func (s *Strategy) combinations(r Range) int {
	aCount := r.A[1] - r.A[0] + 1
	if s.RangeConfig.SkipZeroA && r.A[0] <= 0 && r.A[1] >= 0 {
		aCount--
	}
	return max(aCount, 0) * max(r.B[1]-r.B[0]+1, 0)
}

// rangeSearch fans the signature pairs out to a pool of workers, each one
// trying the whole range on its pair.
func (s *Strategy) rangeSearch(ctx context.Context, signatures []*Signature, publicKey []byte, r Range) *Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	numWorkers := s.RangeConfig.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	maxPairs := s.RangeConfig.MaxPairs
	if maxPairs <= 0 {
		maxPairs = len(signatures) * len(signatures)
	}

	var tested atomic.Int64
	resultChan := make(chan *Result, 1)
	workChan := make(chan [2]int, numWorkers*4)

	go func() {
		defer close(workChan)
		pairCount := 0
		s.forEachPair(signatures, func(i, j int) bool {
			if pairCount >= maxPairs {
				return false
			}
			select {
			case <-ctx.Done():
				return false
			case workChan <- [2]int{i, j}:
				pairCount++
				return true
			}
		})
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pair := range workChan {
				if result := s.sweepPair(ctx, signatures, publicKey, pair, r, &tested); result != nil {
					select {
					case resultChan <- result:
						cancel()
					default:
					}
					return
				}
			}
		}()
	}

	wg.Wait()
	logx.L().Debug("range swept", "range", r.Name, "tested", tested.Load())

	select {
	case result := <-resultChan:
		return result
	default:
		return nil
	}
}

func (s *Strategy) sweepPair(ctx context.Context, signatures []*Signature, publicKey []byte, pair [2]int, r Range, tested *atomic.Int64) *Result {
	i, j := pair[0], pair[1]
	for a := r.A[0]; a <= r.A[1]; a++ {
		if s.RangeConfig.SkipZeroA && a == 0 {
			continue
		}
		aBig := big.NewInt(int64(a))
		for b := r.B[0]; b <= r.B[1]; b++ {
			if n := tested.Add(1); n%10000 == 0 {
				if ctx.Err() != nil {
					return nil
				}
				logx.L().Debug("sweep progress", "tested", n)
			}
			bBig := big.NewInt(int64(b))
			priv, verified, ok := s.try(signatures, i, j, aBig, bBig, publicKey)
			if !ok {
				continue
			}
			return &Result{
				PrivateKey: priv,
				Relation:   Relation{A: aBig, B: bBig},
				Pair:       [2]int{i, j},
				Verified:   verified,
				Pattern:    fmt.Sprintf("brute_force_a%d_b%d", a, b),
			}
		}
	}
	return nil
}
