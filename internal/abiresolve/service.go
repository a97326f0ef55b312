// Package abiresolve resolves a (chain id, contract address) pair to a call
// interface through an external verification service, with bounded lookups, a
// configurable transport-failure fallback policy, and provenance tagging.
// Resolution never fails the surrounding analysis: every path yields an
// InterfaceResolution value.
package abiresolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/txlens/txlens/internal/pkg/logger"
	"github.com/txlens/txlens/internal/pkg/resilience/retry"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// defaultResolveTimeout bounds one verification-service lookup.
const defaultResolveTimeout = 10 * time.Second

// notVerifiedMessage is the fixed reason attached when the service reports
// the contract exists but its source is not verified.
const notVerifiedMessage = "contract source code not verified"

// Service resolves contract call interfaces.
type Service interface {
	// Resolve looks up the call interface for the contract at address on
	// chainID. It never returns an error: failures are folded into the
	// returned InterfaceResolution with provenance ProvenanceNone (or
	// ProvenanceGenericFallback when that policy is enabled).
	Resolve(ctx context.Context, chainID uint64, address string) InterfaceResolution
}

type service struct {
	verifier Verifier
	cache    ResolutionCache
	retry    retry.Retry
	timeout  time.Duration

	// genericFallback substitutes a minimal ERC-20 interface on transport
	// failure instead of resolving to ProvenanceNone.
	genericFallback bool
}

var _ Service = (*service)(nil)

// config holds construction-time settings for the resolver.
type config struct {
	cache           ResolutionCache
	retry           retry.Retry
	timeout         time.Duration
	genericFallback bool
}

// Option configures the resolver.
type Option func(*config)

// WithCache installs a ResolutionCache consulted before and populated after
// verified lookups.
func WithCache(c ResolutionCache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

// WithGenericFallback makes transport failures resolve to a minimal ERC-20
// interface tagged ProvenanceGenericFallback instead of ProvenanceNone.
func WithGenericFallback() Option {
	return func(cfg *config) {
		cfg.genericFallback = true
	}
}

// WithTimeout overrides the per-lookup deadline. Default: 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

// WithRetry sets the retry policy for the best-effort source-text fetch.
func WithRetry(r retry.Retry) Option {
	return func(cfg *config) {
		cfg.retry = r
	}
}

// New creates the resolver. A nil verifier models an unconfigured service
// credential: every resolution short-circuits to ProvenanceNone without a
// network call.
func New(v Verifier, opts ...Option) *service {
	cfg := config{
		cache:   nopCache{},
		retry:   retry.New(retry.WithAttempts(2)),
		timeout: defaultResolveTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		verifier:        v,
		cache:           cfg.cache,
		retry:           cfg.retry,
		timeout:         cfg.timeout,
		genericFallback: cfg.genericFallback,
	}
}

func (s *service) Resolve(ctx context.Context, chainID uint64, address string) InterfaceResolution {
	if !common.IsHexAddress(address) {
		return InterfaceResolution{
			Provenance: ProvenanceNone,
			Err:        fmt.Sprintf("invalid contract address %q", address),
		}
	}

	if chainID == 0 {
		return InterfaceResolution{
			Provenance: ProvenanceNone,
			Err:        "chain id must be positive",
		}
	}

	if s.verifier == nil {
		return InterfaceResolution{
			Provenance: ProvenanceNone,
			Err:        "verification service credential not configured",
		}
	}

	address = common.HexToAddress(address).Hex()

	if res, ok := s.fromCache(ctx, chainID, address); ok {
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.verifier.FetchABI(ctx, chainID, address)
	if err != nil {
		return s.transportFailure(ctx, chainID, address, err)
	}

	if !answer.Verified {
		msg := notVerifiedMessage
		if answer.Message != "" {
			msg = answer.Message
		}
		return InterfaceResolution{Provenance: ProvenanceNone, Err: msg}
	}

	parsed, err := abi.JSON(strings.NewReader(answer.ABIJSON))
	if err != nil {
		return InterfaceResolution{
			Provenance: ProvenanceNone,
			Err:        fmt.Sprintf("verification service returned an unparsable interface: %v", err),
		}
	}

	if err := s.cache.PutABI(ctx, chainID, address, answer.ABIJSON); err != nil {
		logger.Warn(ctx, "interface cache write failed", "contract.address", address, "error", err)
	}

	return InterfaceResolution{
		ABI:        &parsed,
		ABIJSON:    answer.ABIJSON,
		Provenance: ProvenanceVerified,
		SourceText: s.fetchSourceText(ctx, chainID, address),
	}
}

// fromCache returns a verified resolution from the cache when available.
// Cache errors are logged and treated as misses.
func (s *service) fromCache(ctx context.Context, chainID uint64, address string) (InterfaceResolution, bool) {
	abiJSON, ok, err := s.cache.GetABI(ctx, chainID, address)
	if err != nil {
		logger.Warn(ctx, "interface cache read failed", "contract.address", address, "error", err)
		return InterfaceResolution{}, false
	}
	if !ok {
		return InterfaceResolution{}, false
	}

	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return InterfaceResolution{}, false
	}

	return InterfaceResolution{
		ABI:        &parsed,
		ABIJSON:    abiJSON,
		Provenance: ProvenanceVerified,
	}, true
}

// transportFailure applies the configured fallback policy after a network
// error or timeout.
func (s *service) transportFailure(ctx context.Context, chainID uint64, address string, cause error) InterfaceResolution {
	logger.Warn(ctx, "interface lookup failed",
		"contract.chainId", chainID,
		"contract.address", address,
		"error", cause,
	)

	if !s.genericFallback {
		return InterfaceResolution{
			Provenance: ProvenanceNone,
			Err:        fmt.Sprintf("interface lookup failed: %v", cause),
		}
	}

	parsed, err := abi.JSON(strings.NewReader(genericERC20ABI))
	if err != nil {
		// The fallback interface is a compile-time constant; failing to
		// parse it would be a programming error, not a runtime condition.
		return InterfaceResolution{
			Provenance: ProvenanceNone,
			Err:        fmt.Sprintf("interface lookup failed: %v", cause),
		}
	}

	return InterfaceResolution{
		ABI:        &parsed,
		ABIJSON:    genericERC20ABI,
		Provenance: ProvenanceGenericFallback,
		Err:        fmt.Sprintf("interface lookup failed, generic ERC-20 fallback in use: %v", cause),
	}
}

// fetchSourceText retrieves the verified source code, best-effort. Failure of
// this secondary fetch never affects the primary resolution.
func (s *service) fetchSourceText(ctx context.Context, chainID uint64, address string) string {
	var source string
	err := s.retry.Execute(ctx, func() error {
		text, err := s.verifier.FetchSource(ctx, chainID, address)
		if err != nil {
			return err
		}
		source = text
		return nil
	})
	if err != nil {
		logger.Debug(ctx, "source text fetch failed", "contract.address", address, "error", err)
		return ""
	}
	return source
}
