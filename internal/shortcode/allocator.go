package shortcode

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/sp3dr4/linkshortener/internal/domain"
	"github.com/sp3dr4/linkshortener/internal/pkg/metrics"
)

const (
	DefaultLength         = 6
	DefaultFallbackLength = 8
	DefaultMaxAttempts    = 10

	customCodeLengthRule = "min=3,max=10"
	customCodeCharsRule  = "alphanum"
)

// Checker reports whether a short code is already taken.
type Checker interface {
	Exists(ctx context.Context, shortCode string) (bool, error)
}

// Policy bounds the collision retry loop.
type Policy struct {
	Length      int
	MaxAttempts int
	// FallbackLength is used for one final candidate once every attempt
	// collided. Zero disables the fallback.
	FallbackLength int
	// VerifyFallback re-checks the fallback candidate before returning it.
	VerifyFallback bool
}

func DefaultPolicy() Policy {
	return Policy{
		Length:         DefaultLength,
		MaxAttempts:    DefaultMaxAttempts,
		FallbackLength: DefaultFallbackLength,
	}
}

// Allocator resolves a unique short code against the store. The store's
// unique constraint remains the final arbiter: a code returned here may still
// lose a race at insert time.
type Allocator struct {
	checker   Checker
	generator Generator
	policy    Policy
	validate  *validator.Validate
	metrics   metrics.Registry
	logger    *slog.Logger
}

func NewAllocator(checker Checker, generator Generator, policy Policy, registry metrics.Registry, logger *slog.Logger) *Allocator {
	return &Allocator{
		checker:   checker,
		generator: generator,
		policy:    policy,
		validate:  validator.New(),
		metrics:   registry,
		logger:    logger,
	}
}

// Allocate returns the first generated candidate that is absent from the
// store. After MaxAttempts collisions it returns one longer candidate without
// checking it, unless the policy asks for verification.
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= a.policy.MaxAttempts; attempt++ {
		candidate := a.generator.Generate(a.policy.Length)

		exists, err := a.checker.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check candidate code: %w", err)
		}
		if !exists {
			return candidate, nil
		}

		a.metrics.IncCodeCollisions()
		a.logger.Debug("Short code collision", "candidate", candidate, "attempt", attempt)
	}

	if a.policy.FallbackLength <= 0 {
		return "", domain.ErrGenerationExhausted
	}

	candidate := a.generator.Generate(a.policy.FallbackLength)
	a.metrics.IncFallbackCodes()
	a.logger.Warn("Short code space crowded, using fallback length",
		"attempts", a.policy.MaxAttempts,
		"fallback_length", a.policy.FallbackLength,
	)

	if a.policy.VerifyFallback {
		exists, err := a.checker.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check fallback code: %w", err)
		}
		if exists {
			return "", domain.ErrGenerationExhausted
		}
	}

	return candidate, nil
}

// ValidateCustom checks a user-supplied code. Shape is checked before the
// store is touched: length, then characters, then existence.
func (a *Allocator) ValidateCustom(ctx context.Context, code string) (string, error) {
	if err := a.validate.Var(code, customCodeLengthRule); err != nil {
		return "", domain.ErrCodeLength
	}
	if err := a.validate.Var(code, customCodeCharsRule); err != nil {
		return "", domain.ErrCodeNotAlphanumeric
	}

	exists, err := a.checker.Exists(ctx, code)
	if err != nil {
		return "", fmt.Errorf("check custom code: %w", err)
	}
	if exists {
		return "", domain.ErrCodeExists
	}

	return code, nil
}
