package ai

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
)

// FallbackService routes completions to a primary provider and falls back
// to a secondary one when the primary is unreachable or out of quota.
type FallbackService struct {
	primary   Completer
	secondary Completer
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(primary, secondary Completer) *FallbackService {
	return &FallbackService{
		primary:   primary,
		secondary: secondary,
	}
}

func (f *FallbackService) Name() string {
	return fmt.Sprintf("%s+%s", f.primary.Name(), f.secondary.Name())
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource_exhausted",
		"resource exhausted",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// Complete tries the primary provider once. Only connection and quota
// failures are retried against the secondary; anything else is returned.
func (f *FallbackService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	result, err := f.primary.Complete(ctx, req)
	if err == nil {
		return result, nil
	}

	switch {
	case isQuotaError(err):
		log.Printf("[AI] %s quota exhausted: %v, falling back to %s", f.primary.Name(), err, f.secondary.Name())
	case isConnectionError(err):
		log.Printf("[AI] %s connection failed: %v, falling back to %s", f.primary.Name(), err, f.secondary.Name())
	default:
		return "", fmt.Errorf("%s completion failed: %w", f.primary.Name(), err)
	}

	result, err = f.secondary.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", f.secondary.Name(), err)
	}
	return result, nil
}
