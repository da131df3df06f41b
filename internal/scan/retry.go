package scan

import (
	"context"

	"go.uber.org/zap"
)

// retry runs fn until it succeeds or MaxRetries extra attempts are spent,
// waiting the fixed RetryDelay between attempts.
func (s *Scanner) retry(ctx context.Context, op string, fn func(context.Context) error) error {
	attempts := s.cfg.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		s.logger.Warn("rpc call failed",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		if attempt == attempts {
			break
		}
		if err := s.sleep(ctx, s.cfg.RetryDelay); err != nil {
			return err
		}
	}
	return err
}
