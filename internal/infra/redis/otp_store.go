package redis

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"realty-api/internal/pkg/errs"
	"realty-api/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

const (
	codeTTL     = 5 * time.Minute
	cooldownTTL = 60 * time.Second
	// verifiedTTL is the short window the client has to submit the
	// follow-up reset-password request.
	verifiedTTL = 60 * time.Second
)

// OTPStore keeps one-time codes and parked registration payloads in
// Redis so they expire on their own and survive process restarts.
type OTPStore struct {
	client *redis.Client
}

func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{client: client}
}

func codeKey(purpose commands.OTPPurpose, email string) string {
	return fmt.Sprintf("otp:%s:code:%s", purpose, email)
}

func registrationKey(email string) string {
	return fmt.Sprintf("otp:%s:payload:%s", commands.OTPPurposeRegistration, email)
}

func cooldownKey(purpose commands.OTPPurpose, email string) string {
	return fmt.Sprintf("otp:%s:cooldown:%s", purpose, email)
}

func verifiedKey(purpose commands.OTPPurpose, email string) string {
	return fmt.Sprintf("otp:%s:verified:%s", purpose, email)
}

// storedRegistration is the JSON shape of a parked registration, the
// code lives next to the payload so both expire together.
type storedRegistration struct {
	Code string `json:"code"`
	commands.PendingRegistration
}

func (s *OTPStore) SaveRegistration(ctx context.Context, email, code string, reg commands.PendingRegistration) error {
	if err := s.checkCooldown(ctx, commands.OTPPurposeRegistration, email); err != nil {
		return err
	}

	body, err := json.Marshal(storedRegistration{Code: code, PendingRegistration: reg})
	if err != nil {
		return errs.Wrap(err, "failed to encode registration payload")
	}
	if err := s.client.Set(ctx, registrationKey(email), body, codeTTL).Err(); err != nil {
		return errs.Wrap(err, "failed to park registration")
	}
	return nil
}

func (s *OTPStore) ConsumeRegistration(ctx context.Context, email, code string) (*commands.PendingRegistration, error) {
	raw, err := s.client.Get(ctx, registrationKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to read registration payload")
	}

	var stored storedRegistration
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, errs.Wrap(err, "failed to decode registration payload")
	}
	if subtle.ConstantTimeCompare([]byte(stored.Code), []byte(code)) != 1 {
		return nil, nil
	}

	if err := s.client.Del(ctx, registrationKey(email)).Err(); err != nil {
		return nil, errs.Wrap(err, "failed to consume registration payload")
	}
	return &stored.PendingRegistration, nil
}

func (s *OTPStore) RefreshRegistrationCode(ctx context.Context, email, code string) (bool, error) {
	if err := s.checkCooldown(ctx, commands.OTPPurposeRegistration, email); err != nil {
		return false, err
	}

	raw, err := s.client.Get(ctx, registrationKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errs.Wrap(err, "failed to read registration payload")
	}

	var stored storedRegistration
	if err := json.Unmarshal(raw, &stored); err != nil {
		return false, errs.Wrap(err, "failed to decode registration payload")
	}
	stored.Code = code

	body, err := json.Marshal(stored)
	if err != nil {
		return false, errs.Wrap(err, "failed to encode registration payload")
	}
	if err := s.client.Set(ctx, registrationKey(email), body, codeTTL).Err(); err != nil {
		return false, errs.Wrap(err, "failed to park registration")
	}
	return true, nil
}

func (s *OTPStore) SaveCode(ctx context.Context, purpose commands.OTPPurpose, email, code string) error {
	if err := s.checkCooldown(ctx, purpose, email); err != nil {
		return err
	}

	if err := s.client.Set(ctx, codeKey(purpose, email), code, codeTTL).Err(); err != nil {
		return errs.Wrap(err, "failed to store otp code")
	}
	return nil
}

func (s *OTPStore) checkCooldown(ctx context.Context, purpose commands.OTPPurpose, email string) error {
	ok, err := s.client.SetNX(ctx, cooldownKey(purpose, email), "1", cooldownTTL).Result()
	if err != nil {
		return errs.Wrap(err, "failed to set otp cooldown")
	}
	if !ok {
		return commands.ErrOTPResendTooSoon
	}
	return nil
}

func (s *OTPStore) VerifyCode(ctx context.Context, purpose commands.OTPPurpose, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, codeKey(purpose, email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errs.Wrap(err, "failed to read otp code")
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, codeKey(purpose, email))
	pipe.Set(ctx, verifiedKey(purpose, email), "1", verifiedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errs.Wrap(err, "failed to mark otp as verified")
	}
	return true, nil
}

func (s *OTPStore) ConsumeVerified(ctx context.Context, purpose commands.OTPPurpose, email string) (bool, error) {
	deleted, err := s.client.Del(ctx, verifiedKey(purpose, email)).Result()
	if err != nil {
		return false, errs.Wrap(err, "failed to consume otp verification")
	}
	return deleted > 0, nil
}
