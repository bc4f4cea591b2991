// Package authn implements the authorization path for a transfer attempt:
// biometric challenge first, then an explicit user choice between PIN entry,
// a manual override, or cancelling. A transfer is never authorized without an
// affirmative user action.
package authn

import (
	"context"
	"log/slog"
)

// BiometricType identifies a supported biometric factor.
type BiometricType string

const (
	BiometricFingerprint BiometricType = "FINGERPRINT"
	BiometricFace        BiometricType = "FACE"
	BiometricIris        BiometricType = "IRIS"
)

// BiometricOutcome classifies the result of a biometric challenge.
type BiometricOutcome string

const (
	BiometricSuccess   BiometricOutcome = "SUCCESS"
	BiometricCancelled BiometricOutcome = "CANCELLED"
	BiometricLockout   BiometricOutcome = "LOCKOUT"
	BiometricFailed    BiometricOutcome = "FAILED"
)

// Biometric is the device biometric subsystem.
type Biometric interface {
	HasHardware() bool
	IsEnrolled() bool
	SupportedTypes() []BiometricType
	Authenticate(ctx context.Context, prompt string) BiometricOutcome
}

// FallbackChoice is the user's answer to the three-way fallback prompt.
type FallbackChoice string

const (
	FallbackPIN      FallbackChoice = "PIN"
	FallbackOverride FallbackChoice = "OVERRIDE"
	FallbackCancel   FallbackChoice = "CANCEL"
)

// Prompter asks the user for authorization decisions. Implementations are
// UI-facing; the escalator itself never renders anything.
type Prompter interface {
	// ChooseFallback presents the PIN / override / cancel choice. The reason
	// explains why biometrics did not produce a verdict.
	ChooseFallback(ctx context.Context, reason string) FallbackChoice

	// EnterPIN requests a PIN. ok is false when the user cancels entry.
	EnterPIN(ctx context.Context) (pin string, ok bool)
}

// Method records which path produced the verdict.
type Method string

const (
	MethodBiometric Method = "BIOMETRIC"
	MethodPIN       Method = "PIN"
	MethodOverride  Method = "OVERRIDE"
)

// Denial reasons surfaced to the user.
const (
	ReasonCancelled = "cancelled"
	ReasonLockedOut = "locked out"
)

// Verdict is the terminal state of one authorization attempt.
type Verdict struct {
	Granted bool
	Method  Method
	Reason  string // set on denial
}

// Escalator runs one authorization attempt per call and holds no state
// across calls.
type Escalator struct {
	biometric    Biometric
	logger       *slog.Logger
	minPINLength int
}

// NewEscalator creates an escalator. minPINLength <= 0 defaults to 4.
func NewEscalator(logger *slog.Logger, biometric Biometric, minPINLength int) *Escalator {
	if minPINLength <= 0 {
		minPINLength = 4
	}
	return &Escalator{
		biometric:    biometric,
		logger:       logger,
		minPINLength: minPINLength,
	}
}

// Authorize walks the escalation path and returns a terminal verdict.
func (e *Escalator) Authorize(ctx context.Context, prompter Prompter) Verdict {
	if !e.biometricAvailable() {
		e.logger.Info("Biometric hardware unavailable or not enrolled, offering fallback")
		return e.fallback(ctx, prompter, "biometric authentication unavailable")
	}

	outcome := e.biometric.Authenticate(ctx, "Authorize this transfer")
	switch outcome {
	case BiometricSuccess:
		e.logger.Info("Transfer authorized", "method", MethodBiometric)
		return Verdict{Granted: true, Method: MethodBiometric}
	case BiometricCancelled:
		e.logger.Info("Biometric prompt cancelled by user")
		return Verdict{Reason: ReasonCancelled}
	case BiometricLockout:
		e.logger.Warn("Biometric locked out after repeated failures")
		return Verdict{Reason: ReasonLockedOut}
	default:
		e.logger.Info("Biometric authentication failed, offering fallback")
		return e.fallback(ctx, prompter, "biometric authentication failed")
	}
}

func (e *Escalator) biometricAvailable() bool {
	return e.biometric.HasHardware() && e.biometric.IsEnrolled()
}

// fallback presents the three-way choice: PIN entry, explicit override, or
// cancel. Silent fallback to GRANTED never happens here.
func (e *Escalator) fallback(ctx context.Context, prompter Prompter, reason string) Verdict {
	switch prompter.ChooseFallback(ctx, reason) {
	case FallbackPIN:
		return e.promptPIN(ctx, prompter)
	case FallbackOverride:
		e.logger.Warn("Transfer authorized by explicit user override")
		return Verdict{Granted: true, Method: MethodOverride}
	default:
		return Verdict{Reason: ReasonCancelled}
	}
}

// promptPIN loops until the entered code passes the gate or the user cancels.
// A short or non-numeric code re-prompts; it is not a denial.
func (e *Escalator) promptPIN(ctx context.Context, prompter Prompter) Verdict {
	for {
		pin, ok := prompter.EnterPIN(ctx)
		if !ok {
			return Verdict{Reason: ReasonCancelled}
		}
		if e.validPIN(pin) {
			e.logger.Info("Transfer authorized", "method", MethodPIN)
			return Verdict{Granted: true, Method: MethodPIN}
		}
		e.logger.Info("PIN rejected, re-prompting")
	}
}

// validPIN is a placeholder authorization gate: a numeric code of sufficient
// length passes. The entered code is never compared against a stored secret.
func (e *Escalator) validPIN(pin string) bool {
	if len(pin) < e.minPINLength {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
