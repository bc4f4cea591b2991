package authn

import "context"

// SimulatedBiometric is a stand-in for the platform biometric subsystem.
// The server binary runs without real sensors, so presence, enrollment and
// the challenge outcome are fixed at construction time.
type SimulatedBiometric struct {
	Hardware bool
	Enrolled bool
	Types    []BiometricType
	Outcome  BiometricOutcome
}

// NewSimulatedBiometric returns a device that always reports success, with
// fingerprint and face sensors present and enrolled.
func NewSimulatedBiometric() *SimulatedBiometric {
	return &SimulatedBiometric{
		Hardware: true,
		Enrolled: true,
		Types:    []BiometricType{BiometricFingerprint, BiometricFace},
		Outcome:  BiometricSuccess,
	}
}

func (d *SimulatedBiometric) HasHardware() bool { return d.Hardware }

func (d *SimulatedBiometric) IsEnrolled() bool { return d.Enrolled }

func (d *SimulatedBiometric) SupportedTypes() []BiometricType { return d.Types }

func (d *SimulatedBiometric) Authenticate(_ context.Context, _ string) BiometricOutcome {
	return d.Outcome
}

// StaticPrompter answers prompts from values fixed up front. API requests
// carry their credentials with them, so each request builds one of these
// instead of holding a conversation with the user.
type StaticPrompter struct {
	PIN           string
	AllowOverride bool
}

// ChooseFallback picks PIN entry when a PIN was supplied, override when the
// caller explicitly allowed it, and cancels otherwise.
func (p *StaticPrompter) ChooseFallback(_ context.Context, _ string) FallbackChoice {
	if p.PIN != "" {
		return FallbackPIN
	}
	if p.AllowOverride {
		return FallbackOverride
	}
	return FallbackCancel
}

// EnterPIN returns the supplied PIN exactly once; a re-prompt cancels rather
// than looping forever on a code that will never change.
func (p *StaticPrompter) EnterPIN(_ context.Context) (string, bool) {
	if p.PIN == "" {
		return "", false
	}
	pin := p.PIN
	p.PIN = ""
	return pin, true
}
