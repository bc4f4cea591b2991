package authn

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBiometric struct {
	mock.Mock
}

func (m *MockBiometric) HasHardware() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockBiometric) IsEnrolled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockBiometric) SupportedTypes() []BiometricType {
	args := m.Called()
	return args.Get(0).([]BiometricType)
}

func (m *MockBiometric) Authenticate(ctx context.Context, prompt string) BiometricOutcome {
	args := m.Called(ctx, prompt)
	return args.Get(0).(BiometricOutcome)
}

type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) ChooseFallback(ctx context.Context, reason string) FallbackChoice {
	args := m.Called(ctx, reason)
	return args.Get(0).(FallbackChoice)
}

func (m *MockPrompter) EnterPIN(ctx context.Context) (string, bool) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1)
}

func availableBiometric(outcome BiometricOutcome) *MockBiometric {
	biometric := new(MockBiometric)
	biometric.On("HasHardware").Return(true)
	biometric.On("IsEnrolled").Return(true)
	biometric.On("Authenticate", mock.Anything, mock.AnythingOfType("string")).Return(outcome)
	return biometric
}

func TestEscalator_Biometric(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		biometric := availableBiometric(BiometricSuccess)
		prompter := new(MockPrompter)
		escalator := NewEscalator(logger, biometric, 4)

		verdict := escalator.Authorize(ctx, prompter)

		assert.True(t, verdict.Granted)
		assert.Equal(t, MethodBiometric, verdict.Method)
		// No fallback prompt was issued
		prompter.AssertNotCalled(t, "ChooseFallback", mock.Anything, mock.Anything)
	})

	t.Run("Cancelled", func(t *testing.T) {
		escalator := NewEscalator(logger, availableBiometric(BiometricCancelled), 4)

		verdict := escalator.Authorize(ctx, new(MockPrompter))

		assert.False(t, verdict.Granted)
		assert.Equal(t, ReasonCancelled, verdict.Reason)
	})

	t.Run("Lockout", func(t *testing.T) {
		escalator := NewEscalator(logger, availableBiometric(BiometricLockout), 4)

		verdict := escalator.Authorize(ctx, new(MockPrompter))

		assert.False(t, verdict.Granted)
		assert.Equal(t, ReasonLockedOut, verdict.Reason)
	})
}

func TestEscalator_Fallback(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	t.Run("FailureEscalatesToPIN", func(t *testing.T) {
		prompter := new(MockPrompter)
		prompter.On("ChooseFallback", ctx, mock.AnythingOfType("string")).Return(FallbackPIN).Once()
		prompter.On("EnterPIN", ctx).Return("123456", true).Once()
		escalator := NewEscalator(logger, availableBiometric(BiometricFailed), 4)

		verdict := escalator.Authorize(ctx, prompter)

		assert.True(t, verdict.Granted)
		assert.Equal(t, MethodPIN, verdict.Method)
		prompter.AssertExpectations(t)
	})

	t.Run("FailureWithExplicitOverride", func(t *testing.T) {
		prompter := new(MockPrompter)
		prompter.On("ChooseFallback", ctx, mock.AnythingOfType("string")).Return(FallbackOverride).Once()
		escalator := NewEscalator(logger, availableBiometric(BiometricFailed), 4)

		verdict := escalator.Authorize(ctx, prompter)

		assert.True(t, verdict.Granted)
		assert.Equal(t, MethodOverride, verdict.Method)
	})

	t.Run("FailureThenCancel", func(t *testing.T) {
		prompter := new(MockPrompter)
		prompter.On("ChooseFallback", ctx, mock.AnythingOfType("string")).Return(FallbackCancel).Once()
		escalator := NewEscalator(logger, availableBiometric(BiometricFailed), 4)

		verdict := escalator.Authorize(ctx, prompter)

		assert.False(t, verdict.Granted)
		assert.Equal(t, ReasonCancelled, verdict.Reason)
	})

	t.Run("NoHardwareGoesStraightToFallback", func(t *testing.T) {
		biometric := new(MockBiometric)
		biometric.On("HasHardware").Return(false)
		prompter := new(MockPrompter)
		prompter.On("ChooseFallback", ctx, mock.AnythingOfType("string")).Return(FallbackPIN).Once()
		prompter.On("EnterPIN", ctx).Return("1234", true).Once()
		escalator := NewEscalator(logger, biometric, 4)

		verdict := escalator.Authorize(ctx, prompter)

		assert.True(t, verdict.Granted)
		assert.Equal(t, MethodPIN, verdict.Method)
		biometric.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("NotEnrolledGoesStraightToFallback", func(t *testing.T) {
		biometric := new(MockBiometric)
		biometric.On("HasHardware").Return(true)
		biometric.On("IsEnrolled").Return(false)
		prompter := new(MockPrompter)
		prompter.On("ChooseFallback", ctx, mock.AnythingOfType("string")).Return(FallbackCancel).Once()
		escalator := NewEscalator(logger, biometric, 4)

		verdict := escalator.Authorize(ctx, prompter)

		assert.False(t, verdict.Granted)
		biometric.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})
}

func TestEscalator_PINGate(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	newPINEscalator := func() (*Escalator, *MockPrompter) {
		prompter := new(MockPrompter)
		prompter.On("ChooseFallback", ctx, mock.AnythingOfType("string")).Return(FallbackPIN).Once()
		return NewEscalator(logger, availableBiometric(BiometricFailed), 4), prompter
	}

	t.Run("ShortPINRepromptsUntilValid", func(t *testing.T) {
		escalator, prompter := newPINEscalator()
		prompter.On("EnterPIN", ctx).Return("12", true).Once()
		prompter.On("EnterPIN", ctx).Return("123", true).Once()
		prompter.On("EnterPIN", ctx).Return("1234", true).Once()

		verdict := escalator.Authorize(ctx, prompter)

		assert.True(t, verdict.Granted)
		prompter.AssertExpectations(t)
	})

	t.Run("NonNumericReprompts", func(t *testing.T) {
		escalator, prompter := newPINEscalator()
		prompter.On("EnterPIN", ctx).Return("12ab", true).Once()
		prompter.On("EnterPIN", ctx).Return("9876", true).Once()

		verdict := escalator.Authorize(ctx, prompter)

		assert.True(t, verdict.Granted)
		prompter.AssertExpectations(t)
	})

	t.Run("CancelDuringEntryDenies", func(t *testing.T) {
		escalator, prompter := newPINEscalator()
		prompter.On("EnterPIN", ctx).Return("12", true).Once()
		prompter.On("EnterPIN", ctx).Return("", false).Once()

		verdict := escalator.Authorize(ctx, prompter)

		assert.False(t, verdict.Granted)
		assert.Equal(t, ReasonCancelled, verdict.Reason)
	})
}

func TestStaticPrompter(t *testing.T) {
	ctx := context.Background()

	t.Run("PINSelectsPINEntry", func(t *testing.T) {
		prompter := &StaticPrompter{PIN: "1234"}

		assert.Equal(t, FallbackPIN, prompter.ChooseFallback(ctx, "failed"))

		pin, ok := prompter.EnterPIN(ctx)
		assert.True(t, ok)
		assert.Equal(t, "1234", pin)

		// A second prompt cancels instead of looping on the same code
		_, ok = prompter.EnterPIN(ctx)
		assert.False(t, ok)
	})

	t.Run("OverrideWhenAllowed", func(t *testing.T) {
		prompter := &StaticPrompter{AllowOverride: true}
		assert.Equal(t, FallbackOverride, prompter.ChooseFallback(ctx, "failed"))
	})

	t.Run("CancelByDefault", func(t *testing.T) {
		prompter := &StaticPrompter{}
		assert.Equal(t, FallbackCancel, prompter.ChooseFallback(ctx, "failed"))
	})
}
