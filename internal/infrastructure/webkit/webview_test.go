package webkit

import (
	"errors"
	"testing"

	webkitlib "github.com/bnema/puregotk-webkit/webkit"
	"github.com/stretchr/testify/assert"
)

func TestWebProcessTerminationReasonString(t *testing.T) {
	assert.Equal(t, "crashed", webProcessTerminationReasonString(webkitlib.WebProcessCrashedValue))
	assert.Equal(t, "exceeded_memory", webProcessTerminationReasonString(webkitlib.WebProcessExceededMemoryLimitValue))
	assert.Equal(t, "terminated_by_api", webProcessTerminationReasonString(webkitlib.WebProcessTerminatedByApiValue))
	assert.Equal(t, "unknown", webProcessTerminationReasonString(webkitlib.WebProcessTerminationReason(99)))
}

func TestLoadError(t *testing.T) {
	t.Run("download interruption is benign", func(t *testing.T) {
		err := &LoadError{Code: 102, Message: "Frame load was interrupted"}
		assert.True(t, err.Benign())
	})

	t.Run("cancelled navigation is benign", func(t *testing.T) {
		assert.True(t, (&LoadError{Code: 302}).Benign())
	})

	t.Run("network failure is reported", func(t *testing.T) {
		err := &LoadError{Code: 399, Message: "Could not resolve host"}
		assert.False(t, err.Benign())
		assert.Equal(t, "Could not resolve host", err.Error())
	})

	t.Run("missing message", func(t *testing.T) {
		assert.Equal(t, "load failed (code 7)", (&LoadError{Code: 7}).Error())
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := loadErrorFromPtr(0)
		assert.Equal(t, 0, err.Code)
		assert.False(t, err.Benign())
	})
}

func TestClassifyEvaluateError(t *testing.T) {
	t.Run("non-fatal canceled", func(t *testing.T) {
		nonFatal, signature := classifyEvaluateError(errors.New("Operation was canceled"))
		assert.True(t, nonFatal)
		assert.Equal(t, "evaluate_error:operation was canceled", signature)
	})

	t.Run("non-fatal context destroyed", func(t *testing.T) {
		nonFatal, signature := classifyEvaluateError(errors.New("JavaScript execution context was destroyed"))
		assert.True(t, nonFatal)
		assert.Equal(t, "evaluate_error:javascript execution context was destroyed", signature)
	})

	t.Run("fatal unknown", func(t *testing.T) {
		nonFatal, signature := classifyEvaluateError(errors.New("ReferenceError: Can't find variable: x"))
		assert.False(t, nonFatal)
		assert.Equal(t, "evaluate_error:referenceerror: can't find variable: x", signature)
	})
}

func TestNormalizeErrorSignature(t *testing.T) {
	assert.Equal(t, "empty", normalizeErrorSignature(" \n\t "))
	assert.Equal(t, "foo bar baz", normalizeErrorSignature(" Foo   BAR\tbaz "))
}
