package component

import (
	"testing"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/stretchr/testify/assert"
)

func TestLevelClass(t *testing.T) {
	assert.Equal(t, "toast-info", levelClass(port.NotificationInfo))
	assert.Equal(t, "toast-success", levelClass(port.NotificationSuccess))
	assert.Equal(t, "toast-warning", levelClass(port.NotificationWarning))
	assert.Equal(t, "toast-error", levelClass(port.NotificationError))
	assert.Equal(t, "toast-info", levelClass(port.NotificationType(42)))
}

func TestResolveDuration(t *testing.T) {
	assert.Equal(t, 500, resolveDuration(500, 3000))
	assert.Equal(t, 3000, resolveDuration(0, 3000))
	assert.Equal(t, DefaultToastDurationMs, resolveDuration(0, 0))
	assert.Equal(t, DefaultToastDurationMs, resolveDuration(-1, -1))
}
