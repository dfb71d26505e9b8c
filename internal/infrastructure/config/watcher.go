package config

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/webshell/internal/logging"
)

// Watch reloads the file whenever it changes on disk and hands every
// valid result to the OnConfigChange subscribers. A file that fails to
// parse or validate is logged and the previous configuration stays.
func (m *Manager) Watch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return nil
	}

	log := logging.FromContext(ctx).With().Str("component", "config-watcher").Logger()
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config file changed")

		m.mu.Lock()
		if err := m.reload(); err != nil {
			m.mu.Unlock()
			log.Warn().Err(err).Msg("keeping previous configuration")
			return
		}
		cfg := m.config
		subscribers := append([]func(*Config){}, m.callbacks...)
		m.mu.Unlock()

		log.Info().Str("file", e.Name).Msg("configuration reloaded")
		for _, fn := range subscribers {
			fn(cfg)
		}
	})
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

// OnConfigChange subscribes fn to reloads. fn runs on the watcher goroutine.
func (m *Manager) OnConfigChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// reload re-reads the file. Callers hold m.mu.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}
