package config

import "sync/atomic"

// Holder publishes the running config to concurrent readers. Reloads swap the
// pointer; a loaded *Config is never mutated afterwards.
type Holder struct {
	v atomic.Pointer[Config]
}

// NewHolder returns a holder seeded with cfg.
func NewHolder(cfg *Config) *Holder {
	h := &Holder{}
	h.Set(cfg)
	return h
}

// Config returns the current config.
func (h *Holder) Config() *Config {
	return h.v.Load()
}

// Set replaces the current config.
func (h *Holder) Set(cfg *Config) {
	h.v.Store(cfg)
}
