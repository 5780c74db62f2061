package config

// Fallbacks applied by applyDefaults when the merged configuration leaves a
// sync tunable unset.
const (
	defaultSyncPageSize       = 100000
	defaultAnalyticsQueueSize = 1024
)

// applyDefaults fills in sync and worker tunables that no configuration
// source provided. Zero values for MaxPageSize and MaxItemSizeBytes are
// deliberate "unlimited" settings and stay untouched.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Sync.DefaultPageSize == 0 {
		cfg.Sync.DefaultPageSize = defaultSyncPageSize
	}

	if cfg.Workers.AnalyticsQueueSize == 0 {
		cfg.Workers.AnalyticsQueueSize = defaultAnalyticsQueueSize
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive sentinel error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Sync.DefaultPageSize < 0 || cfg.Sync.MaxPageSize < 0 || cfg.Sync.MaxItemSizeBytes < 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
