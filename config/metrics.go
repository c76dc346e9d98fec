package config

// MetricsConfig points request metrics at a StatsD agent. Leave Address empty to disable.
type MetricsConfig struct {
	Address string `env:"ADDRESS"`
	Prefix  string `env:"PREFIX"  envDefault:"gradebook"`
	// Env is attached to every metric as the "env" tag.
	Env string `env:"ENV"`
}
