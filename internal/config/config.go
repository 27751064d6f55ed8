// Package config provides configuration types and loading for the kitz
// coordination kernel.
package config

// Config is the root configuration struct.
type Config struct {
	Ledger  LedgerConfig  `json:"ledger"`
	Ack     AckConfig     `json:"ack"`
	WarRoom WarRoomConfig `json:"warRoom" envconfig:"WAR_ROOM"`
	Sweep   SweepConfig   `json:"sweep"`
}

// LedgerConfig selects and locates the ledger backend.
type LedgerConfig struct {
	// Backend is one of file, sqlite, remote. remote is a placeholder that
	// fails loudly until a remote store exists.
	Backend string `json:"backend" envconfig:"BACKEND"`
	// Dir is the directory for the file backend's NDJSON streams.
	Dir string `json:"dir" envconfig:"DIR"`
	// DBPath is the database file for the sqlite backend.
	DBPath string `json:"dbPath" envconfig:"DB_PATH"`
}

// AckConfig tunes acknowledgment tracking.
type AckConfig struct {
	WindowMinutes int `json:"windowMinutes" envconfig:"WINDOW_MINUTES"`
}

// WarRoomConfig tunes escalation-burst detection.
type WarRoomConfig struct {
	WindowMinutes int `json:"windowMinutes" envconfig:"WINDOW_MINUTES"`
	Threshold     int `json:"threshold" envconfig:"THRESHOLD"`
}

// SweepConfig tunes the periodic ack sweep.
type SweepConfig struct {
	IntervalSeconds int `json:"intervalSeconds" envconfig:"INTERVAL_SECONDS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Ledger: LedgerConfig{
			Backend: "file",
			Dir:     "ledger",
			DBPath:  "ledger.db",
		},
		Ack:     AckConfig{WindowMinutes: 5},
		WarRoom: WarRoomConfig{WindowMinutes: 10, Threshold: 3},
		Sweep:   SweepConfig{IntervalSeconds: 60},
	}
}
