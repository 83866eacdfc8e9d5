package types

// Config holds the storage locations for a Fieldbook instance. One Config is
// resolved at process start (flag, environment, then config.yaml) and passed
// to every component; nothing reads ambient global state.
type Config struct {
	// DataDir holds the key-value file and the engine's scratch database.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
