package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
)

// SerializeConfig renders the configuration as TOML, one table per
// subsystem. Used by the dump command and the status API.
func (c *GlobalConfig) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}
