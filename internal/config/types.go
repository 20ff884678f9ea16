package config

// Config is the groupzip configuration document.
type Config struct {
	Grouping GroupingConfig `toml:"grouping" mapstructure:"grouping"`
	Archive  ArchiveConfig  `toml:"archive" mapstructure:"archive"`
	Run      RunConfig      `toml:"run" mapstructure:"run"`
	Logging  LoggingConfig  `toml:"logging" mapstructure:"logging"`
	Server   ServerConfig   `toml:"server" mapstructure:"server"`
}

// GroupingConfig selects the base name rule and the selection policy.
type GroupingConfig struct {
	BaseNameRule string `toml:"base_name_rule" mapstructure:"base_name_rule"`
	Policy       string `toml:"policy" mapstructure:"policy"`
	Count        int    `toml:"count" mapstructure:"count"`
	Companion    string `toml:"companion" mapstructure:"companion"`
}

type ArchiveConfig struct {
	Extension     string `toml:"extension" mapstructure:"extension"`
	ScratchDir    string `toml:"scratch_dir" mapstructure:"scratch_dir"`
	RemoveMembers bool   `toml:"remove_members" mapstructure:"remove_members"`
}

type RunConfig struct {
	Workers int `toml:"workers" mapstructure:"workers"`
}

type LoggingConfig struct {
	Level  string `toml:"level" mapstructure:"level"`
	Format string `toml:"format" mapstructure:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr" mapstructure:"addr"`
}
