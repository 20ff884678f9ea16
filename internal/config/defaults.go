package config

import (
	"github.com/dendrascience/groupzip/groupzip"
	"github.com/spf13/viper"
)

// DefaultConfig returns a fully-populated config document.
func DefaultConfig() Config {
	return Config{
		Grouping: GroupingConfig{
			BaseNameRule: string(groupzip.FirstDot),
			Policy:       string(groupzip.Unconditional),
			Count:        groupzip.DefaultRequiredCount,
			Companion:    ".shp",
		},
		Archive: ArchiveConfig{
			Extension: groupzip.DefaultExtension,
		},
		Run: RunConfig{
			Workers: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: ":6066",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("grouping.base_name_rule", d.Grouping.BaseNameRule)
	v.SetDefault("grouping.policy", d.Grouping.Policy)
	v.SetDefault("grouping.count", d.Grouping.Count)
	v.SetDefault("grouping.companion", d.Grouping.Companion)
	v.SetDefault("archive.extension", d.Archive.Extension)
	v.SetDefault("archive.scratch_dir", d.Archive.ScratchDir)
	v.SetDefault("archive.remove_members", d.Archive.RemoveMembers)
	v.SetDefault("run.workers", d.Run.Workers)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("server.addr", d.Server.Addr)
}
