package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/ldraw/pkg/utils"
)

const ConfigFile = ".ldctl"

type Config struct {
	Library    *string `json:"ldraw,omitempty"`
	Additional *string `json:"additional,omitempty"`
	MaxDepth   *int    `json:"maxDepth,omitempty"`
}

// GetConfig merges the config files found in the home directory,
// the user config directory and the working directory. An explicit
// config file is merged last and must exist. The environment
// overrides the files.
func GetConfig(fs vfs.FileSystem, explicit string) (*Config, error) {
	var cfg Config

	dir, err := os.UserHomeDir()
	if err == nil {
		MergeConfig(&cfg, ReadConfig(fs, vfs.Join(fs, dir, ConfigFile)))
	}
	dir, err = os.UserConfigDir()
	if err == nil {
		MergeConfig(&cfg, ReadConfig(fs, vfs.Join(fs, dir, ConfigFile)))
	}
	MergeConfig(&cfg, ReadConfig(fs, ConfigFile))

	if explicit != "" {
		add, err := LoadConfig(fs, explicit)
		if err != nil {
			return nil, err
		}
		MergeConfig(&cfg, add)
	}

	if v := os.Getenv("LDRAWDIR"); v != "" {
		cfg.Library = utils.Pointer(v)
	}
	if v := os.Getenv("LDRAW_ADDITIONAL"); v != "" {
		cfg.Additional = utils.Pointer(v)
	}
	if v := os.Getenv("LDRAW_MAX_DEPTH"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LDRAW_MAX_DEPTH %q", v)
		}
		cfg.MaxDepth = utils.Pointer(d)
	}

	for _, p := range []*string{cfg.Library, cfg.Additional} {
		if p == nil {
			continue
		}
		v, err := envsubst.EvalEnv(*p)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", *p, err)
		}
		*p = v
	}
	return &cfg, nil
}

// ReadConfig reads an optional config file. Missing or invalid files
// are ignored.
func ReadConfig(fs vfs.FileSystem, path string) *Config {
	cfg, err := LoadConfig(fs, path)
	if err != nil {
		if !errors.Is(err, vfs.ErrNotExist) {
			log.Warn("ignoring config {{path}}", "path", path, "error", err)
		}
		return nil
	}
	return cfg
}

func LoadConfig(fs vfs.FileSystem, path string) (*Config, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func MergeConfig(cfg *Config, add *Config) {
	if add == nil {
		return
	}
	if add.Library != nil {
		cfg.Library = add.Library
	}
	if add.Additional != nil {
		cfg.Additional = add.Additional
	}
	if add.MaxDepth != nil {
		cfg.MaxDepth = add.MaxDepth
	}
}
