package cmd

import (
	"fmt"
	"strings"

	"github.com/bekucukakin/vega/internal/config"
	"github.com/bekucukakin/vega/internal/repo"
	"github.com/bekucukakin/vega/internal/validate"
	"github.com/bekucukakin/vega/internal/vcserr"
)

var configGlobal bool

// ConfigHandler implements `vega config get <section.key>` and
// `vega config set <section.key> <value>`.
func ConfigHandler(r *repo.Repository, args []string) error {
	if err := validate.FileOperations(r); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: vega config <get|set> <section.key> [value]")
	}

	section, key, err := splitKey(args[1])
	if err != nil {
		return err
	}

	switch args[0] {
	case "get":
		local, err := config.LoadLocal(r.Meta)
		if err != nil {
			return err
		}
		global, err := config.LoadGlobal()
		if err != nil {
			return err
		}
		merged := config.Resolve(local, global)
		value, ok := merged.Get(section, key)
		if !ok {
			return vcserr.New(vcserr.MissingRef, fmt.Sprintf("no config entry for %q", args[1]), nil)
		}
		fmt.Println(value)
		return nil

	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: vega config set <section.key> <value>")
		}
		var cfg *config.Config
		if configGlobal {
			cfg, err = config.LoadGlobal()
		} else {
			cfg, err = config.LoadLocal(r.Meta)
		}
		if err != nil {
			return err
		}
		cfg.Set(section, key, args[2])
		return cfg.Save()

	default:
		return fmt.Errorf("unknown config subcommand %q", args[0])
	}
}

func splitKey(raw string) (section, key string, err error) {
	i := strings.LastIndexByte(raw, '.')
	if i == -1 {
		return "", raw, nil
	}
	return raw[:i], raw[i+1:], nil
}

func init() {
	configCmd := NewRepoCommand("config <get|set> <section.key> [value]", "Get and set repository or global options", ConfigHandler)
	configCmd.Flags().BoolVar(&configGlobal, "global", false, "operate on the global config instead of the local one")
	rootCmd.AddCommand(configCmd)
}
