package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// loadEnvFiles loads dotenv files; variables already set win.
func loadEnvFiles(files []string) error {
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// EnvPrefix is the environment prefix of an app name: medreq-server -> MEDREQ_SERVER.
func EnvPrefix(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// loadConfig decodes config file and environment into the options.
// Precedence: flags, then environment, then file, then defaults.
func (a *App) loadConfig(cmd *cobra.Command) error {
	v := a.viper
	if file, _ := cmd.Flags().GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(a.name)
		v.SetConfigType("yaml")
		for _, dir := range searchPath(a.name) {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	expandEnv(v)

	v.SetEnvPrefix(EnvPrefix(a.name))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Unmarshal overwrites flag values; remember what the user typed.
	changed := map[string]string{}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// AutomaticEnv only answers for keys viper already knows.
		_ = v.BindEnv(f.Name)
		if f.Changed {
			changed[f.Name] = f.Value.String()
		}
	})

	if err := v.Unmarshal(a.options); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	for name, val := range changed {
		if err := cmd.Flags().Set(name, val); err != nil {
			return fmt.Errorf("re-apply --%s: %w", name, err)
		}
	}
	return nil
}

func searchPath(name string) []string {
	dirs := []string{".", "./configs"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "."+name))
	}
	return append(dirs, "/etc/"+name)
}

// expandEnv substitutes $VAR and ${VAR} in string values. Unset variables
// are kept in ${VAR} form.
func expandEnv(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		s, ok := v.Get(key).(string)
		if !ok || !strings.Contains(s, "$") {
			continue
		}
		out := os.Expand(s, func(name string) string {
			if val, ok := os.LookupEnv(name); ok && val != "" {
				return val
			}
			return "${" + name + "}"
		})
		if out != s {
			v.Set(key, out)
		}
	}
}
