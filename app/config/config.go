// Package config provides a go-simpler.org/env configuration table and
// helpers for printing the current settings and usage.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"go-simpler.org/env"

	"okra.dev/utils/apputil"
	"okra.dev/utils/chk"
	env2 "okra.dev/utils/env"
	"okra.dev/utils/log"
	"okra.dev/version"
)

// C holds the relay configuration, loaded from environment variables with an
// optional .env file underneath.
type C struct {
	AppName        string   `env:"OKRA_APP_NAME" default:"okra"`
	Config         string   `env:"OKRA_CONFIG_DIR" usage:"location of the .env configuration file" default:"~/.config/okra"`
	DataDir        string   `env:"OKRA_DATA_DIR" usage:"storage location for the event store" default:"~/.local/share/okra"`
	Listen         string   `env:"OKRA_LISTEN" default:"0.0.0.0" usage:"network listen address"`
	Port           int      `env:"OKRA_PORT" default:"3334" usage:"port to listen on"`
	LogLevel       string   `env:"OKRA_LOG_LEVEL" default:"info" usage:"log level: off fatal error warn info debug trace"`
	DbLogLevel     string   `env:"OKRA_DB_LOG_LEVEL" default:"info" usage:"log level for the event store"`
	Pprof          bool     `env:"OKRA_PPROF" default:"false" usage:"enable memory profiling and pprof on 127.0.0.1:6060"`
	AuthRequired   bool     `env:"OKRA_AUTH_REQUIRED" default:"false" usage:"require authentication before accepting EVENT or REQ"`
	AllowedPubkeys []string `env:"OKRA_ALLOWED_PUBKEYS" usage:"hex pubkeys permitted to publish events; empty allows any valid pubkey (comma separated)"`
	Name           string   `env:"OKRA_RELAY_NAME" default:"okra" usage:"relay name shown in the relay information document"`
	Description    string   `env:"OKRA_RELAY_DESCRIPTION" usage:"relay description shown in the relay information document"`
	Pubkey         string   `env:"OKRA_RELAY_PUBKEY" usage:"administrative contact pubkey of the relay"`
	Contact        string   `env:"OKRA_RELAY_CONTACT" usage:"administrative contact address of the relay"`
}

// New loads the configuration from the process environment, then overlays
// values from the .env file in the configuration directory when one exists.
func New() (cfg *C, err error) {
	cfg = &C{}
	if err = env.Load(cfg, &env.Options{SliceSep: ","}); chk.T(err) {
		return
	}
	if cfg.Config == "" || strings.Contains(cfg.Config, "~") {
		cfg.Config = filepath.Join(xdg.ConfigHome, cfg.AppName)
	}
	if cfg.DataDir == "" || strings.Contains(cfg.DataDir, "~") {
		cfg.DataDir = filepath.Join(xdg.DataHome, cfg.AppName)
	}
	envPath := filepath.Join(cfg.Config, ".env")
	if apputil.FileExists(envPath) {
		var e env2.Env
		if e, err = env2.GetEnv(envPath); chk.T(err) {
			return
		}
		if err = env.Load(
			cfg, &env.Options{SliceSep: ",", Source: e},
		); chk.E(err) {
			return
		}
		log.SetLogLevel(cfg.LogLevel)
		log.I.F("loaded configuration from %s", envPath)
	}
	var allowed []string
	for _, pk := range cfg.AllowedPubkeys {
		if pk == "" {
			continue
		}
		allowed = append(allowed, strings.ToLower(pk))
	}
	cfg.AllowedPubkeys = allowed
	return
}

// HelpRequested reports whether the first command line argument asks for the
// usage text.
func HelpRequested() (help bool) {
	if len(os.Args) > 1 {
		switch strings.ToLower(os.Args[1]) {
		case "help", "-h", "--h", "-help", "--help", "?":
			help = true
		}
	}
	return
}

// GetEnv reports whether the first command line argument is "env", asking
// for the current configuration in .env form.
func GetEnv() (requested bool) {
	if len(os.Args) > 1 {
		requested = strings.ToLower(os.Args[1]) == "env"
	}
	return
}

// KV is a key/value pair.
type KV struct{ Key, Value string }

// KVSlice is a sortable slice of key/value pairs.
type KVSlice []KV

func (kv KVSlice) Len() int           { return len(kv) }
func (kv KVSlice) Less(i, j int) bool { return kv[i].Key < kv[j].Key }
func (kv KVSlice) Swap(i, j int)      { kv[i], kv[j] = kv[j], kv[i] }

// Compose merges two KVSlice instances; keys in kv2 win.
func (kv KVSlice) Compose(kv2 KVSlice) (out KVSlice) {
	out = append(out, kv...)
out:
	for i, p := range kv2 {
		for j, q := range out {
			if p.Key == q.Key {
				out[j].Value = kv2[i].Value
				continue out
			}
		}
		out = append(out, p)
	}
	return
}

// EnvKV extracts the env-tagged fields of a configuration value as key/value
// pairs.
func EnvKV(cfg any) (m KVSlice) {
	t := reflect.TypeOf(cfg)
	for i := 0; i < t.NumField(); i++ {
		k := t.Field(i).Tag.Get("env")
		if k == "" {
			continue
		}
		v := reflect.ValueOf(cfg).Field(i).Interface()
		var val string
		switch vv := v.(type) {
		case string:
			val = vv
		case int, bool, time.Duration:
			val = fmt.Sprint(v)
		case []string:
			if len(vv) > 0 {
				val = strings.Join(vv, ",")
			}
		}
		m = append(m, KV{k, val})
	}
	return
}

// PrintEnv writes the current configuration in sorted KEY=value form.
func PrintEnv(cfg *C, printer io.Writer) {
	kvs := EnvKV(*cfg)
	sort.Sort(kvs)
	for _, v := range kvs {
		_, _ = fmt.Fprintf(printer, "%s=%s\n", v.Key, v.Value)
	}
}

// PrintHelp writes the usage text: version, environment variables and the
// .env handling notes.
func PrintHelp(cfg *C, printer io.Writer) {
	_, _ = fmt.Fprintf(printer, "%s %s\n\n", cfg.AppName, version.V)
	_, _ = fmt.Fprintf(
		printer,
		"Environment variables that configure %s:\n\n", cfg.AppName,
	)
	env.Usage(cfg, printer, &env.Options{SliceSep: ","})
	_, _ = fmt.Fprintf(
		printer,
		"\nCLI parameter 'help' also prints this information\n"+
			"\n.env file found at the path %s will be automatically "+
			"loaded for configuration.\nenvironment overrides it and "+
			"you can also edit the file to set configuration options\n\n"+
			"use the parameter 'env' to print out the current "+
			"configuration to the terminal\n\n"+
			"set the environment using\n\n\t%s env > %s/.env\n",
		cfg.Config, os.Args[0], cfg.Config,
	)
	_, _ = fmt.Fprintf(printer, "\ncurrent configuration:\n\n")
	PrintEnv(cfg, printer)
	_, _ = fmt.Fprintln(printer)
}
