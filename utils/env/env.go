// Package env reads KEY=value configuration files in the shape used by .env
// files, for feeding into go-simpler.org/env as an alternate source.
package env

import (
	"bufio"
	"os"
	"strings"

	"okra.dev/utils/chk"
)

// Env is a set of key/value pairs usable as an env.Options Source.
type Env map[string]string

// LookupEnv reports the value for a key, like os.LookupEnv.
func (e Env) LookupEnv(key string) (value string, ok bool) {
	value, ok = e[key]
	return
}

// GetEnv parses the file at path. Blank lines and lines starting with # are
// ignored; everything after the first = on a line is the value, with
// surrounding quotes stripped.
func GetEnv(path string) (e Env, err error) {
	var f *os.File
	if f, err = os.Open(path); chk.E(err) {
		return
	}
	defer f.Close()
	e = make(Env)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		v = strings.TrimSpace(v)
		v = strings.Trim(v, `"'`)
		e[strings.TrimSpace(k)] = v
	}
	err = scanner.Err()
	return
}
