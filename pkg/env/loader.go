// Package env reads settings from the process environment with an
// optional .env file underneath it.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Loader resolves environment variables. Values set in the process
// environment take precedence over values loaded from files.
type Loader struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewLoader creates an empty Loader.
func NewLoader() *Loader {
	return &Loader{vars: make(map[string]string)}
}

// Load reads KEY=VALUE lines from a .env file. Blank lines and
// lines starting with '#' are skipped; surrounding quotes are
// removed from values.
func (l *Loader) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", path, err)
	}
	defer file.Close()

	l.mu.Lock()
	defer l.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		l.vars[strings.TrimSpace(key)] = strings.Trim(
			strings.TrimSpace(value), `"'`,
		)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	return nil
}

// Lookup returns the value of key and whether it is set.
func (l *Loader) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.vars[key]
	return v, ok
}

// Get returns the value of key, or "" when unset.
func (l *Loader) Get(key string) string {
	v, _ := l.Lookup(key)
	return v
}

// GetWithDefault returns the value of key, or fallback when unset
// or empty.
func (l *Loader) GetWithDefault(key, fallback string) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return fallback
}

// GetBool parses key as a boolean. It reports ok=false when the
// key is unset and an error when the value does not parse.
func (l *Loader) GetBool(key string) (value, ok bool, err error) {
	raw, set := l.Lookup(key)
	if !set || raw == "" {
		return false, false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf(
			"%s: invalid boolean %q", key, raw,
		)
	}
	return b, true, nil
}

// Set stores a value for key in the loader only; the process
// environment is left untouched.
func (l *Loader) Set(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vars[key] = value
}
