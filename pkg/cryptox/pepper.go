package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Argon2id parameters.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile string
)

// SetPepperPath sets where the pepper is read from, or written to on first
// use. Must be called before any password is hashed.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()
	pepperFile = file
}

// LoadPepper loads the pepper eagerly so a bad path fails at startup rather
// than on the first login.
func LoadPepper() error {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return nil
	}
	p, err := loadOrGeneratePepper()
	if err != nil {
		return err
	}
	pepper = p
	return nil
}

// GetPepper returns the pepper, loading it if needed. A pepper that cannot
// be loaded is unrecoverable: every hash would be wrong.
func GetPepper() string {
	if err := LoadPepper(); err != nil {
		slog.Error("failed to load or generate pepper", "err", err)
		os.Exit(1)
	}

	pepperMu.Lock()
	defer pepperMu.Unlock()
	return pepper
}

func loadOrGeneratePepper() (string, error) {
	if pepperFile == "" {
		return "", errors.New("cryptox: pepper path not set")
	}

	path := filepath.Clean(pepperFile)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}

	b, err := os.ReadFile(path)
	if err == nil {
		return string(b), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	raw := make([]byte, keyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	p := base64.RawURLEncoding.EncodeToString(raw)
	if err := os.WriteFile(path, []byte(p), 0600); err != nil {
		return "", err
	}
	return p, nil
}
