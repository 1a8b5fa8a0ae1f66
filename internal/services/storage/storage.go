// Package storage reads and writes files in the data directory, sealing them
// with an age scrypt passphrase once encryption has been enabled.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"filippo.io/age"
)

const (
	// ageHeader starts every age-encrypted file
	ageHeader = "age-encryption.org"

	// markerFile marks an encrypted data directory
	markerFile = ".fincast-encrypted"

	// checkFile holds checkMagic sealed with the passphrase
	checkFile  = ".fincast-check"
	checkMagic = `{"magic":"fincast-data-check","version":1}`

	minPasswordLen = 8
)

var (
	ErrLocked           = errors.New("storage: data directory is encrypted and locked")
	ErrWrongPassword    = errors.New("storage: incorrect password")
	ErrAlreadyEncrypted = errors.New("storage: encryption is already enabled")
	ErrNotEncrypted     = errors.New("storage: encryption is not enabled")
	ErrWeakPassword     = fmt.Errorf("storage: password must be at least %d characters", minPasswordLen)
)

// Storage gives access to the files of one data directory
type Storage struct {
	dir       string
	encrypted bool
	identity  *age.ScryptIdentity
	recipient *age.ScryptRecipient
	mu        sync.RWMutex
}

// Open prepares dir for use, creating it when missing
func Open(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creating %s: %w", dir, err)
	}

	s := &Storage{dir: dir}
	if _, err := os.Stat(filepath.Join(dir, markerFile)); err == nil {
		s.encrypted = true
	}
	return s, nil
}

// Dir returns the data directory
func (s *Storage) Dir() string {
	return s.dir
}

// Path resolves name inside the data directory
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// IsEncrypted reports whether the directory is encrypted
func (s *Storage) IsEncrypted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encrypted
}

// IsUnlocked reports whether files can be read
func (s *Storage) IsUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.encrypted || s.identity != nil
}

// Unlock checks password against the directory and keeps the key in memory
func (s *Storage) Unlock(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return nil
	}

	identity, recipient, err := s.verify(password)
	if err != nil {
		return err
	}
	s.identity = identity
	s.recipient = recipient
	return nil
}

// Lock forgets the key
func (s *Storage) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.recipient = nil
}

// Exists reports whether name is present in the data directory
func (s *Storage) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// ReadFile returns the plaintext of name
func (s *Storage) ReadFile(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, err
	}
	if !sealed(data) {
		return data, nil
	}
	if s.identity == nil {
		return nil, ErrLocked
	}
	return open(data, s.identity)
}

// WriteFile replaces name atomically, sealing it when the directory is
// encrypted. Writing to a locked encrypted directory fails rather than
// leaving plaintext behind.
func (s *Storage) WriteFile(name string, data []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.encrypted && isDataFile(name) {
		if s.recipient == nil {
			return ErrLocked
		}
		enc, err := seal(data, s.recipient)
		if err != nil {
			return fmt.Errorf("storage: encrypting %s: %w", name, err)
		}
		data = enc
	}
	return writeAtomic(s.Path(name), data)
}

// verify derives the key from password and checks it against checkFile
func (s *Storage) verify(password string) (*age.ScryptIdentity, *age.ScryptRecipient, error) {
	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: %w", err)
	}

	data, err := os.ReadFile(s.Path(checkFile))
	if err != nil {
		return nil, nil, fmt.Errorf("storage: reading %s: %w", checkFile, err)
	}
	plain, err := open(data, identity)
	if err != nil || string(plain) != checkMagic {
		return nil, nil, ErrWrongPassword
	}

	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: %w", err)
	}
	return identity, recipient, nil
}

// isDataFile reports whether name is a file encryption applies to
func isDataFile(name string) bool {
	base := filepath.Base(name)
	if base == markerFile || base == checkFile {
		return false
	}
	return filepath.Ext(base) == ".json"
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
