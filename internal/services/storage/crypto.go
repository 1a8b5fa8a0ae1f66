package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
)

func seal(data []byte, recipient age.Recipient) ([]byte, error) {
	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func open(data []byte, identity age.Identity) ([]byte, error) {
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func sealed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(ageHeader))
}

// EnableEncryption seals every JSON file in the directory with password.
// Files already sealed are left alone; on failure the files sealed so far
// are restored.
func (s *Storage) EnableEncryption(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encrypted {
		return ErrAlreadyEncrypted
	}
	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}

	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return err
	}
	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return err
	}

	check, err := seal([]byte(checkMagic), recipient)
	if err != nil {
		return err
	}
	if err := writeAtomic(s.Path(checkFile), check); err != nil {
		return err
	}

	files, err := s.dataFiles()
	if err != nil {
		_ = os.Remove(s.Path(checkFile))
		return err
	}

	var done []string
	for _, path := range files {
		if err := rewrite(path, func(b []byte) ([]byte, error) {
			if sealed(b) {
				return nil, nil
			}
			return seal(b, recipient)
		}); err != nil {
			s.restore(done, identity)
			_ = os.Remove(s.Path(checkFile))
			return err
		}
		done = append(done, path)
	}

	if err := os.WriteFile(s.Path(markerFile), []byte("encrypted"), 0o644); err != nil {
		return err
	}
	s.encrypted = true
	s.identity = identity
	s.recipient = recipient
	return nil
}

// DisableEncryption opens every sealed file and removes the marker
func (s *Storage) DisableEncryption(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return ErrNotEncrypted
	}
	identity, _, err := s.verify(password)
	if err != nil {
		return err
	}

	files, err := s.dataFiles()
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := rewrite(path, func(b []byte) ([]byte, error) {
			if !sealed(b) {
				return nil, nil
			}
			return open(b, identity)
		}); err != nil {
			return err
		}
	}

	_ = os.Remove(s.Path(markerFile))
	_ = os.Remove(s.Path(checkFile))
	s.encrypted = false
	s.identity = nil
	s.recipient = nil
	return nil
}

func (s *Storage) dataFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isDataFile(path) && !strings.HasSuffix(path, ".tmp") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// rewrite replaces the file at path with fn's output. A nil output leaves
// the file untouched.
func rewrite(path string, fn func([]byte) ([]byte, error)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := fn(data)
	if err != nil || out == nil {
		return err
	}
	return writeAtomic(path, out)
}

func (s *Storage) restore(files []string, identity age.Identity) {
	for _, path := range files {
		_ = rewrite(path, func(b []byte) ([]byte, error) {
			if !sealed(b) {
				return nil, nil
			}
			return open(b, identity)
		})
	}
}
