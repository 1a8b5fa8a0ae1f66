package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fincast/internal/services/storage"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt the data directory with a password",
	Args:  cobra.NoArgs,
	RunE:  runEncrypt,
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt the data directory",
	Args:  cobra.NoArgs,
	RunE:  runDecrypt,
}

func openCryptDataDir() (*storage.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return storage.Open(cfg.DataDirectory)
}

func runEncrypt(cmd *cobra.Command, _ []string) error {
	store, err := openCryptDataDir()
	if err != nil {
		return err
	}
	if store.IsEncrypted() {
		return storage.ErrAlreadyEncrypted
	}

	pw, err := readNewPassword()
	if err != nil {
		return err
	}
	if err := store.EnableEncryption(pw); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Encrypted %s\n", store.Dir())
	return nil
}

func runDecrypt(cmd *cobra.Command, _ []string) error {
	store, err := openCryptDataDir()
	if err != nil {
		return err
	}
	if !store.IsEncrypted() {
		return storage.ErrNotEncrypted
	}

	pw, err := readPassword("Data directory password: ")
	if err != nil {
		return err
	}
	if err := store.DisableEncryption(pw); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Decrypted %s\n", store.Dir())
	return nil
}
