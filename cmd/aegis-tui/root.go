package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	apppkg "github.com/tim-projects/aegis-tui/internal/app"
	"github.com/tim-projects/aegis-tui/internal/config"
	"github.com/tim-projects/aegis-tui/internal/vault"
)

// passwordEnvVar lets scripts and tests skip the interactive prompt.
const passwordEnvVar = "AEGIS_TUI_PASSWORD"

const maxPasswordAttempts = 3

var (
	flagVaultDir string
	flagUUID     string
	flagGroup    string
	flagNoColor  bool
)

var rootCmd = &cobra.Command{
	Use:     "aegis-tui [vault-file]",
	Short:   "Browse an Aegis Authenticator vault in the terminal",
	Long:    "aegis-tui opens an encrypted Aegis Authenticator export and shows its entries in an interactive list. Codes stay masked until a row is revealed.",
	Version: version,
	Args:    cobra.MaximumNArgs(1),

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagVaultDir, "vault-dir", "d", "", "directory to search for the newest vault export")
	rootCmd.Flags().StringVarP(&flagUUID, "uuid", "u", "", "reveal this entry immediately")
	rootCmd.Flags().StringVarP(&flagGroup, "group", "g", "", "start with this group filter")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colors")
}

func run(cmd *cobra.Command, args []string) error {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	cfg, err := config.Load()
	if err != nil {
		// Run on defaults rather than refusing to start.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	path, err := resolveVaultPath(args, cfg)
	if err != nil {
		return err
	}

	v, err := unlockVault(path)
	if err != nil {
		return err
	}

	cfg.LastOpenedVault = path
	cfg.LastVaultDir = filepath.Dir(path)
	if err := cfg.Save(); err != nil {
		// Not fatal: the vault is already open.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	noColor := flagNoColor || !cfg.ColorEnabled()

	application, err := apppkg.NewApplication(apppkg.Options{
		Vault:         v,
		Group:         flagGroup,
		RevealUUID:    flagUUID,
		NoColor:       noColor,
		ClipboardTool: cfg.ClipboardTool,
	})
	if err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}

	application.Run()
	return nil
}

// resolveVaultPath picks the vault file to open: an explicit argument,
// then the newest export in --vault-dir, then the file opened last
// time, then the newest export in the last used directory.
func resolveVaultPath(args []string, cfg config.Config) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	if flagVaultDir != "" {
		path, err := vault.FindPath(flagVaultDir)
		if err != nil {
			return "", fmt.Errorf("no vault export found in %s", flagVaultDir)
		}
		return path, nil
	}

	if cfg.LastOpenedVault != "" {
		if _, err := os.Stat(cfg.LastOpenedVault); err == nil {
			return cfg.LastOpenedVault, nil
		}
	}

	if cfg.LastVaultDir != "" {
		if path, err := vault.FindPath(cfg.LastVaultDir); err == nil {
			return path, nil
		}
	}

	return "", errors.New("no vault file given, pass a path or --vault-dir")
}

// unlockVault opens the export, prompting for the password up to three
// times. A plain export opens without one.
func unlockVault(path string) (*vault.Vault, error) {
	if v, err := vault.Open(path, ""); err == nil {
		return v, nil
	} else if !errors.Is(err, vault.ErrWrongPassword) {
		return nil, err
	}

	if envPassword := os.Getenv(passwordEnvVar); envPassword != "" {
		v, err := vault.Open(path, envPassword)
		if err != nil {
			return nil, fmt.Errorf("unlock with %s: %w", passwordEnvVar, err)
		}
		return v, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return nil, fmt.Errorf("vault is encrypted and stdin is not a terminal, set %s", passwordEnvVar)
	}

	for attempt := 1; attempt <= maxPasswordAttempts; attempt++ {
		password, err := promptPassword(path)
		if err != nil {
			return nil, err
		}
		v, err := vault.Open(path, password)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, vault.ErrWrongPassword) {
			return nil, err
		}
		fmt.Fprintln(os.Stderr, "wrong password")
	}
	return nil, errors.New("too many failed password attempts")
}

func promptPassword(path string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", filepath.Base(path))
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
