// Command tilescribe is the CLI entry point: open a raw terminal,
// build an editorcore.Editor, open any file arguments into it, and run
// the render/read/dispatch loop until Ctrl-Q (spec.md §7).
//
// Grounded on Gaurav-Gosain-tuios/cmd/tuios/main.go's cobra root
// command plus `config path`/`config edit`/`config reset` subcommand
// group, trimmed to the flags and subcommands this spec actually
// needs (no SSH server, no keybind listing — this editor has none of
// tuios's session-manager surface).
package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tilescribe/tilescribe/internal/config"
	"github.com/tilescribe/tilescribe/internal/editorcore"
	"github.com/tilescribe/tilescribe/internal/term"
)

var (
	themeFlag string
	evalFlag  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tilescribe [files...]",
		Short: "A modal terminal text editor with a binary-tree window layout",
		Example: `  # Open a file
  tilescribe main.go

  # Open two files side by side
  tilescribe main.go main_test.go

  # Start with a theme
  tilescribe --theme solarized-dark main.go`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(args)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "theme to start with (overrides the config file)")
	rootCmd.Flags().StringVar(&evalFlag, "eval", "", "semicolon-separated minibar commands to run at startup")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the tilescribe configuration file",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Println(configPath())
				return nil
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Open the configuration file in $EDITOR",
			RunE: func(cmd *cobra.Command, args []string) error {
				return editConfigFile()
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the configuration file to defaults",
			RunE: func(cmd *cobra.Command, args []string) error {
				return config.Save(configPath(), config.Default())
			},
		},
	)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "tilescribe", "config.toml")
}

func editConfigFile() error {
	path := configPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return runInteractive(editor, path)
}

// runEditor wires the config, terminal, and editorcore.Editor together
// and runs the main loop, restoring the terminal's mode on every exit
// path — including a panic or a fatal I/O error (spec.md §7).
func runEditor(paths []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return err
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}

	t, err := term.Open()
	if err != nil {
		return err
	}
	defer t.Close()

	ed, err := editorcore.New(cfg, t)
	if err != nil {
		return err
	}
	ed.Open(paths)
	if evalFlag != "" {
		ed.RunCommands(strings.Split(evalFlag, ";"))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)
	done := make(chan struct{})
	defer close(done)
	go watchResize(sig, done, t, ed)

	return ed.Run()
}

// watchResize applies spec.md §9's pending-flag resize design: the
// signal handler only records the new size, never touches the
// terminal or re-renders — the main loop picks it up on its next
// iteration.
func watchResize(sig <-chan os.Signal, done <-chan struct{}, t *term.Real, ed *editorcore.Editor) {
	for {
		select {
		case <-sig:
			size, err := t.Size()
			if err != nil {
				continue
			}
			ed.NotifyResize(size)
		case <-done:
			return
		}
	}
}

func runInteractive(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
