// Package setup implements the first-run wizard. It writes a user config
// and optionally registers the login autostart entry. Every answer can be
// given as an option, in which case no prompt is shown.
package setup

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Guliveer/tuxtray/internal/autostart"
	"github.com/Guliveer/tuxtray/internal/classifier"
	"github.com/Guliveer/tuxtray/internal/config"
)

// Options holds the answers supplied on the command line.
type Options struct {
	Mode       string // animation mode or "" (interactive)
	Skin       string // skin id or "" (interactive)
	AssetsDir  string // asset root or "" (interactive)
	Autostart  string // "yes", "no" or "" (interactive)
	ConfigPath string // where the config is written
}

// Wizard asks the setup questions on in and reports progress on out.
type Wizard struct {
	reader     *bufio.Reader
	out        io.Writer
	base       *config.Config
	autostart  autostart.Manager
	executable func() (string, error)
}

// New creates a Wizard that starts from base, usually the defaults plus the
// embedded skin definitions.
func New(in io.Reader, out io.Writer, base *config.Config, mgr autostart.Manager) *Wizard {
	return &Wizard{
		reader:     bufio.NewReader(in),
		out:        out,
		base:       base,
		autostart:  mgr,
		executable: autostart.ResolveExecutable,
	}
}

// Run executes the wizard and returns the written configuration.
func (w *Wizard) Run(version string, opts Options) (*config.Config, error) {
	fmt.Fprintf(w.out, "\nTuxTray Setup %s\n", version)
	fmt.Fprintln(w.out, strings.Repeat("─", 30))
	fmt.Fprintln(w.out)

	cfg := *w.base

	// 1. Animation mode
	mode, err := w.resolveMode(opts.Mode)
	if err != nil {
		return nil, err
	}
	cfg.Settings.AnimationMode = string(mode)

	// 2. Skin
	skin, err := w.resolveSkin(opts.Skin)
	if err != nil {
		return nil, err
	}
	cfg.Settings.CurrentSkin = skin

	// 3. Assets
	assets, err := w.resolveValue(opts.AssetsDir, "Assets directory", cfg.Animation.AssetsDir)
	if err != nil {
		return nil, err
	}
	cfg.Animation.AssetsDir = assets

	// 4. Autostart
	enable, err := w.resolveYesNo(opts.Autostart, "Start TuxTray at login?")
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(w.out, "\nInstalling...")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.WriteConfig(&cfg, opts.ConfigPath); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(w.out, "  ✓ Written config → %s\n", opts.ConfigPath)

	if enable {
		exe, err := w.executable()
		if err != nil {
			return nil, err
		}
		if err := w.autostart.Install(exe); err != nil {
			return nil, fmt.Errorf("registering autostart: %w", err)
		}
		fmt.Fprintf(w.out, "  ✓ Registered autostart → %s\n", w.autostart.Location())
	}

	fmt.Fprintln(w.out, "\nDone! Start it with: tuxtray run")
	return &cfg, nil
}

// resolveMode determines the animation mode from flag or interactive prompt.
func (w *Wizard) resolveMode(flagValue string) (classifier.Mode, error) {
	if flagValue != "" {
		return classifier.ParseMode(flagValue)
	}
	fmt.Fprintln(w.out, "Animation mode:")
	for i, m := range classifier.Modes {
		fmt.Fprintf(w.out, "  [%d] %s\n", i+1, m)
	}
	fmt.Fprint(w.out, "> ")
	choice := w.readLine()
	if choice == "" {
		return classifier.Modes[0], nil
	}
	for i, m := range classifier.Modes {
		if choice == fmt.Sprint(i+1) {
			return m, nil
		}
	}
	return classifier.ParseMode(choice)
}

// resolveSkin picks a configured skin from flag or interactive prompt.
func (w *Wizard) resolveSkin(flagValue string) (string, error) {
	ids := make([]string, 0, len(w.base.Skins))
	for id := range w.base.Skins {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	skin := flagValue
	if skin == "" {
		if len(ids) > 1 {
			fmt.Fprintf(w.out, "Available skins: %s\n", strings.Join(ids, ", "))
		}
		var err error
		skin, err = w.resolveValue("", "Skin", w.base.Settings.CurrentSkin)
		if err != nil {
			return "", err
		}
	}
	if _, ok := w.base.Skins[skin]; !ok && len(ids) > 0 {
		return "", fmt.Errorf("unknown skin %q (available: %s)", skin, strings.Join(ids, ", "))
	}
	return skin, nil
}

// resolveValue gets a value from flag or interactive prompt.
func (w *Wizard) resolveValue(flagValue, prompt, defaultVal string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if defaultVal != "" {
		fmt.Fprintf(w.out, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(w.out, "%s: ", prompt)
	}
	val := w.readLine()
	if val == "" {
		val = defaultVal
	}
	if val == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(prompt))
	}
	return val, nil
}

func (w *Wizard) resolveYesNo(flagValue, prompt string) (bool, error) {
	answer := flagValue
	if answer == "" {
		fmt.Fprintf(w.out, "%s [y/N]: ", prompt)
		answer = w.readLine()
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "true":
		return true, nil
	case "", "n", "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer %q (expected yes or no)", answer)
	}
}

func (w *Wizard) readLine() string {
	line, _ := w.reader.ReadString('\n')
	return strings.TrimSpace(line)
}
