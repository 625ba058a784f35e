// Package desktopentry installs the .desktop file that notification
// servers use to associate notifications with an application.
package desktopentry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// ErrInvalidAppID is returned for IDs that can't name a desktop file.
var ErrInvalidAppID = errors.New("desktopentry: invalid application id")

// Entry describes the launcher to install.
type Entry struct {
	// AppID becomes the desktop file ID and StartupWMClass.
	AppID string
	// Name shown by the desktop, defaults to AppID.
	Name string
	// Exec defaults to the current executable.
	Exec string
	// Icon name or absolute path; optional.
	Icon string
}

var entryTemplate = template.Must(template.New("entry").Parse(`[Desktop Entry]
Type=Application
Version=1.0
Name={{.Name}}
Exec={{.Exec}}
{{- if .Icon}}
Icon={{.Icon}}
{{- end}}
NoDisplay=true
StartupWMClass={{.AppID}}
X-GNOME-UsesNotifications=true
`))

// Path returns where the entry for appID lives:
// $XDG_DATA_HOME/applications/<appID>.desktop, falling back to
// ~/.local/share when XDG_DATA_HOME is unset.
func Path(appID string) (string, error) {
	if appID == "" || appID == "." || appID == ".." || strings.ContainsAny(appID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAppID, appID)
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("desktopentry: resolve data dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "applications", appID+".desktop"), nil
}

// Exists reports whether a file is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("desktopentry: stat %s: %w", path, err)
	}
}

// Install writes e to path. The file is written next to its
// destination and renamed into place, so readers never see a
// partial entry.
func Install(path string, e Entry) error {
	if e.AppID == "" {
		return ErrInvalidAppID
	}
	if e.Name == "" {
		e.Name = e.AppID
	}
	if e.Exec == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("desktopentry: locate executable: %w", err)
		}
		e.Exec = exe
	}
	e.Name = singleLine(e.Name)
	e.Icon = singleLine(e.Icon)
	e.Exec = quoteExec(e.Exec)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("desktopentry: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".desktop-entry-*")
	if err != nil {
		return fmt.Errorf("desktopentry: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := entryTemplate.Execute(tmp, e); err != nil {
		tmp.Close()
		return fmt.Errorf("desktopentry: render: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("desktopentry: write: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("desktopentry: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("desktopentry: commit %s: %w", path, err)
	}
	return nil
}

func singleLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

var (
	// escapes inside a quoted Exec argument
	execEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)

	// escapes every string value gets, applied after quoting
	valueEscaper = strings.NewReplacer(`\`, `\\`, "\t", `\t`, `%`, `%%`)
)

// quoteExec quotes the program path when it holds characters the
// Exec key reserves, then escapes it as a string value. A literal %
// is doubled so it is not read as a field code.
func quoteExec(exe string) string {
	exe = singleLine(exe)
	if strings.ContainsAny(exe, " \t\"'\\><~|&;$*?#()`") {
		exe = `"` + execEscaper.Replace(exe) + `"`
	}
	return valueEscaper.Replace(exe)
}
