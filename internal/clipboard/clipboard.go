// Package clipboard provides platform-specific clipboard operations.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Tools lists the clipboard commands tried for each platform, in order of
// preference.
var Tools = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"windows": {{"clip"}},
	"linux": {
		{"wl-copy"},                          // Wayland
		{"xclip", "-selection", "clipboard"}, // X11
		{"xsel", "--clipboard", "--input"},   // X11 alternative
	},
}

// lookPath and run are replaced in tests.
var (
	lookPath = exec.LookPath
	run      = func(name string, args []string, input string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdin = strings.NewReader(input)
		return cmd.Run()
	}
)

// CopyText copies plain text to the system clipboard using the first
// available tool for the current platform.
func CopyText(text string) error {
	return copyWith(runtime.GOOS, text)
}

func copyWith(goos, text string) error {
	tools, ok := Tools[goos]
	if !ok {
		return fmt.Errorf("unsupported platform: %s", goos)
	}

	var tried []string
	for _, tool := range tools {
		tried = append(tried, tool[0])
		if !isCommandAvailable(tool[0]) {
			continue
		}
		if err := run(tool[0], tool[1:], text); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no suitable clipboard tool found (tried: %s)", strings.Join(tried, ", "))
}

func isCommandAvailable(name string) bool {
	_, err := lookPath(name)
	return err == nil
}
