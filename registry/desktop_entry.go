package registry

import (
	"bufio"
	"io"
	"strings"
)

const desktopEntryGroup = "Desktop Entry"

// desktopEntry holds the keys of a .desktop file the launcher cares about.
type desktopEntry struct {
	Type      string
	Name      string
	Exec      string
	NoDisplay bool
	Hidden    bool
}

// launchable reports whether the entry describes an application meant
// to appear in menus.
func (e desktopEntry) launchable() bool {
	return e.Type == "Application" && !e.NoDisplay && !e.Hidden && e.Name != "" && e.Exec != ""
}

// parseDesktopEntry reads the [Desktop Entry] group of a .desktop file.
// Other groups, comments and localized keys are ignored.
func parseDesktopEntry(r io.Reader) (desktopEntry, error) {
	var (
		entry   desktopEntry
		inGroup bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inGroup = line[1:len(line)-1] == desktopEntryGroup
			continue
		}
		if !inGroup {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Type":
			entry.Type = value
		case "Name":
			entry.Name = unescapeValue(value)
		case "Exec":
			entry.Exec = stripFieldCodes(unescapeValue(value))
		case "NoDisplay":
			entry.NoDisplay = value == "true"
		case "Hidden":
			entry.Hidden = value == "true"
		}
	}
	return entry, scanner.Err()
}

func unescapeValue(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	r := strings.NewReplacer(`\s`, " ", `\n`, "\n", `\t`, "\t", `\r`, "\r", `\\`, `\`)
	return r.Replace(s)
}

// stripFieldCodes removes %f, %U and similar placeholders from an Exec
// line. "%%" becomes a literal percent sign.
func stripFieldCodes(exec string) string {
	if !strings.Contains(exec, "%") {
		return exec
	}
	var b strings.Builder
	for i := 0; i < len(exec); i++ {
		if exec[i] != '%' || i+1 == len(exec) {
			b.WriteByte(exec[i])
			continue
		}
		i++
		if exec[i] == '%' {
			b.WriteByte('%')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
