//go:build unix

package browser

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
	return path
}

func notOnPath(string) (string, error) { return "", exec.ErrNotFound }

func newTestDetector(opts Options) *Detector {
	if opts.GOOS == "" {
		opts.GOOS = "linux"
	}
	if opts.DesktopDirs == nil {
		opts.DesktopDirs = []string{}
	}
	d := NewDetector(opts, logger.NewNop())
	d.lookPath = notOnPath
	return d
}

func TestInstalledFromTable(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, filepath.Join(dir, "bin", "fakebrowser"), "#!/bin/sh\n", 0o755)
	plain := writeFile(t, filepath.Join(dir, "bin", "notexec"), "data", 0o644)
	assets := filepath.Join(dir, "images")
	icon := writeFile(t, filepath.Join(assets, "fake.png"), "png", 0o644)

	d := newTestDetector(Options{
		AssetsDir: assets,
		Table: Table{"linux": {
			{Name: "Fake", Paths: []string{filepath.Join(dir, "missing"), plain, exe}, Description: "fake", Icon: "fake.png"},
			{Name: "NoIcon", Paths: []string{exe + "-missing"}, Icon: "absent.png"},
		}},
	})

	got := d.Installed(context.Background())
	if len(got) != 1 {
		t.Fatalf("Installed() = %v, want 1 browser", got)
	}
	want := domain.BrowserInfo{Name: "Fake", Executable: exe, Description: "fake", Icon: icon}
	if got[0].Name != want.Name || got[0].Executable != want.Executable || got[0].Icon != want.Icon {
		t.Errorf("Installed()[0] = %+v, want %+v", got[0], want)
	}
}

func TestInstalledIconFallback(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, filepath.Join(dir, "browser"), "", 0o755)

	d := newTestDetector(Options{
		AssetsDir: filepath.Join(dir, "images"),
		Table: Table{"linux": {
			{Name: "A", Paths: []string{exe}, Icon: "missing.png"},
			{Name: "B", Paths: []string{exe}},
		}},
	})

	for _, b := range d.Installed(context.Background()) {
		if b.Icon != domain.DefaultIcon {
			t.Errorf("%s icon = %q, want %q", b.Name, b.Icon, domain.DefaultIcon)
		}
	}
}

func TestInstalledPathFallback(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, filepath.Join(dir, "surf"), "", 0o755)

	d := newTestDetector(Options{
		Table: Table{"linux": {{Name: "Surf", Executable: "surf", Paths: []string{filepath.Join(dir, "nope")}}}},
	})
	d.lookPath = func(name string) (string, error) {
		if name == "surf" {
			return exe, nil
		}
		return "", exec.ErrNotFound
	}

	got := d.Installed(context.Background())
	if len(got) != 1 || got[0].Executable != exe {
		t.Errorf("Installed() = %v, want surf from PATH", got)
	}
}

func TestInstalledNoPathFallbackOnWindows(t *testing.T) {
	called := false
	d := newTestDetector(Options{
		GOOS:  "windows",
		Table: Table{"windows": {{Name: "Edge", Executable: "msedge.exe", Paths: []string{`C:\nope\msedge.exe`}}}},
	})
	d.lookPath = func(string) (string, error) {
		called = true
		return "", exec.ErrNotFound
	}

	if got := d.Installed(context.Background()); len(got) != 0 {
		t.Errorf("Installed() = %v, want none", got)
	}
	if called {
		t.Error("PATH lookup used on windows")
	}
}

func TestLookupTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	d := newTestDetector(Options{
		LookupTimeout: 20 * time.Millisecond,
		Table:         Table{"linux": {{Name: "Slow", Executable: "slow"}}},
	})
	d.lookPath = func(string) (string, error) {
		<-release
		return "/usr/bin/slow", nil
	}

	start := time.Now()
	got := d.Installed(context.Background())
	if len(got) != 0 {
		t.Errorf("Installed() = %v, want none after timeout", got)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("lookup not bounded: took %v", elapsed)
	}
}

func TestDesktopScan(t *testing.T) {
	dir := t.TempDir()
	tableExe := writeFile(t, filepath.Join(dir, "bin", "firefox"), "", 0o755)
	otherExe := writeFile(t, filepath.Join(dir, "bin", "qutebrowser"), "", 0o755)
	apps := filepath.Join(dir, "applications")

	writeFile(t, filepath.Join(apps, "qute.desktop"),
		"[Desktop Entry]\nName=Qute Web Browser\nExec="+otherExe+" %u\nComment=Keyboard driven\nType=Application\n", 0o644)
	writeFile(t, filepath.Join(apps, "qute-copy.desktop"),
		"[Desktop Entry]\nName=Qute Browser Private\nExec="+otherExe+" --private\n", 0o644)
	writeFile(t, filepath.Join(apps, "firefox.desktop"),
		"[Desktop Entry]\nName=Firefox Web Browser\nExec="+tableExe+" %u\n", 0o644)
	writeFile(t, filepath.Join(apps, "helper.desktop"),
		"[Desktop Entry]\nName=Browser Helper\nExec="+otherExe+"\n", 0o644)
	writeFile(t, filepath.Join(apps, "editor.desktop"),
		"[Desktop Entry]\nName=Text Editor\nExec="+otherExe+"\n", 0o644)
	writeFile(t, filepath.Join(apps, "ghost.desktop"),
		"[Desktop Entry]\nName=Ghost Browser\nExec="+filepath.Join(dir, "bin", "ghost")+"\n", 0o644)
	writeFile(t, filepath.Join(apps, "README.txt"), "Name=Not A Browser Entry", 0o644)

	d := newTestDetector(Options{
		DesktopDirs: []string{apps, filepath.Join(dir, "missing")},
		Table:       Table{"linux": {{Name: "Mozilla Firefox", Paths: []string{tableExe}}}},
	})

	got := d.Installed(context.Background())
	if len(got) != 2 {
		t.Fatalf("Installed() = %+v, want table firefox and qute", got)
	}
	if got[0].Name != "Mozilla Firefox" {
		t.Errorf("table entry not first: %+v", got[0])
	}
	q := got[1]
	if q.Executable != otherExe || q.Icon != domain.DefaultIcon {
		t.Errorf("desktop entry = %+v", q)
	}
	if q.Name != "Qute Web Browser" && q.Name != "Qute Browser Private" {
		t.Errorf("unexpected desktop entry name %q", q.Name)
	}
}

func TestDesktopScanOnlyOnLinux(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, filepath.Join(dir, "qute"), "", 0o755)
	apps := filepath.Join(dir, "applications")
	writeFile(t, filepath.Join(apps, "qute.desktop"), "[Desktop Entry]\nName=Qute Browser\nExec="+exe+"\n", 0o644)

	d := newTestDetector(Options{GOOS: "darwin", DesktopDirs: []string{apps}, Table: Table{}})
	if got := d.Installed(context.Background()); len(got) != 0 {
		t.Errorf("desktop entries scanned on darwin: %v", got)
	}
}

func TestDesktopEntryDefaultDescription(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, filepath.Join(dir, "nyxt"), "", 0o755)
	entry := writeFile(t, filepath.Join(dir, "nyxt.desktop"), "[Desktop Entry]\nName=Nyxt Browser\nExec="+exe+"\n", 0o644)

	d := newTestDetector(Options{})
	b, ok := d.parseDesktopEntry(context.Background(), entry)
	if !ok {
		t.Fatal("parseDesktopEntry() rejected a browser")
	}
	if b.Description != "Web browser Nyxt Browser" {
		t.Errorf("description = %q", b.Description)
	}
}

func TestCustomBrowser(t *testing.T) {
	dir := t.TempDir()
	exe := writeFile(t, filepath.Join(dir, "mybrowser"), "", 0o755)

	tests := []struct {
		name     string
		custom   *Custom
		wantName string
		wantArgs int
		found    bool
	}{
		{name: "named with args", custom: &Custom{Name: "Mine", Path: exe, Args: "--kiosk  --new-window"}, wantName: "Mine", wantArgs: 2, found: true},
		{name: "name from path", custom: &Custom{Path: exe}, wantName: "mybrowser", found: true},
		{name: "not runnable", custom: &Custom{Name: "Gone", Path: filepath.Join(dir, "gone")}},
		{name: "unset", custom: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector(Options{Table: Table{}, Custom: tt.custom})
			got := d.Installed(context.Background())
			if !tt.found {
				if len(got) != 0 {
					t.Errorf("Installed() = %v, want none", got)
				}
				return
			}
			if len(got) != 1 || got[0].Name != tt.wantName || len(got[0].Args) != tt.wantArgs {
				t.Errorf("Installed() = %+v", got)
			}
		})
	}
}

func TestCustomBrowserFuncReadEachCall(t *testing.T) {
	exe := writeFile(t, filepath.Join(t.TempDir(), "mybrowser"), "", 0o755)
	var custom *Custom
	d := newTestDetector(Options{Table: Table{}, CustomFunc: func() *Custom { return custom }})

	if got := d.Installed(context.Background()); len(got) != 0 {
		t.Fatalf("Installed() = %v, want none", got)
	}
	custom = &Custom{Name: "Mine", Path: exe}
	if got := d.Installed(context.Background()); len(got) != 1 || got[0].Name != "Mine" {
		t.Errorf("Installed() after change = %+v", got)
	}
}

func TestLaunch(t *testing.T) {
	if err := Launch("", "https://example.com"); !errors.Is(err, domain.ErrLaunchFailed) {
		t.Errorf("Launch(empty) error = %v", err)
	}
	if err := Launch(filepath.Join(t.TempDir(), "missing"), ""); !errors.Is(err, domain.ErrLaunchFailed) {
		t.Errorf("Launch(missing) error = %v", err)
	}

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	if err := Launch(sh, "", "-c", "exit 0"); err != nil {
		t.Errorf("Launch(sh) error = %v", err)
	}
}
