package extract

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// fakeSSH substitutes the ssh transport and records every remote command.
type fakeSSH struct {
	commands []string
	handler  func(cmd string) (stdout, stderr []byte, err error)
}

func (f *fakeSSH) install(t *testing.T) {
	t.Helper()
	orig := sshRun
	sshRun = func(ctx context.Context, host, cmd string) ([]byte, []byte, error) {
		f.commands = append(f.commands, cmd)
		return f.handler(cmd)
	}
	t.Cleanup(func() { sshRun = orig })
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "'plain'"},
		{"", "''"},
		{"has space", "'has space'"},
		{"https://youtu.be/x?t=1&s=2", "'https://youtu.be/x?t=1&s=2'"},
		{"it's", `'it'\''s'`},
	}
	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestShellJoin(t *testing.T) {
	got := shellJoin([]string{"yt-dlp", "--dump-json", "https://youtu.be/x"})
	want := "'yt-dlp' '--dump-json' 'https://youtu.be/x'"
	if got != want {
		t.Errorf("shellJoin = %s, want %s", got, want)
	}
}

// exitStatus produces a real *exec.ExitError carrying the given exit code.
func exitStatus(t *testing.T, code int) *exec.ExitError {
	t.Helper()
	err := exec.Command("sh", "-c", "exit "+strconv.Itoa(code)).Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %v", err)
	}
	return exitErr
}

func TestClassifySSH(t *testing.T) {
	ctx := context.Background()

	t.Run("exit 255 is a transport error", func(t *testing.T) {
		e := classifySSH(ctx, "ssh: connect to host desktop port 22: Connection refused", exitStatus(t, 255))
		if e == nil || e.Kind != engine.KindSSH {
			t.Fatalf("got %v, want SSHError", e)
		}
		if !strings.Contains(e.Message, "Connection refused") {
			t.Errorf("message = %q, want the ssh stderr", e.Message)
		}
	})

	t.Run("exit 255 without stderr gets a fallback message", func(t *testing.T) {
		e := classifySSH(ctx, "", exitStatus(t, 255))
		if e == nil || e.Kind != engine.KindSSH {
			t.Fatalf("got %v, want SSHError", e)
		}
		if e.Message != "ssh exited with code 255" {
			t.Errorf("message = %q", e.Message)
		}
	})

	t.Run("remote command failure passes through for extractor classification", func(t *testing.T) {
		if e := classifySSH(ctx, "ERROR: Video unavailable", exitStatus(t, 1)); e != nil {
			t.Errorf("got %v, want nil for a non-255 remote exit", e)
		}
	})

	t.Run("spawn failure is a transport error", func(t *testing.T) {
		e := classifySSH(ctx, "", errors.New("exec: \"ssh\": executable file not found"))
		if e == nil || e.Kind != engine.KindSSH {
			t.Errorf("got %v, want SSHError", e)
		}
	})

	t.Run("expired context defers to the caller", func(t *testing.T) {
		expired, cancel := context.WithTimeout(ctx, time.Nanosecond)
		defer cancel()
		<-expired.Done()
		if e := classifySSH(expired, "", expired.Err()); e != nil {
			t.Errorf("got %v, want nil on deadline", e)
		}
	})
}

func TestOpenSession(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		fake := &fakeSSH{handler: func(cmd string) ([]byte, []byte, error) {
			return []byte("/tmp/tmp.a1b2c3\n"), nil, nil
		}}
		fake.install(t)

		sess, err := openSession(context.Background(), "desktop")
		if err != nil {
			t.Fatalf("openSession: %v", err)
		}
		if sess.dir != "/tmp/tmp.a1b2c3" {
			t.Errorf("dir = %q", sess.dir)
		}
		if fake.commands[0] != "mktemp -d" {
			t.Errorf("first command = %q", fake.commands[0])
		}
	})

	t.Run("relative directory rejected", func(t *testing.T) {
		fake := &fakeSSH{handler: func(cmd string) ([]byte, []byte, error) {
			return []byte("tmp.a1b2c3\n"), nil, nil
		}}
		fake.install(t)

		_, err := openSession(context.Background(), "desktop")
		if !engine.IsKind(err, engine.KindSSH) {
			t.Errorf("err = %v, want SSHError", err)
		}
	})

	t.Run("transport failure surfaces as SSHError", func(t *testing.T) {
		fake := &fakeSSH{handler: func(cmd string) ([]byte, []byte, error) {
			return nil, nil, engine.Errorf(engine.KindSSH, "connection refused")
		}}
		fake.install(t)

		_, err := openSession(context.Background(), "desktop")
		if !engine.IsKind(err, engine.KindSSH) {
			t.Errorf("err = %v, want SSHError", err)
		}
	})
}

func TestSessionRunUsesWorkdir(t *testing.T) {
	fake := &fakeSSH{handler: func(cmd string) ([]byte, []byte, error) {
		return []byte("{}"), nil, nil
	}}
	fake.install(t)

	sess := &Session{host: "desktop", dir: "/tmp/tmp.x"}
	if _, _, err := sess.Run(context.Background(), defaultArgs("https://youtu.be/dQw4w9WgXcQ")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	cmd := fake.commands[0]
	if !strings.HasPrefix(cmd, "cd '/tmp/tmp.x' && ") {
		t.Errorf("remote command %q does not cd into the session dir", cmd)
	}
}

func TestSessionReadGlobMissingFiles(t *testing.T) {
	fake := &fakeSSH{handler: func(cmd string) ([]byte, []byte, error) {
		return nil, nil, nil // cat || true: empty stdout, success
	}}
	fake.install(t)

	sess := &Session{host: "desktop", dir: "/tmp/tmp.x"}
	out, err := sess.ReadGlob(context.Background(), "*.vtt")
	if err != nil {
		t.Fatalf("ReadGlob: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("out = %q, want empty", out)
	}
	if !strings.Contains(fake.commands[0], "2>/dev/null || true") {
		t.Errorf("remote command %q should tolerate missing files", fake.commands[0])
	}
}

func TestSessionCloseRemovesDir(t *testing.T) {
	fake := &fakeSSH{handler: func(cmd string) ([]byte, []byte, error) {
		return nil, nil, nil
	}}
	fake.install(t)

	sess := &Session{host: "desktop", dir: "/tmp/tmp.x"}
	sess.Close()

	if len(fake.commands) != 1 || fake.commands[0] != "rm -rf '/tmp/tmp.x'" {
		t.Errorf("commands = %v, want a single rm -rf", fake.commands)
	}
}

// Remote subtitle extraction must remove its workdir even when the remote
// command fails or the call context has already expired.
func TestRemoteSubtitlesCleanupOnFailure(t *testing.T) {
	engine.Init(engine.Config{})

	fake := &fakeSSH{}
	fake.handler = func(cmd string) ([]byte, []byte, error) {
		switch {
		case cmd == "mktemp -d":
			return []byte("/tmp/tmp.subs\n"), nil, nil
		case strings.HasPrefix(cmd, "cd "):
			return nil, []byte("killed"), context.DeadlineExceeded
		default:
			return nil, nil, nil
		}
	}
	fake.install(t)

	_, _, err := remoteSubtitles(context.Background(), "desktop", defaultArgs("https://youtu.be/dQw4w9WgXcQ"))
	if !engine.IsKind(err, engine.KindExtraction) {
		t.Fatalf("err = %v, want ExtractionError", err)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("err = %v, want timeout message", err)
	}

	last := fake.commands[len(fake.commands)-1]
	if last != "rm -rf '/tmp/tmp.subs'" {
		t.Errorf("last remote command = %q, want workdir removal", last)
	}
}
