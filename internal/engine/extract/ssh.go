package extract

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// Remote execution bridge. When a platform has an SSH host configured
// (typically a desktop machine holding browser cookies), yt-dlp runs there
// and the JSON result is piped back over the SSH channel. Connections are
// strictly non-interactive: BatchMode refuses password prompts, so
// authentication is by pre-shared key only.

const (
	sshConnectTimeout = "10"
	sshCleanupTimeout = 10 * time.Second
)

// sshRun executes a single remote command. Package variable so tests can
// substitute the transport.
var sshRun = sshRunExec

func sshRunExec(ctx context.Context, host, remoteCmd string) (stdout, stderr []byte, err error) {
	engine.IncrSSHRequests()

	cmd := exec.CommandContext(ctx, "ssh",
		"-o", "BatchMode=yes",
		"-o", "ConnectTimeout="+sshConnectTimeout,
		host, remoteCmd,
	)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	if runErr != nil {
		if transportErr := classifySSH(ctx, errBuf.String(), runErr); transportErr != nil {
			engine.IncrSSHErrors()
			return outBuf.Bytes(), errBuf.Bytes(), transportErr
		}
		// Remote command failed; the extractor's own stderr came back over
		// the channel and is classified by the caller.
		return outBuf.Bytes(), errBuf.Bytes(), runErr
	}
	return outBuf.Bytes(), errBuf.Bytes(), nil
}

// classifySSH separates transport-layer failures (connection refused, auth
// failure, host unreachable) from failures of the remote command itself.
// The OpenSSH client reserves exit status 255 for its own errors; remote
// commands surface their real exit code.
func classifySSH(ctx context.Context, stderr string, runErr error) *engine.Error {
	if ctx.Err() == context.DeadlineExceeded {
		return nil // timeout, classified by the caller
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		if exitErr.ExitCode() == 255 {
			msg := strings.TrimSpace(stderr)
			if msg == "" {
				msg = "ssh exited with code 255"
			}
			return engine.Errorf(engine.KindSSH, "%s", msg)
		}
		return nil
	}

	// Not an exit status at all: the ssh client could not be spawned.
	return engine.Errorf(engine.KindSSH, "ssh transport: %v", runErr)
}

// runRemote runs yt-dlp on host with the given options and captures its
// stdout through the SSH channel.
func runRemote(ctx context.Context, host string, args Args) (stdout, stderr []byte, err error) {
	argv := append([]string{engine.Current().YtdlpPath}, args.CLI()...)
	return sshRun(ctx, host, shellJoin(argv))
}

// Session is a remote temporary working directory bound to one extraction
// call. It is created before the remote command runs and removed by Close on
// every exit path, including command failure and transport errors.
type Session struct {
	host string
	dir  string
}

// openSession creates a fresh per-call temporary directory on host. The
// directory is never shared across concurrent calls.
func openSession(ctx context.Context, host string) (*Session, error) {
	stdout, stderr, err := sshRun(ctx, host, "mktemp -d")
	if err != nil {
		var e *engine.Error
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, engine.Errorf(engine.KindSSH, "creating remote workdir: %s", firstLine(stderr, err))
	}
	dir := strings.TrimSpace(string(stdout))
	if dir == "" || !strings.HasPrefix(dir, "/") {
		return nil, engine.Errorf(engine.KindSSH, "remote mktemp returned %q", dir)
	}
	return &Session{host: host, dir: dir}, nil
}

// Run executes yt-dlp inside the session directory, so file-based outputs
// (subtitle files) land in the per-call workdir.
func (s *Session) Run(ctx context.Context, args Args) (stdout, stderr []byte, err error) {
	argv := append([]string{engine.Current().YtdlpPath}, args.CLI()...)
	remoteCmd := "cd " + shellQuote(s.dir) + " && " + shellJoin(argv)
	return sshRun(ctx, s.host, remoteCmd)
}

// ReadGlob streams the concatenated contents of files matching pattern in
// the session directory. Missing files read as empty, not as an error.
func (s *Session) ReadGlob(ctx context.Context, pattern string) ([]byte, error) {
	remoteCmd := "cat " + shellQuote(s.dir) + "/" + pattern + " 2>/dev/null || true"
	stdout, _, err := sshRun(ctx, s.host, remoteCmd)
	if err != nil {
		return nil, err
	}
	return stdout, nil
}

// Close removes the remote directory, best effort. It runs on its own
// deadline detached from the call context, so cleanup still happens after
// the extraction timed out or the caller went away.
func (s *Session) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), sshCleanupTimeout)
	defer cancel()
	if _, _, err := sshRun(ctx, s.host, "rm -rf "+shellQuote(s.dir)); err != nil {
		slog.Debug("remote cleanup failed", slog.String("host", s.host), slog.String("dir", s.dir), slog.Any("error", err))
	}
}

// shellQuote wraps s in single quotes for safe use in a remote command line.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func shellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func firstLine(stderr []byte, err error) string {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		if i := strings.IndexByte(msg, '\n'); i > 0 {
			return msg[:i]
		}
		return msg
	}
	return err.Error()
}
