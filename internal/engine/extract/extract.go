package extract

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// Request is one extractor invocation: the command options, the per-call
// timeout, and the resolved platform configuration that selects local or
// remote execution.
type Request struct {
	Args    Args
	Timeout time.Duration
	Config  engine.PlatformConfig
}

// runTool executes one extractor call and returns its stdout. Package
// variable so tests can substitute a fake extractor.
var runTool = runToolExec

// runToolExec bridges the blocking extractor call into the concurrent
// server: it holds a session slot for the duration of the call, enforces the
// per-call timeout, and kills the underlying process on expiry or caller
// cancellation. Failures come back classified. No retries happen here.
func runToolExec(ctx context.Context, req Request) ([]byte, error) {
	engine.IncrExtractRequests()

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = engine.Current().ExtractTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Acquired under the call deadline: time spent queueing for a slot
	// counts against the timeout, so a saturated pool cannot stall a call
	// past its budget.
	release, err := acquireSession(ctx)
	if err != nil {
		engine.IncrExtractErrors()
		return nil, err
	}
	defer release()

	var stdout, stderr []byte
	runErr := engine.TrackOperation(ctx, "extract "+req.Args.URL, func(ctx context.Context) error {
		var err error
		if req.Config.SSHHost != "" {
			stdout, stderr, err = runRemote(ctx, req.Config.SSHHost, req.Args)
		} else {
			stdout, stderr, err = runLocal(ctx, req.Args)
		}
		return err
	})

	if runErr != nil {
		engine.IncrExtractErrors()
		return nil, classifyRun(ctx, stderr, runErr)
	}
	if len(bytes.TrimSpace(stdout)) == 0 {
		engine.IncrExtractErrors()
		return nil, engine.Errorf(engine.KindExtraction, "extractor returned empty output")
	}
	return stdout, nil
}

// classifyRun maps a failed run to the error taxonomy. SSH transport
// failures arrive pre-classified and pass through unchanged.
func classifyRun(ctx context.Context, stderr []byte, runErr error) error {
	var e *engine.Error
	if errors.As(runErr, &e) {
		return e
	}
	if ctx.Err() == context.DeadlineExceeded {
		return engine.ClassifyToolFailure("", context.DeadlineExceeded)
	}
	return engine.ClassifyToolFailure(string(stderr), runErr)
}

// runLocal invokes yt-dlp as a local subprocess. CommandContext terminates
// the process when the call context expires, so a stuck extraction cannot
// leak a subprocess.
func runLocal(ctx context.Context, args Args) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, engine.Current().YtdlpPath, args.CLI()...)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}
