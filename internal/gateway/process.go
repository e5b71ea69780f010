// ABOUTME: Tool process lifecycle management
// ABOUTME: Spawns the MCP server subprocess and pumps its stdio
package gateway

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/harper/feedlog/internal/logging"
)

// maxFrameSize bounds a single stdout line from the tool process.
const maxFrameSize = 1 << 20

// Process is the spawned MCP tool process. It outlives transport sessions:
// a transport blip must not tear it down.
type Process struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   chan []byte
	done  chan struct{}
}

// StartProcess spawns the tool process and begins reading its stdout. Each
// stdout line becomes one frame on Output. Stderr passes through for
// diagnostics.
func StartProcess(command string, args ...string) (*Process, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", command, err)
	}

	p := &Process{
		cmd:   cmd,
		stdin: stdin,
		out:   make(chan []byte, 16),
		done:  make(chan struct{}),
	}

	go func() {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 64*1024), maxFrameSize)
		for scanner.Scan() {
			frame := make([]byte, len(scanner.Bytes()))
			copy(frame, scanner.Bytes())
			p.out <- frame
		}
		close(p.out)
		_ = cmd.Wait()
		close(p.done)
	}()

	logging.Info("gateway", "tool process started (pid=%d)", cmd.Process.Pid)
	return p, nil
}

// Send writes one frame to the process's stdin.
func (p *Process) Send(frame []byte) error {
	if _, err := fmt.Fprintf(p.stdin, "%s\n", frame); err != nil {
		return fmt.Errorf("write to tool process: %w", err)
	}
	return nil
}

// Output returns the channel of frames read from the process's stdout. It is
// closed when the process exits.
func (p *Process) Output() <-chan []byte {
	return p.out
}

// Alive reports whether the process is still running.
func (p *Process) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// PID returns the process id, for diagnostics.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Stop closes stdin so the process can finish in-flight work, then kills it
// if it doesn't exit promptly. Output is drained so the stdout pump can
// finish even with no session attached.
func (p *Process) Stop() {
	_ = p.stdin.Close()

	out := p.out
	timer := time.NewTimer(2 * time.Second)
	defer timer.Stop()
	for {
		select {
		case <-p.done:
			return
		case _, ok := <-out:
			if !ok {
				out = nil
			}
		case <-timer.C:
			_ = p.cmd.Process.Kill()
		}
	}
}
