//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	ttyPath = "/dev/tty"

	// pollMillis bounds how long Read waits before rechecking stopCh
	pollMillis = 100

	fallbackWidth  = 80
	fallbackHeight = 24
)

// ttyBackend drives the process terminal. When stdin is redirected it falls back to
// /dev/tty so the UI still reaches the user.
type ttyBackend struct {
	in, out *os.File
	inFd    int
	owned   *os.File
	saved   *term.State

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}

	readBuf []byte
}

func newBackend() Backend {
	return &ttyBackend{
		in:      os.Stdin,
		out:     os.Stdout,
		readBuf: make([]byte, 256),
	}
}

// attach picks the input and output files, opening /dev/tty when stdin is not a terminal
func (b *ttyBackend) attach() error {
	if term.IsTerminal(int(b.in.Fd())) {
		b.inFd = int(b.in.Fd())
		return nil
	}
	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotTerminal, err)
	}
	if !term.IsTerminal(int(tty.Fd())) {
		tty.Close()
		return ErrNotTerminal
	}
	b.owned = tty
	b.in, b.out = tty, tty
	b.inFd = int(tty.Fd())
	return nil
}

func (b *ttyBackend) Init() error {
	if err := b.attach(); err != nil {
		return err
	}
	saved, err := term.MakeRaw(b.inFd)
	if err != nil {
		b.release()
		return fmt.Errorf("raw mode: %w", err)
	}
	b.saved = saved
	return nil
}

func (b *ttyBackend) Fini() {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
		b.resizeStopCh = nil
	}
	if b.saved != nil {
		term.Restore(b.inFd, b.saved)
		b.saved = nil
	}
	b.release()
}

func (b *ttyBackend) release() {
	if b.owned != nil {
		b.owned.Close()
		b.owned = nil
		b.in, b.out = os.Stdin, os.Stdout
	}
}

func (b *ttyBackend) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(int(b.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return fallbackWidth, fallbackHeight
	}
	return int(ws.Col), int(ws.Row)
}

func (b *ttyBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read polls input in short slices so stopCh is observed. End of input is io.EOF.
func (b *ttyBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}

	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		n, err := unix.Poll(fds, pollMillis)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return nil, fmt.Errorf("poll: %w", err)
		}
		if n == 0 {
			// Timeout lets the reader flush a pending standalone ESC
			return nil, nil
		}
		if fds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 && fds[0].Revents&unix.POLLIN == 0 {
			return nil, io.EOF
		}

		rn, err := unix.Read(b.inFd, b.readBuf)
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return nil, err
		}
		if rn == 0 {
			return nil, io.EOF
		}

		out := make([]byte, rn)
		copy(out, b.readBuf[:rn])
		return out, nil
	}
}

// SetResizeHandler reports SIGWINCH until Fini; only the first handler is installed
func (b *ttyBackend) SetResizeHandler(handler func(width, height int)) {
	if b.resizeStopCh != nil {
		return
	}
	b.resizeStopCh = make(chan struct{})
	b.resizeDoneCh = make(chan struct{})
	stop, done := b.resizeStopCh, b.resizeDoneCh

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer close(done)
		defer signal.Stop(sigCh)
		for {
			select {
			case <-stop:
				return
			case <-sigCh:
				handler(b.Size())
			}
		}
	}()
}
