package glue

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// commandPipe is the one-way byte channel from the platform thread to the
// worker thread. Writers must hold the App lock so commands stay ordered.
type commandPipe struct {
	readFd  int
	writeFd int
}

func newCommandPipe() (*commandPipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPipe, err)
	}
	return &commandPipe{readFd: fds[0], writeFd: fds[1]}, nil
}

func (p *commandPipe) fd() int { return p.readFd }

func (p *commandPipe) write(cmd Command) error {
	buf := [1]byte{byte(cmd)}
	n, err := unix.Write(p.writeFd, buf[:])
	if err != nil {
		return fmt.Errorf("write %s: %w", cmd, err)
	}
	if n != len(buf) {
		return fmt.Errorf("write %s: %w", cmd, io.ErrShortWrite)
	}
	return nil
}

// read blocks until one command byte is available.
func (p *commandPipe) read() (Command, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(p.readFd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return CmdInvalid, fmt.Errorf("read command: %w", err)
		}
		if n != len(buf) {
			return CmdInvalid, fmt.Errorf("read command: %w", io.ErrUnexpectedEOF)
		}
		return Command(int8(buf[0])), nil
	}
}

func (p *commandPipe) close() error {
	rerr := unix.Close(p.readFd)
	werr := unix.Close(p.writeFd)
	if rerr != nil {
		return rerr
	}
	return werr
}
