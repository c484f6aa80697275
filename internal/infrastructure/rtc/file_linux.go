//go:build linux

package rtc

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// deviceFile issues ioctl(2) through the file's raw connection so the
// descriptor stays in non-blocking mode and reads go through the runtime
// poller. Closing the file therefore wakes up a blocked Read.
type deviceFile struct {
	*os.File
}

func openControlFile(path string) (ControlFile, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	return &deviceFile{File: f}, nil
}

func (f *deviceFile) Control(req Request) error {
	return f.ioctl(req, nil)
}

func (f *deviceFile) ControlRead(req Request, buf []byte) error {
	if len(buf) == 0 {
		return unix.EINVAL
	}
	return f.ioctl(req, unsafe.Pointer(&buf[0]))
}

func (f *deviceFile) ControlWrite(req Request, buf []byte) error {
	if len(buf) == 0 {
		return unix.EINVAL
	}
	return f.ioctl(req, unsafe.Pointer(&buf[0]))
}

func (f *deviceFile) ioctl(req Request, arg unsafe.Pointer) error {
	conn, err := f.SyscallConn()
	if err != nil {
		return err
	}

	var errno unix.Errno
	ctrlErr := conn.Control(func(fd uintptr) {
		_, _, errno = unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), uintptr(arg))
	})
	if ctrlErr != nil {
		return ctrlErr
	}
	if errno != 0 {
		return errno
	}
	return nil
}
