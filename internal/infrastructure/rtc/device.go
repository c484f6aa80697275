package rtc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"
	"time"

	"rtc-agent/internal/domain/entities"
	domainErrors "rtc-agent/internal/domain/errors"
	"rtc-agent/internal/domain/interfaces"
	"rtc-agent/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// ControlFile is an open device descriptor that accepts control requests
// and byte-stream reads.
type ControlFile interface {
	io.ReadCloser

	// Control issues a request that carries no argument.
	Control(req Request) error

	// ControlRead issues a request that the kernel answers by filling buf.
	ControlRead(req Request, buf []byte) error

	// ControlWrite issues a request that hands buf to the kernel.
	ControlWrite(req Request, buf []byte) error
}

// Device is a handle on an RTC character device. It owns the descriptor
// and is meant to be driven from a single goroutine; only Close may be
// called concurrently to unblock a pending read.
type Device struct {
	path   string
	file   ControlFile
	logger *logrus.Logger

	closeOnce sync.Once
	closeErr  error
}

var _ interfaces.RTCDevice = (*Device)(nil)

// Open opens the RTC device node at path.
func Open(path string, logger *logrus.Logger) (*Device, error) {
	f, err := openControlFile(path)
	if err != nil {
		return nil, classifyOpenError(path, err)
	}

	logger.WithField("path", path).Debug("RTC device opened")
	return NewDevice(path, f, logger), nil
}

// NewDevice wraps an already open control file.
func NewDevice(path string, f ControlFile, logger *logrus.Logger) *Device {
	return &Device{
		path:   path,
		file:   f,
		logger: logger,
	}
}

// Path returns the device node this handle was opened on.
func (d *Device) Path() string {
	return d.path
}

func (d *Device) String() string {
	return fmt.Sprintf("RTCDevice{path: %q}", d.path)
}

// GetTime reads the clock register set.
func (d *Device) GetTime() (entities.RTCTime, error) {
	buf := make([]byte, entities.RTCTimeSize)
	if err := d.file.ControlRead(RequestRdTime, buf); err != nil {
		return entities.RTCTime{}, d.requestFailed(RequestRdTime, err)
	}
	d.requestDone(RequestRdTime)

	var t entities.RTCTime
	if err := t.UnmarshalBinary(buf); err != nil {
		return entities.RTCTime{}, err
	}
	return t, nil
}

// SetTime writes t to the clock register set. Field values are passed
// through as is.
func (d *Device) SetTime(t entities.RTCTime) error {
	buf, err := t.MarshalBinary()
	if err != nil {
		return err
	}
	if err := d.file.ControlWrite(RequestSetTime, buf); err != nil {
		return d.requestFailed(RequestSetTime, err)
	}
	d.requestDone(RequestSetTime)
	return nil
}

// EnableUpdateInterrupt turns on the 1Hz update interrupt.
func (d *Device) EnableUpdateInterrupt() error {
	return d.control(RequestUIEOn)
}

// DisableUpdateInterrupt turns off the 1Hz update interrupt.
func (d *Device) DisableUpdateInterrupt() error {
	return d.control(RequestUIEOff)
}

func (d *Device) control(req Request) error {
	if err := d.file.Control(req); err != nil {
		return d.requestFailed(req, err)
	}
	d.requestDone(req)
	return nil
}

// ReadEvent blocks until buf is full. Running out of data first is a
// short read; buf is never padded.
func (d *Device) ReadEvent(buf []byte) error {
	start := time.Now()
	n, err := io.ReadFull(d.file, buf)
	if err != nil {
		var readErr *domainErrors.DomainError
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			readErr = domainErrors.NewShortReadError(len(buf), n, err)
		} else {
			readErr = domainErrors.NewDeviceError(fmt.Sprintf("read %s failed after %d bytes", d.path, n), err)
		}
		metrics.RecordError(string(readErr.Type))
		return readErr
	}

	metrics.RecordEventRead(time.Since(start).Seconds())
	return nil
}

// ReadInterruptEvent reads and decodes one interrupt event.
func (d *Device) ReadInterruptEvent() (entities.InterruptEvent, error) {
	buf := make([]byte, entities.InterruptEventSize)
	if err := d.ReadEvent(buf); err != nil {
		return entities.InterruptEvent{}, err
	}
	return entities.DecodeInterruptEvent(buf)
}

// Close releases the descriptor. Calling it more than once is harmless.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = d.file.Close()
		d.logger.WithField("path", d.path).Debug("RTC device closed")
	})
	return d.closeErr
}

func (d *Device) requestDone(req Request) {
	metrics.RecordControlRequest(req.String(), "success")
	d.logger.WithFields(logrus.Fields{
		"path":    d.path,
		"request": req.String(),
	}).Debug("Control request completed")
}

func (d *Device) requestFailed(req Request, err error) error {
	metrics.RecordControlRequest(req.String(), "failed")
	metrics.RecordError(string(domainErrors.ErrorTypeDevice))
	return domainErrors.NewDeviceError(fmt.Sprintf("%s on %s failed", req, d.path), err)
}

func classifyOpenError(path string, err error) error {
	msg := fmt.Sprintf("opening RTC %s failed", path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domainErrors.NewNotFoundError(msg, err)
	case errors.Is(err, fs.ErrPermission):
		return domainErrors.NewPermissionError(msg, err)
	case domainErrors.TypeOf(err) != "":
		return err
	default:
		return domainErrors.NewDeviceError(msg, err)
	}
}
