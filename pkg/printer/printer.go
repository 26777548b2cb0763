package printer

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends raw ESC/POS bytes to a receipt printer.
type Printer interface {
	Print(data []byte) error
	Close() error
	IsConnected() bool
}

// Kind selects the printer transport.
type Kind string

const (
	KindNone    Kind = "none"
	KindUSB     Kind = "usb"
	KindNetwork Kind = "network"
)

// Config describes how to reach the receipt printer.
type Config struct {
	Kind    Kind
	USBPath string // e.g. /dev/usb/lp0
	Address string // host:port, usually port 9100
	Timeout time.Duration
}

// New returns the printer described by cfg. An empty kind means no printer.
func New(cfg Config) (Printer, error) {
	switch cfg.Kind {
	case KindUSB:
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: usb path is required for usb printers")
		}
		return &usbPrinter{path: cfg.USBPath}, nil
	case KindNetwork:
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		return &networkPrinter{address: cfg.Address, timeout: timeout}, nil
	case KindNone, "":
		return nullPrinter{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network or none)", cfg.Kind)
	}
}

type usbPrinter struct {
	mu   sync.Mutex
	path string
}

func (p *usbPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout/2)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

func (nullPrinter) Print([]byte) error { return nil }
func (nullPrinter) Close() error       { return nil }
func (nullPrinter) IsConnected() bool  { return false }

// Buffer keeps every job in memory. It backs previews and tests.
type Buffer struct {
	mu   sync.Mutex
	jobs [][]byte
	Err  error
}

func (b *Buffer) Print(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	b.jobs = append(b.jobs, bytes.Clone(data))
	return nil
}

func (b *Buffer) Close() error      { return nil }
func (b *Buffer) IsConnected() bool { return b.Err == nil }

// Jobs returns the printed jobs in order.
func (b *Buffer) Jobs() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([][]byte, len(b.jobs))
	copy(out, b.jobs)
	return out
}
