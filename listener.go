package cameractrls

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
)

// Listener watches one device for control changes made through other
// handles. Kernel control events arrive over the V4L2 event queue; format
// changes have no event, so each poll timeout re-reads the active format
// and compares it to the cache.
type Listener struct {
	dev    *v4l2.Device
	ctrls  []Control
	format *FormatBackend
	cb     func(Control)
	errCb  func(error)

	epfd     int
	done     chan struct{}
	stopOnce sync.Once
}

// Subscribe starts a listener over the camera's kernel controls and format
// menus. cb receives each changed control; errCb receives failures the
// listener cannot recover from. Both are invoked from the listener's
// goroutine. Stop the listener before closing the camera.
func (c *Camera) Subscribe(cb func(Control), errCb func(error)) (*Listener, error) {
	return newListener(c.dev, c.v4l.Controls(), c.format, cb, errCb)
}

func newListener(dev *v4l2.Device, ctrls []Control, format *FormatBackend, cb func(Control), errCb func(error)) (*Listener, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLPRI | unix.EPOLLERR, Fd: int32(dev.Fd())}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, dev.Fd(), &ev); err != nil {
		unix.Close(epfd)
		return nil, fmt.Errorf("epoll_ctl: %w", err)
	}
	for _, ctrl := range ctrls {
		id := ctrl.Meta().KernelID
		if id == 0 {
			continue
		}
		// ALLOW_FEEDBACK keeps our own writes visible, so every handle
		// observes the same stream of changes.
		if err := dev.SubscribeEvent(v4l2.EventTypeCtrl, id, v4l2.EventSubFlagAllowFeedback); err != nil {
			unix.Close(epfd)
			return nil, fmt.Errorf("subscribe %s: %w", ctrl.Meta().ID, err)
		}
	}
	l := &Listener{
		dev:    dev,
		ctrls:  ctrls,
		format: format,
		cb:     cb,
		errCb:  errCb,
		epfd:   epfd,
		done:   make(chan struct{}),
	}
	go l.run()
	return l, nil
}

// Stop asks the listener to exit. The goroutine notices at its next wake,
// at most one poll interval later.
func (l *Listener) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Listener) run() {
	defer unix.Close(l.epfd)
	events := make([]unix.EpollEvent, 1)
	for {
		select {
		case <-l.done:
			return
		default:
		}
		n, err := unix.EpollWait(l.epfd, events, 1000)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			l.errCb(fmt.Errorf("epoll_wait: %w", err))
			return
		}
		if n == 0 {
			select {
			case <-l.done:
				return
			default:
			}
			l.queryFormatChanges()
			continue
		}
		if events[0].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			return
		}
		if !l.handleEvent() {
			return
		}
	}
}

// handleEvent drains exactly one queued event. It reports false when the
// listener should terminate.
func (l *Listener) handleEvent() bool {
	e, err := l.dev.DequeueEvent()
	if err != nil {
		l.errCb(fmt.Errorf("stopping listener: %w", err))
		return false
	}
	if e.Type != v4l2.EventTypeCtrl {
		return true
	}
	ctrl := findControlByKernelID(l.ctrls, e.ID)
	if ctrl == nil {
		return true
	}
	ec := e.Ctrl()
	s := ctrl.State()
	s.Inactive = ec.Flags&v4l2.CtrlFlagInactive != 0
	s.ReadOnly = ec.Flags&v4l2.CtrlFlagReadOnly != 0
	ctrl.setState(s)
	if err := applyEventValue(ctrl, ec.Value); err != nil {
		l.errCb(err)
		return true
	}
	l.cb(ctrl)
	return true
}

// queryFormatChanges reports at most one changed format menu. The format
// menus are reopeners, so delivering only the first change per poll avoids
// stacking reopen cycles on the consumer.
func (l *Listener) queryFormatChanges() {
	if updates := l.format.refresh(); len(updates) > 0 {
		l.cb(updates[0])
	}
}
