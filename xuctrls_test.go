package cameractrls

import (
	"fmt"
	"slices"
	"testing"
)

// fakeXU is an in-memory register file standing in for a camera's
// extension unit.
type fakeXU struct {
	regs map[uint8][]byte
	min  map[uint8][]byte
	max  map[uint8][]byte

	writes []fakeWrite

	failSetN     int  // fail the next N writes
	ignoreWrites bool // accept writes without changing the registers
}

type fakeWrite struct {
	selector uint8
	data     []byte
}

func newFakeXU() *fakeXU {
	return &fakeXU{regs: map[uint8][]byte{}, min: map[uint8][]byte{}, max: map[uint8][]byte{}}
}

func (f *fakeXU) set(selector uint8, data ...byte) *fakeXU {
	f.regs[selector] = slices.Clone(data)
	return f
}

func (f *fakeXU) setRange(selector uint8, min, max []byte) *fakeXU {
	f.min[selector] = slices.Clone(min)
	f.max[selector] = slices.Clone(max)
	return f
}

func (f *fakeXU) Probe(selector uint8) bool {
	_, ok := f.regs[selector]
	return ok
}

func (f *fakeXU) GetCur(selector uint8) ([]byte, error) { return f.read(f.regs, selector) }
func (f *fakeXU) GetMin(selector uint8) ([]byte, error) { return f.read(f.min, selector) }
func (f *fakeXU) GetMax(selector uint8) ([]byte, error) { return f.read(f.max, selector) }

func (f *fakeXU) read(m map[uint8][]byte, selector uint8) ([]byte, error) {
	buf, ok := m[selector]
	if !ok {
		return nil, fmt.Errorf("no register behind selector %#02x", selector)
	}
	return slices.Clone(buf), nil
}

func (f *fakeXU) SetCur(selector uint8, data []byte) error {
	if f.failSetN > 0 {
		f.failSetN--
		return fmt.Errorf("selector %#02x rejected the write", selector)
	}
	f.writes = append(f.writes, fakeWrite{selector: selector, data: slices.Clone(data)})
	if f.ignoreWrites {
		return nil
	}
	// Short writes are padded to the register length, as on the wire.
	if reg, ok := f.regs[selector]; ok && len(data) < len(reg) {
		padded := make([]byte, len(reg))
		copy(padded, data)
		f.regs[selector] = padded
		return nil
	}
	f.regs[selector] = slices.Clone(data)
	return nil
}

func stateOf(t *testing.T, b Backend, id string) State {
	t.Helper()
	c := findControl(b.Controls(), id)
	if c == nil {
		t.Fatalf("control %s not found", id)
	}
	return c.State()
}

func controlIDs(b Backend) []string {
	var ids []string
	for _, c := range b.Controls() {
		ids = append(ids, c.Meta().ID)
	}
	return ids
}

func TestRegisterUint(t *testing.T) {
	tests := []struct {
		buf  []byte
		want uint64
	}{
		{nil, 0},
		{[]byte{0xff}, 0xff},
		{[]byte{0x01, 0x23}, 0x2301},
		{[]byte{0x00, 0x01, 0x5f, 0x00, 0x00, 0x00, 0x00}, 0x5f0100},
	}
	for _, tt := range tests {
		if got := registerUint(tt.buf); got != tt.want {
			t.Errorf("registerUint(% x) = %#x, want %#x", tt.buf, got, tt.want)
		}
	}
}

func TestRegisterByte(t *testing.T) {
	buf := []byte{0x0a, 0x0b}
	if v, ok := registerByte(buf, 1); !ok || v != 0x0b {
		t.Errorf("registerByte(buf, 1) = %#x, %v, want 0x0b, true", v, ok)
	}
	if _, ok := registerByte(buf, 2); ok {
		t.Error("registerByte(buf, 2) ok = true, want false")
	}
	if _, ok := registerByte(nil, 0); ok {
		t.Error("registerByte(nil, 0) ok = true, want false")
	}
}
