package codegen

// frame tracks one function's stack layout while lowering its body.
// Every distinct non-literal operand referenced anywhere in the
// function — parameter or temporary alike — is assigned a slot on
// first reference and keeps it for the rest of the function
// (spec.md §4.5 "Stack frame layout"). Slots are 8 bytes and grow
// downward from rbp.
type frame struct {
	offsets map[string]int
	slots   int
}

func newFrame() *frame {
	return &frame{offsets: map[string]int{}}
}

// slot returns the [rbp-N] offset for name, allocating a fresh one on
// first reference.
func (f *frame) slot(name string) int {
	if off, ok := f.offsets[name]; ok {
		return off
	}
	f.slots++
	off := f.slots * 8
	f.offsets[name] = off
	return off
}

// size is the frame's sub rsp operand: 8 bytes per slot, rounded up to
// a 16-byte boundary to keep the stack aligned for any call within the
// function body, with a 64-byte floor so leaf functions still carry
// the teacher's original headroom for register spills
// (Open Question 3, SPEC_FULL.md §1 / DESIGN.md).
func (f *frame) size() int {
	n := f.slots * 8
	if n%16 != 0 {
		n += 16 - n%16
	}
	if n < 64 {
		n = 64
	}
	return n
}

// precount walks a function body (not including its own FuncBegin),
// seeding parameter slots first and then touching every operand
// position in program order, to learn the final frame size before a
// single instruction line is emitted. The emission pass reuses the
// frame returned here, so every operand it touches already has its
// slot and the frame size covers all of them.
func precount(params []string, body []irInstr) *frame {
	f := newFrame()
	for _, p := range params {
		f.slot(p)
	}
	for _, instr := range body {
		for _, operand := range operandsOf(instr) {
			if operand == "" || isNumericLiteral(operand) || isStringLabel(operand) {
				continue
			}
			f.slot(operand)
		}
	}
	return f
}
