package memregion

// Protection is a set of page access permissions. The zero value denies
// all access. Values combine with the | operator.
//
// Not every combination is representable on every OS: write access
// without read access is silently upgraded to the nearest representable
// combination by every backend in this package (the kernels themselves
// do the upgrading on POSIX systems; the windows backend picks the
// closest PAGE_* constant). See the per-backend translation functions.
type Protection uint8

const (
	ProtNone  Protection = 0
	ProtRead  Protection = 1 << 0
	ProtWrite Protection = 1 << 1
	ProtExec  Protection = 1 << 2

	ProtReadWrite     = ProtRead | ProtWrite
	ProtReadExec      = ProtRead | ProtExec
	ProtReadWriteExec = ProtRead | ProtWrite | ProtExec
)

func (p Protection) Read() bool    { return p&ProtRead != 0 }
func (p Protection) Write() bool   { return p&ProtWrite != 0 }
func (p Protection) Execute() bool { return p&ProtExec != 0 }

// String renders the set the way /proc/[pid]/maps renders its
// permission column, minus the sharing bit: "rwx", "r--", "---".
func (p Protection) String() string {
	b := [3]byte{'-', '-', '-'}
	if p.Read() {
		b[0] = 'r'
	}
	if p.Write() {
		b[1] = 'w'
	}
	if p.Execute() {
		b[2] = 'x'
	}
	return string(b[:])
}
