//go:build freebsd || linux || netbsd

package memregion

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type procfsBackend struct{ posixMutator }

func newBackend() backend { return procfsBackend{} }

func (b procfsBackend) protect(lo, hi uintptr, prot Protection) error {
	return protectSegments(b, lo, hi, prot)
}

// Based on the format of /proc/[pid]/maps from
// https://man7.org/linux/man-pages/man5/proc.5.html
// netbsd and freebsd (with procfs mounted) use the same layout.
func (procfsBackend) regions(lo, hi uintptr) ([]Region, error) {
	data, err := os.ReadFile("/proc/self/maps")
	if err != nil {
		return nil, errors.Wrap(err, "could not read '/proc/self/maps'")
	}
	return parseProcMaps(data, lo, hi)
}

func parseProcMaps(data []byte, lo, hi uintptr) ([]Region, error) {
	var out []Region
	for i, line := range bytes.Split(data, []byte("\n")) {
		fields := strings.Fields(string(line))
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 5 {
			return nil, errors.Errorf("got fewer than 5 fields on line %d of /proc/self/maps: %s", i, line)
		}
		addrRange := strings.Split(fields[0], "-")
		if len(addrRange) != 2 {
			return nil, errors.Errorf("got %d fields for address range on line %d (expected 2): %s", len(addrRange), i, line)
		}
		start, err := strconv.ParseUint(addrRange[0], 16, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse start address (%s) on line %d", addrRange[0], i)
		}
		end, err := strconv.ParseUint(addrRange[1], 16, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse end address (%s) on line %d", addrRange[1], i)
		}
		if uintptr(end) <= lo || uintptr(start) >= hi {
			continue
		}
		r := Region{
			Base:      uintptr(start),
			Size:      uintptr(end - start),
			Committed: true,
		}
		for _, char := range fields[1] {
			switch char {
			case 'r':
				r.Protection |= ProtRead
			case 'w':
				r.Protection |= ProtWrite
			case 'x':
				r.Protection |= ProtExec
			case 's':
				r.Shared = true
			case 'p':
			case '-':
			default:
				return nil, errors.Errorf("got an unexpected permission bit '%c' in perms '%s'", char, fields[1])
			}
		}
		// procfs has no separate maximum-protection notion.
		r.MaxProtection = r.Protection
		if len(fields) > 5 {
			r.Path = pathField(string(line))
		}
		out = append(out, r)
	}
	return out, nil
}

// pathField returns everything after the fifth whitespace-separated
// field of a maps line. Backing paths may contain spaces, which
// strings.Fields would split apart.
func pathField(line string) string {
	rest := line
	for i := 0; i < 5; i++ {
		rest = strings.TrimLeft(rest, " \t")
		j := strings.IndexAny(rest, " \t")
		if j < 0 {
			return ""
		}
		rest = rest[j:]
	}
	return strings.TrimLeft(rest, " \t")
}
