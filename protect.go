package memregion

import (
	"errors"
	"runtime"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Protect changes the protection of [addr, addr+size) to prot, with no
// way back: the prior protection is not queried. The range is expanded
// to page boundaries before the OS is asked.
func Protect(addr, size uintptr, prot Protection) error {
	lo, hi, err := boundsOf(addr, size)
	if err != nil {
		return &Error{Kind: KindProtect, Op: "protect", Addr: addr, Err: err}
	}
	if err := osBackend.protect(lo, hi, prot); err != nil {
		return &Error{Kind: KindProtect, Op: "protect", Addr: addr, Err: err}
	}
	log.WithFields(log.Fields{"addr": hex(lo), "size": hi - lo, "prot": prot.String()}).Debug("protection changed")
	return nil
}

// Guard restores the protection that was in place before a
// ProtectWithGuard call. It remembers the prior protection of every
// affected sub-segment and reapplies each one, to its original extent,
// on Release.
//
// A Guard represents a one-time obligation: Release runs exactly once,
// and further calls are no-ops. A Guard that becomes garbage without
// being released restores best-effort at finalization and logs the
// leak, since there is no caller left to hand an error to.
type Guard struct {
	segments []Region
	lo, hi   uintptr
	released int32
}

// ProtectWithGuard captures the current protection of every sub-segment
// of [addr, addr+size), applies prot uniformly across the whole range,
// and returns a Guard that undoes the change. Capturing first is what
// preserves per-segment fidelity when the range crosses several
// differently-protected mappings.
//
// On failure no guard is returned and no protection change is left in
// place.
func ProtectWithGuard(addr, size uintptr, prot Protection) (*Guard, error) {
	lo, hi, err := boundsOf(addr, size)
	if err != nil {
		return nil, &Error{Kind: KindProtect, Op: "protect_scoped", Addr: addr, Err: err}
	}
	segments, err := osBackend.regions(lo, hi)
	if err != nil {
		return nil, &Error{Kind: KindProtect, Op: "protect_scoped", Addr: addr, Err: err}
	}
	if err := osBackend.protect(lo, hi, prot); err != nil {
		return nil, &Error{Kind: KindProtect, Op: "protect_scoped", Addr: addr, Err: err}
	}
	g := &Guard{segments: normalize(segments), lo: lo, hi: hi}
	runtime.SetFinalizer(g, finalizeGuard)
	log.WithFields(log.Fields{"addr": hex(lo), "size": hi - lo, "prot": prot.String(), "segments": len(g.segments)}).Debug("scoped protection applied")
	return g, nil
}

// Release reapplies the captured protection of every sub-segment. The
// first call does the work and returns any restoration failure; later
// calls do nothing and return nil.
func (g *Guard) Release() error {
	if !atomic.CompareAndSwapInt32(&g.released, 0, 1) {
		return nil
	}
	runtime.SetFinalizer(g, nil)
	return g.restore()
}

// restore walks every captured segment even if one fails, so a single
// bad segment cannot silently abandon the rest. Failures come back
// joined.
func (g *Guard) restore() error {
	var errs []error
	for _, seg := range g.segments {
		r := clampRegion(seg, g.lo, g.hi)
		if err := osBackend.protectRegion(r); err != nil {
			errs = append(errs, err)
			continue
		}
		log.WithFields(log.Fields{"addr": hex(r.Base), "size": r.Size, "prot": r.Protection.String()}).Debug("protection restored")
	}
	if len(errs) > 0 {
		return &Error{Kind: KindProtect, Op: "guard_release", Addr: g.lo, Err: errors.Join(errs...)}
	}
	return nil
}

func finalizeGuard(g *Guard) {
	if !atomic.CompareAndSwapInt32(&g.released, 0, 1) {
		return
	}
	log.WithFields(log.Fields{"addr": hex(g.lo), "size": g.hi - g.lo}).Warn("protection guard leaked, restoring at finalizer")
	if err := g.restore(); err != nil {
		log.WithFields(log.Fields{"addr": hex(g.lo), "error": err}).Error("failed to restore protection of leaked guard")
	}
}

// clampRegion clips a captured segment to the mutated window. The
// mutation only ever touched [lo, hi), so nothing outside it needs
// restoring even when the OS mapping extends further.
func clampRegion(r Region, lo, hi uintptr) Region {
	if r.Base < lo {
		r.Size -= lo - r.Base
		r.Base = lo
	}
	if r.End() > hi {
		r.Size = hi - r.Base
	}
	return r
}
