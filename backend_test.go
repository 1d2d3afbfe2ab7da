package memregion

import "testing"

// stubBackend serves canned records and scripted failures so the engine
// and the handle protocols can be tested without touching real page
// tables.
type stubBackend struct {
	recs       []Region
	queryErr   error
	protectErr error
	lockErr    error
	unlockErr  error

	protected []Region
	unlocks   int
}

func (s *stubBackend) regions(lo, hi uintptr) ([]Region, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	var out []Region
	for _, r := range s.recs {
		if r.End() > lo && r.Base < hi {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubBackend) protect(lo, hi uintptr, prot Protection) error {
	return s.protectErr
}

func (s *stubBackend) protectRegion(r Region) error {
	if s.protectErr != nil {
		return s.protectErr
	}
	s.protected = append(s.protected, r)
	return nil
}

func (s *stubBackend) lock(lo, hi uintptr) error { return s.lockErr }

func (s *stubBackend) unlock(lo, hi uintptr) error {
	if s.unlockErr != nil {
		return s.unlockErr
	}
	s.unlocks++
	return nil
}

func swapBackend(t *testing.T, b backend) {
	t.Helper()
	old := osBackend
	osBackend = b
	t.Cleanup(func() { osBackend = old })
}
