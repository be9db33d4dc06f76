package harness

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrBanned is wrapped by restrictor failures.
var ErrBanned = errors.New("banned components")

// Restrictor checks which components a board may use.
type Restrictor interface {
	Check(ctx context.Context, s *Subcircuit) error
}

// alwaysAllowed are permitted by every whitelist; no board works without them.
var alwaysAllowed = []string{"Input Pin", "Output Pin", "Constant", "Tunnel", "Text", "Probe"}

type listRestrictor struct {
	names     []string
	whitelist bool
}

// Whitelist permits only the named components and categories, plus pins,
// constants, tunnels, text and probes.
func Whitelist(names ...string) Restrictor {
	return listRestrictor{names: append(append([]string(nil), alwaysAllowed...), names...), whitelist: true}
}

// Blacklist forbids the named components and categories.
func Blacklist(names ...string) Restrictor {
	return listRestrictor{names: names}
}

// Check walks the board and every board nested in it.
func (r listRestrictor) Check(ctx context.Context, s *Subcircuit) error {
	found, err := s.resolver.Matches(ctx, r.names, r.whitelist, true)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return nil
	}
	banned := make([]string, 0, len(found))
	for name := range found {
		banned = append(banned, fmt.Sprintf("%q", name))
	}
	sort.Strings(banned)
	return fmt.Errorf("%w: board %q contains %s; it could also contain them indirectly, so double-check the subcircuits placed in it",
		ErrBanned, s.board.Name, strings.Join(banned, ", "))
}

// Restrict runs every restrictor against the board, reporting all failures.
func (s *Subcircuit) Restrict(ctx context.Context, rs ...Restrictor) error {
	var errs []error
	for _, r := range rs {
		if err := r.Check(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
