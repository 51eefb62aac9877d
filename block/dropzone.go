package block

import (
	"fmt"
	"strings"
)

// ZoneMode is the insertion mode encoded in a drop-zone id.
type ZoneMode int

const (
	// ZoneBefore inserts immediately before the anchor block.
	ZoneBefore ZoneMode = iota
	// ZoneAfter inserts immediately after the anchor block.
	ZoneAfter
	// ZoneInto inserts at the first position inside the anchor container.
	ZoneInto
	// ZoneEnd inserts at the last position inside the anchor container.
	ZoneEnd
	// ZoneRootStart inserts at the first root-level position.
	ZoneRootStart
	// ZoneRootEnd inserts at the last root-level position.
	ZoneRootEnd
)

// DropZone is a decoded insertion point. Anchor is empty for the root
// variants.
type DropZone struct {
	Mode   ZoneMode
	Anchor string
}

// Zone id string forms. Zones are computed fresh from geometry on every
// pointer move and consumed once; they are never persisted.
const (
	zoneRootStart = "root-start"
	zoneRootEnd   = "root-end"
)

// ParseDropZone decodes a drop-zone id such as "after-abc" or "root-end".
func ParseDropZone(zone string) (DropZone, error) {
	switch zone {
	case zoneRootStart:
		return DropZone{Mode: ZoneRootStart}, nil
	case zoneRootEnd:
		return DropZone{Mode: ZoneRootEnd}, nil
	}

	for prefix, mode := range map[string]ZoneMode{
		"before-": ZoneBefore,
		"after-":  ZoneAfter,
		"into-":   ZoneInto,
		"end-":    ZoneEnd,
	} {
		if rest, ok := strings.CutPrefix(zone, prefix); ok && rest != "" {
			return DropZone{Mode: mode, Anchor: rest}, nil
		}
	}

	return DropZone{}, fmt.Errorf("invalid drop zone %q", zone)
}

// String encodes the zone back into its id form.
func (z DropZone) String() string {
	switch z.Mode {
	case ZoneBefore:
		return "before-" + z.Anchor
	case ZoneAfter:
		return "after-" + z.Anchor
	case ZoneInto:
		return "into-" + z.Anchor
	case ZoneEnd:
		return "end-" + z.Anchor
	case ZoneRootStart:
		return zoneRootStart
	default:
		return zoneRootEnd
	}
}

// BeforeZone returns the zone id inserting before the given block.
func BeforeZone(id string) string { return "before-" + id }

// AfterZone returns the zone id inserting after the given block.
func AfterZone(id string) string { return "after-" + id }

// IntoZone returns the zone id inserting at the first position inside the
// given container.
func IntoZone(id string) string { return "into-" + id }

// EndZone returns the zone id inserting at the last position inside the
// given container.
func EndZone(id string) string { return "end-" + id }

// RootStartZone and RootEndZone are the root-level zone ids.
func RootStartZone() string { return zoneRootStart }
func RootEndZone() string   { return zoneRootEnd }
