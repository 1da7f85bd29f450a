package flux

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxNearLocation is the highest near detector location id.
const MaxNearLocation = 50

// Location identifies the detector a flux ntuple entry is recorded at.
// ID is -1 for the far detector (Super-K) and 1..50 for the near
// detector locations. Zero is not a valid location.
type Location struct {
	ID int
}

var FarDetector = Location{ID: -1}

// ParseLocation converts a location name ("sk", "nd1", ..., "nd50").
func ParseLocation(name string) (Location, error) {
	if name == "sk" {
		return FarDetector, nil
	}
	if !strings.HasPrefix(name, "nd") {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	id, err := strconv.Atoi(name[2:])
	if err != nil || id < 1 || id > MaxNearLocation || "nd"+strconv.Itoa(id) != name {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	return Location{ID: id}, nil
}

func (loc Location) IsFar() bool  { return loc.ID == -1 }
func (loc Location) IsNear() bool { return loc.ID > 0 && loc.ID <= MaxNearLocation }
func (loc Location) Valid() bool  { return loc.IsFar() || loc.IsNear() }

// Match reports whether an entry recorded at idfd belongs to loc.
// The far detector accepts every entry.
func (loc Location) Match(idfd int32) bool {
	if loc.IsFar() {
		return true
	}
	return int32(loc.ID) == idfd
}

func (loc Location) String() string {
	switch {
	case loc.IsFar():
		return "sk"
	case loc.IsNear():
		return "nd" + strconv.Itoa(loc.ID)
	}
	return fmt.Sprintf("unknown(%d)", loc.ID)
}
