package tspd

import (
	"math"

	"github.com/katalvlaran/tspd/bitset"
	"github.com/katalvlaran/tspd/distance"
)

// NoFly marks an Operation or OperationEntry with no drone sortie.
const NoFly = -1

// Operation is a tuple (start, drive-path, end, fly?): start and end are
// location indices (possibly equal), drive-path is the ordered list of
// internal truck-only customers visited between them (possibly empty), and
// Fly is either NoFly or a single customer index the drone visits while the
// truck drives the path. Fly must not appear in DrivePath.
type Operation struct {
	Start     int
	DrivePath []int
	End       int
	Fly       int
}

// CoveredSet returns the bitset of every location index this operation
// touches: start, end, every drive-path node, and Fly if present.
func (op Operation) CoveredSet() bitset.Set {
	s := bitset.Add(bitset.Singleton(op.Start), op.End)
	for _, v := range op.DrivePath {
		s = bitset.Add(s, v)
	}
	if op.Fly != NoFly {
		s = bitset.Add(s, op.Fly)
	}
	return s
}

// Validate checks the operation's own invariants: Fly (if present) is not
// in DrivePath, and Fly differs from Start and End.
func (op Operation) Validate() error {
	if op.Fly == NoFly {
		return nil
	}
	if op.Fly == op.Start || op.Fly == op.End {
		return ErrInvalidInput
	}
	for _, v := range op.DrivePath {
		if v == op.Fly {
			return ErrInvalidInput
		}
	}
	return nil
}

// Cost returns the truck-path cost, the drone-triangle cost (0 if Fly ==
// NoFly), and the operation cost max(truck, drone), evaluated against inst.
// A non-finite truck or drone leg yields +Inf for that component.
func (op Operation) Cost(inst InstanceView) (truckCost, droneCost, total float64) {
	path := make([]int, 0, len(op.DrivePath)+2)
	path = append(path, op.Start)
	path = append(path, op.DrivePath...)
	path = append(path, op.End)
	tc, ok := distance.PathDistance(inst.TruckDistance(), path)
	if !ok {
		tc = math.Inf(1)
	}
	dc := 0.0
	if op.Fly != NoFly {
		dc = distance.FlyDistance(inst.DroneDistance(), op.Start, op.End, op.Fly)
	}
	return tc, dc, math.Max(tc, dc)
}

// OperationEntry is an operation-table row: (first, last, covered, fly?,
// drive-cost, fly-cost, predecessor?). Pred is an arena index into the
// owning table (see package optable), or NoFly/-1 for a root entry.
type OperationEntry struct {
	First, Last int
	Covered     bitset.Set
	Fly         int
	DriveCost   float64
	FlyCost     float64
	Pred        int
}

// Cost returns max(DriveCost, FlyCost), the dominance-pruning key once a fly
// node has been attached.
func (e OperationEntry) Cost() float64 {
	return math.Max(e.DriveCost, e.FlyCost)
}

// Key identifies the dominance-pruning bucket (first, last, covered, fly?)
// an entry belongs to.
type Key struct {
	First, Last int
	Covered     bitset.Set
	Fly         int
}

// Key returns e's dominance-pruning key.
func (e OperationEntry) Key() Key {
	return Key{First: e.First, Last: e.Last, Covered: e.Covered, Fly: e.Fly}
}
