package seed

import (
	"math/rand/v2"

	"github.com/katalvlaran/tspd"
)

// RandomTour returns a deterministically-seeded random permutation of
// inst's customers, starting and ending at the depot. Mirrors
// tsp.Options.Seed's determinism discipline: the same seedValue always
// produces the same tour, regardless of call order elsewhere.
//
// Complexity: O(n) time, O(n) space.
func RandomTour(inst tspd.InstanceView, seedValue uint64) []int {
	n := inst.N()
	order := make([]int, 0, n+1)
	order = append(order, 0)
	customers := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		customers = append(customers, i)
	}
	rng := rand.New(rand.NewPCG(seedValue, seedValue^0x9e3779b97f4a7c15))
	rng.Shuffle(len(customers), func(i, j int) {
		customers[i], customers[j] = customers[j], customers[i]
	})
	order = append(order, customers...)
	order = append(order, 0)
	return order
}
