// Command collision-calculator prints the adaptive id length
// internal/core's IdGenerator would pick at various project sizes and
// collision thresholds, driving the same birthday-estimate the generator
// itself runs on every Create call.
package main

import (
	"fmt"

	"github.com/ttrei/bd/internal/core"
)

func main() {
	fmt.Println("=== Adaptive ID Length by DB Size and Threshold ===")

	dbSizes := []int{50, 100, 200, 500, 1000, 2000, 5000, 10000}
	thresholds := []float64{0.10, 0.25, 0.50}

	fmt.Printf("%-10s", "DB Size")
	for _, t := range thresholds {
		fmt.Printf("%10.0f%%", t*100)
	}
	fmt.Println()
	fmt.Println("----------------------------------")

	for _, size := range dbSizes {
		fmt.Printf("%-10d", size)
		for _, t := range thresholds {
			gen := &core.IdGenerator{MinLength: 3, MaxLength: 8, MaxCollisionProbability: t}
			fmt.Printf("%10d", gen.OptimalLength(size))
		}
		fmt.Println()
	}

	fmt.Println("\n=== What the default generator (max-collision-prob 0.25) picks ===")
	gen := core.NewIdGenerator("bd")
	for _, size := range dbSizes {
		fmt.Printf("%-10d -> length %d\n", size, gen.OptimalLength(size))
	}
}
