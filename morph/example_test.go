package morph_test

import (
	"fmt"

	"github.com/cwbudde/algo-glass/morph"
)

func ExampleEngine() {
	e, err := morph.New()
	if err != nil {
		panic(err)
	}

	fmt.Println(e.ShapeName(), e.State(), e.Topology().Len())

	e.Trigger()
	for e.State() == morph.Morphing {
		e.Advance(1.0/60, 0, 0)
	}
	fmt.Println(e.ShapeName(), e.State())

	// Output:
	// icosahedron idle 162
	// dodecahedron idle
}
