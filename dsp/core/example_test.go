package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

func ExampleDefaultLimits() {
	l := core.DefaultLimits()
	fmt.Printf("size=[%.0f,%.0f] predelay=[%.0f,%.0f] depth=%.0f\n",
		l.MinSize, l.MaxSize, l.MinPredelay, l.MaxPredelay, l.MaxDepth)

	// Output:
	// size=[1,500] predelay=[7,500] depth=4
}
