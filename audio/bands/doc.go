// Package bands reduces a byte-scaled magnitude spectrum to the four named
// energy bands and the overall average that drive the scene.
//
// The default layout assumes a 128-bin snapshot from a 256-point transform:
// bass [0,4), low-mid [4,12), mid [12,32) and high [32,64). Every value is
// normalized by 255 so inputs in [0,255] always produce outputs in [0,1].
package bands
