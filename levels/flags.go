package levels

import "flag"

// SpawnFlag returns the point named by the xName and yName flags of fs, or
// nil unless both were set on the command line. Any value is accepted,
// negative coordinates included.
func SpawnFlag(fs *flag.FlagSet, xName, yName string) *Point {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set[xName] || !set[yName] {
		return nil
	}
	x, okX := fs.Lookup(xName).Value.(flag.Getter).Get().(float64)
	y, okY := fs.Lookup(yName).Value.(flag.Getter).Get().(float64)
	if !okX || !okY {
		return nil
	}
	return &Point{X: x, Y: y}
}
