// Filament area ratio for the dual extruder converter
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package convert

import "github.com/simon-clay/3dprinting-gcode-dualextruder-processor/pkg/profile"

// AreaRatio turns two filament diameters into the cross-section area
// ratio used to rescale extrusion length for the added extruder: the
// ratio of the squares of the radii. d1 is the diameter the input file
// was generated for, d2 the diameter loaded on the added extruder. Each
// must lie inside the profile's diameter bounds; the returned error
// names the first offending diameter.
func AreaRatio(d1, d2 float64, p *profile.Profile) (float64, error) {
	if d1 < p.MinDiameter || d1 > p.MaxDiameter {
		return 0, ValidationError(d1, p.MinDiameter, p.MaxDiameter)
	}
	if d2 < p.MinDiameter || d2 > p.MaxDiameter {
		return 0, ValidationError(d2, p.MinDiameter, p.MaxDiameter)
	}
	return ((d1 / 2) * (d1 / 2)) / ((d2 / 2) * (d2 / 2)), nil
}
