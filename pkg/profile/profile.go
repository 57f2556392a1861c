// Conversion profile for the dual extruder converter
//
// The original tool hard-coded its designators, marker letters and a
// 15-character argument bound (an artifact of its fixed parse buffers).
// A Profile carries those as explicit, overridable constants; the
// defaults reproduce the original's output byte for byte.
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the set of tunable constants for one conversion run.
type Profile struct {
	// MaxArgumentLength is the longest accepted speed or extrusion
	// token, marker letter included. Arguments over the bound abort
	// the run; downstream tools built against the original converter
	// may share its 15-character limit.
	MaxArgumentLength int `yaml:"max_argument_length"`

	// MinDiameter and MaxDiameter bound accepted filament diameters
	// in millimeters, inclusive.
	MinDiameter float64 `yaml:"min_diameter"`
	MaxDiameter float64 `yaml:"max_diameter"`

	// Toolhead0 and Toolhead1 are the designator tokens naming the
	// two extruders.
	Toolhead0 string `yaml:"toolhead0_designator"`
	Toolhead1 string `yaml:"toolhead1_designator"`

	// Marker letters prefixing argument tokens.
	TemperatureMarker string `yaml:"temperature_marker"`
	SpeedMarker       string `yaml:"speed_marker"`
	ExtrusionMarker   string `yaml:"extrusion_marker"`

	// ChannelA and ChannelB prefix the two split extrusion channels in
	// emitted output.
	ChannelA string `yaml:"channel_a_marker"`
	ChannelB string `yaml:"channel_b_marker"`
}

// Default returns the compatibility profile matching the original
// converter's constants.
func Default() *Profile {
	return &Profile{
		MaxArgumentLength: 15,
		MinDiameter:       1.5,
		MaxDiameter:       2.2,
		Toolhead0:         "T0",
		Toolhead1:         "T1",
		TemperatureMarker: "S",
		SpeedMarker:       "R",
		ExtrusionMarker:   "E",
		ChannelA:          "A",
		ChannelB:          "B",
	}
}

// Load reads a YAML profile from path, overlaying it on the defaults.
// Omitted keys keep their default values.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the profile for values the engine cannot work with.
func (p *Profile) Validate() error {
	if p.MaxArgumentLength <= 0 {
		return fmt.Errorf("max_argument_length must be positive, got %d", p.MaxArgumentLength)
	}
	if p.MinDiameter <= 0 || p.MaxDiameter <= 0 {
		return fmt.Errorf("diameter bounds must be positive, got [%g, %g]", p.MinDiameter, p.MaxDiameter)
	}
	if p.MinDiameter > p.MaxDiameter {
		return fmt.Errorf("min_diameter %g exceeds max_diameter %g", p.MinDiameter, p.MaxDiameter)
	}
	if p.Toolhead0 == "" || p.Toolhead1 == "" {
		return fmt.Errorf("toolhead designators must not be empty")
	}
	if p.Toolhead0 == p.Toolhead1 {
		return fmt.Errorf("toolhead designators must differ, both are %q", p.Toolhead0)
	}
	for name, m := range map[string]string{
		"temperature_marker": p.TemperatureMarker,
		"speed_marker":       p.SpeedMarker,
		"extrusion_marker":   p.ExtrusionMarker,
		"channel_a_marker":   p.ChannelA,
		"channel_b_marker":   p.ChannelB,
	} {
		if len(m) != 1 {
			return fmt.Errorf("%s must be a single character, got %q", name, m)
		}
	}
	if p.ChannelA == p.ChannelB {
		return fmt.Errorf("channel markers must differ, both are %q", p.ChannelA)
	}
	return nil
}
