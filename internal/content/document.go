// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package content

// Document is one YAML data file of a pack. A file may define any mix of
// collections.
type Document struct {
	Materials []Material `yaml:"materials,omitempty" json:"materials,omitempty"`
	Vitamins  []Vitamin  `yaml:"vitamins,omitempty" json:"vitamins,omitempty"`
	Faults    []Fault    `yaml:"faults,omitempty" json:"faults,omitempty"`
	Emits     []Emit     `yaml:"emits,omitempty" json:"emits,omitempty"`
	Flags     []Flag     `yaml:"flags,omitempty" json:"flags,omitempty"`
	Qualities []Quality  `yaml:"qualities,omitempty" json:"qualities,omitempty"`
	Items     []ItemDef  `yaml:"items,omitempty" json:"items,omitempty"`
}

// Material is what items are made of.
type Material struct {
	ID      string `yaml:"id" json:"id" jsonschema:"minLength=1"`
	Name    string `yaml:"name" json:"name"`
	Density int    `yaml:"density,omitempty" json:"density,omitempty" jsonschema:"minimum=0"`
}

// Vitamin is a nutrient tracked on food.
type Vitamin struct {
	ID   string `yaml:"id" json:"id" jsonschema:"minLength=1"`
	Name string `yaml:"name" json:"name"`
}

// Fault is a defect an item can develop.
type Fault struct {
	ID          string `yaml:"id" json:"id" jsonschema:"minLength=1"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Emit is a field an item gives off, like smoke from a burning rag.
type Emit struct {
	ID        string `yaml:"id" json:"id" jsonschema:"minLength=1"`
	Field     string `yaml:"field" json:"field"`
	Intensity int    `yaml:"intensity,omitempty" json:"intensity,omitempty" jsonschema:"minimum=1,maximum=3"`
	Chance    int    `yaml:"chance,omitempty" json:"chance,omitempty" jsonschema:"minimum=0,maximum=100"`
}

// Flag is a named marker on item types or instances.
type Flag struct {
	ID   string `yaml:"id" json:"id" jsonschema:"minLength=1"`
	Info string `yaml:"info,omitempty" json:"info,omitempty"`
	// Inherit makes contents inherit the flag from their container.
	Inherit bool `yaml:"inherit,omitempty" json:"inherit,omitempty"`
}

// Quality is a tool quality like CUT or HAMMER.
type Quality struct {
	ID   string `yaml:"id" json:"id" jsonschema:"minLength=1"`
	Name string `yaml:"name" json:"name"`
}

// ItemDef is the data form of an item type.
type ItemDef struct {
	ID             string         `yaml:"id" json:"id" jsonschema:"minLength=1"`
	Name           string         `yaml:"name" json:"name"`
	Materials      []string       `yaml:"materials,omitempty" json:"materials,omitempty"`
	CountByCharges bool           `yaml:"count_by_charges,omitempty" json:"count_by_charges,omitempty"`
	StackSize      int            `yaml:"stack_size,omitempty" json:"stack_size,omitempty" jsonschema:"minimum=1"`
	Charges        int            `yaml:"charges,omitempty" json:"charges,omitempty" jsonschema:"minimum=0"`
	VolumeML       int            `yaml:"volume_ml" json:"volume_ml" jsonschema:"minimum=0"`
	WeightG        int            `yaml:"weight_g" json:"weight_g" jsonschema:"minimum=0"`
	Qualities      map[string]int `yaml:"qualities,omitempty" json:"qualities,omitempty"`
	// RotsIn is a Go duration such as "240h"; empty means the item keeps.
	RotsIn          string         `yaml:"rots_in,omitempty" json:"rots_in,omitempty"`
	HolsterDrawCost int            `yaml:"holster_draw_cost,omitempty" json:"holster_draw_cost,omitempty" jsonschema:"minimum=0"`
	DamageMin       int            `yaml:"damage_min,omitempty" json:"damage_min,omitempty" jsonschema:"maximum=0"`
	DamageMax       int            `yaml:"damage_max,omitempty" json:"damage_max,omitempty" jsonschema:"minimum=0"`
	Flags           []string       `yaml:"flags,omitempty" json:"flags,omitempty"`
	Faults          []string       `yaml:"faults,omitempty" json:"faults,omitempty"`
	Emits           []string       `yaml:"emits,omitempty" json:"emits,omitempty"`
	Vitamins        map[string]int `yaml:"vitamins,omitempty" json:"vitamins,omitempty"`
}
