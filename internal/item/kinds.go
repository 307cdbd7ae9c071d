// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

// Variant identifies the concrete kind of a Location. The set is closed:
// every Location implementation lives in this package and switches over
// Variant exhaustively.
type Variant int

// Location variants.
const (
	VariantTemplate Variant = iota
	VariantCharacterInventory
	VariantNPCMission
	VariantWorn
	VariantWielded
	VariantTile
	VariantPartialConstruction
	VariantVehicleCargo
	VariantVehicleBase
	VariantMonster
	VariantMonsterComponent
	VariantMonsterTied
	VariantMonsterTack
	VariantMonsterArmor
	VariantMonsterStorage
	VariantMonsterBattery
	VariantContents
	VariantComponent
)

var variantNames = [...]string{
	VariantTemplate:            "template",
	VariantCharacterInventory:  "character_inventory",
	VariantNPCMission:          "npc_mission",
	VariantWorn:                "worn",
	VariantWielded:             "wielded",
	VariantTile:                "tile",
	VariantPartialConstruction: "partial_construction",
	VariantVehicleCargo:        "vehicle_cargo",
	VariantVehicleBase:         "vehicle_base",
	VariantMonster:             "monster",
	VariantMonsterComponent:    "monster_component",
	VariantMonsterTied:         "monster_tied",
	VariantMonsterTack:         "monster_tack",
	VariantMonsterArmor:        "monster_armor",
	VariantMonsterStorage:      "monster_storage",
	VariantMonsterBattery:      "monster_battery",
	VariantContents:            "contents",
	VariantComponent:           "component",
}

// String returns the snake_case name of the variant.
func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return "unknown"
	}
	return variantNames[v]
}

// Where is the coarse location category reported to gameplay code.
type Where int

// Location categories. The numeric values are stable and used by saves.
const (
	WhereInvalid   Where = 0
	WhereCharacter Where = 1
	WhereMap       Where = 2
	WhereVehicle   Where = 3
	WhereContainer Where = 4
	WhereMonster   Where = 5
)

func (w Where) String() string {
	switch w {
	case WhereCharacter:
		return "character"
	case WhereMap:
		return "map"
	case WhereVehicle:
		return "vehicle"
	case WhereContainer:
		return "container"
	case WhereMonster:
		return "monster"
	default:
		return "invalid"
	}
}

// MonsterSlot names one of the single-item slots a monster carries.
type MonsterSlot int

// Monster slots.
const (
	SlotTied MonsterSlot = iota
	SlotTack
	SlotArmor
	SlotStorage
	SlotBattery
)

// MonsterSlots lists every slot in declaration order.
var MonsterSlots = []MonsterSlot{SlotTied, SlotTack, SlotArmor, SlotStorage, SlotBattery}

func (s MonsterSlot) String() string {
	switch s {
	case SlotTied:
		return "tied"
	case SlotTack:
		return "tack"
	case SlotArmor:
		return "armor"
	case SlotStorage:
		return "storage"
	case SlotBattery:
		return "battery"
	default:
		return "unknown"
	}
}

func (s MonsterSlot) variant() Variant {
	switch s {
	case SlotTied:
		return VariantMonsterTied
	case SlotTack:
		return VariantMonsterTack
	case SlotArmor:
		return VariantMonsterArmor
	case SlotStorage:
		return VariantMonsterStorage
	default:
		return VariantMonsterBattery
	}
}
