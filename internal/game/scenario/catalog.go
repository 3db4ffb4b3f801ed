package scenario

import (
	"fmt"

	"github.com/mitchelldurbincs/SkirmishMinimax/internal/game/core"
)

// Template holds the static combat stats shared by every unit of one type
type Template struct {
	MaxHP          int `yaml:"max_hp"`
	Range          int `yaml:"range"`
	BasicDamage    int `yaml:"basic_damage"`
	PiercingDamage int `yaml:"piercing_damage"`
	Armor          int `yaml:"armor"`
}

// Validate reports an error if the template cannot describe a living unit
func (t Template) Validate() error {
	if t.MaxHP <= 0 {
		return fmt.Errorf("max_hp must be > 0, got %d", t.MaxHP)
	}
	if t.Range < 1 {
		return fmt.Errorf("range must be >= 1, got %d", t.Range)
	}
	if t.BasicDamage < 0 || t.PiercingDamage < 0 || t.Armor < 0 {
		return fmt.Errorf("damage and armor must be non-negative")
	}
	return nil
}

// Catalog maps a unit type name to its template
type Catalog map[string]Template

// DefaultCatalog returns the footman and archer templates
func DefaultCatalog() Catalog {
	return Catalog{
		"footman": {MaxHP: 100, Range: 1, BasicDamage: 6, Armor: 1},
		"archer":  {MaxHP: 50, Range: 3, BasicDamage: 3, PiercingDamage: 1},
	}
}

// Merge returns a new catalog holding c's entries overridden by other's
func (c Catalog) Merge(other Catalog) Catalog {
	out := make(Catalog, len(c)+len(other))
	for name, t := range c {
		out[name] = t
	}
	for name, t := range other {
		out[name] = t
	}
	return out
}

// Validate checks every template in the catalog
func (c Catalog) Validate() error {
	for name, t := range c {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("unit template %q: %w", name, err)
		}
	}
	return nil
}

// Unit instantiates a unit of the named type, or returns ErrMissingTemplate
func (c Catalog) Unit(unitType string, id int, side core.Side, pos core.Coordinate, hp int) (core.CombatUnit, error) {
	t, ok := c[unitType]
	if !ok {
		return core.CombatUnit{}, fmt.Errorf("%w: %q", core.ErrMissingTemplate, unitType)
	}
	return core.CombatUnit{
		ID:             id,
		Side:           side,
		Type:           unitType,
		Pos:            pos,
		HP:             hp,
		MaxHP:          t.MaxHP,
		Range:          t.Range,
		BasicDamage:    t.BasicDamage,
		PiercingDamage: t.PiercingDamage,
		Armor:          t.Armor,
	}, nil
}
