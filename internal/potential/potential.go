package potential

import (
	"fmt"
	"sort"

	"github.com/san-kum/spectra/internal/bvp"
)

// Family names accepted by New.
const (
	FamilyBox          = "box"
	FamilySquareWell   = "square_well"
	FamilyHarmonic     = "harmonic"
	FamilyPoschlTeller = "poschl_teller"
	FamilyVolcano      = "volcano"
	FamilyDoubleWell   = "double_well"
	FamilyExpTail      = "exp_tail"
	FamilyDomainWall   = "domain_wall"
)

// New constructs a family member from its name and a parameter map.
// Unlisted parameters keep their family defaults; unknown names are
// rejected at construction time.
func New(family string, params map[string]float64) (bvp.Potential, error) {
	var p bvp.Potential
	switch family {
	case FamilyBox:
		p = Box{}
	case FamilySquareWell:
		p = NewSquareWell()
	case FamilyHarmonic:
		p = NewHarmonic()
	case FamilyPoschlTeller:
		p = NewPoschlTeller()
	case FamilyVolcano:
		p = NewVolcano()
	case FamilyDoubleWell:
		p = NewDoubleWell()
	case FamilyExpTail:
		p = NewExpTail()
	case FamilyDomainWall:
		p = NewDomainWall()
	default:
		return nil, fmt.Errorf("%w: %q", bvp.ErrUnknownFamily, family)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var err error
		p, err = p.WithParam(name, params[name])
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Families lists the accepted family names.
func Families() []string {
	return []string{
		FamilyBox,
		FamilySquareWell,
		FamilyHarmonic,
		FamilyPoschlTeller,
		FamilyVolcano,
		FamilyDoubleWell,
		FamilyExpTail,
		FamilyDomainWall,
	}
}

func unknownParam(family, name string) error {
	return fmt.Errorf("%w: %s has no parameter %q", bvp.ErrUnknownParam, family, name)
}
