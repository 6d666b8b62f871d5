package grammar

type Classification int

// Ordered by Chomsky type number: Unrestricted is Type-0, Regular is Type-3.
const (
	Unrestricted Classification = iota
	ContextSensitive
	ContextFree
	Regular
)

func (c Classification) String() string {
	switch c {
	case Unrestricted:
		return "unrestricted"
	case ContextSensitive:
		return "context-sensitive"
	case ContextFree:
		return "context-free"
	case Regular:
		return "regular"
	}
	return "unknown"
}

// Type is the Chomsky type number (0-3).
func (c Classification) Type() int { return int(c) }

// Abbrev is the customary short name: PSG, CSG, CFG or RG.
func (c Classification) Abbrev() string {
	switch c {
	case Unrestricted:
		return "PSG"
	case ContextSensitive:
		return "CSG"
	case ContextFree:
		return "CFG"
	case Regular:
		return "RG"
	}
	return "?"
}

// Classify places g in the Chomsky hierarchy.
//
// Every left side must contain a non-terminal. When all left sides are a
// single letter the grammar is regular if it is entirely left-linear or
// entirely right-linear, and context-free otherwise. Longer left sides give
// context-sensitive when no right side is empty, unrestricted otherwise.
func Classify(g *Grammar) (Classification, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	for i := range g.Producers {
		p := g.Producers[i]
		if !hasNonTerminal(p.Left) {
			return 0, &Error{Kind: ErrNoNonTerminal, Producer: &p}
		}
	}

	if all(g.Producers, func(p Producer) bool { return len(p.Left) == 1 }) {
		if all(g.Producers, linear(0)) {
			return Regular, nil
		}
		if all(g.Producers, linear(1)) {
			return Regular, nil
		}
		return ContextFree, nil
	}

	if all(g.Producers, func(p Producer) bool { return len(p.Right) > 0 }) {
		return ContextSensitive, nil
	}
	return Unrestricted, nil
}

// linear accepts right sides of one letter, or of two letters with a
// terminal at index term.
func linear(term int) func(Producer) bool {
	return func(p Producer) bool {
		return len(p.Right) == 1 || (len(p.Right) == 2 && p.Right[term].IsTerminal())
	}
}

func hasNonTerminal(ls []Letter) bool {
	for _, l := range ls {
		if !l.IsTerminal() {
			return true
		}
	}
	return false
}

func all(ps []Producer, pred func(Producer) bool) bool {
	for _, p := range ps {
		if !pred(p) {
			return false
		}
	}
	return true
}
