package runner

import (
	"jester/pkg/jester/core"
)

// ParsedSuite is a suite declaration split into its flat inline context and
// its named contexts, in declaration order.
type ParsedSuite struct {
	Description string

	// Tests, setup, teardown and strategy declared directly on the suite.
	Flat core.ContextDeclaration

	// Whether any TestEntry was present.
	HasFlat bool

	Contexts []core.NamedContext
}

// Parses a suite declaration once, before anything runs. Malformed
// declarations are reported as *core.UsageError.
func ParseSuite(description string, decl core.SuiteDeclaration) (*ParsedSuite, error) {
	parsed := &ParsedSuite{
		Description: description,
		Contexts:    make([]core.NamedContext, 0),
	}

	names := make(map[string]bool)
	for i, entry := range decl {
		switch e := entry.(type) {
		case core.NamedContext:
			if err := parsed.addContext(e, names); err != nil {
				return nil, err
			}
		case *core.NamedContext:
			if e == nil {
				return nil, core.NewUsageError("testing", "suite '%s' entry %d is nil", description, i)
			}
			if err := parsed.addContext(*e, names); err != nil {
				return nil, err
			}
		case core.TestEntry:
			if err := parsed.mergeFlat(e.Declaration); err != nil {
				return nil, err
			}
		case *core.TestEntry:
			if e == nil {
				return nil, core.NewUsageError("testing", "suite '%s' entry %d is nil", description, i)
			}
			if err := parsed.mergeFlat(e.Declaration); err != nil {
				return nil, err
			}
		default:
			return nil, core.NewUsageError("testing", "suite '%s' entry %d has unsupported type %T", description, i, entry)
		}
	}

	return parsed, nil
}

func (p *ParsedSuite) addContext(nc core.NamedContext, names map[string]bool) error {
	if nc.Name == "" {
		return core.NewUsageError("testing", "suite '%s' has a context without a name", p.Description)
	}

	if names[nc.Name] {
		return core.NewUsageError("testing", "context name '%s' is not unique in suite '%s'", nc.Name, p.Description)
	}

	if nc.Declaration.Tests == nil {
		return core.NewUsageError("testing", "context '%s' in suite '%s' is missing tests", nc.Name, p.Description)
	}

	if err := ValidateContext(nc.Name, &nc.Declaration); err != nil {
		return err
	}

	names[nc.Name] = true
	p.Contexts = append(p.Contexts, nc)
	return nil
}

// Merges a TestEntry into the flat context. Tests of several entries are
// concatenated; setup, teardown and strategy may only be declared once.
func (p *ParsedSuite) mergeFlat(decl core.ContextDeclaration) error {
	if err := ValidateContext(p.Description, &decl); err != nil {
		return err
	}

	if decl.Setup != nil {
		if p.Flat.Setup != nil {
			return core.NewUsageError("testing", "suite '%s' declares more than one inline setup", p.Description)
		}
		p.Flat.Setup = decl.Setup
	}

	if decl.Teardown != nil {
		if p.Flat.Teardown != nil {
			return core.NewUsageError("testing", "suite '%s' declares more than one inline teardown", p.Description)
		}
		p.Flat.Teardown = decl.Teardown
	}

	if decl.Strategy != "" {
		if p.Flat.Strategy != "" {
			return core.NewUsageError("testing", "suite '%s' declares more than one inline strategy", p.Description)
		}
		p.Flat.Strategy = decl.Strategy
	}

	if decl.Tests != nil {
		if p.Flat.Tests == nil {
			p.Flat.Tests = make([]core.TestCase, 0, len(decl.Tests))
		}
		p.Flat.Tests = append(p.Flat.Tests, decl.Tests...)
	}

	p.HasFlat = true
	return nil
}

// Whether the flat context runs. It is skipped only when named contexts exist
// and nothing declared a tests field directly on the suite; a suite with no
// named contexts always runs its flat context, even an empty one.
func (p *ParsedSuite) RunsFlat() bool {
	if len(p.Contexts) == 0 {
		return true
	}

	return p.Flat.Tests != nil
}

// Checks the test cases of a context declaration.
func ValidateContext(name string, decl *core.ContextDeclaration) error {
	for i, tc := range decl.Tests {
		if tc.How == nil {
			return core.NewUsageError("testing", "test %d ('%s') in context '%s' has no body", i, tc.What, name)
		}
	}

	return nil
}
