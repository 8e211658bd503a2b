package devops

import "fmt"

type Group struct {
	name string
}

// Opens a new collapsible group and pushes it on the printer's stack.
func (p *Printer) OpenGroup(name string) *Group {
	g := &Group{name: name}
	p.groups = append(p.groups, g)
	fmt.Fprintf(p.out, "##[group]%s\n", name)
	return g
}

// Closes g along with every group opened after it. DevOps groups do not nest,
// so closing an outer group pops the stack down to it. Closing a group that is
// no longer open does nothing.
func (p *Printer) CloseGroup(g *Group) {
	found := false
	for _, open := range p.groups {
		if open == g {
			found = true
			break
		}
	}
	if !found {
		return
	}

	for index := len(p.groups) - 1; index >= 0; index-- {
		last := p.groups[index]
		p.groups = p.groups[:index]
		fmt.Fprintln(p.out, "##[endgroup]")
		if last == g {
			break
		}
	}
}
