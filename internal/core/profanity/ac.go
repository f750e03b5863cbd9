package profanity

// automaton is a byte-level Aho-Corasick machine over the whitelist.
// Each node carries a full 256-way transition table so scanning never
// touches a map
type automaton struct {
	nodes []acNode
}

type acNode struct {
	next [256]int32 // -1 when absent
	fail int32
	out  []int // ids of the patterns ending here
}

func newNode() acNode {
	var n acNode
	for i := range n.next {
		n.next[i] = -1
	}
	return n
}

// buildAutomaton compiles patterns; a pattern's id is its index
func buildAutomaton(patterns []string) *automaton {
	a := &automaton{nodes: []acNode{newNode()}}
	for id, p := range patterns {
		a.insert(p, id)
	}
	a.link()
	return a
}

func (a *automaton) insert(p string, id int) {
	if p == "" {
		return
	}
	state := int32(0)
	for i := 0; i < len(p); i++ {
		b := p[i]
		nxt := a.nodes[state].next[b]
		if nxt == -1 {
			nxt = int32(len(a.nodes))
			a.nodes[state].next[b] = nxt
			a.nodes = append(a.nodes, newNode())
		}
		state = nxt
	}
	a.nodes[state].out = append(a.nodes[state].out, id)
}

// link computes failure links breadth first and folds outputs along them
func (a *automaton) link() {
	queue := make([]int32, 0, len(a.nodes))
	for b := 0; b < 256; b++ {
		if s := a.nodes[0].next[b]; s != -1 {
			a.nodes[s].fail = 0
			queue = append(queue, s)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		r := queue[qi]
		for b := 0; b < 256; b++ {
			s := a.nodes[r].next[b]
			if s == -1 {
				continue
			}
			queue = append(queue, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].next[b] == -1 {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].next[b]; nxt != -1 {
				a.nodes[s].fail = nxt
			} else {
				a.nodes[s].fail = 0
			}
			if fo := a.nodes[a.nodes[s].fail].out; len(fo) > 0 {
				a.nodes[s].out = append(a.nodes[s].out, fo...)
			}
		}
	}
}

// each calls fn(end, id) for every occurrence, overlapping ones included,
// in order of increasing end offset
func (a *automaton) each(text string, fn func(end, id int)) {
	state := int32(0)
	for i := 0; i < len(text); i++ {
		b := text[i]
		for state != 0 && a.nodes[state].next[b] == -1 {
			state = a.nodes[state].fail
		}
		if nxt := a.nodes[state].next[b]; nxt != -1 {
			state = nxt
		}
		for _, id := range a.nodes[state].out {
			fn(i+1, id)
		}
	}
}
