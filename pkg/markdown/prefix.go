package markdown

import "strconv"

// Bullet is the prefix of unordered list items.
const Bullet = "•"

// ListPrefixes returns the item prefixes of a list with count items.
func ListPrefixes(ordered bool, start, count int) []string {
	prefixes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if ordered {
			prefixes = append(prefixes, strconv.Itoa(start+i)+".")
		} else {
			prefixes = append(prefixes, Bullet)
		}
	}
	return prefixes
}

// prefixGenerator hands out the prefixes of one list in document order.
type prefixGenerator struct {
	prefixes []string
	next     int
}

func newPrefixGenerator(n *Node) *prefixGenerator {
	start := 1
	if n.Ordered {
		start = n.Start
	}
	return &prefixGenerator{prefixes: ListPrefixes(n.Ordered, start, n.ItemCount)}
}

func (g *prefixGenerator) Next() (string, bool) {
	if g.next >= len(g.prefixes) {
		return "", false
	}
	p := g.prefixes[g.next]
	g.next++
	return p, true
}
