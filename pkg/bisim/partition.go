package bisim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// Block is a sorted set of state labels.
type Block []domain.Label

// Representative returns the smallest label of the block.
func (b Block) Representative() domain.Label {
	return b[0]
}

func (b Block) String() string {
	parts := make([]string, len(b))
	for i, l := range b {
		parts[i] = l.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Partition is a canonical set of disjoint blocks.
type Partition struct {
	blocks []Block
	index  map[domain.Label]int
}

// NewPartition canonicalizes groups into a partition. Groups must be
// non-empty and disjoint.
func NewPartition(groups [][]domain.Label) (*Partition, error) {
	p := &Partition{index: make(map[domain.Label]int)}
	for _, g := range groups {
		if len(g) == 0 {
			return nil, fmt.Errorf("empty block")
		}
		b := append(Block(nil), g...)
		domain.SortLabels(b)
		p.blocks = append(p.blocks, b)
	}
	sort.Slice(p.blocks, func(i, j int) bool {
		return p.blocks[i][0] < p.blocks[j][0]
	})
	for i, b := range p.blocks {
		for _, l := range b {
			if _, dup := p.index[l]; dup {
				return nil, fmt.Errorf("label %s in two blocks", l)
			}
			p.index[l] = i
		}
	}
	return p, nil
}

// Blocks returns the blocks in canonical order.
func (p *Partition) Blocks() []Block { return p.blocks }

// Len returns the number of blocks.
func (p *Partition) Len() int { return len(p.blocks) }

// Block returns block i.
func (p *Partition) Block(i int) Block { return p.blocks[i] }

// BlockOf returns the index of the block containing l.
func (p *Partition) BlockOf(l domain.Label) (int, bool) {
	i, ok := p.index[l]
	return i, ok
}

// Covers reports whether every state of m is in exactly one block and the
// partition holds no other label.
func (p *Partition) Covers(m *domain.Model) bool {
	if len(p.index) != m.Len() {
		return false
	}
	for _, l := range m.Labels() {
		if _, ok := p.index[l]; !ok {
			return false
		}
	}
	return true
}

func (p *Partition) String() string {
	parts := make([]string, len(p.blocks))
	for i, b := range p.blocks {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}
