package bisim

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// SignatureEntry is the block-mass vector of one action.
type SignatureEntry struct {
	Action string
	Mass   []float64 // indexed by block, in partition order
	Reward float64   // only compared when reward sensitive
}

// Signature is the per-action block-mass profile of a state, sorted by action label.
type Signature struct {
	Entries         []SignatureEntry
	rewardSensitive bool
	tolerance       float64
}

// SignatureOf computes the signature of s against p.
// Targets outside the partition carry no mass.
func SignatureOf(s *domain.State, p *Partition, opts ...Option) Signature {
	c := newConfig(opts)
	return signatureOf(s, p, c)
}

func signatureOf(s *domain.State, p *Partition, c *config) Signature {
	sig := Signature{rewardSensitive: c.rewardSensitive, tolerance: c.tolerance}
	for _, a := range s.Actions() {
		mass := make([]float64, p.Len())
		for _, t := range a.Measure.Labels() {
			if i, ok := p.BlockOf(t); ok {
				mass[i] += a.Measure[t]
			}
		}
		sig.Entries = append(sig.Entries, SignatureEntry{Action: a.Label, Mass: mass, Reward: a.Reward})
	}
	sort.Slice(sig.Entries, func(i, j int) bool {
		return sig.Entries[i].Action < sig.Entries[j].Action
	})
	return sig
}

// Key is a canonical string form: equal keys mean identical signatures.
func (s Signature) Key() string {
	var sb strings.Builder
	for _, e := range s.Entries {
		sb.WriteString(strconv.Quote(e.Action))
		sb.WriteByte(':')
		for i, w := range e.Mass {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatFloat(w, 'g', -1, 64))
		}
		if s.rewardSensitive {
			sb.WriteString("|r=")
			sb.WriteString(strconv.FormatFloat(e.Reward, 'g', -1, 64))
		}
		sb.WriteByte(';')
	}
	return sb.String()
}

// Within reports whether s and other list the same actions and every block
// mass differs by at most the tolerance s was computed with. Rewards are
// compared the same way when s is reward sensitive.
func (s Signature) Within(other Signature) bool {
	if len(s.Entries) != len(other.Entries) {
		return false
	}
	for i, e := range s.Entries {
		o := other.Entries[i]
		if e.Action != o.Action || len(e.Mass) != len(o.Mass) {
			return false
		}
		for j, w := range e.Mass {
			if math.Abs(w-o.Mass[j]) > s.tolerance {
				return false
			}
		}
		if s.rewardSensitive && math.Abs(e.Reward-o.Reward) > s.tolerance {
			return false
		}
	}
	return true
}

// actionSetKey identifies the sorted action label set of s.
func actionSetKey(s *domain.State) string {
	labels := s.ActionLabels()
	sort.Strings(labels)
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = strconv.Quote(l)
	}
	return strings.Join(quoted, ",")
}
