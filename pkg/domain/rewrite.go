package domain

// Rename is one entry of a bulk action relabeling.
type Rename struct {
	From string
	To   string
}

// StateRename is one entry of a bulk state relabeling.
type StateRename struct {
	From Label
	To   Label
}

// RewardFunc computes a reward contribution for an action.
type RewardFunc func(*Action) float64

// SetRewards overwrites the reward of every action with fn(action).
func (m *Model) SetRewards(fn RewardFunc) {
	m.Each(func(_ *State, a *Action) {
		a.Reward = fn(a)
	})
}

// AddRewards accumulates fn(action) into the reward of every action.
func (m *Model) AddRewards(fn RewardFunc) {
	m.Each(func(_ *State, a *Action) {
		a.Reward += fn(a)
	})
}

// RelabelActions renames action labels at every state.
// The rename is in place; when a new label collides with an existing one at
// the same state, the action visited later wins.
func (m *Model) RelabelActions(renames ...Rename) {
	table := make(map[string]string, len(renames))
	for _, r := range renames {
		table[r.From] = r.To
	}
	for _, s := range m.states {
		old := s.actions
		s.actions = make([]*Action, 0, len(old))
		s.index = make(map[string]int, len(old))
		for _, a := range old {
			if to, ok := table[a.Label]; ok {
				a.Label = to
			}
			if i, ok := s.index[a.Label]; ok {
				s.actions[i] = a
				continue
			}
			s.index[a.Label] = len(s.actions)
			s.actions = append(s.actions, a)
		}
	}
}

// RelabelStates renames the listed state labels; unlisted labels are kept.
func (m *Model) RelabelStates(renames ...StateRename) {
	table := make(map[Label]Label, len(renames))
	for _, r := range renames {
		table[r.From] = r.To
	}
	m.RelabelAllStates(func(l Label) Label {
		if to, ok := table[l]; ok {
			return to
		}
		return l
	})
}

// RelabelAllStates applies fn to every state label, to every measure target
// and to the goal set. The rename is in place and not transactional: when two
// states map to the same label, the state visited later wins.
func (m *Model) RelabelAllStates(fn RelabelFunc) {
	old := m.states
	m.states = make([]*State, 0, len(old))
	m.index = make(map[Label]int, len(old))
	for _, s := range old {
		s.Label = fn(s.Label)
		for _, a := range s.actions {
			a.State = s.Label
			measure := make(Measure, len(a.Measure))
			for _, t := range a.Measure.Labels() {
				measure[fn(t)] = a.Measure[t]
			}
			a.Measure = measure
		}
		if i, ok := m.index[s.Label]; ok {
			m.states[i] = s
			continue
		}
		m.index[s.Label] = len(m.states)
		m.states = append(m.states, s)
	}
	goals := make(map[Label]struct{}, len(m.goals))
	for g := range m.goals {
		goals[fn(g)] = struct{}{}
	}
	m.goals = goals
}

// RewardAction pays reward for actions labeled label and nothing otherwise.
func RewardAction(label string, reward float64) RewardFunc {
	return func(a *Action) float64 {
		if a.Label == label {
			return reward
		}
		return 0
	}
}

// PenalizeOtherActions charges penalty for every action not labeled label.
func PenalizeOtherActions(label string, penalty float64) RewardFunc {
	return func(a *Action) float64 {
		if a.Label != label {
			return -penalty
		}
		return 0
	}
}

// RewardReaching pays reward for actions that can reach target.
func RewardReaching(target Label, reward float64) RewardFunc {
	return func(a *Action) float64 {
		if a.Measure[target] > 0 {
			return reward
		}
		return 0
	}
}

// SumRewards composes reward functions by addition.
func SumRewards(fns ...RewardFunc) RewardFunc {
	return func(a *Action) float64 {
		total := 0.0
		for _, fn := range fns {
			total += fn(a)
		}
		return total
	}
}
