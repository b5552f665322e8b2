package entity

// transitionTable estado origen → estados destino permitidos.
type transitionTable map[string][]string

func (t transitionTable) allows(from, to string) bool {
	for _, s := range t[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (t transitionTable) known(status string) bool {
	if _, ok := t[status]; ok {
		return true
	}
	for _, targets := range t {
		for _, s := range targets {
			if s == status {
				return true
			}
		}
	}
	return false
}
