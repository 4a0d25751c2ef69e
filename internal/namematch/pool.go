package namematch

// PlayerRef is one unresolved player in the live pool.
type PlayerRef struct {
	ID          string
	DisplayName string
	Signature   NameSignature
}

// PhotoCandidate is one unresolved photo in the live pool.
type PhotoCandidate struct {
	ID          string
	DisplayName string
	ExternalID  string
	Signature   NameSignature
}

// NewPlayerRef builds a player ref with its derived signature.
func NewPlayerRef(id, displayName string) PlayerRef {
	return PlayerRef{ID: id, DisplayName: displayName, Signature: Normalize(displayName)}
}

// NewPhotoCandidate builds a photo candidate with its derived signature.
func NewPhotoCandidate(id, displayName, externalID string) PhotoCandidate {
	return PhotoCandidate{ID: id, DisplayName: displayName, ExternalID: externalID, Signature: Normalize(displayName)}
}

// pool owns the two live pools for the duration of one run. Entries keep
// their stable input order; removal happens exactly once, at acceptance.
// Nothing outside the matcher mutates a pool mid-run.
type pool struct {
	players    []PlayerRef
	candidates []PhotoCandidate
}

func newPool(players []PlayerRef, candidates []PhotoCandidate) *pool {
	p := &pool{
		players:    make([]PlayerRef, len(players)),
		candidates: make([]PhotoCandidate, len(candidates)),
	}
	copy(p.players, players)
	copy(p.candidates, candidates)
	return p
}

func (p *pool) removePlayer(id string) {
	for i, pl := range p.players {
		if pl.ID == id {
			p.players = append(p.players[:i], p.players[i+1:]...)
			return
		}
	}
}

func (p *pool) removeCandidate(id string) {
	for i, c := range p.candidates {
		if c.ID == id {
			p.candidates = append(p.candidates[:i], p.candidates[i+1:]...)
			return
		}
	}
}

func (p *pool) hasCandidate(id string) bool {
	for _, c := range p.candidates {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (p *pool) drained() bool {
	return len(p.players) == 0 || len(p.candidates) == 0
}
