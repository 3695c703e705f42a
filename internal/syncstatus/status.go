// Package syncstatus tracks which blocks the wallet has processed, as a
// dense tail of recent hashes plus sparse long-range checkpoints.
package syncstatus

import (
	"encoding/json"

	"github.com/goodnatureofminers/walletsync7000-backend/internal/crypto"
)

const (
	// RecentHashCount is the dense tail length submitted to the node so it
	// can find the most recent common ancestor after a shallow fork.
	RecentHashCount = 100

	// CheckpointInterval is the spacing of sparse checkpoints, covering
	// deep rescans.
	CheckpointInterval = 5000
)

type entry struct {
	height uint64
	hash   crypto.Hash
}

// Status is the (height, hash) log of processed blocks. Not safe for
// concurrent use; the owner serializes access.
type Status struct {
	lastKnownHeight uint64

	// Most recent first.
	recent      []entry
	checkpoints []entry
}

// New returns an empty status.
func New() *Status {
	return &Status{}
}

// NewAt returns a status positioned just below startHeight with no history,
// as used after a reset.
func NewAt(startHeight uint64) *Status {
	s := &Status{}
	if startHeight > 0 {
		s.lastKnownHeight = startHeight - 1
	}
	return s
}

// Height returns the height of the most recently stored block.
func (s *Status) Height() uint64 {
	return s.lastKnownHeight
}

// TopHash returns the most recently stored hash, if any.
func (s *Status) TopHash() (crypto.Hash, bool) {
	if len(s.recent) == 0 {
		return crypto.Hash{}, false
	}
	return s.recent[0].hash, true
}

// StoreHash records a processed block. Storing a height at or below the
// current top truncates the history above it first, which is how fork
// replacements keep hashes strictly monotonic.
func (s *Status) StoreHash(height uint64, hash crypto.Hash) {
	if len(s.recent) > 0 && height <= s.lastKnownHeight {
		s.truncate(height)
	}

	s.recent = append([]entry{{height: height, hash: hash}}, s.recent...)
	if len(s.recent) > RecentHashCount {
		s.recent = s.recent[:RecentHashCount]
	}

	if height%CheckpointInterval == 0 {
		s.checkpoints = append([]entry{{height: height, hash: hash}}, s.checkpoints...)
	}

	s.lastKnownHeight = height
}

// Rewind drops all history at or above height and repositions just below it.
func (s *Status) Rewind(height uint64) {
	s.truncate(height)
	if height > 0 {
		s.lastKnownHeight = height - 1
	} else {
		s.lastKnownHeight = 0
	}
	if top := s.topRemaining(); top > s.lastKnownHeight {
		s.lastKnownHeight = top
	}
}

func (s *Status) truncate(height uint64) {
	for len(s.recent) > 0 && s.recent[0].height >= height {
		s.recent = s.recent[1:]
	}
	for len(s.checkpoints) > 0 && s.checkpoints[0].height >= height {
		s.checkpoints = s.checkpoints[1:]
	}
}

func (s *Status) topRemaining() uint64 {
	if len(s.recent) > 0 {
		return s.recent[0].height
	}
	return 0
}

// Checkpoints returns the dense recent hashes followed by the sparse
// checkpoints, most recent first, for submission to the node.
func (s *Status) Checkpoints() []crypto.Hash {
	out := make([]crypto.Hash, 0, len(s.recent)+len(s.checkpoints))
	for _, e := range s.recent {
		out = append(out, e.hash)
	}
	for _, e := range s.checkpoints {
		out = append(out, e.hash)
	}
	return out
}

type statusJSON struct {
	LastKnownBlockHashes []crypto.Hash `json:"lastKnownBlockHashes"`
	LastKnownBlockHeight uint64        `json:"lastKnownBlockHeight"`
	BlockHashCheckpoints []crypto.Hash `json:"blockHashCheckpoints"`
}

type statusHeightsJSON struct {
	LastKnownBlockHeights []uint64 `json:"lastKnownBlockHeights"`
	CheckpointHeights     []uint64 `json:"blockHashCheckpointHeights"`
}

// MarshalJSON writes the persisted schema. Heights ride alongside in
// auxiliary fields so a reloaded status can keep truncating on forks.
func (s *Status) MarshalJSON() ([]byte, error) {
	doc := struct {
		statusJSON
		statusHeightsJSON
	}{}
	doc.LastKnownBlockHeight = s.lastKnownHeight
	for _, e := range s.recent {
		doc.LastKnownBlockHashes = append(doc.LastKnownBlockHashes, e.hash)
		doc.LastKnownBlockHeights = append(doc.LastKnownBlockHeights, e.height)
	}
	for _, e := range s.checkpoints {
		doc.BlockHashCheckpoints = append(doc.BlockHashCheckpoints, e.hash)
		doc.CheckpointHeights = append(doc.CheckpointHeights, e.height)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores the persisted schema. Files written without the
// auxiliary height fields reconstruct heights by counting down from the top.
func (s *Status) UnmarshalJSON(data []byte) error {
	doc := struct {
		statusJSON
		statusHeightsJSON
	}{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	s.lastKnownHeight = doc.LastKnownBlockHeight
	s.recent = nil
	s.checkpoints = nil

	for i, h := range doc.LastKnownBlockHashes {
		height := uint64(0)
		if i < len(doc.LastKnownBlockHeights) {
			height = doc.LastKnownBlockHeights[i]
		} else if doc.LastKnownBlockHeight >= uint64(i) {
			height = doc.LastKnownBlockHeight - uint64(i)
		}
		s.recent = append(s.recent, entry{height: height, hash: h})
	}
	for i, h := range doc.BlockHashCheckpoints {
		height := uint64(0)
		if i < len(doc.CheckpointHeights) {
			height = doc.CheckpointHeights[i]
		}
		s.checkpoints = append(s.checkpoints, entry{height: height, hash: h})
	}
	return nil
}
