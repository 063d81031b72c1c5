package trie

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/bytefmt"
	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/vmihailenco/msgpack/v5"
)

// Model files start with a fixed header so Load can reject foreign or
// truncated files before touching the payload:
//
//	bytes 0-3  magic "RSTM"
//	byte  4    format version
//	bytes 5-8  payload length, little-endian uint32
//
// The payload is a msgpack-encoded flat node table. A flat table keeps
// encoding iterative; the node graph can be deep and a recursive encoding
// of long sentences would be stack-bound.
var modelMagic = [4]byte{'R', 'S', 'T', 'M'}

const modelVersion byte = 1

const headerSize = 9

type snapshotNode struct {
	// Children maps a single-rune edge label to the child's index in the
	// node table.
	Children    map[string]uint32 `msgpack:"c,omitempty"`
	Terminal    bool              `msgpack:"t,omitempty"`
	Completions map[string]int    `msgpack:"s,omitempty"`
}

type snapshot struct {
	MaxSuggestions  int            `msgpack:"max"`
	MinWordsPartial int            `msgpack:"min"`
	Nodes           []snapshotNode `msgpack:"n"`
}

// Save serializes the trie to path. The write is all-or-nothing: the blob is
// staged next to the destination and renamed into place, and a lock file
// serializes concurrent writers of the same model.
func Save(t *Trie, path string) error {
	payload, err := msgpack.Marshal(flatten(t))
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(modelMagic[:])
	buf.WriteByte(modelVersion)
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(payload))); err != nil {
		return fmt.Errorf("writing model header: %w", err)
	}
	buf.Write(payload)

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking model file %s: %w", path, err)
	}
	defer lock.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing model file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing model file %s: %w", path, err)
	}

	log.Debugf("Saved model to %s (%s, %d nodes)",
		filepath.Clean(path), bytefmt.ByteSize(uint64(buf.Len())), t.nodeCount)
	return nil
}

// Load reconstructs a trie saved by Save. Any structural problem with the
// file surfaces as ErrCorruptData; the caller decides whether to rebuild.
func Load(path string) (*Trie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file %s: %w", path, err)
	}
	if len(data) < headerSize {
		return nil, errCorruptf("file %s is %d bytes, smaller than the header", path, len(data))
	}
	if !bytes.Equal(data[:4], modelMagic[:]) {
		return nil, errCorruptf("file %s has no model magic", path)
	}
	if data[4] != modelVersion {
		return nil, errCorruptf("file %s has unsupported format version %d", path, data[4])
	}
	payloadLen := binary.LittleEndian.Uint32(data[5:9])
	if int(payloadLen) != len(data)-headerSize {
		return nil, errCorruptf("file %s payload is %d bytes, header declares %d",
			path, len(data)-headerSize, payloadLen)
	}

	var snap snapshot
	if err := msgpack.Unmarshal(data[headerSize:], &snap); err != nil {
		return nil, errCorruptf("decoding %s: %v", path, err)
	}

	t, err := restore(&snap)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded model from %s (%s, %d nodes, max_suggestions=%d, min_words_partial=%d)",
		filepath.Clean(path), bytefmt.ByteSize(uint64(len(data))), t.nodeCount,
		t.maxSuggestions, t.minWordsPartial)
	return t, nil
}

// flatten walks the node graph breadth-first into a table. Index 0 is the
// root; every child index is strictly greater than its parent's.
func flatten(t *Trie) *snapshot {
	snap := &snapshot{
		MaxSuggestions:  t.maxSuggestions,
		MinWordsPartial: t.minWordsPartial,
		Nodes:           make([]snapshotNode, 0, t.nodeCount),
	}
	queue := []*node{t.root}
	index := uint32(0)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		sn := snapshotNode{Terminal: cur.terminal}
		if len(cur.completions) > 0 {
			sn.Completions = cur.completions
		}
		if len(cur.children) > 0 {
			sn.Children = make(map[string]uint32, len(cur.children))
			for r, child := range cur.children {
				index++
				sn.Children[string(r)] = index
				queue = append(queue, child)
			}
		}
		snap.Nodes = append(snap.Nodes, sn)
	}
	return snap
}

// restore rebuilds the node graph from a decoded table, validating that the
// table still describes a tree: in-range references, single-rune edge
// labels, and no node claimed by two parents.
func restore(snap *snapshot) (*Trie, error) {
	if snap.MaxSuggestions < 1 || snap.MinWordsPartial < 1 {
		return nil, errCorruptf("configuration scalars out of range (max_suggestions=%d, min_words_partial=%d)",
			snap.MaxSuggestions, snap.MinWordsPartial)
	}
	if len(snap.Nodes) == 0 {
		return nil, errCorruptf("node table is empty")
	}

	nodes := make([]*node, len(snap.Nodes))
	for i := range nodes {
		nodes[i] = newNode()
	}
	claimed := make([]bool, len(snap.Nodes))
	for i, sn := range snap.Nodes {
		nodes[i].terminal = sn.Terminal
		if len(sn.Completions) > 0 {
			nodes[i].completions = make(map[string]int, len(sn.Completions))
			for phrase, count := range sn.Completions {
				if count < 1 {
					return nil, errCorruptf("node %d has non-positive count %d for %q", i, count, phrase)
				}
				nodes[i].completions[phrase] = count
			}
		}
		for label, childIdx := range sn.Children {
			runes := []rune(label)
			if len(runes) != 1 {
				return nil, errCorruptf("node %d has edge label %q, want a single rune", i, label)
			}
			if int(childIdx) <= i || int(childIdx) >= len(snap.Nodes) {
				return nil, errCorruptf("node %d references child %d outside the table", i, childIdx)
			}
			if claimed[childIdx] {
				return nil, errCorruptf("node %d is claimed by two parents", childIdx)
			}
			claimed[childIdx] = true
			nodes[i].children[runes[0]] = nodes[childIdx]
		}
	}
	for i := 1; i < len(claimed); i++ {
		if !claimed[i] {
			return nil, errCorruptf("node %d is unreachable from the root", i)
		}
	}

	return &Trie{
		root:            nodes[0],
		maxSuggestions:  snap.MaxSuggestions,
		minWordsPartial: snap.MinWordsPartial,
		nodeCount:       len(nodes),
	}, nil
}
