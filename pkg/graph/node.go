package graph

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// NodeKind enumerates the types of nodes in the composition graph.
type NodeKind int

const (
	NodeBox        NodeKind = iota // centred rectangular primitive
	NodeCylinder                   // centred Z-axis cylinder primitive
	NodeTranslate                  // placement by offset
	NodeRotate                     // placement by Euler angles
	NodeUnion                      // additive boolean
	NodeDifference                 // subtractive boolean
)

func (k NodeKind) String() string {
	switch k {
	case NodeBox:
		return "box"
	case NodeCylinder:
		return "cylinder"
	case NodeTranslate:
		return "translate"
	case NodeRotate:
		return "rotate"
	case NodeUnion:
		return "union"
	case NodeDifference:
		return "difference"
	default:
		return "unknown"
	}
}

// IsPrimitive reports whether nodes of this kind are leaves.
func (k NodeKind) IsPrimitive() bool {
	return k == NodeBox || k == NodeCylinder
}

// arity is the number of children a node of this kind takes.
func (k NodeKind) arity() int {
	switch k {
	case NodeBox, NodeCylinder:
		return 0
	case NodeTranslate, NodeRotate:
		return 1
	default:
		return 2
	}
}

// NodeID is the SHA-256 content hash of a node's kind, name, payload and
// children.
type NodeID [sha256.Size]byte

// IsZero reports whether the ID is unset.
func (id NodeID) IsZero() bool { return id == NodeID{} }

// String returns the full hex digest.
func (id NodeID) String() string { return hex.EncodeToString(id[:]) }

// Short returns the first eight hex characters, for diagnostics.
func (id NodeID) Short() string { return hex.EncodeToString(id[:4]) }

// MarshalText encodes the ID as hex so it can key JSON objects.
func (id NodeID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

// Node is one element of the composition graph.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data,omitempty"`
	Bounds   Bounds   `json:"bounds"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
	hash(h *hasher)
}

// hasher feeds a canonical encoding of a node into SHA-256.
type hasher struct {
	buf []byte
}

func (h *hasher) float(v float64) {
	h.buf = binary.LittleEndian.AppendUint64(h.buf, math.Float64bits(v))
}

func (h *hasher) int(v int) {
	h.buf = binary.LittleEndian.AppendUint64(h.buf, uint64(v))
}

func (h *hasher) string(s string) {
	h.int(len(s))
	h.buf = append(h.buf, s...)
}

func (h *hasher) vec(v Vec3) {
	h.float(v.X)
	h.float(v.Y)
	h.float(v.Z)
}

// contentID computes the ID a node with these fields would have.
func contentID(kind NodeKind, name string, data NodeData, children []NodeID) NodeID {
	h := &hasher{}
	h.int(int(kind))
	h.string(name)
	if data != nil {
		data.hash(h)
	}
	h.int(len(children))
	for _, c := range children {
		h.buf = append(h.buf, c[:]...)
	}
	return sha256.Sum256(h.buf)
}
