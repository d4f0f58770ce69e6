package net

import (
	"errors"
	"fmt"

	"ShapeBoard/internal/board"
	"ShapeBoard/internal/shape"
)

type MessageType string

const (
	TypeAdd      MessageType = "add"
	TypeCut      MessageType = "cut"
	TypeUpdate   MessageType = "update"
	TypeSnapshot MessageType = "snapshot"
)

var ErrBadMessage = errors.New("bad message")

// Message is one board operation on the wire. Shapes travel as records of
// the save-file format so both sides share one codec.
type Message struct {
	Type    MessageType `json:"type"`
	Records []string    `json:"records,omitempty"`
	Rect    *shape.Rect `json:"rect,omitempty"`
}

func AddMessage(s *shape.Shape) Message {
	return Message{Type: TypeAdd, Records: []string{shape.EncodeRecord(s)}}
}

// UpdateMessage carries shapes edited in place; peers overwrite their copy
// by ID.
func UpdateMessage(shapes []*shape.Shape) Message {
	m := SnapshotMessage(shapes)
	m.Type = TypeUpdate
	return m
}

func CutMessage(r shape.Rect) Message {
	return Message{Type: TypeCut, Rect: &r}
}

// SnapshotMessage carries the whole list, hidden shapes included, so that
// cuts survive the trip.
func SnapshotMessage(shapes []*shape.Shape) Message {
	m := Message{Type: TypeSnapshot, Records: make([]string, 0, len(shapes))}
	for _, s := range shapes {
		m.Records = append(m.Records, shape.EncodeRecord(s))
	}
	return m
}

func (m Message) Validate() error {
	switch m.Type {
	case TypeAdd:
		if len(m.Records) != 1 {
			return fmt.Errorf("add with %d records: %w", len(m.Records), ErrBadMessage)
		}
	case TypeUpdate:
		if len(m.Records) == 0 {
			return fmt.Errorf("update without records: %w", ErrBadMessage)
		}
	case TypeCut:
		if m.Rect == nil {
			return fmt.Errorf("cut without rect: %w", ErrBadMessage)
		}
	case TypeSnapshot:
	default:
		return fmt.Errorf("type %q: %w", m.Type, ErrBadMessage)
	}
	return nil
}

// Shapes decodes the records of an add or snapshot message.
func (m Message) Shapes() ([]*shape.Shape, error) {
	out := make([]*shape.Shape, 0, len(m.Records))
	for i, rec := range m.Records {
		s, err := shape.DecodeRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %v: %w", i, err, ErrBadMessage)
		}
		out = append(out, s)
	}
	return out, nil
}

// Apply performs a peer's operation on b. It must run on the thread that
// owns the board.
func Apply(b *board.Board, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	switch m.Type {
	case TypeCut:
		b.CutRemote(*m.Rect)
		return nil
	}

	shapes, err := m.Shapes()
	if err != nil {
		return err
	}
	switch m.Type {
	case TypeSnapshot:
		b.Replace(shapes)
	case TypeUpdate:
		for _, s := range shapes {
			if err := b.UpdateRemote(s); err != nil {
				return err
			}
		}
	default:
		for _, s := range shapes {
			b.AddRemote(s)
		}
	}
	return nil
}
