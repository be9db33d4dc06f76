package circuit

import "fmt"

// Link is a bus shared by every port on it.
type Link struct {
	width        int
	participants []*Port
}

// NewLink returns an empty link of the given width.
func NewLink(width int) *Link {
	return &Link{width: width}
}

// Width returns the bit width of the link.
func (l *Link) Width() int { return l.width }

// Len returns the number of participants.
func (l *Link) Len() int { return len(l.participants) }

// Participants returns a copy of the participant list.
func (l *Link) Participants() []*Port {
	out := make([]*Port, len(l.participants))
	copy(out, l.participants)
	return out
}

// Contains reports whether p is on the link.
func (l *Link) Contains(p *Port) bool {
	for _, q := range l.participants {
		if q == p {
			return true
		}
	}
	return false
}

// Join puts p on the link. A port already on another link must leave it first.
func (l *Link) Join(p *Port) error {
	if p.link == l {
		return nil
	}
	if p.link != nil {
		return fmt.Errorf("port %s is already on a link", p)
	}
	if p.Width != l.width {
		return fmt.Errorf("port %s has %d bits but the link carries %d", p, p.Width, l.width)
	}
	l.participants = append(l.participants, p)
	p.link = l
	touch(p)
	return nil
}

// Leave takes p off the link. It reports whether p was a participant.
func (l *Link) Leave(p *Port) bool {
	for i, q := range l.participants {
		if q == p {
			l.participants = append(l.participants[:i], l.participants[i+1:]...)
			p.link = nil
			touch(p)
			return true
		}
	}
	return false
}

func touch(p *Port) {
	if p.owner != nil && p.owner.board != nil {
		p.owner.board.version++
	}
}
