// Package signal provides synchronous change notification with owned
// subscriptions. A Signal is used from one goroutine only.
package signal

type slot struct {
	id int
	fn func()
}

type Signal struct {
	nextID int
	slots  []slot
}

// Conn is the handle of one subscription. The zero Conn is disconnected.
type Conn struct {
	sig *Signal
	id  int
}

func (s *Signal) Connect(fn func()) Conn {
	if s == nil || fn == nil {
		return Conn{}
	}
	s.nextID++
	s.slots = append(s.slots, slot{id: s.nextID, fn: fn})
	return Conn{sig: s, id: s.nextID}
}

// Emit calls every connected function. Functions connected or
// disconnected while emitting take effect from the next Emit, except that a
// function disconnected mid-emission is not called afterwards.
func (s *Signal) Emit() {
	if s == nil || len(s.slots) == 0 {
		return
	}
	snapshot := append([]slot(nil), s.slots...)
	for _, sl := range snapshot {
		if s.connected(sl.id) {
			sl.fn()
		}
	}
}

func (s *Signal) NumConnections() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}

func (s *Signal) connected(id int) bool {
	for _, sl := range s.slots {
		if sl.id == id {
			return true
		}
	}
	return false
}

func (s *Signal) remove(id int) {
	for i, sl := range s.slots {
		if sl.id == id {
			s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
			return
		}
	}
}

func (c *Conn) Disconnect() {
	if c.sig != nil {
		c.sig.remove(c.id)
	}
	*c = Conn{}
}

func (c Conn) Connected() bool {
	return c.sig != nil && c.sig.connected(c.id)
}

// Group owns several connections released together.
type Group struct {
	conns []Conn
}

func (g *Group) Add(c Conn) {
	g.conns = append(g.conns, c)
}

func (g *Group) Empty() bool { return len(g.conns) == 0 }

func (g *Group) DisconnectAll() {
	for i := range g.conns {
		g.conns[i].Disconnect()
	}
	g.conns = nil
}
