// Package alert คือ state machine แจ้งเตือน order ใหม่ฝั่ง admin:
// idle (เงียบ) ↔ ringing (เสียงซ้ำจนกว่า staff จะกดรับครบทุก order)
package alert

import (
	"sort"
	"sync"
	"time"
)

type State string

const (
	Idle    State = "idle"
	Ringing State = "ringing"
)

// Snapshot คือข้อมูลขั้นต่ำของ order ที่ machine ต้องใช้
type Snapshot struct {
	ID        string
	CreatedAt time.Time
}

// Machine เก็บสาม set:
//   - seen: id ทุกตัวจากรอบ fetch ก่อนหน้า (ไว้ diff หา order ใหม่)
//   - notified: id ที่เคยปลุกแล้ว ไม่ล้างทิ้ง กันปลุกซ้ำข้าม refetch
//   - unacked: id ที่ staff ยังไม่กดรับ, ไม่ว่างเมื่อไหร่ = ringing
//
// timer มี handle เดียวเสมอ และถูก Stop ก่อนแทนที่ทุกครั้ง
type Machine struct {
	mu sync.Mutex

	window    time.Duration // recency window: order เก่ากว่านี้ไม่ปลุก
	ringEvery time.Duration
	ring      func(unacked int)
	now       func() time.Time

	seen     map[string]struct{}
	notified map[string]struct{}
	unacked  map[string]struct{}

	timer  *time.Timer
	state  State
	primed bool // fetch รอบแรกแค่จำ id ไม่ปลุก (กันปลุกทั้ง history ตอนเปิดจอ)
}

func NewMachine(window, ringEvery time.Duration, ring func(unacked int)) *Machine {
	if ring == nil {
		ring = func(int) {}
	}
	return &Machine{
		window:    window,
		ringEvery: ringEvery,
		ring:      ring,
		now:       time.Now,
		seen:      make(map[string]struct{}),
		notified:  make(map[string]struct{}),
		unacked:   make(map[string]struct{}),
		state:     Idle,
	}
}

// Observe รับผล fetch หนึ่งรอบ คืนจำนวน order ที่เพิ่งปลุก
// order จะปลุกก็ต่อเมื่อ: ไม่เคยเห็น AND อยู่ใน recency window AND ไม่เคย notified
func (m *Machine) Observe(orders []Snapshot) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	fresh := 0
	if m.primed {
		for _, o := range orders {
			if _, ok := m.seen[o.ID]; ok {
				continue
			}
			if now.Sub(o.CreatedAt) > m.window {
				continue
			}
			if _, ok := m.notified[o.ID]; ok {
				continue
			}
			m.notified[o.ID] = struct{}{}
			m.unacked[o.ID] = struct{}{}
			fresh++
		}
	}

	next := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		next[o.ID] = struct{}{}
	}
	m.seen = next
	m.primed = true

	if fresh > 0 {
		m.startRingingLocked()
	}
	return fresh
}

// Accept เอา order ออกจาก unacked; ตัวสุดท้ายหลุดเมื่อไหร่หยุดเสียงทันที
func (m *Machine) Accept(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.unacked[id]; !ok {
		return false
	}
	delete(m.unacked, id)
	if len(m.unacked) == 0 {
		m.stopTimerLocked()
		m.state = Idle
	}
	return true
}

// Simulate ปลุกด้วย order ปลอม (ปุ่มทดสอบหน้า admin)
func (m *Machine) Simulate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notified[id] = struct{}{}
	m.unacked[id] = struct{}{}
	m.seen[id] = struct{}{}
	m.primed = true
	m.startRingingLocked()
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Unacknowledged() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.unacked))
	for id := range m.unacked {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Stop หยุด timer ตอน shutdown
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
	m.state = Idle
}

func (m *Machine) startRingingLocked() {
	m.state = Ringing
	m.ring(len(m.unacked))
	m.stopTimerLocked()
	m.timer = time.AfterFunc(m.ringEvery, m.ringLoop)
}

func (m *Machine) ringLoop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Ringing || len(m.unacked) == 0 {
		m.state = Idle
		return
	}
	m.ring(len(m.unacked))
	m.stopTimerLocked()
	m.timer = time.AfterFunc(m.ringEvery, m.ringLoop)
}

func (m *Machine) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
