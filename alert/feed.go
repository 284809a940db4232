package alert

import (
	"context"
	"log"
	"time"
)

// Feed ป้อน order เข้า Machine จากสองทาง: poll ตามรอบ + kick จาก webhook
// สองทางวิ่งชน routine เดียวกันได้ ผลซ้ำโดน notified set กรองอยู่แล้ว
type Feed struct {
	Machine  *Machine
	Fetch    func() ([]Snapshot, error)
	Interval time.Duration

	kick chan struct{}
}

func NewFeed(m *Machine, fetch func() ([]Snapshot, error), interval time.Duration) *Feed {
	return &Feed{
		Machine:  m,
		Fetch:    fetch,
		Interval: interval,
		kick:     make(chan struct{}, 1),
	}
}

// Kick สะกิดให้ refetch ทันที (non-blocking; รอบที่ค้างอยู่ถือว่าพอ)
func (f *Feed) Kick() {
	select {
	case f.kick <- struct{}{}:
	default:
	}
}

// Run วนจนกว่า ctx ถูก cancel แล้วหยุด timer ของ machine ให้ด้วย
func (f *Feed) Run(ctx context.Context) {
	f.poll()

	ticker := time.NewTicker(f.Interval)
	defer ticker.Stop()
	defer f.Machine.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.poll()
		case <-f.kick:
			f.poll()
		}
	}
}

func (f *Feed) poll() {
	orders, err := f.Fetch()
	if err != nil {
		log.Printf("alert feed: fetch failed: %v", err)
		return
	}
	f.Machine.Observe(orders)
}
