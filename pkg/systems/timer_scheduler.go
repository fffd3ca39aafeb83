package systems

import (
	"log"
	"time"
)

// TimerHandle 定时器句柄
// 零值是无效句柄，对其调用 Cancel 是空操作
type TimerHandle struct {
	id uint64
}

// Valid 句柄是否由 Schedule 分配
func (h TimerHandle) Valid() bool {
	return h.id != 0
}

type timerEntry struct {
	id       uint64
	due      time.Duration
	callback func()
}

// TimerScheduler 协作式定时器调度器
//
// 调度器持有一个虚拟时钟，由宿主循环通过 Update(dt) 推进，不创建任何 goroutine。
// 每个页面实例构造并拥有自己的调度器，通过依赖注入传给叙事系统，
// 多个页面（或测试）之间互不干扰。
//
// 保证：
//   - 已取消的句柄其回调永远不会执行
//   - 到期定时器按（到期时间，调度顺序）依次触发
//   - 回调中新调度的定时器若在本次推进范围内到期，也会在本次推进中触发
type TimerScheduler struct {
	now     time.Duration
	nextID  uint64
	pending map[uint64]*timerEntry
	closed  bool
}

// NewTimerScheduler 创建调度器，虚拟时钟从 0 开始
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		pending: make(map[uint64]*timerEntry),
	}
}

// Now 返回虚拟时钟的当前时间
func (s *TimerScheduler) Now() time.Duration {
	return s.now
}

// Schedule 在 delay 之后执行 callback
// 负的 delay 视为 0；调度器关闭后返回无效句柄且回调不会执行
func (s *TimerScheduler) Schedule(delay time.Duration, callback func()) TimerHandle {
	if s.closed || callback == nil {
		return TimerHandle{}
	}
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	entry := &timerEntry{
		id:       s.nextID,
		due:      s.now + delay,
		callback: callback,
	}
	s.pending[entry.id] = entry
	return TimerHandle{id: entry.id}
}

// Cancel 取消一个定时器
// 对已触发、已取消或无效句柄调用是空操作
func (s *TimerScheduler) Cancel(h TimerHandle) {
	delete(s.pending, h.id)
}

// CancelAll 取消一组定时器，可重复调用
func (s *TimerScheduler) CancelAll(handles []TimerHandle) {
	for _, h := range handles {
		s.Cancel(h)
	}
}

// Pending 返回尚未触发的定时器数量
func (s *TimerScheduler) Pending() int {
	return len(s.pending)
}

// IsPending 句柄对应的定时器是否仍在等待
func (s *TimerScheduler) IsPending(h TimerHandle) bool {
	_, ok := s.pending[h.id]
	return ok
}

// Update 推进虚拟时钟
//
// 参数：
//   - dt: 时间增量（秒）
func (s *TimerScheduler) Update(dt float64) {
	s.Advance(time.Duration(dt * float64(time.Second)))
}

// Advance 推进虚拟时钟 d，并按顺序触发所有到期定时器
func (s *TimerScheduler) Advance(d time.Duration) {
	if s.closed {
		return
	}
	if d < 0 {
		d = 0
	}
	target := s.now + d

	for {
		next := s.earliestDue(target)
		if next == nil {
			break
		}
		// 先出队再回调，回调中对自身句柄的 Cancel 是空操作
		delete(s.pending, next.id)
		s.now = next.due
		next.callback()
		if s.closed {
			return
		}
	}
	s.now = target
}

// earliestDue 返回到期时间不晚于 limit 的最早定时器，同一时刻按调度顺序
func (s *TimerScheduler) earliestDue(limit time.Duration) *timerEntry {
	var best *timerEntry
	for _, e := range s.pending {
		if e.due > limit {
			continue
		}
		if best == nil || e.due < best.due || (e.due == best.due && e.id < best.id) {
			best = e
		}
	}
	return best
}

// Close 同步取消全部定时器，之后的 Schedule 不再生效
// 页面卸载时调用，可重复调用
func (s *TimerScheduler) Close() {
	if n := len(s.pending); n > 0 {
		log.Printf("[TimerScheduler] Close: cancelling %d pending timers", n)
	}
	clear(s.pending)
	s.closed = true
}

// TimerGroup 一条叙事链拥有的全部定时器
//
// 启动新链前必须对旧链的 TimerGroup 调用 CancelAll，
// 避免两条链交错写入阶段状态
type TimerGroup struct {
	scheduler *TimerScheduler
	handles   []TimerHandle
}

// NewTimerGroup 创建绑定到调度器的空定时器组
func NewTimerGroup(s *TimerScheduler) *TimerGroup {
	return &TimerGroup{scheduler: s}
}

// Schedule 调度定时器并记录句柄
func (g *TimerGroup) Schedule(delay time.Duration, callback func()) TimerHandle {
	h := g.scheduler.Schedule(delay, callback)
	if h.Valid() {
		g.handles = append(g.handles, h)
	}
	return h
}

// CancelAll 取消组内全部定时器，可重复调用
func (g *TimerGroup) CancelAll() {
	g.scheduler.CancelAll(g.handles)
	g.handles = g.handles[:0]
}

// Len 返回组内记录的句柄数量（包括已触发的）
func (g *TimerGroup) Len() int {
	return len(g.handles)
}

// Live 返回组内仍在等待的定时器数量
func (g *TimerGroup) Live() int {
	n := 0
	for _, h := range g.handles {
		if g.scheduler.IsPending(h) {
			n++
		}
	}
	return n
}
