package storage

import "go.uber.org/zap"

// Strategy selects the page-replacement algorithm a BufferPool uses when
// every frame is occupied and a new page must be loaded.
type Strategy int

const (
	FIFO Strategy = iota
	LRU
	Clock
)

func (s Strategy) String() string {
	switch s {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	case Clock:
		return "CLOCK"
	default:
		return "Unknown"
	}
}

// BufferPool manages a fixed number of in-memory frames backed by a
// single PageFile, loading and evicting pages under the configured
// replacement strategy. It is not safe for concurrent use; spec.md
// scopes latching out as a Non-goal.
type BufferPool struct {
	pageFile  *PageFile
	strategy  Strategy
	frames    []*frame
	pageTable map[PageNumber]int // pageNumber -> frame index

	fifoQueue []int // frame indices, oldest first; FIFO only
	clockHand int    // next frame index to examine; CLOCK only
	hitTick   uint64

	readIO  int
	writeIO int

	log *zap.SugaredLogger
}

// Init creates a buffer pool of numFrames frames over pageFile, using
// strategy for replacement. log may be nil. It fails if numFrames <= 0.
func Init(pageFile *PageFile, numFrames int, strategy Strategy, log *zap.SugaredLogger) (*BufferPool, error) {
	if numFrames <= 0 {
		return nil, newError(KindGeneric, "Init", nil)
	}

	frames := make([]*frame, numFrames)
	for i := range frames {
		frames[i] = newFrame()
	}
	bp := &BufferPool{
		pageFile:  pageFile,
		strategy:  strategy,
		frames:    frames,
		pageTable: make(map[PageNumber]int, numFrames),
		log:       log,
	}
	bp.logf("buffer pool initialized with %d frames, strategy %s", numFrames, strategy)
	return bp, nil
}

func (bp *BufferPool) logf(format string, args ...interface{}) {
	if bp.log != nil {
		bp.log.Debugf(format, args...)
	}
}

// PinPage loads pageNum into a frame (or reuses its resident frame on a
// hit) and increments its pin count. The returned Page aliases the
// frame's buffer directly.
func (bp *BufferPool) PinPage(pageNum PageNumber) (*Page, error) {
	if bp == nil {
		return nil, newError(KindBufferPoolNotFound, "PinPage", nil)
	}
	if idx, ok := bp.pageTable[pageNum]; ok {
		fr := bp.frames[idx]
		fr.pinCount++
		bp.hitTick++
		fr.lastHit = bp.hitTick
		fr.secondChance = true
		return &Page{PageNum: pageNum, Data: fr.buffer}, nil
	}

	idx, needsEviction, err := bp.pickFrame()
	if err != nil {
		return nil, err
	}

	// Read the incoming page into a scratch buffer first. Until this
	// succeeds, neither the target frame nor the page table is touched,
	// so a failed read leaves every frame's residency, contents, pin count
	// and dirty flag as they were before the call. Under CLOCK the victim
	// search above has already moved the hand and cleared the reference
	// bits it passed; those changes are not undone.
	scratch := make([]byte, PageSize)
	if int(pageNum) >= bp.pageFile.TotalPages() {
		if err := bp.pageFile.EnsureCapacity(int(pageNum) + 1); err != nil {
			return nil, err
		}
	}
	if err := bp.pageFile.ReadBlock(int(pageNum), scratch); err != nil {
		return nil, err
	}
	bp.readIO++

	if needsEviction {
		if err := bp.evictFrame(idx); err != nil {
			return nil, err
		}
	}

	fr := bp.frames[idx]
	copy(fr.buffer, scratch)
	fr.pageNumber = pageNum
	fr.pinCount = 1
	fr.dirty = false
	bp.hitTick++
	fr.lastHit = bp.hitTick
	fr.secondChance = false
	bp.pageTable[pageNum] = idx

	if bp.strategy == FIFO {
		bp.fifoQueue = append(bp.fifoQueue, idx)
	}

	bp.logf("pinned page %d into frame %d", pageNum, idx)
	return &Page{PageNum: pageNum, Data: fr.buffer}, nil
}

// pickFrame selects the frame a new page should land in: a free frame if
// one exists, otherwise an eviction candidate under the configured
// strategy. It does not change any frame's residency, contents, pin count
// or dirty flag, nor the page table; under CLOCK the victim search does
// advance the clock hand and clear reference bits.
func (bp *BufferPool) pickFrame() (idx int, needsEviction bool, err error) {
	for i, fr := range bp.frames {
		if fr.pageNumber == NoPage {
			return i, false, nil
		}
	}

	idx, err = bp.selectVictim()
	if err != nil {
		return 0, false, err
	}
	return idx, true, nil
}

// evictFrame flushes frame idx if dirty and clears its residency. Callers
// must only invoke this once the page replacing it has been read
// successfully, so a flush failure leaves the victim still resident.
func (bp *BufferPool) evictFrame(idx int) error {
	victim := bp.frames[idx]
	if victim.dirty {
		if err := bp.pageFile.WriteBlock(int(victim.pageNumber), victim.buffer); err != nil {
			return err
		}
		bp.writeIO++
	}
	delete(bp.pageTable, victim.pageNumber)
	if bp.strategy == FIFO {
		bp.removeFromFifoQueue(idx)
	}
	victim.reset()
	return nil
}

func (bp *BufferPool) removeFromFifoQueue(idx int) {
	for i, v := range bp.fifoQueue {
		if v == idx {
			bp.fifoQueue = append(bp.fifoQueue[:i], bp.fifoQueue[i+1:]...)
			return
		}
	}
}

// selectVictim picks an unpinned frame to evict per bp.strategy.
func (bp *BufferPool) selectVictim() (int, error) {
	switch bp.strategy {
	case FIFO:
		return bp.selectVictimFIFO()
	case LRU:
		return bp.selectVictimLRU()
	case Clock:
		return bp.selectVictimClock()
	default:
		return bp.selectVictimFIFO()
	}
}

func (bp *BufferPool) selectVictimFIFO() (int, error) {
	for _, idx := range bp.fifoQueue {
		if bp.frames[idx].pinCount == 0 {
			return idx, nil
		}
	}
	return 0, newError(KindGeneric, "selectVictim", nil)
}

func (bp *BufferPool) selectVictimLRU() (int, error) {
	best := -1
	var bestTick uint64
	for i, fr := range bp.frames {
		if fr.pageNumber == NoPage || fr.pinCount != 0 {
			continue
		}
		if best == -1 || fr.lastHit < bestTick {
			best = i
			bestTick = fr.lastHit
		}
	}
	if best == -1 {
		return 0, newError(KindGeneric, "selectVictim", nil)
	}
	return best, nil
}

func (bp *BufferPool) selectVictimClock() (int, error) {
	n := len(bp.frames)
	if n == 0 {
		return 0, newError(KindGeneric, "selectVictim", nil)
	}
	for sweeps := 0; sweeps < 2*n; sweeps++ {
		fr := bp.frames[bp.clockHand]
		cur := bp.clockHand
		bp.clockHand = (bp.clockHand + 1) % n
		if fr.pageNumber == NoPage || fr.pinCount != 0 {
			continue
		}
		if fr.secondChance {
			fr.secondChance = false
			continue
		}
		return cur, nil
	}
	return 0, newError(KindGeneric, "selectVictim", nil)
}

// UnpinPage decrements pageNum's pin count. A page that is not resident
// is a silent no-op.
func (bp *BufferPool) UnpinPage(pageNum PageNumber) error {
	if bp == nil {
		return newError(KindBufferPoolNotFound, "UnpinPage", nil)
	}
	idx, ok := bp.pageTable[pageNum]
	if !ok {
		return nil
	}
	fr := bp.frames[idx]
	if fr.pinCount > 0 {
		fr.pinCount--
	}
	return nil
}

// MarkDirty flags pageNum's frame as holding unwritten changes.
func (bp *BufferPool) MarkDirty(pageNum PageNumber) error {
	if bp == nil {
		return newError(KindBufferPoolNotFound, "MarkDirty", nil)
	}
	idx, ok := bp.pageTable[pageNum]
	if !ok {
		return newError(KindGeneric, "MarkDirty", nil)
	}
	bp.frames[idx].dirty = true
	return nil
}

// ForcePage writes pageNum's frame to disk immediately, regardless of
// its dirty flag. A non-resident page is a no-op.
func (bp *BufferPool) ForcePage(pageNum PageNumber) error {
	if bp == nil {
		return newError(KindBufferPoolNotFound, "ForcePage", nil)
	}
	idx, ok := bp.pageTable[pageNum]
	if !ok {
		return nil
	}
	fr := bp.frames[idx]
	if err := bp.pageFile.WriteBlock(int(fr.pageNumber), fr.buffer); err != nil {
		return err
	}
	bp.writeIO++
	fr.dirty = false
	return nil
}

// ForceFlushPool writes every unpinned dirty frame to disk. Pinned
// frames are skipped even if dirty, since a pinning client may still be
// mutating their buffer.
func (bp *BufferPool) ForceFlushPool() error {
	if bp == nil {
		return newError(KindBufferPoolNotFound, "ForceFlushPool", nil)
	}
	for _, fr := range bp.frames {
		if fr.pageNumber == NoPage || !fr.dirty || fr.pinCount > 0 {
			continue
		}
		if err := bp.pageFile.WriteBlock(int(fr.pageNumber), fr.buffer); err != nil {
			return err
		}
		bp.writeIO++
		fr.dirty = false
	}
	return nil
}

// Shutdown flushes all dirty frames and closes the backing PageFile. It
// refuses while any page remains pinned.
func (bp *BufferPool) Shutdown() error {
	if bp == nil {
		return newError(KindBufferPoolNotFound, "Shutdown", nil)
	}
	if err := bp.ForceFlushPool(); err != nil {
		return err
	}
	for _, fr := range bp.frames {
		if fr.pinCount > 0 {
			return newError(KindPinnedPagesInBuffer, "Shutdown", nil)
		}
	}
	bp.logf("buffer pool shutting down")
	return bp.pageFile.Close()
}
