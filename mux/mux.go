// Package mux implements the multiplexed, authenticated payload framing
// format: multiple encrypted item streams interleaved into one output in a
// cryptographically driven schedule, each item wrapped in an
// Encrypt-then-MAC decorator, with cover traffic supplied by the
// Frameshift (random padding) and Fabric (striping) schemes.
package mux

import (
	"io"

	"github.com/dromara/veil/entropy"
	"github.com/dromara/veil/stream/engines"
	"github.com/dromara/veil/util"
)

// Mux drives one multiplexing session in a single direction. A Mux is not
// safe for concurrent use; callers serialize operations per instance.
type Mux struct {
	writing bool
	w       io.Writer
	r       io.ReadSeeker

	items    []*Item
	preKeys  map[ItemID][]byte
	cfg      Config
	schedule entropy.Source // deterministic schedule draws
	padRand  entropy.Source // live padding content, write direction

	resources      map[int]*itemResource
	completed      []bool // completion register, indexed by item order
	itemsCompleted int
	skip           map[ItemID]bool
}

// itemResource is the per-item state record: the EtM decorator, the
// lazily-allocated overflow buffer and the skip progress counter. Exactly
// one record exists per active item.
type itemResource struct {
	dec        *etmDecorator
	overflow   *ringBuffer
	headerDone bool
	skipping   bool
	skipped    int64
}

// NewWriter builds a multiplexer that interleaves the items into w.
// Skip registers are a read-direction concept and are rejected here.
func NewWriter(w io.Writer, items []*Item, preKeys map[ItemID][]byte, cfg Config) (*Mux, error) {
	if len(cfg.SkipIDs) > 0 {
		return nil, SkipWhileWritingError{}
	}
	m, err := newMux(true, items, preKeys, cfg)
	if err != nil {
		return nil, err
	}
	m.w = w
	return m, nil
}

// NewReader builds a multiplexer that demultiplexes r back into the item
// sinks. Items named in cfg.SkipIDs are bypassed by seeking.
func NewReader(r io.ReadSeeker, items []*Item, preKeys map[ItemID][]byte, cfg Config) (*Mux, error) {
	m, err := newMux(false, items, preKeys, cfg)
	if err != nil {
		return nil, err
	}
	m.r = r
	return m, nil
}

func newMux(writing bool, items []*Item, preKeys map[ItemID][]byte, cfg Config) (*Mux, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, NoItemsError{}
	}
	seen := make(map[ItemID]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return nil, DuplicateItemError(it.ID)
		}
		seen[it.ID] = true
		if err := it.validate(writing); err != nil {
			return nil, err
		}
		if _, ok := preKeys[it.ID]; !ok {
			return nil, MissingPreKeyError(it.ID)
		}
	}
	skip := make(map[ItemID]bool, len(cfg.SkipIDs))
	for _, id := range cfg.SkipIDs {
		if !seen[id] {
			return nil, UnknownSkipItemError(id)
		}
		skip[id] = true
	}

	schedule, err := entropy.Deterministic(cfg.Seed)
	if err != nil {
		return nil, err
	}
	return &Mux{
		writing:   writing,
		items:     items,
		preKeys:   preKeys,
		cfg:       cfg,
		schedule:  schedule,
		padRand:   entropy.Live(),
		resources: make(map[int]*itemResource),
		completed: make([]bool, len(items)),
		skip:      skip,
	}, nil
}

// ItemsCompleted returns the number of finished items.
func (m *Mux) ItemsCompleted() int { return m.itemsCompleted }

// CompletionRegister returns a copy of the in-memory completion bitmap,
// indexed by item order.
func (m *Mux) CompletionRegister() []bool {
	return append([]bool{}, m.completed...)
}

// NextSource draws the next item index from the schedule entropy. Draws
// landing on completed items resolve deterministically to the next
// incomplete index in order (wrapping); the rule is part of the package
// format. All-complete sessions report SessionCompleteError.
func (m *Mux) NextSource() (int, error) {
	if m.itemsCompleted == len(m.items) {
		return 0, SessionCompleteError{}
	}
	r, err := m.schedule.Int(len(m.items))
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(m.items); i++ {
		idx := (r + i) % len(m.items)
		if !m.completed[idx] {
			return idx, nil
		}
	}
	return 0, SessionCompleteError{}
}

// Execute runs schedule steps until every item is finished.
func (m *Mux) Execute() error {
	for m.itemsCompleted < len(m.items) {
		idx, err := m.NextSource()
		if err != nil {
			return err
		}
		if err = m.ExecuteOperation(idx); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteOperation advances the item at idx by one schedule step: the whole
// body for Simple and Frameshift, one stripe for Fabric. Each item is
// touched at most once per step.
func (m *Mux) ExecuteOperation(idx int) error {
	if idx < 0 || idx >= len(m.items) {
		return UnknownItemIndexError(idx)
	}
	if m.completed[idx] {
		return ItemCompletedError(m.items[idx].ID)
	}

	res, err := m.touch(idx)
	if err != nil {
		return err
	}
	if res.skipping {
		return m.executeSkip(idx, res)
	}

	switch m.cfg.Scheme {
	case SchemeSimple, SchemeFrameshift:
		// The entire remaining body streams through in this step.
		if err = m.processBody(idx, res, m.items[idx].ExternalLength); err != nil {
			return err
		}
		return m.finishItem(idx, res)
	case SchemeFabric:
		opLen, err := m.nextOperationLength()
		if err != nil {
			return err
		}
		if err = m.processBody(idx, res, opLen); err != nil {
			return err
		}
		if m.bodyDone(idx, res) {
			if res.overflow == nil {
				// Final stripe: park any cipher-final expansion for
				// draining across later operations of this item. Stream
				// engines are length-preserving, so this resolves on the
				// same step unless an engine buffers output.
				res.overflow = newRingBuffer(m.cfg.Maximum + res.dec.engine.StateSize())
			}
			if m.overflowDrained(res) {
				return m.finishItem(idx, res)
			}
		}
		return nil
	}
	return SchemeBoundsError{Scheme: m.cfg.Scheme, Minimum: m.cfg.Minimum, Maximum: m.cfg.Maximum}
}

// touch returns the item's resource record, creating it and handling the
// header on first contact.
func (m *Mux) touch(idx int) (*itemResource, error) {
	if res, ok := m.resources[idx]; ok {
		return res, nil
	}
	it := m.items[idx]

	if m.skip[it.ID] {
		if m.writing {
			panic("veil/mux: skip register on a writing mux")
		}
		res := &itemResource{skipping: true}
		m.resources[idx] = res
		// The header is part of the skipped span.
		n, err := m.headerLength()
		if err != nil {
			return nil, err
		}
		if err = m.seek(int64(n)); err != nil {
			return nil, err
		}
		res.headerDone = true
		return res, nil
	}

	macKeyLen, err := macKeyLength(it.MAC)
	if err != nil {
		return nil, err
	}
	key, nonce, macKey, err := deriveItemMaterial(m.preKeys[it.ID], it.ID, it.KeySize, it.NonceSize, macKeyLen)
	if err != nil {
		return nil, err
	}
	engine, err := engines.New(it.CipherName)
	if err != nil {
		return nil, err
	}
	if err = engine.Init(m.writing, key, nonce); err != nil {
		return nil, err
	}
	mac, err := newAuthenticator(it.MAC, macKey)
	if err != nil {
		return nil, err
	}
	util.WipeBytes(key)
	util.WipeBytes(macKey)

	res := &itemResource{dec: newETMDecorator(engine, mac, m.writing, m.w, m.r)}
	m.resources[idx] = res

	if err = m.handleHeader(res); err != nil {
		return nil, err
	}
	res.headerDone = true
	return res, nil
}

// headerLength draws the header span for the current scheme: zero for
// Simple and Fabric, a padding draw for Frameshift.
func (m *Mux) headerLength() (int, error) {
	if m.cfg.Scheme != SchemeFrameshift {
		return 0, nil
	}
	return m.drawPadding()
}

func (m *Mux) drawPadding() (int, error) {
	if m.cfg.Minimum == m.cfg.Maximum {
		return m.cfg.Minimum, nil
	}
	return m.schedule.IntRange(m.cfg.Minimum, m.cfg.Maximum)
}

// handleHeader emits or consumes the item header. Padding content comes
// from the live RNG on write and is absorbed into the MAC on both paths, so
// header tampering is caught at finish.
func (m *Mux) handleHeader(res *itemResource) error {
	n, err := m.headerLength()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	pad := make([]byte, n)
	if m.writing {
		if err = m.padRand.ReadBytes(pad); err != nil {
			return err
		}
		res.dec.absorb(pad)
		if _, err = m.w.Write(pad); err != nil {
			return StreamError{Err: err}
		}
		return nil
	}
	if _, err = io.ReadFull(m.r, pad); err != nil {
		return StreamError{Err: err}
	}
	res.dec.absorb(pad)
	return nil
}

// nextOperationLength draws the Fabric stripe length for this step.
func (m *Mux) nextOperationLength() (int64, error) {
	if m.cfg.Minimum == m.cfg.Maximum {
		return int64(m.cfg.Minimum), nil
	}
	n, err := m.schedule.IntRange(m.cfg.Minimum, m.cfg.Maximum)
	return int64(n), err
}

// bodyDone reports whether the item's body has fully passed the cipher.
func (m *Mux) bodyDone(idx int, res *itemResource) bool {
	it := m.items[idx]
	if m.writing {
		return res.dec.bytesIn >= it.ExternalLength
	}
	return res.dec.bytesOut >= it.ExternalLength
}

// overflowDrained reports whether the lazily-allocated final-stripe buffer
// holds no residue.
func (m *Mux) overflowDrained(res *itemResource) bool {
	return res.overflow == nil || res.overflow.Len() == 0
}

// processBody moves up to opLen body bytes of the item through its EtM
// decorator, first draining any overflow residue from an earlier final
// stripe.
func (m *Mux) processBody(idx int, res *itemResource, opLen int64) error {
	it := m.items[idx]

	if res.overflow != nil && res.overflow.Len() > 0 {
		take := res.overflow.Len()
		if int64(take) > opLen {
			take = int(opLen)
		}
		chunk := res.overflow.Take(take)
		if _, err := m.w.Write(chunk); err != nil {
			return StreamError{Err: err}
		}
		opLen -= int64(take)
		if opLen == 0 {
			return nil
		}
	}

	var remaining int64
	if m.writing {
		remaining = it.ExternalLength - res.dec.bytesIn
	} else {
		remaining = it.ExternalLength - res.dec.bytesOut
	}
	n := remaining
	if n > opLen {
		n = opLen
	}

	buf := make([]byte, bufferSize)
	for n > 0 {
		c := n
		if c > int64(len(buf)) {
			c = int64(len(buf))
		}
		chunk := buf[:c]
		if m.writing {
			if _, err := io.ReadFull(it.Source, chunk); err != nil {
				return StreamError{Err: err}
			}
			if err := res.dec.encrypt(chunk); err != nil {
				return err
			}
		} else {
			if err := res.dec.decrypt(chunk); err != nil {
				return err
			}
			if _, err := it.Sink.Write(chunk); err != nil {
				return StreamError{Err: err}
			}
		}
		n -= c
	}
	return nil
}

// handleTrailer emits or consumes the item trailer, mirroring the header.
func (m *Mux) handleTrailer(res *itemResource) error {
	return m.handleHeader(res)
}

// finishItem runs the terminal transition of §finish: length assertions,
// trailer, canonical-bytes absorb, tag finalization or verification,
// stream close, resource removal and completion-register update.
func (m *Mux) finishItem(idx int, res *itemResource) error {
	it := m.items[idx]

	if m.writing {
		if it.ExternalLength > 0 && res.dec.bytesIn != it.ExternalLength {
			return LengthMismatchError{ID: it.ID, Want: it.ExternalLength, Got: res.dec.bytesIn}
		}
		it.InternalLength = res.dec.bytesOut
		if err := m.handleTrailer(res); err != nil {
			return err
		}
		res.dec.close()
		it.Authentication = res.dec.finalize(it.authenticatableBytes())
	} else {
		if res.dec.bytesIn != it.InternalLength {
			return LengthMismatchError{ID: it.ID, Want: it.InternalLength, Got: res.dec.bytesIn}
		}
		if res.dec.bytesOut != it.ExternalLength {
			return LengthMismatchError{ID: it.ID, Want: it.ExternalLength, Got: res.dec.bytesOut}
		}
		if err := m.handleTrailer(res); err != nil {
			return err
		}
		res.dec.close()
		tag := res.dec.finalize(it.authenticatableBytes())
		if !util.ConstantTimeEquals(tag, it.Authentication) {
			return AuthenticationFailedError(it.ID)
		}
	}

	if err := it.closeBinding(m.writing); err != nil {
		return StreamError{Err: err}
	}
	delete(m.resources, idx)
	m.completed[idx] = true
	m.itemsCompleted++
	return nil
}

// seek advances the multiplexed stream without decrypting.
func (m *Mux) seek(n int64) error {
	if n == 0 {
		return nil
	}
	if _, err := m.r.Seek(n, io.SeekCurrent); err != nil {
		return StreamError{Err: err}
	}
	return nil
}

// executeSkip bypasses one schedule step of a skip-register item: the same
// entropy draws are consumed so the remaining items stay aligned, but the
// bytes are seeked over instead of deciphered.
func (m *Mux) executeSkip(idx int, res *itemResource) error {
	if m.writing {
		panic("veil/mux: skip register on a writing mux")
	}
	it := m.items[idx]

	var opLen int64
	switch m.cfg.Scheme {
	case SchemeSimple, SchemeFrameshift:
		opLen = it.InternalLength
	case SchemeFabric:
		var err error
		if opLen, err = m.nextOperationLength(); err != nil {
			return err
		}
	}

	n := it.InternalLength - res.skipped
	if n > opLen {
		n = opLen
	}
	if err := m.seek(n); err != nil {
		return err
	}
	res.skipped += n

	if res.skipped >= it.InternalLength {
		// Final touch: the trailer joins the skipped span.
		t, err := m.trailerLengthForSkip()
		if err != nil {
			return err
		}
		if err = m.seek(int64(t)); err != nil {
			return err
		}
		if err = it.closeBinding(m.writing); err != nil {
			return StreamError{Err: err}
		}
		delete(m.resources, idx)
		m.completed[idx] = true
		m.itemsCompleted++
	}
	return nil
}

// trailerLengthForSkip draws the trailer span of a skipped item.
func (m *Mux) trailerLengthForSkip() (int, error) {
	return m.headerLength()
}
