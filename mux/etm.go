package mux

import (
	"io"

	"github.com/dromara/veil/stream"
)

// etmDecorator is the Encrypt-then-MAC stream decorator bound to one item:
// plaintext runs through the cipher and the ciphertext is absorbed into the
// authenticator on both paths, so the tag always covers what was actually
// on the wire.
type etmDecorator struct {
	engine  stream.Cipher
	mac     Authenticator
	writing bool
	out     io.Writer
	in      io.Reader

	bytesIn  int64 // write: plaintext in; read: ciphertext in
	bytesOut int64 // write: ciphertext out; read: plaintext out

	scratch []byte
}

func newETMDecorator(engine stream.Cipher, mac Authenticator, writing bool, out io.Writer, in io.Reader) *etmDecorator {
	return &etmDecorator{
		engine:  engine,
		mac:     mac,
		writing: writing,
		out:     out,
		in:      in,
		scratch: make([]byte, bufferSize),
	}
}

// encrypt ciphers p, absorbs the ciphertext and writes it out.
func (d *etmDecorator) encrypt(p []byte) error {
	for len(p) > 0 {
		n := len(p)
		if n > len(d.scratch) {
			n = len(d.scratch)
		}
		if err := d.engine.ProcessBytes(p, 0, n, d.scratch, 0); err != nil {
			return err
		}
		d.mac.Write(d.scratch[:n])
		if _, err := d.out.Write(d.scratch[:n]); err != nil {
			return StreamError{Err: err}
		}
		d.bytesIn += int64(n)
		d.bytesOut += int64(n)
		p = p[n:]
	}
	return nil
}

// decrypt reads exactly len(p) ciphertext bytes, absorbs them, and writes
// the plaintext into p.
func (d *etmDecorator) decrypt(p []byte) error {
	if _, err := io.ReadFull(d.in, p); err != nil {
		return StreamError{Err: err}
	}
	d.mac.Write(p)
	if err := d.engine.ProcessBytes(p, 0, len(p), p, 0); err != nil {
		return err
	}
	d.bytesIn += int64(len(p))
	d.bytesOut += int64(len(p))
	return nil
}

// absorb feeds cover bytes (padding) into the authenticator without
// ciphering them.
func (d *etmDecorator) absorb(p []byte) {
	d.mac.Write(p)
}

// finalize absorbs the item's canonical bytes and returns the tag.
func (d *etmDecorator) finalize(itemBytes []byte) []byte {
	d.mac.Write(itemBytes)
	return d.mac.Sum()
}

// close zeroizes the cipher state.
func (d *etmDecorator) close() {
	d.engine.Clear()
}
