// Package kex implements the elliptic-curve key agreement layer: X25519
// convenience wrappers over the curve25519 package and the UM1 one-pass
// unified model (NIST SP 800-56A C(1,2)) with cofactor Diffie-Hellman and
// an ephemeral contribution for forward secrecy. The password-authenticated
// exchange lives in the jpake subpackage.
package kex

import (
	"io"
	"math/big"

	"github.com/dromara/veil/ec"
	"github.com/dromara/veil/util"
)

// ecdhc computes the cofactor Diffie-Hellman secret x-coord(H*d*Q), padded
// to the full field width of the domain (no left trimming).
func ecdhc(d *ec.Domain, priv *big.Int, pub *ec.Point) ([]byte, error) {
	k := new(big.Int).Mul(priv, d.H)
	k.Mod(k, d.N)
	p := pub.Multiply(k)
	x, _, err := p.Normalize()
	if err != nil {
		return nil, SharedSecretError{Err: err}
	}
	z := make([]byte, d.FieldByteLen())
	x.FillBytes(z)
	return z, nil
}

// UM1Result carries the initiator outputs: the agreement secret and the
// ephemeral public key to transmit.
type UM1Result struct {
	Secret    []byte  // Ze || Zs, two field-width halves
	Ephemeral *ec.Key // Q_e, public
}

// UM1Initiate runs the sender side of UM1: generate an ephemeral keypair
// on the receiver's curve, then concatenate the ephemeral-static and
// static-static cofactor DH secrets. Both halves are wiped after
// concatenation.
func UM1Initiate(receiverPub *ec.Key, senderPriv *ec.Key, rand io.Reader) (*UM1Result, error) {
	if receiverPub.Curve != senderPriv.Curve {
		return nil, CurveMismatchError{A: receiverPub.Curve, B: senderPriv.Curve}
	}
	d, err := ec.DomainByName(receiverPub.Curve)
	if err != nil {
		return nil, err
	}
	qv, err := receiverPub.Point()
	if err != nil {
		return nil, err
	}
	if err = d.ValidatePublic(qv); err != nil {
		return nil, err
	}

	eph, err := ec.GenerateKey(d, rand)
	if err != nil {
		return nil, err
	}

	ze, err := ecdhc(d, eph.D, qv)
	if err != nil {
		return nil, err
	}
	zs, err := ecdhc(d, senderPriv.D, qv)
	if err != nil {
		util.WipeBytes(ze)
		return nil, err
	}

	z := make([]byte, 0, len(ze)+len(zs))
	z = append(append(z, ze...), zs...)
	util.WipeBytes(ze)
	util.WipeBytes(zs)

	return &UM1Result{Secret: z, Ephemeral: eph.PublicKey()}, nil
}

// UM1Respond runs the receiver side of UM1 against the initiator's static
// and ephemeral public keys, reproducing the same Ze || Zs secret.
func UM1Respond(initiatorPub *ec.Key, receiverPriv *ec.Key, ephemeralPub *ec.Key) ([]byte, error) {
	if initiatorPub.Curve != receiverPriv.Curve || ephemeralPub.Curve != receiverPriv.Curve {
		return nil, CurveMismatchError{A: initiatorPub.Curve, B: receiverPriv.Curve}
	}
	d, err := ec.DomainByName(receiverPriv.Curve)
	if err != nil {
		return nil, err
	}
	qu, err := initiatorPub.Point()
	if err != nil {
		return nil, err
	}
	qe, err := ephemeralPub.Point()
	if err != nil {
		return nil, err
	}
	if err = d.ValidatePublic(qu); err != nil {
		return nil, err
	}
	if err = d.ValidatePublic(qe); err != nil {
		return nil, err
	}

	ze, err := ecdhc(d, receiverPriv.D, qe)
	if err != nil {
		return nil, err
	}
	zs, err := ecdhc(d, receiverPriv.D, qu)
	if err != nil {
		util.WipeBytes(ze)
		return nil, err
	}

	z := make([]byte, 0, len(ze)+len(zs))
	z = append(append(z, ze...), zs...)
	util.WipeBytes(ze)
	util.WipeBytes(zs)
	return z, nil
}
