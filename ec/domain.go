// Package ec implements short-Weierstrass elliptic curve domains over
// prime fields for the key-agreement layer: the closed SEC named-curve
// set, Jacobian point arithmetic, wNAF variable-base and fixed-base comb
// multiplication, SEC1 point encoding and full public key validation.
package ec

import (
	"crypto/elliptic"
	"math/big"
	"sync"
)

// Domain holds the parameters of one named short-Weierstrass curve
// y^2 = x^3 + ax + b over F(p), with generator (Gx, Gy) of order N and
// cofactor H.
type Domain struct {
	Name        string
	P, A, B     *big.Int
	Gx, Gy      *big.Int
	N           *big.Int
	H           *big.Int
	combOnce    sync.Once
	combTable   []*Point
	combSpacing int
}

// FieldByteLen returns the byte length of a field element, which is also
// the fixed width of each agreement secret component.
func (d *Domain) FieldByteLen() int {
	return (d.P.BitLen() + 7) / 8
}

// ScalarByteLen returns the byte length of a reduced scalar.
func (d *Domain) ScalarByteLen() int {
	return (d.N.BitLen() + 7) / 8
}

func fromHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("ec: invalid curve constant")
	}
	return n
}

// nistDomain adapts a standard library curve, which carries an implicit
// a = -3.
func nistDomain(name string, params *elliptic.CurveParams) *Domain {
	a := new(big.Int).Sub(params.P, big.NewInt(3))
	return &Domain{
		Name: name,
		P:    params.P,
		A:    a,
		B:    params.B,
		Gx:   params.Gx,
		Gy:   params.Gy,
		N:    params.N,
		H:    big.NewInt(1),
	}
}

var (
	domainsOnce sync.Once
	domains     map[string]*Domain
)

func initDomains() {
	domains = make(map[string]*Domain)
	add := func(d *Domain) { domains[d.Name] = d }

	add(&Domain{
		Name: "secp192k1",
		P:    fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFEE37"),
		A:    big.NewInt(0),
		B:    big.NewInt(3),
		Gx:   fromHex("DB4FF10EC057E9AE26B07D0280B7F4341DA5D1B1EAE06C7D"),
		Gy:   fromHex("9B2F2F6D9C5628A7844163D015BE86344082AA88D95E2F9D"),
		N:    fromHex("FFFFFFFFFFFFFFFFFFFFFFFE26F2FC170F69466A74DEFD8D"),
		H:    big.NewInt(1),
	})
	add(&Domain{
		Name: "secp192r1",
		P:    fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFF"),
		A:    fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFC"),
		B:    fromHex("64210519E59C80E70FA7E9AB72243049FEB8DEECC146B9B1"),
		Gx:   fromHex("188DA80EB03090F67CBF20EB43A18800F4FF0AFD82FF1012"),
		Gy:   fromHex("07192B95FFC8DA78631011ED6B24CDD573F977A11E794811"),
		N:    fromHex("FFFFFFFFFFFFFFFFFFFFFFFF99DEF836146BC9B1B4D22831"),
		H:    big.NewInt(1),
	})
	add(&Domain{
		Name: "secp224k1",
		P:    fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFE56D"),
		A:    big.NewInt(0),
		B:    big.NewInt(5),
		Gx:   fromHex("A1455B334DF099DF30FC28A169A467E9E47075A90F7E650EB6B7A45C"),
		Gy:   fromHex("7E089FED7FBA344282CAFBD6F7E319F7C0B0BD59E2CA4BDB556D61A5"),
		N:    fromHex("010000000000000000000000000001DCE8D2EC6184CAF0A971769FB1F7"),
		H:    big.NewInt(1),
	})
	add(nistDomain("secp224r1", elliptic.P224().Params()))
	add(&Domain{
		Name: "secp256k1",
		P:    fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		A:    big.NewInt(0),
		B:    big.NewInt(7),
		Gx:   fromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		Gy:   fromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		N:    fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		H:    big.NewInt(1),
	})
	add(nistDomain("secp256r1", elliptic.P256().Params()))
	add(nistDomain("secp384r1", elliptic.P384().Params()))
	add(nistDomain("secp521r1", elliptic.P521().Params()))
}

// DomainByName returns the named SEC curve domain. The curve set is closed;
// unknown names return an UnknownCurveError.
func DomainByName(name string) (*Domain, error) {
	domainsOnce.Do(initDomains)
	d, ok := domains[name]
	if !ok {
		return nil, UnknownCurveError(name)
	}
	return d, nil
}

// DomainNames returns the supported curve names.
func DomainNames() []string {
	return []string{
		"secp192k1", "secp192r1", "secp224k1", "secp224r1",
		"secp256k1", "secp256r1", "secp384r1", "secp521r1",
	}
}
