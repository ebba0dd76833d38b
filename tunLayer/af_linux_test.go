//go:build linux

package tunLayer_test

import (
	"errors"
	"testing"

	"github.com/e1732a364fed/tun_simple/tunLayer"
	"github.com/e1732a364fed/tun_simple/utils"
	"golang.org/x/sys/unix"
)

func TestAddressFamilyHeader(t *testing.T) {
	utils.InitLog("af header test")

	buf := make([]byte, tunLayer.HeaderLen)

	if e := tunLayer.EncodeAddressFamily(buf, unix.AF_INET); e != nil {
		t.Log(e)
		t.FailNow()
	}
	// tun_pi: 2字节flags(0) + 2字节大端以太类型
	if buf[0] != 0 || buf[1] != 0 || buf[2] != 0x08 || buf[3] != 0x00 {
		t.Log(buf)
		t.Fail()
	}
	if af := tunLayer.DecodeAddressFamily(buf); af != unix.AF_INET {
		t.Log(af)
		t.Fail()
	}

	if e := tunLayer.EncodeAddressFamily(buf, unix.AF_INET6); e != nil {
		t.Log(e)
		t.FailNow()
	}
	if buf[2] != 0x86 || buf[3] != 0xdd {
		t.Log(buf)
		t.Fail()
	}
	if af := tunLayer.DecodeAddressFamily(buf); af != unix.AF_INET6 {
		t.Log(af)
		t.Fail()
	}
}

func TestDecodeUnknownEtherType(t *testing.T) {
	utils.InitLog("af header test")

	//0x0806 是 ARP, tun上不该出现, 解码时应打warn并返回占位值
	buf := []byte{0, 0, 0x08, 0x06}
	if af := tunLayer.DecodeAddressFamily(buf); af != tunLayer.AFUnknown {
		t.Log(af)
		t.Fail()
	}
}

func TestEncodeBadFamily(t *testing.T) {
	buf := []byte{1, 2, 3, 4}

	e := tunLayer.EncodeAddressFamily(buf, unix.AF_UNIX)
	if !errors.Is(e, tunLayer.ErrUnsupportedFamily) {
		t.Log(e)
		t.Fail()
	}
	//失败时不能动buf
	if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 || buf[3] != 4 {
		t.Log(buf)
		t.Fail()
	}
}
