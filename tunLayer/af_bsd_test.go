//go:build darwin || freebsd

package tunLayer_test

import (
	"errors"
	"testing"

	"github.com/e1732a364fed/tun_simple/tunLayer"
	"golang.org/x/sys/unix"
)

func TestAddressFamilyHeader(t *testing.T) {
	buf := make([]byte, tunLayer.HeaderLen)

	if e := tunLayer.EncodeAddressFamily(buf, unix.AF_INET); e != nil {
		t.Log(e)
		t.FailNow()
	}
	// 大端的 uint32
	if buf[0] != 0 || buf[1] != 0 || buf[2] != 0 || buf[3] != unix.AF_INET {
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
	if af := tunLayer.DecodeAddressFamily(buf); af != unix.AF_INET6 {
		t.Log(af)
		t.Fail()
	}
}

func TestDecodeRawValue(t *testing.T) {
	//bsd的解码不做任何映射, 头里是什么就返回什么
	buf := []byte{0, 0, 0, 42}
	if af := tunLayer.DecodeAddressFamily(buf); af != 42 {
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
