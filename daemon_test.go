package tun_simple

import (
	"bytes"
	"net"
	"strings"
	"testing"

	"github.com/e1732a364fed/tun_simple/utils"
	"golang.org/x/sys/unix"
)

func TestRouteDest(t *testing.T) {

	af, addr, plen := routeDest(mustCIDR(t, "10.11.0.0/16"))
	if af != unix.AF_INET || plen != 16 {
		t.FailNow()
	}
	if !bytes.Equal(addr, []byte{10, 11, 0, 0}) {
		t.Log(addr)
		t.FailNow()
	}

	af, addr, plen = routeDest(mustCIDR(t, "2001:db8::/32"))
	if af != unix.AF_INET6 || plen != 32 || len(addr) != 16 {
		t.FailNow()
	}
	if addr[0] != 0x20 || addr[1] != 0x01 {
		t.FailNow()
	}
}

func TestPacketDst(t *testing.T) {

	v4 := make([]byte, 20)
	v4[0] = 0x45
	copy(v4[16:20], []byte{10, 11, 0, 5})

	dst := packetDst(unix.AF_INET, v4)
	if dst == nil || !dst.Equal(net.IPv4(10, 11, 0, 5)) {
		t.FailNow()
	}

	v6 := make([]byte, 40)
	v6[0] = 0x60
	want := net.ParseIP("2001:db8::1")
	copy(v6[24:40], want.To16())

	dst = packetDst(unix.AF_INET6, v6)
	if dst == nil || !dst.Equal(want) {
		t.FailNow()
	}

	// 头不完整
	if packetDst(unix.AF_INET, v4[:19]) != nil {
		t.Fail()
	}
	if packetDst(unix.AF_INET6, v6[:39]) != nil {
		t.Fail()
	}

	if packetDst(999, v4) != nil {
		t.Fail()
	}
}

func TestDaemonNotRunning(t *testing.T) {

	d := NewDaemon()

	if d.IsRunning() {
		t.FailNow()
	}
	if d.InterfaceName() != "" {
		t.FailNow()
	}
	if err := d.SendPacket(unix.AF_INET, make([]byte, 20)); err == nil {
		t.Fail()
	}
	if err := d.AddRoute("10.0.0.0/8"); err == nil {
		t.Fail()
	}

	// 没在运行时 Stop 无事发生
	d.Stop()
}

func TestDaemonLoadConf(t *testing.T) {

	oldLL := utils.LogLevel
	defer func() { utils.LogLevel = oldLL }()

	d := NewDaemon()

	if err := d.LoadConfByTomlBytes([]byte(testTomlConfStr)); err != nil {
		t.Log(err)
		t.FailNow()
	}
	if d.Interface.Name != "tun%d" || len(d.Routes) != 2 {
		t.FailNow()
	}

	if err := d.LoadConfByTomlBytes([]byte("interface = 1")); err == nil {
		t.Fail()
	}

	// 能通过toml解析 但通不过 Verify
	if err := d.LoadConfByTomlBytes([]byte("[app]\nloglevel = 1")); err == nil {
		t.Fail()
	}

	var sb strings.Builder
	d.PrintAllState(&sb)
	out := sb.String()
	t.Log("\n" + out)

	if !strings.Contains(out, "running false") {
		t.Fail()
	}
	if !strings.Contains(out, "packetsReadSinceStart 0") {
		t.Fail()
	}
}
