//go:build linux

package tun_simple

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/e1732a364fed/tun_simple/tunLayer"
	"github.com/e1732a364fed/tun_simple/utils"
	"golang.org/x/sys/unix"
)

// 造一个最小的20字节IPv4头, 只为让内核认得出目的地址
func minimalIPv4(dst [4]byte) []byte {
	b := make([]byte, 20)
	b[0] = 0x45
	b[3] = 20
	b[8] = 64  // ttl
	b[9] = 253 // protocol: use for experimentation
	copy(b[12:16], []byte{10, 99, 0, 1})
	copy(b[16:20], dst[:])

	var sum uint32
	for i := 0; i < 20; i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	for sum > 0xffff {
		sum = (sum >> 16) + (sum & 0xffff)
	}
	sum = ^sum
	b[10] = byte(sum >> 8)
	b[11] = byte(sum)
	return b
}

// 真实跑一遍 Start -> SendPacket -> PrintAllState -> Stop, 需要root。
func TestDaemonE2E(t *testing.T) {
	if os.Geteuid() != 0 {
		t.Skip("requires root")
	}
	if _, err := os.Stat("/dev/net/tun"); err != nil {
		t.Skip("no tun clone device: ", err)
	}

	utils.InitLog("daemon e2e test")

	d := NewDaemon()
	err := d.LoadConfByTomlBytes([]byte(`
[interface]
name = "tun%d"
mtu = 1400

[[route]]
to = "10.99.0.0/24"
`))
	if err != nil {
		t.Log(err)
		t.FailNow()
	}

	if err = d.Start(); err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
			t.Skip("no permission: ", err)
		}
		t.Log(err)
		t.FailNow()
	}
	defer d.Stop()

	name := d.InterfaceName()
	if name == "" || strings.Contains(name, "%") {
		t.Log("name", name)
		t.FailNow()
	}
	t.Log("created", name)

	if d.meter.PrefixCount() != 1 {
		t.FailNow()
	}

	payload := minimalIPv4([4]byte{10, 99, 0, 5})
	if err = d.SendPacket(unix.AF_INET, payload); err != nil {
		t.Log(err)
		t.FailNow()
	}

	if d.PacketsWrittenSinceStart.Load() != 1 {
		t.FailNow()
	}
	if d.BytesWrittenSinceStart.Load() != uint64(tunLayer.HeaderLen+len(payload)) {
		t.FailNow()
	}

	var sb strings.Builder
	d.PrintAllState(&sb)
	out := sb.String()
	t.Log("\n" + out)
	if !strings.Contains(out, name) {
		t.Fail()
	}

	d.Stop()
	if d.IsRunning() {
		t.FailNow()
	}

	// 再次 Stop 无事发生
	d.Stop()
}
