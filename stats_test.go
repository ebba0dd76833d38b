package tun_simple

import (
	"net"
	"strings"
	"testing"
)

func mustCIDR(t *testing.T, s string) *net.IPNet {
	_, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		t.FailNow()
	}
	return ipnet
}

func TestTrafficMeter(t *testing.T) {

	tm := NewTrafficMeter()

	tm.AddPrefix(mustCIDR(t, "10.0.0.0/8"))
	tm.AddPrefix(mustCIDR(t, "10.11.0.0/16"))
	tm.AddPrefix(mustCIDR(t, "2001:db8::/32"))

	// 重复添加同一前缀不产生新条目
	tm.AddPrefix(mustCIDR(t, "10.11.0.0/16"))

	if tm.PrefixCount() != 3 {
		t.Log("count", tm.PrefixCount())
		t.FailNow()
	}

	// 落进嵌套前缀的包, 两条都要记上
	tm.Record(net.IPv4(10, 11, 0, 1), 100)

	// 只落进大前缀
	tm.Record(net.IPv4(10, 200, 0, 1), 40)

	// 谁都不匹配
	tm.Record(net.IPv4(192, 168, 1, 1), 999)

	tm.Record(net.ParseIP("2001:db8::1"), 60)

	var sb strings.Builder
	tm.PrintTo(&sb)
	out := sb.String()
	t.Log("\n" + out)

	if !strings.Contains(out, "10.0.0.0/8 packets 2 bytes 140") {
		t.Fail()
	}
	if !strings.Contains(out, "10.11.0.0/16 packets 1 bytes 100") {
		t.Fail()
	}
	if !strings.Contains(out, "2001:db8::/32 packets 1 bytes 60") {
		t.Fail()
	}
	if strings.Contains(out, "999") {
		t.Fail()
	}
}
